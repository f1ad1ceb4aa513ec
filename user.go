package statusync

// User is the profile the remote service keeps for a signed-in account.
// SlackUserID is set only after the workspace link flow has completed.
type User struct {
	ID          string
	DisplayName string
	Email       string
	SlackUserID *string
}

// Linked reports whether the user has completed the workspace link.
func (u User) Linked() bool {
	return u.SlackUserID != nil && *u.SlackUserID != ""
}
