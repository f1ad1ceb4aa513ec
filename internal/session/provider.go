package session

import "context"

// Credential is what a successful interactive sign-in yields: the
// long-lived token granting read access to the user's calendars.
type Credential struct {
	AccessToken string
}

// Notification is pushed by the identity provider whenever its sign-in
// state changes.
type Notification struct {
	UserPresent bool
}

// Provider is the identity provider boundary. Implementations wrap a
// third-party auth service; the manager never talks to one directly.
type Provider interface {
	// SignIn runs the provider's interactive sign-in flow.
	SignIn(ctx context.Context) (Credential, error)
	// SignOut ends the provider session.
	SignOut(ctx context.Context) error
	// IdentityToken returns a fresh short-lived token proving the
	// signed-in user's identity, refreshing it if needed.
	IdentityToken(ctx context.Context) (string, error)
	// Subscribe registers a handler for sign-in state changes,
	// replaying the current state to it immediately, and returns the
	// function that removes it again.
	Subscribe(fn func(Notification)) func()
}
