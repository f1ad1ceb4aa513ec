package statusync

import (
	"fmt"
	"time"
)

// StatusEvent is a scheduled status update tied to a calendar event's
// time window. The id is assigned by the server; once the start time has
// passed the server refuses edits.
type StatusEvent struct {
	ID          string
	UserID      string
	CalendarID  string
	EventID     string
	Start       time.Time
	End         time.Time
	StatusText  string
	StatusEmoji *Emoji
	// Expiration is the unix timestamp the workspace status clears at,
	// computed server-side from the end time.
	Expiration *float64
}

func (s StatusEvent) IsValid() bool {
	return s.ID != "" && s.StatusText != "" && !s.Start.After(s.End)
}

// EmojiName returns the name of the status emoji, or the empty string
// when no emoji is set.
func (s StatusEvent) EmojiName() string {
	if s.StatusEmoji == nil {
		return ""
	}
	return s.StatusEmoji.Name
}

func (s StatusEvent) String() string {
	emoji := ""
	if s.StatusEmoji != nil {
		emoji = " " + s.StatusEmoji.Render()
	}
	return fmt.Sprintf("%s%s: %s - %s", s.StatusText, emoji, FormatTime(s.Start, false), FormatTime(s.End, false))
}
