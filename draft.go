package statusync

import "time"

// StatusEventDraft is the not-yet-submitted form of a status event. It
// is deliberately distinct from StatusEvent: everything is optional
// until validation, and the server assigns the id on creation.
type StatusEventDraft struct {
	CalendarID  string
	EventID     string
	Start       time.Time
	End         time.Time
	StatusText  string
	StatusEmoji *Emoji
}

// DraftFromCalendarEvent seeds a creation draft with the calendar
// event's identity and time window.
func DraftFromCalendarEvent(e CalendarEvent) StatusEventDraft {
	return StatusEventDraft{
		CalendarID: e.CalendarID,
		EventID:    e.ID,
		Start:      e.Start,
		End:        e.End,
	}
}

// DraftFromStatusEvent seeds an edit draft from an existing status
// event.
func DraftFromStatusEvent(s StatusEvent) StatusEventDraft {
	return StatusEventDraft{
		CalendarID:  s.CalendarID,
		EventID:     s.EventID,
		Start:       s.Start,
		End:         s.End,
		StatusText:  s.StatusText,
		StatusEmoji: s.StatusEmoji,
	}
}

// EmojiName returns the draft emoji's name, or the empty string when
// none is set.
func (d StatusEventDraft) EmojiName() string {
	if d.StatusEmoji == nil {
		return ""
	}
	return d.StatusEmoji.Name
}

// Changed reports whether submitting the draft would modify the
// original: the status text or the emoji name differs. Only these two
// fields are editable after creation.
func (d StatusEventDraft) Changed(original StatusEvent) bool {
	return d.StatusText != original.StatusText || d.EmojiName() != original.EmojiName()
}
