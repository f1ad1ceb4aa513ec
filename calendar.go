package statusync

import (
	"fmt"
	"time"
)

// Color is the optional display color pair a calendar or event carries.
type Color struct {
	Background string
	Foreground string
}

type Calendar struct {
	ID          string
	Summary     string
	Description string
	Timezone    string
	Color       *Color
}

func (c Calendar) String() string {
	if len(c.Description) == 0 {
		return fmt.Sprintf("%s [%s]", c.Summary, c.ID)
	}
	return fmt.Sprintf("%s [%s]: %s", c.Summary, c.ID, c.Description)
}

// CalendarEvent is a read-only event belonging to one of the user's
// calendars. All-day events carry date-only start/end values.
type CalendarEvent struct {
	ID          string
	CalendarID  string
	Summary     string
	Description string
	Color       *Color
	Start       time.Time
	End         time.Time
	AllDay      bool
}

func (e CalendarEvent) IsValid() bool {
	return e.ID != "" && !e.Start.After(e.End)
}

const (
	displayDateFmt     = "Mon, Jan _2 2006"
	displayDateTimeFmt = "Mon, Jan _2 2006 3:04pm"
)

// FormatTime renders an event timestamp for display, date-only for
// all-day events.
func FormatTime(t time.Time, allDay bool) string {
	if allDay {
		return t.Format(displayDateFmt)
	}
	return t.Format(displayDateTimeFmt)
}

func (e CalendarEvent) String() string {
	return fmt.Sprintf("%s: %s - %s", e.Summary, FormatTime(e.Start, e.AllDay), FormatTime(e.End, e.AllDay))
}
