package statusync

import (
	"strings"
	"testing"
	"time"
)

func TestFormatTime(t *testing.T) {
	ts := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	if got := FormatTime(ts, true); got != "Mon, Jan  1 2024" {
		t.Fatalf("unexpected all-day format: %q", got)
	}
	if got := FormatTime(ts, false); got != "Mon, Jan  1 2024 9:00am" {
		t.Fatalf("unexpected timed format: %q", got)
	}
}

func TestEventStringShowsStartBeforeEnd(t *testing.T) {
	ev := CalendarEvent{
		ID:      "e1",
		Summary: "Standup",
		Start:   time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		End:     time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
	}

	s := ev.String()
	start := FormatTime(ev.Start, false)
	end := FormatTime(ev.End, false)
	if !strings.Contains(s, start) || !strings.Contains(s, end) {
		t.Fatalf("expected both timestamps in %q", s)
	}
	if strings.Index(s, start) > strings.Index(s, end) {
		t.Fatalf("expected start before end in %q", s)
	}
}

func TestCalendarEventIsValid(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	if ok := (CalendarEvent{ID: "e1", Start: start, End: start.Add(time.Hour)}).IsValid(); !ok {
		t.Fatal("expected event with start before end to be valid")
	}
	if ok := (CalendarEvent{ID: "e1", Start: start, End: start}).IsValid(); !ok {
		t.Fatal("expected event with start equal to end to be valid")
	}
	if ok := (CalendarEvent{ID: "e1", Start: start.Add(time.Hour), End: start}).IsValid(); ok {
		t.Fatal("expected event with start after end to be invalid")
	}
}
