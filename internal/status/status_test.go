package status

import (
	"testing"
	"time"

	"statusync"
)

func strPtr(s string) *string { return &s }

func TestClassifyBuckets(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

	mk := func(id string, end time.Time) statusync.StatusEvent {
		return statusync.StatusEvent{ID: id, Start: end.Add(-15 * time.Minute), End: end, StatusText: "x"}
	}
	events := []statusync.StatusEvent{
		mk("future", now.Add(time.Hour)),
		mk("just-after", now.Add(time.Second)),
		mk("exactly-now", now),
		mk("just-before", now.Add(-time.Second)),
		mk("long-past", now.Add(-24*time.Hour)),
	}

	upcoming, past := Classify(events, now)

	wantUpcoming := map[string]bool{"future": true, "just-after": true}
	wantPast := map[string]bool{"just-before": true, "long-past": true}

	if len(upcoming) != len(wantUpcoming) {
		t.Fatalf("expected %d upcoming, got %d", len(wantUpcoming), len(upcoming))
	}
	for _, ev := range upcoming {
		if !wantUpcoming[ev.ID] {
			t.Fatalf("unexpected upcoming event %s", ev.ID)
		}
	}
	if len(past) != len(wantPast) {
		t.Fatalf("expected %d past, got %d", len(wantPast), len(past))
	}
	for _, ev := range past {
		if !wantPast[ev.ID] {
			t.Fatalf("unexpected past event %s", ev.ID)
		}
	}
}

func TestClassifyKeepsBoundaryEventOut(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	events := []statusync.StatusEvent{{ID: "boundary", End: now, StatusText: "x"}}

	upcoming, past := Classify(events, now)
	if len(upcoming) != 0 || len(past) != 0 {
		t.Fatalf("expected an event ending exactly now in neither bucket, got upcoming=%d past=%d", len(upcoming), len(past))
	}
}

func TestValidateCreate(t *testing.T) {
	linked := statusync.User{ID: "u1", SlackUserID: strPtr("U123")}
	unlinked := statusync.User{ID: "u1"}

	tests := []struct {
		name        string
		draft       statusync.StatusEventDraft
		user        statusync.User
		submittable bool
		reason      string
	}{
		{
			name:        "linked user with text",
			draft:       statusync.StatusEventDraft{StatusText: "In a meeting"},
			user:        linked,
			submittable: true,
		},
		{
			name:        "emoji stays optional",
			draft:       statusync.StatusEventDraft{StatusText: "In a meeting", StatusEmoji: nil},
			user:        linked,
			submittable: true,
		},
		{
			name:   "unlinked user",
			draft:  statusync.StatusEventDraft{StatusText: "In a meeting"},
			user:   unlinked,
			reason: ReasonNotLinked,
		},
		{
			name:   "missing text",
			draft:  statusync.StatusEventDraft{},
			user:   linked,
			reason: ReasonMissingText,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := ValidateCreate(tc.draft, tc.user)
			if v.Submittable != tc.submittable {
				t.Fatalf("expected submittable=%v, got %+v", tc.submittable, v)
			}
			if tc.reason != "" {
				found := false
				for _, r := range v.Reasons {
					if r == tc.reason {
						found = true
					}
				}
				if !found {
					t.Fatalf("expected reason %q, got %v", tc.reason, v.Reasons)
				}
			}
		})
	}
}

func TestValidateUpdateChangePredicate(t *testing.T) {
	original := statusync.StatusEvent{
		ID:          "s1",
		StatusText:  "In a meeting",
		StatusEmoji: &statusync.Emoji{Name: "calendar"},
	}

	tests := []struct {
		name        string
		mutate      func(*statusync.StatusEventDraft)
		submittable bool
	}{
		{
			name:        "identical draft is not submittable",
			mutate:      func(*statusync.StatusEventDraft) {},
			submittable: false,
		},
		{
			name:        "changed text",
			mutate:      func(d *statusync.StatusEventDraft) { d.StatusText = "Heads down" },
			submittable: true,
		},
		{
			name:        "changed emoji name",
			mutate:      func(d *statusync.StatusEventDraft) { d.StatusEmoji = &statusync.Emoji{Name: "coffee"} },
			submittable: true,
		},
		{
			name:        "emoji removed",
			mutate:      func(d *statusync.StatusEventDraft) { d.StatusEmoji = nil },
			submittable: true,
		},
		{
			name:        "cleared text is still a change",
			mutate:      func(d *statusync.StatusEventDraft) { d.StatusText = "" },
			submittable: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			draft := statusync.DraftFromStatusEvent(original)
			tc.mutate(&draft)
			if v := ValidateUpdate(draft, original); v.Submittable != tc.submittable {
				t.Fatalf("expected submittable=%v, got %+v", tc.submittable, v)
			}
		})
	}
}

func TestDraftSeeding(t *testing.T) {
	ev := statusync.CalendarEvent{
		ID:         "e1",
		CalendarID: "cal-1",
		Start:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
		Summary:    "Standup",
	}

	d := statusync.DraftFromCalendarEvent(ev)
	if d.CalendarID != "cal-1" || d.EventID != "e1" {
		t.Fatalf("expected draft seeded with calendar and event ids, got %+v", d)
	}
	if !d.Start.Equal(ev.Start) || !d.End.Equal(ev.End) {
		t.Fatalf("expected draft seeded with the event time window, got %+v", d)
	}
	if d.StatusText != "" || d.StatusEmoji != nil {
		t.Fatalf("expected empty status fields on a fresh draft, got %+v", d)
	}
}
