package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"statusync"
)

type fakeGateway struct {
	user         *statusync.User
	calendars    []statusync.Calendar
	events       map[string][]statusync.CalendarEvent
	statusEvents []statusync.StatusEvent

	fetchErr error
	// onCalendars runs in the middle of the refresh chain, letting a
	// test start a competing refresh while one is in flight.
	onCalendars func()

	created []statusync.StatusEventDraft
	updated []statusync.StatusEvent
	deleted []string
}

func (g *fakeGateway) CurrentUser(_ context.Context) (*statusync.User, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return g.user, nil
}

func (g *fakeGateway) Calendars(_ context.Context) ([]statusync.Calendar, error) {
	if g.onCalendars != nil {
		g.onCalendars()
	}
	return g.calendars, nil
}

func (g *fakeGateway) CalendarEvents(_ context.Context, id string) ([]statusync.CalendarEvent, error) {
	return g.events[id], nil
}

func (g *fakeGateway) StatusEvents(_ context.Context) ([]statusync.StatusEvent, error) {
	return g.statusEvents, nil
}

func (g *fakeGateway) CreateStatusEvent(_ context.Context, d statusync.StatusEventDraft) (*statusync.StatusEvent, error) {
	g.created = append(g.created, d)
	return &statusync.StatusEvent{
		ID:          "s-created",
		CalendarID:  d.CalendarID,
		EventID:     d.EventID,
		Start:       d.Start,
		End:         d.End,
		StatusText:  d.StatusText,
		StatusEmoji: d.StatusEmoji,
	}, nil
}

func (g *fakeGateway) UpdateStatusEvent(_ context.Context, ev statusync.StatusEvent) (*statusync.StatusEvent, error) {
	g.updated = append(g.updated, ev)
	return &ev, nil
}

func (g *fakeGateway) DeleteStatusEvent(_ context.Context, id string) error {
	g.deleted = append(g.deleted, id)
	return nil
}

func linkedUser() *statusync.User {
	id := "U123"
	return &statusync.User{ID: "u1", DisplayName: "Ada", SlackUserID: &id}
}

func TestRefreshLoadsPage(t *testing.T) {
	now := time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
	gw := &fakeGateway{
		user: linkedUser(),
		calendars: []statusync.Calendar{
			{ID: "cal-1", Summary: "Work"},
			{ID: "cal-2", Summary: "Home"},
		},
		events: map[string][]statusync.CalendarEvent{
			"cal-1": {
				{ID: "e2", CalendarID: "cal-1", Start: now.Add(2 * time.Hour), End: now.Add(3 * time.Hour)},
				{ID: "e1", CalendarID: "cal-1", Start: now.Add(time.Hour), End: now.Add(90 * time.Minute)},
			},
		},
		statusEvents: []statusync.StatusEvent{
			{ID: "s-past", End: now.Add(-time.Hour), StatusText: "x"},
			{ID: "s-next", End: now.Add(time.Hour), StatusText: "y"},
		},
	}
	c := NewController(gw, nil, nil)
	c.now = func() time.Time { return now }

	p, err := c.Refresh(context.Background(), "")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if p.User == nil || p.User.ID != "u1" {
		t.Fatalf("expected user loaded, got %+v", p.User)
	}
	if p.Calendar == nil || p.Calendar.ID != "cal-1" {
		t.Fatalf("expected first calendar selected, got %+v", p.Calendar)
	}
	if len(p.Events) != 2 || p.Events[0].ID != "e1" || p.Events[1].ID != "e2" {
		t.Fatalf("expected events sorted by start, got %+v", p.Events)
	}
	if len(p.Upcoming) != 1 || p.Upcoming[0].ID != "s-next" {
		t.Fatalf("expected one upcoming status event, got %+v", p.Upcoming)
	}
	if len(p.Past) != 1 || p.Past[0].ID != "s-past" {
		t.Fatalf("expected one past status event, got %+v", p.Past)
	}
}

func TestRefreshSelectsRequestedCalendar(t *testing.T) {
	gw := &fakeGateway{
		user: linkedUser(),
		calendars: []statusync.Calendar{
			{ID: "cal-1", Summary: "Work"},
			{ID: "cal-2", Summary: "Home"},
		},
		events: map[string][]statusync.CalendarEvent{
			"cal-2": {{ID: "e9", CalendarID: "cal-2"}},
		},
	}
	c := NewController(gw, nil, nil)

	p, err := c.Refresh(context.Background(), "cal-2")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if p.Calendar == nil || p.Calendar.ID != "cal-2" {
		t.Fatalf("expected requested calendar selected, got %+v", p.Calendar)
	}
	if len(p.Events) != 1 || p.Events[0].ID != "e9" {
		t.Fatalf("expected events of requested calendar, got %+v", p.Events)
	}
}

func TestRefreshDiscardsStaleResults(t *testing.T) {
	gw := &fakeGateway{user: linkedUser()}
	c := NewController(gw, nil, nil)
	gw.onCalendars = func() { c.Invalidate() }

	if _, err := c.Refresh(context.Background(), ""); !errors.Is(err, ErrStale) {
		t.Fatalf("expected ErrStale for a superseded refresh, got %v", err)
	}
}

func TestRefreshSurfacesFetchErrorWithoutRetry(t *testing.T) {
	boom := errors.New("server exploded")
	gw := &fakeGateway{fetchErr: boom}
	c := NewController(gw, nil, nil)

	if _, err := c.Refresh(context.Background(), ""); !errors.Is(err, boom) {
		t.Fatalf("expected the fetch error surfaced, got %v", err)
	}
}

func TestCreateRejectsUnlinkedUser(t *testing.T) {
	gw := &fakeGateway{}
	c := NewController(gw, nil, nil)

	draft := statusync.StatusEventDraft{CalendarID: "cal-1", EventID: "e1", StatusText: "In a meeting"}
	if _, err := c.Create(context.Background(), draft, statusync.User{ID: "u1"}); err == nil {
		t.Fatal("expected validation error for unlinked user")
	}
	if len(gw.created) != 0 {
		t.Fatalf("expected no gateway call for invalid draft, got %d", len(gw.created))
	}
}

func TestCreateSubmitsValidDraft(t *testing.T) {
	gw := &fakeGateway{}
	c := NewController(gw, nil, nil)

	draft := statusync.StatusEventDraft{
		CalendarID: "cal-1",
		EventID:    "e1",
		Start:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
		StatusText: "In a meeting",
	}
	created, err := c.Create(context.Background(), draft, *linkedUser())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != "s-created" {
		t.Fatalf("expected server-assigned id, got %q", created.ID)
	}
	if len(gw.created) != 1 {
		t.Fatalf("expected one gateway call, got %d", len(gw.created))
	}
}

func TestUpdateRejectsNoopEdit(t *testing.T) {
	gw := &fakeGateway{}
	c := NewController(gw, nil, nil)

	original := statusync.StatusEvent{ID: "s1", StatusText: "In a meeting"}
	draft := statusync.DraftFromStatusEvent(original)
	if _, err := c.Update(context.Background(), draft, original); err == nil {
		t.Fatal("expected validation error for no-op edit")
	}
	if len(gw.updated) != 0 {
		t.Fatalf("expected no gateway call for no-op edit, got %d", len(gw.updated))
	}
}

func TestUpdateChangesOnlyTextAndEmoji(t *testing.T) {
	gw := &fakeGateway{}
	c := NewController(gw, nil, nil)

	original := statusync.StatusEvent{
		ID:         "s1",
		UserID:     "u1",
		CalendarID: "cal-1",
		EventID:    "e1",
		Start:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		End:        time.Date(2024, 1, 1, 9, 15, 0, 0, time.UTC),
		StatusText: "In a meeting",
	}
	draft := statusync.DraftFromStatusEvent(original)
	draft.StatusText = "Heads down"
	draft.StatusEmoji = &statusync.Emoji{Name: "coffee"}

	updated, err := c.Update(context.Background(), draft, original)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.StatusText != "Heads down" || updated.EmojiName() != "coffee" {
		t.Fatalf("expected text and emoji updated, got %+v", updated)
	}
	if updated.ID != "s1" || updated.CalendarID != "cal-1" || !updated.Start.Equal(original.Start) {
		t.Fatalf("expected identity and window preserved, got %+v", updated)
	}
}

func TestDelete(t *testing.T) {
	gw := &fakeGateway{}
	c := NewController(gw, nil, nil)

	if err := c.Delete(context.Background(), "s1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(gw.deleted) != 1 || gw.deleted[0] != "s1" {
		t.Fatalf("expected delete forwarded to gateway, got %v", gw.deleted)
	}
}
