package status

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"statusync"
)

// ErrStale is returned by Refresh when another refresh started while
// this one was still in flight; its results must be discarded.
var ErrStale = errors.New("page load superseded")

// Gateway is the slice of the remote API the controller needs.
type Gateway interface {
	CurrentUser(ctx context.Context) (*statusync.User, error)
	Calendars(ctx context.Context) ([]statusync.Calendar, error)
	CalendarEvents(ctx context.Context, calendarID string) ([]statusync.CalendarEvent, error)
	StatusEvents(ctx context.Context) ([]statusync.StatusEvent, error)
	CreateStatusEvent(ctx context.Context, draft statusync.StatusEventDraft) (*statusync.StatusEvent, error)
	UpdateStatusEvent(ctx context.Context, ev statusync.StatusEvent) (*statusync.StatusEvent, error)
	DeleteStatusEvent(ctx context.Context, id string) error
}

// Page is everything a fresh page load needs: the profile, the
// calendar list, the events of the selected calendar and the status
// events grouped for display.
type Page struct {
	User         *statusync.User
	Calendars    []statusync.Calendar
	Calendar     *statusync.Calendar
	Events       []statusync.CalendarEvent
	Upcoming     []statusync.StatusEvent
	Past         []statusync.StatusEvent
	StatusEvents []statusync.StatusEvent
}

type logFn func(string, ...interface{})

// Controller drives the status-event lifecycle against the gateway.
// Refreshes are tagged with a generation counter so a response
// arriving after a newer refresh started is thrown away instead of
// being applied.
type Controller struct {
	gw  Gateway
	now func() time.Time
	gen atomic.Uint64

	log logFn
	err logFn
}

func NewController(gw Gateway, infFn, errFn logFn) *Controller {
	c := Controller{
		gw:  gw,
		now: time.Now,
		log: func(string, ...interface{}) {},
		err: func(string, ...interface{}) {},
	}
	if infFn != nil {
		c.log = infFn
	}
	if errFn != nil {
		c.err = errFn
	}
	return &c
}

func (c *Controller) stale(gen uint64) bool {
	return c.gen.Load() != gen
}

// Invalidate discards any refresh still in flight.
func (c *Controller) Invalidate() {
	c.gen.Add(1)
}

// Refresh runs the page-load chain: user, calendars, events of the
// selected calendar (the first one when none is given), status events.
// The fetches stay sequential so dependent requests never race each
// other.
func (c *Controller) Refresh(ctx context.Context, calendarID string) (*Page, error) {
	gen := c.gen.Add(1)
	p := Page{}

	user, err := c.gw.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if c.stale(gen) {
		return nil, ErrStale
	}
	p.User = user

	calendars, err := c.gw.Calendars(ctx)
	if err != nil {
		return nil, err
	}
	if c.stale(gen) {
		return nil, ErrStale
	}
	p.Calendars = calendars

	if calendarID == "" && len(calendars) > 0 {
		calendarID = calendars[0].ID
	}
	for i, cal := range calendars {
		if cal.ID == calendarID {
			p.Calendar = &p.Calendars[i]
		}
	}
	if calendarID != "" {
		events, err := c.EventsForCalendar(ctx, calendarID)
		if err != nil {
			return nil, err
		}
		if c.stale(gen) {
			return nil, ErrStale
		}
		p.Events = events
	}

	statusEvents, err := c.gw.StatusEvents(ctx)
	if err != nil {
		return nil, err
	}
	if c.stale(gen) {
		return nil, ErrStale
	}
	p.StatusEvents = statusEvents
	p.Upcoming, p.Past = Classify(statusEvents, c.now())

	c.log("loaded %d calendars, %d events, %d status events", len(p.Calendars), len(p.Events), len(p.StatusEvents))
	return &p, nil
}

// EventsForCalendar fetches one calendar's events sorted by start time.
func (c *Controller) EventsForCalendar(ctx context.Context, calendarID string) ([]statusync.CalendarEvent, error) {
	events, err := c.gw.CalendarEvents(ctx, calendarID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start.Before(events[j].Start)
	})
	return events, nil
}

// Create validates and submits a creation draft. The draft is not
// retained; callers re-fetch to see the server's copy.
func (c *Controller) Create(ctx context.Context, draft statusync.StatusEventDraft, user statusync.User) (*statusync.StatusEvent, error) {
	if v := ValidateCreate(draft, user); !v.Submittable {
		return nil, fmt.Errorf("status event not submittable: %s", reasonList(v))
	}
	created, err := c.gw.CreateStatusEvent(ctx, draft)
	if err != nil {
		return nil, err
	}
	c.log("created status event %s for event %s", created.ID, created.EventID)
	return created, nil
}

// Update validates an edit draft against the original and submits the
// full updated entity. Only the status text and emoji may change.
func (c *Controller) Update(ctx context.Context, draft statusync.StatusEventDraft, original statusync.StatusEvent) (*statusync.StatusEvent, error) {
	if v := ValidateUpdate(draft, original); !v.Submittable {
		return nil, fmt.Errorf("status event not submittable: %s", reasonList(v))
	}
	ev := original
	ev.StatusText = draft.StatusText
	ev.StatusEmoji = draft.StatusEmoji
	updated, err := c.gw.UpdateStatusEvent(ctx, ev)
	if err != nil {
		return nil, err
	}
	c.log("updated status event %s", updated.ID)
	return updated, nil
}

// Delete removes a status event.
func (c *Controller) Delete(ctx context.Context, id string) error {
	if err := c.gw.DeleteStatusEvent(ctx, id); err != nil {
		return err
	}
	c.log("deleted status event %s", id)
	return nil
}

func reasonList(v Verdict) string {
	return strings.Join(v.Reasons, ", ")
}
