// Package gateway is the typed client for the status-syncer HTTP API.
// Every request carries the short-lived identity token and the
// persisted calendar access token; responses are field-mapped from
// their snake_case wire form into the domain model.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"statusync"
)

// AccessTokenHeader carries the long-lived calendar access token next
// to the identity bearer token.
const AccessTokenHeader = "X-Google-Access-Token"

// TokenProvider supplies the two credentials attached to every request.
type TokenProvider interface {
	IdentityToken(ctx context.Context) (string, error)
	AccessToken() (string, error)
}

type logFn func(string, ...interface{})

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

type Config struct {
	// BaseURL is the root of the remote API, from configuration.
	BaseURL string
	// HTTPClient overrides the default transport, mostly for tests.
	HTTPClient *http.Client
	LogFn      logFn
	ErrFn      logFn
}

type Client struct {
	base   *url.URL
	cl     *http.Client
	tokens TokenProvider
	log    logFn
	err    logFn
}

func New(c Config, tokens TokenProvider) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(c.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	g := Client{
		base:   base,
		cl:     c.HTTPClient,
		tokens: tokens,
		log:    func(string, ...interface{}) {},
		err:    func(string, ...interface{}) {},
	}
	if g.cl == nil {
		g.cl = defaultHTTPClient()
	}
	if c.LogFn != nil {
		g.log = c.LogFn
	}
	if c.ErrFn != nil {
		g.err = c.ErrFn
	}
	return &g, nil
}

func defaultHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 20,
			DialContext: (&net.Dialer{
				// This is the TCP connect timeout in this instance.
				Timeout: 2500 * time.Millisecond,
			}).DialContext,
			TLSHandshakeTimeout: 2500 * time.Millisecond,
		},
	}
}

func (g *Client) request(ctx context.Context, method, path string, body, out interface{}) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("unable to encode request body: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.base.String()+path, payload)
	if err != nil {
		return err
	}
	idToken, err := g.tokens.IdentityToken(ctx)
	if err != nil {
		return fmt.Errorf("unable to obtain identity token: %w", err)
	}
	accessToken, err := g.tokens.AccessToken()
	if err != nil {
		return fmt.Errorf("unable to load access token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+idToken)
	req.Header.Set(AccessTokenHeader, accessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	g.log("%s %s", method, path)
	resp, err := g.cl.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		serr := StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		g.err("%s %s: %s", method, path, &serr)
		return &serr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable to decode response: %w", err)
	}
	return nil
}

// wire representations: snake_case at the boundary, optional fields as
// pointers so that absent stays absent.

type wireColor struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
}

func (w *wireColor) model() *statusync.Color {
	if w == nil {
		return nil
	}
	return &statusync.Color{Background: w.Background, Foreground: w.Foreground}
}

type wireUser struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Email       string  `json:"email"`
	SlackUserID *string `json:"slack_user_id"`
}

type wireCalendar struct {
	ID          string     `json:"id"`
	Summary     string     `json:"summary"`
	Description string     `json:"description"`
	Timezone    string     `json:"timezone"`
	Color       *wireColor `json:"color"`
}

type wireCalendarEvent struct {
	ID          string     `json:"id"`
	CalendarID  string     `json:"calendar_id"`
	Summary     string     `json:"summary"`
	Description string     `json:"description"`
	Color       *wireColor `json:"color"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	AllDay      bool       `json:"all_day"`
}

type wireEmoji struct {
	Name      string  `json:"name"`
	ImagePath *string `json:"image_path"`
}

func (w *wireEmoji) model() *statusync.Emoji {
	if w == nil {
		return nil
	}
	return &statusync.Emoji{Name: w.Name, ImagePath: w.ImagePath}
}

func emojiWire(e *statusync.Emoji) *wireEmoji {
	if e == nil {
		return nil
	}
	return &wireEmoji{Name: e.Name, ImagePath: e.ImagePath}
}

type wireStatusEvent struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	CalendarID  string     `json:"calendar_id"`
	EventID     string     `json:"event_id"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	StatusText  string     `json:"status_text"`
	StatusEmoji *wireEmoji `json:"status_emoji,omitempty"`
	Expiration  *float64   `json:"status_expiration,omitempty"`
}

type wireStatusEventRequest struct {
	CalendarID  string     `json:"calendar_id"`
	EventID     string     `json:"event_id"`
	Start       string     `json:"start"`
	End         string     `json:"end"`
	StatusText  string     `json:"status_text"`
	StatusEmoji *wireEmoji `json:"status_emoji,omitempty"`
}

// parseEventTime accepts both full instants and the date-only values
// all-day events carry.
func parseEventTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func (w wireCalendarEvent) model() (statusync.CalendarEvent, error) {
	start, err := parseEventTime(w.Start)
	if err != nil {
		return statusync.CalendarEvent{}, fmt.Errorf("invalid event start %q: %w", w.Start, err)
	}
	end, err := parseEventTime(w.End)
	if err != nil {
		return statusync.CalendarEvent{}, fmt.Errorf("invalid event end %q: %w", w.End, err)
	}
	return statusync.CalendarEvent{
		ID:          w.ID,
		CalendarID:  w.CalendarID,
		Summary:     w.Summary,
		Description: w.Description,
		Color:       w.Color.model(),
		Start:       start,
		End:         end,
		AllDay:      w.AllDay,
	}, nil
}

func (w wireStatusEvent) model() (statusync.StatusEvent, error) {
	start, err := parseEventTime(w.Start)
	if err != nil {
		return statusync.StatusEvent{}, fmt.Errorf("invalid status event start %q: %w", w.Start, err)
	}
	end, err := parseEventTime(w.End)
	if err != nil {
		return statusync.StatusEvent{}, fmt.Errorf("invalid status event end %q: %w", w.End, err)
	}
	return statusync.StatusEvent{
		ID:          w.ID,
		UserID:      w.UserID,
		CalendarID:  w.CalendarID,
		EventID:     w.EventID,
		Start:       start,
		End:         end,
		StatusText:  w.StatusText,
		StatusEmoji: w.StatusEmoji.model(),
		Expiration:  w.Expiration,
	}, nil
}

// CurrentUser fetches the signed-in user's profile.
func (g *Client) CurrentUser(ctx context.Context) (*statusync.User, error) {
	var w wireUser
	if err := g.request(ctx, http.MethodGet, "/users/me", nil, &w); err != nil {
		return nil, fmt.Errorf("unable to fetch user: %w", err)
	}
	return &statusync.User{
		ID:          w.ID,
		DisplayName: w.DisplayName,
		Email:       w.Email,
		SlackUserID: w.SlackUserID,
	}, nil
}

// Calendars fetches the user's calendars, preserving server order.
func (g *Client) Calendars(ctx context.Context) ([]statusync.Calendar, error) {
	var ws []wireCalendar
	if err := g.request(ctx, http.MethodGet, "/calendars", nil, &ws); err != nil {
		return nil, fmt.Errorf("unable to fetch calendars: %w", err)
	}
	calendars := make([]statusync.Calendar, 0, len(ws))
	for _, w := range ws {
		calendars = append(calendars, statusync.Calendar{
			ID:          w.ID,
			Summary:     w.Summary,
			Description: w.Description,
			Timezone:    w.Timezone,
			Color:       w.Color.model(),
		})
	}
	return calendars, nil
}

// CalendarEvents fetches the events of one calendar.
func (g *Client) CalendarEvents(ctx context.Context, calendarID string) ([]statusync.CalendarEvent, error) {
	var ws []wireCalendarEvent
	path := "/calendars/" + url.PathEscape(calendarID) + "/events"
	if err := g.request(ctx, http.MethodGet, path, nil, &ws); err != nil {
		return nil, fmt.Errorf("unable to fetch events for calendar %s: %w", calendarID, err)
	}
	events := make([]statusync.CalendarEvent, 0, len(ws))
	for _, w := range ws {
		ev, err := w.model()
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// WorkspaceEmojis fetches the workspace emoji catalog.
func (g *Client) WorkspaceEmojis(ctx context.Context) ([]statusync.Emoji, error) {
	var ws []wireEmoji
	if err := g.request(ctx, http.MethodGet, "/slack/emojis", nil, &ws); err != nil {
		return nil, fmt.Errorf("unable to fetch emojis: %w", err)
	}
	emojis := make([]statusync.Emoji, 0, len(ws))
	for _, w := range ws {
		emojis = append(emojis, statusync.Emoji{Name: w.Name, ImagePath: w.ImagePath})
	}
	return emojis, nil
}

// StatusEvents fetches all of the user's status events.
func (g *Client) StatusEvents(ctx context.Context) ([]statusync.StatusEvent, error) {
	var ws []wireStatusEvent
	if err := g.request(ctx, http.MethodGet, "/status-events", nil, &ws); err != nil {
		return nil, fmt.Errorf("unable to fetch status events: %w", err)
	}
	events := make([]statusync.StatusEvent, 0, len(ws))
	for _, w := range ws {
		ev, err := w.model()
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

// CreateStatusEvent submits a draft; the server assigns the id.
func (g *Client) CreateStatusEvent(ctx context.Context, draft statusync.StatusEventDraft) (*statusync.StatusEvent, error) {
	body := wireStatusEventRequest{
		CalendarID:  draft.CalendarID,
		EventID:     draft.EventID,
		Start:       draft.Start.Format(time.RFC3339),
		End:         draft.End.Format(time.RFC3339),
		StatusText:  draft.StatusText,
		StatusEmoji: emojiWire(draft.StatusEmoji),
	}
	var w wireStatusEvent
	if err := g.request(ctx, http.MethodPost, "/status-events", body, &w); err != nil {
		return nil, fmt.Errorf("unable to create status event: %w", err)
	}
	ev, err := w.model()
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

// UpdateStatusEvent submits the full entity for an edit.
func (g *Client) UpdateStatusEvent(ctx context.Context, ev statusync.StatusEvent) (*statusync.StatusEvent, error) {
	body := wireStatusEvent{
		ID:          ev.ID,
		UserID:      ev.UserID,
		CalendarID:  ev.CalendarID,
		EventID:     ev.EventID,
		Start:       ev.Start.Format(time.RFC3339),
		End:         ev.End.Format(time.RFC3339),
		StatusText:  ev.StatusText,
		StatusEmoji: emojiWire(ev.StatusEmoji),
		Expiration:  ev.Expiration,
	}
	var w wireStatusEvent
	path := "/status-events/" + url.PathEscape(ev.ID)
	if err := g.request(ctx, http.MethodPatch, path, body, &w); err != nil {
		return nil, fmt.Errorf("unable to update status event %s: %w", ev.ID, err)
	}
	updated, err := w.model()
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStatusEvent removes a status event. Irreversible from the
// client's perspective.
func (g *Client) DeleteStatusEvent(ctx context.Context, id string) error {
	path := "/status-events/" + url.PathEscape(id)
	if err := g.request(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("unable to delete status event %s: %w", id, err)
	}
	return nil
}

// WorkspaceLinkURL asks the server for the redirect URL that starts the
// workspace link flow.
func (g *Client) WorkspaceLinkURL(ctx context.Context) (string, error) {
	var w struct {
		URL string `json:"url"`
	}
	if err := g.request(ctx, http.MethodGet, "/auth/slack", nil, &w); err != nil {
		return "", fmt.Errorf("unable to fetch workspace link URL: %w", err)
	}
	return w.URL, nil
}
