package session

import (
	"context"
	"sync"
	"time"

	"statusync/storage"
)

// SessionTimeout is how long a session stays valid without activity.
// Identity tokens expire after an hour, so anything older has to sign
// in again anyway.
const SessionTimeout = 60 * time.Minute

// State is the manager's externally visible session state. Checked
// distinguishes "not yet determined" from "determined false" so callers
// can avoid flashing the wrong screen.
type State struct {
	SignedIn bool
	Checked  bool
}

type logFn func(string, ...interface{})

// Manager owns the session lifecycle: it enforces the inactivity
// timeout, follows the provider's state-change notifications, and is
// the only writer of the session store.
type Manager struct {
	provider Provider
	store    storage.Store

	mu          sync.Mutex
	state       State
	unsubscribe func()

	log logFn
	err logFn
}

func New(p Provider, st storage.Store, infFn, errFn logFn) *Manager {
	m := Manager{
		provider: p,
		store:    st,
		log:      func(string, ...interface{}) {},
		err:      func(string, ...interface{}) {},
	}
	if infFn != nil {
		m.log = infFn
	}
	if errFn != nil {
		m.err = errFn
	}
	return &m
}

// Start checks the persisted session for expiry and subscribes to the
// provider's notifications. Callers must Close the manager to release
// the subscription.
func (m *Manager) Start(ctx context.Context) error {
	if err := m.CheckSession(time.Now()); err != nil {
		return err
	}
	// Subscribe replays the current state into the handler before it
	// returns, and the handler takes the lock.
	unsubscribe := m.provider.Subscribe(func(n Notification) {
		m.handleNotification(ctx, n)
	})
	m.mu.Lock()
	m.unsubscribe = unsubscribe
	m.mu.Unlock()
	return nil
}

// Close removes the provider subscription.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// CheckSession forces a sign-out when the last recorded activity is
// older than SessionTimeout, then records now as the new last activity.
func (m *Manager) CheckSession(now time.Time) error {
	last, err := m.store.LastActive()
	if err != nil {
		return err
	}
	if !last.IsZero() && now.After(last.Add(SessionTimeout)) {
		m.log("session expired at %s, signing out", last.Add(SessionTimeout).Format(time.RFC3339))
		m.forceSignOut(context.Background())
	}
	// The expired session is already signed out above; the stamp
	// recorded here starts the window for whichever session signs in
	// next.
	return m.store.SetLastActive(now)
}

func (m *Manager) handleNotification(ctx context.Context, n Notification) {
	if !n.UserPresent {
		m.forceSignOut(ctx)
		return
	}
	if _, err := m.provider.IdentityToken(ctx); err != nil {
		m.err("identity token has expired, signing out: %s", err)
		m.forceSignOut(ctx)
		return
	}
	m.setState(State{SignedIn: true, Checked: true})
}

// SignIn runs the interactive sign-in flow. It is a no-op when already
// signed in. On failure the session state is left unchanged and the
// error is both logged and returned.
func (m *Manager) SignIn(ctx context.Context) error {
	if m.State().SignedIn {
		return nil
	}
	cred, err := m.provider.SignIn(ctx)
	if err != nil {
		m.err("sign-in failed: %s", err)
		return err
	}
	if err := m.store.SetAccessToken(cred.AccessToken); err != nil {
		m.err("unable to persist access token: %s", err)
		return err
	}
	m.mu.Lock()
	m.state.SignedIn = true
	m.state.Checked = true
	m.mu.Unlock()
	return nil
}

// SignOut always transitions the local state to signed-out, even when
// the provider cannot be reached. The provider session may then outlive
// the local one; the next interactive sign-in re-converges them.
func (m *Manager) SignOut(ctx context.Context) error {
	m.forceSignOut(ctx)
	return nil
}

func (m *Manager) forceSignOut(ctx context.Context) {
	// Best effort; the local state is authoritative for the UI.
	if err := m.provider.SignOut(ctx); err != nil {
		m.err("provider sign-out failed: %s", err)
	}
	if err := m.store.DeleteAccessToken(); err != nil {
		m.err("unable to remove access token: %s", err)
	}
	m.setState(State{SignedIn: false, Checked: true})
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
}

// IdentityToken proxies the provider's short-lived token, refreshed per
// request.
func (m *Manager) IdentityToken(ctx context.Context) (string, error) {
	return m.provider.IdentityToken(ctx)
}

// AccessToken returns the persisted calendar access token.
func (m *Manager) AccessToken() (string, error) {
	return m.store.AccessToken()
}
