package session

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// CalendarScope grants read access to the user's Google calendars.
const CalendarScope = "https://www.googleapis.com/auth/calendar.readonly"

const revokeURL = "https://oauth2.googleapis.com/revoke"

// CodePromptFn obtains the authorization code the user pastes after
// approving access in the browser.
type CodePromptFn func() (string, error)

// GoogleProvider implements Provider on top of Google's OAuth endpoint.
// Sign-in is the out-of-band flow: print the consent URL, let the user
// paste the resulting code, exchange it for tokens.
type GoogleProvider struct {
	conf   *oauth2.Config
	cl     *http.Client
	prompt CodePromptFn

	mu          sync.Mutex
	tok         *oauth2.Token
	subscribers map[int]func(Notification)
	nextSub     int

	log logFn
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	// HTTPClient overrides the client used for the token exchange and
	// revocation calls.
	HTTPClient *http.Client
	LogFn      func(string, ...interface{})
}

func NewGoogleProvider(c GoogleConfig, prompt CodePromptFn) *GoogleProvider {
	p := GoogleProvider{
		conf: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
			Scopes:       []string{"openid", "email", "profile", CalendarScope},
		},
		cl:          c.HTTPClient,
		prompt:      prompt,
		subscribers: make(map[int]func(Notification)),
		log:         func(string, ...interface{}) {},
	}
	if p.cl == nil {
		p.cl = http.DefaultClient
	}
	if c.LogFn != nil {
		p.log = c.LogFn
	}
	return &p
}

func (p *GoogleProvider) exchangeContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, p.cl)
}

// SignIn prints the consent URL, waits for the pasted authorization
// code and exchanges it. The returned credential carries the calendar
// access token; the id token stays inside the provider.
func (p *GoogleProvider) SignIn(ctx context.Context) (Credential, error) {
	authURL := p.conf.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	p.log("Go to the following link in your browser, then paste the authorization code:\n%s", authURL)

	code, err := p.prompt()
	if err != nil {
		return Credential{}, fmt.Errorf("unable to read authorization code: %w", err)
	}
	if code == "" {
		return Credential{}, fmt.Errorf("empty authorization code")
	}

	tok, err := p.conf.Exchange(p.exchangeContext(ctx), code)
	if err != nil {
		return Credential{}, fmt.Errorf("unable to retrieve token: %w", err)
	}

	p.mu.Lock()
	p.tok = tok
	p.mu.Unlock()
	p.notify(Notification{UserPresent: true})

	return Credential{AccessToken: tok.AccessToken}, nil
}

// Restore rehydrates the provider session from a previously persisted
// credential, as if the user were still signed in from an earlier run.
func (p *GoogleProvider) Restore(cred Credential) {
	if cred.AccessToken == "" {
		return
	}
	p.mu.Lock()
	p.tok = &oauth2.Token{AccessToken: cred.AccessToken}
	p.mu.Unlock()
	p.notify(Notification{UserPresent: true})
}

// SignOut revokes the current token with Google and clears it locally.
// Already signed-out providers stay silent, so a forced sign-out does
// not notify itself into a loop.
func (p *GoogleProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	tok := p.tok
	p.tok = nil
	p.mu.Unlock()

	if tok == nil {
		return nil
	}
	defer p.notify(Notification{UserPresent: false})
	body := strings.NewReader(url.Values{"token": []string{tok.AccessToken}}.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, revokeURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := p.cl.Do(req)
	if err != nil {
		return fmt.Errorf("unable to revoke token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token revocation returned %s", resp.Status)
	}
	return nil
}

// IdentityToken refreshes the stored token if needed and returns the
// id token from the last token response.
func (p *GoogleProvider) IdentityToken(ctx context.Context) (string, error) {
	p.mu.Lock()
	tok := p.tok
	p.mu.Unlock()

	if tok == nil {
		return "", fmt.Errorf("not signed in")
	}

	fresh, err := p.conf.TokenSource(p.exchangeContext(ctx), tok).Token()
	if err != nil {
		return "", fmt.Errorf("unable to refresh token: %w", err)
	}
	if fresh.AccessToken != tok.AccessToken {
		p.mu.Lock()
		p.tok = fresh
		p.mu.Unlock()
		p.notify(Notification{UserPresent: true})
	}

	idt, ok := fresh.Extra("id_token").(string)
	if !ok || idt == "" {
		// Restored sessions carry no id token; the access token still
		// proves the account to the API.
		return fresh.AccessToken, nil
	}
	return idt, nil
}

// Subscribe registers fn for state-change notifications and replays
// the current state to it right away; the returned function removes
// the registration.
func (p *GoogleProvider) Subscribe(fn func(Notification)) func() {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subscribers[id] = fn
	present := p.tok != nil
	p.mu.Unlock()

	fn(Notification{UserPresent: present})

	return func() {
		p.mu.Lock()
		delete(p.subscribers, id)
		p.mu.Unlock()
	}
}

func (p *GoogleProvider) notify(n Notification) {
	p.mu.Lock()
	fns := make([]func(Notification), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		fns = append(fns, fn)
	}
	p.mu.Unlock()

	for _, fn := range fns {
		fn(n)
	}
}
