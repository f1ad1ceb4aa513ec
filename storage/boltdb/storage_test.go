package boltdb

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestRepo(t *testing.T) *repo {
	t.Helper()
	return New(Config{Path: filepath.Join(t.TempDir(), DefaultFile)})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	r := newTestRepo(t)

	tok, err := r.AccessToken()
	if err != nil {
		t.Fatalf("reading empty store: %v", err)
	}
	if tok != "" {
		t.Fatalf("expected empty token from fresh store, got %q", tok)
	}

	if err := r.SetAccessToken("ya29.secret"); err != nil {
		t.Fatalf("saving token: %v", err)
	}
	tok, err = r.AccessToken()
	if err != nil {
		t.Fatalf("reading token: %v", err)
	}
	if tok != "ya29.secret" {
		t.Fatalf("expected stored token back, got %q", tok)
	}

	if err := r.DeleteAccessToken(); err != nil {
		t.Fatalf("deleting token: %v", err)
	}
	tok, err = r.AccessToken()
	if err != nil {
		t.Fatalf("reading deleted token: %v", err)
	}
	if tok != "" {
		t.Fatalf("expected empty token after delete, got %q", tok)
	}
}

func TestLastActiveRoundTrip(t *testing.T) {
	r := newTestRepo(t)

	got, err := r.LastActive()
	if err != nil {
		t.Fatalf("reading empty store: %v", err)
	}
	if !got.IsZero() {
		t.Fatalf("expected zero time from fresh store, got %s", got)
	}

	want := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	if err := r.SetLastActive(want); err != nil {
		t.Fatalf("saving last-active: %v", err)
	}
	got, err = r.LastActive()
	if err != nil {
		t.Fatalf("reading last-active: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestLastActiveSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	want := time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC)

	if err := New(Config{Path: path}).SetLastActive(want); err != nil {
		t.Fatalf("saving last-active: %v", err)
	}

	got, err := New(Config{Path: path}).LastActive()
	if err != nil {
		t.Fatalf("reading last-active: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("expected %s after reopen, got %s", want, got)
	}
}
