package storage

import "time"

// Store is the durable local session state: the long-lived calendar
// access token and the last-activity timestamp. Nothing else survives a
// restart; domain data is always re-fetched from the server.
type Store interface {
	AccessToken() (string, error)
	SetAccessToken(tok string) error
	DeleteAccessToken() error

	LastActive() (time.Time, error)
	SetLastActive(t time.Time) error
}
