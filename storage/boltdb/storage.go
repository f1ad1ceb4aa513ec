package boltdb

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

type LoggerFn func(string, ...interface{})

type repo struct {
	d    *bolt.DB
	root []byte
	path string
	log  LoggerFn
	err  LoggerFn
}

const (
	rootBucket = "session"

	DefaultFile = "statusync.bdb"
)

var (
	accessTokenKey = []byte("access-token")
	lastActiveKey  = []byte("last-active")
)

// Config
type Config struct {
	Path  string
	LogFn LoggerFn
	ErrFn LoggerFn
}

// New returns a new session store backed by a boltdb file at c.Path.
func New(c Config) *repo {
	b := repo{
		root: []byte(rootBucket),
		path: c.Path,
		log:  func(string, ...interface{}) {},
		err:  func(string, ...interface{}) {},
	}
	if c.ErrFn != nil {
		b.err = c.ErrFn
	}
	if c.LogFn != nil {
		b.log = c.LogFn
	}

	return &b
}

func (r *repo) open() error {
	var err error
	r.d, err = bolt.Open(r.path, 0600, nil)
	if err != nil {
		return fmt.Errorf("could not open db %s: %w", r.path, err)
	}
	err = r.d.Update(func(tx *bolt.Tx) error {
		root, err := tx.CreateBucketIfNotExists(r.root)
		if err != nil {
			return fmt.Errorf("unable to create root bucket %s: %w", r.root, err)
		}
		if !root.Writable() {
			return fmt.Errorf("non writeable root bucket %s", r.root)
		}
		return nil
	})
	return err
}

// close closes the boltdb database if possible.
func (r *repo) close() error {
	if r.d == nil {
		return nil
	}
	return r.d.Close()
}

func (r *repo) get(key []byte) ([]byte, error) {
	if err := r.open(); err != nil {
		return nil, err
	}
	defer r.close()

	var raw []byte
	err := r.d.View(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return fmt.Errorf("invalid bucket %s", r.root)
		}
		if v := root.Get(key); v != nil {
			raw = append(raw, v...)
		}
		return nil
	})
	return raw, err
}

func (r *repo) put(key, value []byte) error {
	if err := r.open(); err != nil {
		return err
	}
	defer r.close()

	return r.d.Update(func(tx *bolt.Tx) error {
		root := tx.Bucket(r.root)
		if root == nil {
			return fmt.Errorf("invalid bucket %s", r.root)
		}
		if !root.Writable() {
			return fmt.Errorf("non writeable bucket %s", r.root)
		}
		if value == nil {
			return root.Delete(key)
		}
		return root.Put(key, value)
	})
}

// AccessToken returns the persisted calendar access token, or the empty
// string when none has been stored.
func (r *repo) AccessToken() (string, error) {
	raw, err := r.get(accessTokenKey)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// SetAccessToken persists the calendar access token.
func (r *repo) SetAccessToken(tok string) error {
	r.log("saving access token to %s", r.path)
	return r.put(accessTokenKey, []byte(tok))
}

// DeleteAccessToken removes the persisted calendar access token.
func (r *repo) DeleteAccessToken() error {
	return r.put(accessTokenKey, nil)
}

// LastActive returns the persisted last-activity timestamp, or the zero
// time when none has been recorded yet.
func (r *repo) LastActive() (time.Time, error) {
	raw, err := r.get(lastActiveKey)
	if err != nil || len(raw) == 0 {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, string(raw))
	if err != nil {
		r.err("invalid last-active value %q: %s", raw, err)
		return time.Time{}, err
	}
	return t, nil
}

// SetLastActive records the last-activity timestamp.
func (r *repo) SetLastActive(t time.Time) error {
	return r.put(lastActiveKey, []byte(t.UTC().Format(time.RFC3339)))
}
