package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"git.sr.ht/~mariusor/lw"
	"github.com/urfave/cli"

	"statusync/internal/gateway"
	"statusync/internal/session"
	"statusync/internal/status"
	"statusync/storage/boltdb"
)

const (
	AppName    = "statusync"
	AppVersion = "(unknown)"
)

var logger = lw.Dev()

var info = logger.Infof
var errFn = logger.Errorf

func MkDirIfNotExists(p string) error {
	fi, err := os.Stat(p)
	if err != nil && os.IsNotExist(err) {
		err = os.MkdirAll(p, os.ModeDir|os.ModePerm|0700)
	}
	if err != nil {
		return err
	}
	fi, err = os.Stat(p)
	if err != nil {
		return err
	} else if !fi.IsDir() {
		return fmt.Errorf("path exists, and is not a folder %s", p)
	}
	return nil
}

func DataPath() string {
	homeDir, _ := os.UserHomeDir()
	xdgDataPath := filepath.Join(homeDir, ".local", "share")
	appPath := filepath.Join(xdgDataPath, AppName)

	if _, err := os.Stat(appPath); err != nil && errors.Is(err, os.ErrNotExist) {
		err := MkDirIfNotExists(appPath)
		if err != nil {
			log.Fatalf("Error: %s", err.Error())
		}
	}
	return appPath
}

// runtime bundles the long-lived pieces every command needs: the
// session manager, the gateway client and the lifecycle controller,
// all built once from configuration.
type runtime struct {
	config     *Config
	provider   *session.GoogleProvider
	manager    *session.Manager
	gateway    *gateway.Client
	controller *status.Controller
}

func newRuntime(c *cli.Context) (*runtime, error) {
	conf, err := ReadConfig(c.GlobalString("config"))
	if err != nil {
		if c.GlobalString("url") == "" {
			return nil, fmt.Errorf("unable to read configuration: %w", err)
		}
		conf = &Config{}
	}
	if u := c.GlobalString("url"); u != "" {
		conf.ServerURL = u
	}
	if conf.ServerURL == "" {
		return nil, fmt.Errorf("no server URL configured")
	}

	verbose := func(s string, args ...interface{}) {}
	if c.GlobalBool("debug") {
		verbose = info
	}

	st := boltdb.New(boltdb.Config{
		Path:  filepath.Join(c.GlobalString("path"), boltdb.DefaultFile),
		LogFn: boltdb.LoggerFn(verbose),
		ErrFn: boltdb.LoggerFn(errFn),
	})

	provider := session.NewGoogleProvider(session.GoogleConfig{
		ClientID:     conf.ClientID,
		ClientSecret: conf.ClientSecret,
		LogFn:        verbose,
	}, promptAccessCode("Paste authorization code: "))

	manager := session.New(provider, st, verbose, errFn)

	// A previous run's credential restores the provider session, so
	// commands keep working without a fresh interactive sign-in.
	if tok, err := st.AccessToken(); err == nil && tok != "" {
		provider.Restore(session.Credential{AccessToken: tok})
	}

	gw, err := gateway.New(gateway.Config{
		BaseURL: conf.ServerURL,
		LogFn:   verbose,
		ErrFn:   errFn,
	}, manager)
	if err != nil {
		return nil, err
	}

	return &runtime{
		config:     conf,
		provider:   provider,
		manager:    manager,
		gateway:    gw,
		controller: status.NewController(gw, verbose, errFn),
	}, nil
}

// start runs the session check and provider subscription; commands that
// talk to the API call this first.
func (r *runtime) start(ctx context.Context) error {
	if err := r.manager.Start(ctx); err != nil {
		return err
	}
	if !r.manager.State().SignedIn {
		return fmt.Errorf("not signed in, run %s auth first", AppName)
	}
	return nil
}

func (r *runtime) stop() {
	r.manager.Close()
}
