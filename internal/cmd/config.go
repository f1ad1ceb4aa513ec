package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds everything read from the statusync.toml file: where the
// status-syncer API lives and the OAuth client used for Google sign-in.
type Config struct {
	ServerURL    string `toml:"server_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
}

const configFile = "statusync.toml"

func configSearchPaths(explicit string) []string {
	if explicit != "" {
		return []string{explicit}
	}
	paths := []string{configFile}
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, AppName, configFile))
	}
	return paths
}

// ReadConfig loads the configuration, trying the current dir first and
// then the user config dir, unless an explicit path was given.
func ReadConfig(explicit string) (*Config, error) {
	var lastErr error
	for _, p := range configSearchPaths(explicit) {
		data, err := os.ReadFile(p)
		if err != nil {
			lastErr = err
			continue
		}
		var config Config
		if err := toml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", p, err)
		}
		return &config, nil
	}
	return nil, lastErr
}
