package shared

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Spotify SpotifyConfig `toml:"spotify"`
	API     APIConfig     `toml:"api"`
	Storage StorageConfig `toml:"storage"`
	Poll    PollConfig    `toml:"poll"`
}

// SpotifyConfig contains the identity-provider settings for the
// implicit-grant redirect flow.
type SpotifyConfig struct {
	ClientID    string   `toml:"client_id"`
	AuthURL     string   `toml:"auth_url"`
	RedirectURI string   `toml:"redirect_uri"`
	Scopes      []string `toml:"scopes"`
}

// APIConfig contains settings for the backend proxy client.
type APIConfig struct {
	BaseURL   string  `toml:"base_url"`
	RateLimit float64 `toml:"rate_limit"`
}

// StorageConfig contains the credential store location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// PollConfig contains refresh intervals for polled resources.
type PollConfig struct {
	PlayerIntervalSeconds int `toml:"player_interval_seconds"`
}

// PlayerInterval returns the player poll interval as a [time.Duration],
// falling back to 5s when unset.
func (p PollConfig) PlayerInterval() time.Duration {
	if p.PlayerIntervalSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(p.PlayerIntervalSeconds) * time.Second
}

// StoragePath returns the credential store path with a leading "~" expanded
// to the user's home directory.
func (c *Config) StoragePath() string {
	path := c.Storage.Path
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
