package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the FoodLink client.
//
// Fields:
//   - ServerBaseURL: base address of the backend REST API.
//   - StoragePath: SQLite file that keeps the persisted session tokens.
//   - RequestTimeout: upper bound for a single CLI command.
//   - LogLevel / LogFormat: slog level and handler (text or json).
type Config struct {
	ServerBaseURL  string
	StoragePath    string
	RequestTimeout time.Duration
	LogLevel       string
	LogFormat      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000/"
	c.StoragePath = "foodlink.db"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags. Later sources take precedence.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
