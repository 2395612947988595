package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the client configuration. It is read once at startup and
// treated as immutable.
type Config struct {
	// Endpoint is the base URL of the transfer service API.
	Endpoint string

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// TokenDir overrides the directory holding the persisted token.
	TokenDir string
}

// fileConfig is the on-disk shape. Timeout is a duration string ("30s").
type fileConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  string `yaml:"timeout"`
	TokenDir string `yaml:"tokenDir"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Endpoint: "http://127.0.0.1:8000/api/",
		Timeout:  30 * time.Second,
	}
}

// DefaultPath returns ~/.transferctl/config.yaml, or "" when the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".transferctl", "config.yaml")
}

// Load reads the config file at path, falling back to defaults for a
// missing file or any unset field. TRANSFERCTL_ENDPOINT overrides the
// endpoint from either source.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults apply.
		case err != nil:
			return cfg, fmt.Errorf("failed to read config: %w", err)
		default:
			var raw fileConfig
			if err := yaml.Unmarshal(data, &raw); err != nil {
				return cfg, fmt.Errorf("failed to parse config: %w", err)
			}
			if raw.Endpoint != "" {
				cfg.Endpoint = raw.Endpoint
			}
			if raw.Timeout != "" {
				timeout, err := time.ParseDuration(raw.Timeout)
				if err != nil {
					return cfg, fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
				}
				cfg.Timeout = timeout
			}
			if raw.TokenDir != "" {
				cfg.TokenDir = raw.TokenDir
			}
		}
	}

	if endpoint := os.Getenv("TRANSFERCTL_ENDPOINT"); endpoint != "" {
		cfg.Endpoint = endpoint
	}

	if cfg.Endpoint == "" {
		return cfg, fmt.Errorf("endpoint must not be empty")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = Default().Timeout
	}

	return cfg, nil
}
