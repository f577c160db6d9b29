// ABOUTME: Configuration loading for the nesie-admin CLI
// ABOUTME: Loads TOML config from XDG path with environment variable expansion

package main

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Backend BackendConfig `toml:"backend"`
}

type BackendConfig struct {
	APIURL   string `toml:"api_url"`
	ModelURL string `toml:"model_url"`
	Timeout  string `toml:"timeout"`
}

// configPath returns the CLI config path.
// Priority: NESIE_ADMIN_CONFIG env var > XDG_CONFIG_HOME/nesie/admin.toml > ~/.config/nesie/admin.toml
func configPath() string {
	if envPath := os.Getenv("NESIE_ADMIN_CONFIG"); envPath != "" {
		return envPath
	}
	return filepath.Join(configDir(), "nesie", "admin.toml")
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".config")
}

// loadConfig reads the TOML config when present. A missing file is fine:
// everything has an env var or default.
func loadConfig() (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(configPath())
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := expandEnvVars(string(data))
	if _, err := toml.Decode(expanded, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// expandEnvVars replaces ${VAR} with environment variable values.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := strings.TrimSuffix(strings.TrimPrefix(match, "${"), "}")
		return os.Getenv(varName)
	})
}

// Validate checks that configured values are usable.
func (c *Config) Validate() error {
	if c.Backend.APIURL != "" {
		if _, err := url.Parse(c.Backend.APIURL); err != nil {
			return fmt.Errorf("backend.api_url is not a valid URL: %w", err)
		}
	}
	if c.Backend.Timeout != "" {
		if _, err := time.ParseDuration(c.Backend.Timeout); err != nil {
			return fmt.Errorf("backend.timeout is not a valid duration: %w", err)
		}
	}
	return nil
}

// apiURL resolves the backend URL.
// Priority: NESIE_API_URL env var > config file > localhost default.
func (c *Config) apiURL() string {
	if u := os.Getenv("NESIE_API_URL"); u != "" {
		return u
	}
	if c.Backend.APIURL != "" {
		return c.Backend.APIURL
	}
	return "http://localhost:8080"
}

func (c *Config) modelURL() string {
	if u := os.Getenv("NESIE_MODEL_URL"); u != "" {
		return u
	}
	return c.Backend.ModelURL
}

func (c *Config) timeout() time.Duration {
	if c.Backend.Timeout != "" {
		if d, err := time.ParseDuration(c.Backend.Timeout); err == nil {
			return d
		}
	}
	return 15 * time.Second
}
