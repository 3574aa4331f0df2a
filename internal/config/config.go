// Package config loads the admin client configuration from an optional YAML
// file and environment variables. Environment variables win.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvConfigFile = "PROCAT_CONFIG"
	EnvAPIURL     = "PROCAT_API_URL"
	EnvAPITimeout = "PROCAT_API_TIMEOUT"
	EnvAPIRPS     = "PROCAT_API_RPS"
	EnvAPIBurst   = "PROCAT_API_BURST"
	EnvAPIToken   = "PROCAT_API_TOKEN"
	EnvUsername   = "PROCAT_USERNAME"
	EnvListenAddr = "PROCAT_LISTEN_ADDR"
	EnvPageSize   = "PROCAT_PAGE_SIZE"
	EnvLogLevel   = "PROCAT_LOG_LEVEL"
)

// APIConfig describes the remote product service.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	RPS     float64       `yaml:"rps"`   // 0 disables client-side throttling
	Burst   int           `yaml:"burst"`
}

// AuthConfig holds the session credentials.
type AuthConfig struct {
	Token    string `yaml:"token"`
	Username string `yaml:"username"`
}

// UIConfig configures the admin web UI.
type UIConfig struct {
	ListenAddr string `yaml:"listen_addr"`
	PageSize   int    `yaml:"page_size"`
}

// LogConfig configures the slog handler.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Config holds application configuration.
type Config struct {
	API  APIConfig  `yaml:"api"`
	Auth AuthConfig `yaml:"auth"`
	UI   UIConfig   `yaml:"ui"`
	Log  LogConfig  `yaml:"log"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: 10 * time.Second,
			RPS:     10,
			Burst:   5,
		},
		UI: UIConfig{
			ListenAddr: ":3000",
			PageSize:   5,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file named by
// PROCAT_CONFIG (if set), then environment variables.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.API.BaseURL, EnvAPIURL)
	setString(&c.Auth.Token, EnvAPIToken)
	setString(&c.Auth.Username, EnvUsername)
	setString(&c.UI.ListenAddr, EnvListenAddr)
	setString(&c.Log.Level, EnvLogLevel)

	if v := os.Getenv(EnvAPITimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAPITimeout, err)
		}
		c.API.Timeout = d
	}
	if v := os.Getenv(EnvAPIRPS); v != "" {
		rps, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvAPIRPS, err)
		}
		c.API.RPS = rps
	}
	if err := setInt(&c.API.Burst, EnvAPIBurst); err != nil {
		return err
	}
	return setInt(&c.UI.PageSize, EnvPageSize)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" {
		errs = append(errs, errors.New("api base url is required"))
	} else if u, err := url.Parse(c.API.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("api base url %q is not an absolute URL", c.API.BaseURL))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, errors.New("api timeout must be positive"))
	}
	if c.API.RPS < 0 {
		errs = append(errs, errors.New("api rps must not be negative"))
	}
	if c.API.RPS > 0 && c.API.Burst <= 0 {
		errs = append(errs, errors.New("api burst must be positive when rps is set"))
	}
	if c.UI.PageSize <= 0 {
		errs = append(errs, errors.New("page size must be positive"))
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	return level, nil
}
