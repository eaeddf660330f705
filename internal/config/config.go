package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// AppName is used for the default config directory
	AppName = "mcpcall"

	// DefaultURL is the endpoint used when nothing else is configured
	DefaultURL = "http://127.0.0.1:8080/"

	// DefaultTimeout is the per-request timeout for normal calls
	DefaultTimeout = 10 * time.Second
)

// Environment variables that override values from the config file.
// Explicit flags take precedence over both.
const (
	EnvURL   = "MCP_URL"
	EnvToken = "MCP_TOKEN"
)

// Config holds connection defaults for the client
type Config struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"`
}

var _ yaml.Unmarshaler = &Config{}

// UnmarshalYAML implements yaml.Unmarshaler so that timeouts can be
// written as Go duration strings ("10s", "1m30s").
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		URL     string `yaml:"url"`
		Token   string `yaml:"token"`
		Timeout string `yaml:"timeout"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.URL = raw.URL
	c.Token = raw.Token
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", raw.Timeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		URL:     DefaultURL,
		Timeout: DefaultTimeout,
	}
}

// LoadFile loads configuration from a YAML file, layering environment
// variables on top. A missing file is not an error; the defaults and
// environment still apply. An empty path falls back to the standard
// location under the user config directory.
func LoadFile(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		dir, err := os.UserConfigDir()
		if err == nil {
			path = filepath.Join(dir, AppName, "config.yaml")
		}
	}

	cfg := Default()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			cfg, err = Load(f)
			if err != nil {
				return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
			}
		case os.IsNotExist(err) && !explicit:
			// no config file is fine
		default:
			return nil, fmt.Errorf("error opening config file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// Load loads configuration from an io.Reader. Environment variables
// referenced inside the file (e.g. token: ${MCP_CI_TOKEN}) are expanded
// before parsing.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading config data: %w", err)
	}

	cfg := Default()
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if url := os.Getenv(EnvURL); url != "" {
		c.URL = url
	}
	if token := os.Getenv(EnvToken); token != "" {
		c.Token = token
	}
}
