package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable that points at the config file.
const EnvPath = "PATHOSCOPE_CONFIG"

const (
	DefaultInferenceURL     = "http://localhost:8000"
	DefaultInferenceTimeout = 60 * time.Second
	DefaultWindowWidth      = 1200
	DefaultWindowHeight     = 800
)

type Config struct {
	Inference struct {
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"inference"`

	Reports struct {
		SaveDir string `yaml:"save_dir"`
	} `yaml:"reports"`

	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`

	Window struct {
		Width  float32 `yaml:"width"`
		Height float32 `yaml:"height"`
	} `yaml:"window"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads a YAML config file. A missing file is not an error: defaults apply.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path returns the config file location, honouring PATHOSCOPE_CONFIG.
func Path() string {
	if v := os.Getenv(EnvPath); v != "" {
		return v
	}
	return "config.yaml"
}

func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Inference.BaseURL, "http://") && !strings.HasPrefix(c.Inference.BaseURL, "https://") {
		return fmt.Errorf("inference.base_url must be an http(s) URL, got %q", c.Inference.BaseURL)
	}
	if c.Inference.Timeout < 0 {
		return fmt.Errorf("inference.timeout must not be negative")
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.Inference.BaseURL == "" {
		c.Inference.BaseURL = DefaultInferenceURL
	}
	c.Inference.BaseURL = strings.TrimRight(c.Inference.BaseURL, "/")
	if c.Inference.Timeout == 0 {
		c.Inference.Timeout = DefaultInferenceTimeout
	}
	if c.Reports.SaveDir == "" {
		c.Reports.SaveDir = DefaultSaveDir()
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Window.Width <= 0 {
		c.Window.Width = DefaultWindowWidth
	}
	if c.Window.Height <= 0 {
		c.Window.Height = DefaultWindowHeight
	}
}

// DefaultSaveDir is the user's Desktop when a home directory is known, else empty.
func DefaultSaveDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, "Desktop")
}
