// Package config loads the slidegen command configuration from an optional
// YAML file overlaid by environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/mhpenta/slidegen"
)

// Config is the command configuration. Zero values mean "use the default".
type Config struct {
	// APIKey is only read from the environment.
	APIKey string `yaml:"-" env:"GEMINI_API_KEY,required,notEmpty"`

	Model       string        `yaml:"model" env:"SLIDEGEN_MODEL"`
	Timeout     time.Duration `yaml:"timeout" env:"SLIDEGEN_TIMEOUT"`
	ScrollDelay time.Duration `yaml:"scroll_delay" env:"SLIDEGEN_SCROLL_DELAY"`

	WaitOnRateLimit  bool          `yaml:"wait_on_rate_limit" env:"SLIDEGEN_WAIT_ON_RATE_LIMIT"`
	MaxRateLimitWait time.Duration `yaml:"max_rate_limit_wait" env:"SLIDEGEN_MAX_RATE_LIMIT_WAIT"`

	// OutputDir receives slide illustrations when set.
	OutputDir string `yaml:"output_dir" env:"SLIDEGEN_OUTPUT_DIR"`
	// HTMLPath receives the HTML deck when set.
	HTMLPath string `yaml:"html_path" env:"SLIDEGEN_HTML_PATH"`

	MetricsAddr string `yaml:"metrics_addr" env:"SLIDEGEN_METRICS_ADDR"`
	LogLevel    string `yaml:"log_level" env:"SLIDEGEN_LOG_LEVEL"`
	// Style is the glamour style for terminal output.
	Style string `yaml:"style" env:"SLIDEGEN_STYLE"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Model:       slidegen.ModelFlashImagePreview.String(),
		Timeout:     slidegen.DefaultTimeout,
		ScrollDelay: slidegen.DefaultScrollDelay,
		LogLevel:    "info",
		Style:       "notty",
	}
}

// Load reads path (if not empty) over the defaults, then applies environment
// variables. A variable that is set always wins over the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := decodeYAML(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return errors.New("GEMINI_API_KEY is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.ScrollDelay < 0 {
		return fmt.Errorf("scroll delay must not be negative, got %v", c.ScrollDelay)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}
