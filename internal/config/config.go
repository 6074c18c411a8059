// Package config loads runtime settings for the server and CLI.
//
// Settings are layered: built-in defaults, then a .env file in the working
// directory, then the YAML file named by INSCRIBED_CONFIG, then individual
// INSCRIBED_* environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/inscribed-rect-mcp/internal/imaging"
	"github.com/ironsheep/inscribed-rect-mcp/internal/region"
	"github.com/ironsheep/inscribed-rect-mcp/internal/segment"
)

// ErrInvalid is wrapped by Validate errors.
var ErrInvalid = errors.New("invalid configuration")

// EnvConfigFile names the YAML file to load.
const EnvConfigFile = "INSCRIBED_CONFIG"

// Config holds search, segmentation and rendering defaults. MCP tool
// arguments and CLI flags override them per request.
type Config struct {
	// Step is the sampling grid spacing. Smaller is more accurate and
	// much slower.
	Step int `yaml:"step"`

	// Workers is the number of anchor columns searched in parallel.
	Workers int `yaml:"workers"`

	// MaxChecks caps containment tests per search; 0 means unlimited.
	MaxChecks int64 `yaml:"max_checks"`

	// Timeout caps wall-clock time per search; 0 means unlimited.
	Timeout time.Duration `yaml:"timeout"`

	Segment segment.Options `yaml:"segment"`
	Overlay Overlay         `yaml:"overlay"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Overlay holds rendering defaults.
type Overlay struct {
	LineColor string `yaml:"line_color"`
	LineWidth int    `yaml:"line_width"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Step:    region.DefaultStep,
		Workers: 1,
		Segment: segment.DefaultOptions(),
		Overlay: Overlay{
			LineColor: imaging.DefaultLineColor,
			LineWidth: imaging.DefaultLineWidth,
		},
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, .env, the optional YAML file
// and the process environment.
func Load() (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg := Default()
	if path := os.Getenv(EnvConfigFile); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile merges the YAML file at path into c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// WriteFile stores c as YAML.
func (c *Config) WriteFile(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// YAML returns c encoded as YAML.
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return data, nil
}

// ApplyEnv overrides fields from INSCRIBED_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"INSCRIBED_STEP", &c.Step},
		{"INSCRIBED_WORKERS", &c.Workers},
		{"INSCRIBED_LINE_WIDTH", &c.Overlay.LineWidth},
	}
	for _, e := range ints {
		if v, ok := lookup(e.key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, e.key, v, err)
			}
			*e.dst = n
		}
	}

	if v, ok := lookup("INSCRIBED_MAX_CHECKS"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("%w: INSCRIBED_MAX_CHECKS=%q: %v", ErrInvalid, v, err)
		}
		c.MaxChecks = n
	}
	if v, ok := lookup("INSCRIBED_TIMEOUT"); ok {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: INSCRIBED_TIMEOUT=%q: %v", ErrInvalid, v, err)
		}
		c.Timeout = d
	}
	if v, ok := lookup("INSCRIBED_THRESHOLD"); ok {
		n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 8)
		if err != nil {
			return fmt.Errorf("%w: INSCRIBED_THRESHOLD=%q: %v", ErrInvalid, v, err)
		}
		c.Segment.Threshold = uint8(n)
	}
	if v, ok := lookup("INSCRIBED_TOLERANCE"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: INSCRIBED_TOLERANCE=%q: %v", ErrInvalid, v, err)
		}
		c.Segment.Tolerance = f
	}
	if v, ok := lookup("INSCRIBED_BLUR"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%w: INSCRIBED_BLUR=%q: %v", ErrInvalid, v, err)
		}
		c.Segment.BlurRadius = f
	}
	if v, ok := lookup("INSCRIBED_MODE"); ok {
		c.Segment.Mode = segment.Mode(v)
	}
	if v, ok := lookup("INSCRIBED_KEY_COLOR"); ok {
		c.Segment.KeyColor = v
	}
	if v, ok := lookup("INSCRIBED_LINE_COLOR"); ok {
		c.Overlay.LineColor = v
	}
	if v, ok := lookup("INSCRIBED_LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	return nil
}

// Validate rejects unusable values and normalizes the rest.
func (c *Config) Validate() error {
	if c.Step <= 0 {
		return fmt.Errorf("%w: step must be positive, got %d", ErrInvalid, c.Step)
	}
	if c.MaxChecks < 0 {
		return fmt.Errorf("%w: max_checks must not be negative", ErrInvalid)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: timeout must not be negative", ErrInvalid)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.Overlay.LineWidth <= 0 {
		c.Overlay.LineWidth = imaging.DefaultLineWidth
	}

	mode, err := segment.ParseMode(string(c.Segment.Mode))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	c.Segment.Mode = mode
	if mode == segment.ModeColor && c.Segment.KeyColor == "" {
		return fmt.Errorf("%w: color mode needs key_color", ErrInvalid)
	}
	if c.Segment.Tolerance < 0 || c.Segment.BlurRadius < 0 {
		return fmt.Errorf("%w: tolerance and blur_radius must not be negative", ErrInvalid)
	}

	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SearchOptions returns the region search options described by c.
func (c *Config) SearchOptions() region.Options {
	return region.Options{
		Step:      c.Step,
		Workers:   c.Workers,
		MaxChecks: c.MaxChecks,
	}
}

// ParseLevel maps a level name to a slog.Level. An empty name is info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: unknown log level %q", ErrInvalid, s)
	}
}
