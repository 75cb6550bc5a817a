package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wotw/pointerwin/internal/logging"
	"github.com/wotw/pointerwin/internal/probe"
)

// OutputMode selects how probe results are printed.
type OutputMode string

const (
	OutputAuto OutputMode = "auto" // text on a terminal, JSON otherwise
	OutputText OutputMode = "text"
	OutputJSON OutputMode = "json"
)

// ColorMode controls ANSI colour in text output and console logs.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// LoggingConfig configures the zerolog console logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// BenchConfig configures `pointerwin bench`.
type BenchConfig struct {
	Iterations int `yaml:"iterations"`
	Warmup     int `yaml:"warmup"`
}

// Config is the effective configuration.
type Config struct {
	// Display is the X display to open; empty means $DISPLAY.
	Display  string        `yaml:"display"`
	Stacking string        `yaml:"stacking"`
	Output   OutputMode    `yaml:"output"`
	Color    ColorMode     `yaml:"color"`
	Logging  LoggingConfig `yaml:"logging"`
	Bench    BenchConfig   `yaml:"bench"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Display:  "",
		Stacking: probe.DefaultStacking.String(),
		Output:   OutputAuto,
		Color:    ColorAuto,
		Logging: LoggingConfig{
			Level: "warn",
		},
		Bench: BenchConfig{
			Iterations: 100,
			Warmup:     1,
		},
	}
}

// StackingOrder returns the parsed stacking policy.
func (c *Config) StackingOrder() probe.Stacking {
	s, err := probe.ParseStacking(c.Stacking)
	if err != nil {
		return probe.DefaultStacking
	}
	return s
}

// LoggingOptions converts the logging section for logging.New.
func (c *Config) LoggingOptions() logging.Config {
	return logging.Config{
		Level:   c.Logging.Level,
		File:    c.Logging.File,
		NoColor: c.Color == ColorNever,
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if _, err := probe.ParseStacking(c.Stacking); err != nil {
		errs = append(errs, fmt.Errorf("stacking: %w", err))
	}
	switch c.Output {
	case OutputAuto, OutputText, OutputJSON:
	default:
		errs = append(errs, fmt.Errorf("output: %w: %q (want auto, text or json)", probe.ErrInvalidInput, c.Output))
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, fmt.Errorf("color: %w: %q (want auto, always or never)", probe.ErrInvalidInput, c.Color))
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w: %v", probe.ErrInvalidInput, err))
	}
	if c.Bench.Iterations < 1 {
		errs = append(errs, fmt.Errorf("bench.iterations: %w: must be >= 1, got %d", probe.ErrInvalidInput, c.Bench.Iterations))
	}
	if c.Bench.Warmup < 0 {
		errs = append(errs, fmt.Errorf("bench.warmup: %w: must be >= 0, got %d", probe.ErrInvalidInput, c.Bench.Warmup))
	}

	return errors.Join(errs...)
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config as YAML to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func normalizeEnum[T ~string](v T) T {
	return T(strings.ToLower(strings.TrimSpace(string(v))))
}
