// SPDX-License-Identifier: MIT

// Package config loads the optional YAML configuration of matprod.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/matprod/matrix"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid configuration")

// Defaults.
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "auto"
	DefaultWidth     = 8
	DefaultPrecision = 2
)

// Config is the root of the YAML document.
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Report ReportConfig `yaml:"report"`
	Limits LimitsConfig `yaml:"limits"`
}

// LogConfig controls the slog handler. Values are case-insensitive.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=auto text json"`
}

// ReportConfig controls the fixed-width matrix layout.
type ReportConfig struct {
	Width     int `yaml:"width" validate:"gte=1,lte=32"`
	Precision int `yaml:"precision" validate:"gte=0,lte=15"`
}

// LimitsConfig bounds allocations.
type LimitsConfig struct {
	MaxElements int `yaml:"max_elements" validate:"gte=1"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Report: ReportConfig{
			Width:     DefaultWidth,
			Precision: DefaultPrecision,
		},
		Limits: LimitsConfig{
			MaxElements: matrix.DefaultMaxElements,
		},
	}
}

// Load reads path and overlays it on Default. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
// Unknown keys are rejected. An empty or comment-only document yields the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if len(data) > 0 {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("config: failed to parse yaml: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks struct tags. Log level and format are compared in lower case.
func (c Config) Validate() error {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}
