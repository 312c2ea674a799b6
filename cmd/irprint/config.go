package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Config holds the settings of the command. It is read from a toml file,
// command line flags override the file values.
type Config struct {
	Indent   int    `toml:"indent"`
	Color    string `toml:"color"`
	Style    string `toml:"style"`
	LogLevel string `toml:"log_level"`
	Raw      bool   `toml:"raw"`
}

// DefaultConfig returns the settings used if no config file is given
func DefaultConfig() Config {
	return Config{
		Indent:   4,
		Color:    "auto",
		Style:    "monokai",
		LogLevel: "warn",
	}
}

// LoadConfig reads the file and overwrites all values of cfg set in the file.
// Unknown keys are an error. The values are not validated, because command
// line flags may still replace them.
func LoadConfig(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading config")
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			var keys []string
			for _, e := range serr.Errors {
				row, _ := e.Position()
				keys = append(keys, fmt.Sprintf("%s in line %d", strings.Join(e.Key(), "."), row))
			}
			return errors.Errorf("config %s: unknown keys %s", path, strings.Join(keys, ", "))
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return errors.Errorf("config %s, line %d, column %d: %v", path, row, col, derr)
		}
		return errors.Wrapf(err, "config %s", path)
	}
	return nil
}

// Validate checks the values of the config
func (c Config) Validate() error {
	if c.Indent < 1 || c.Indent > 16 {
		return errors.Errorf("indent %d out of range 1..16", c.Indent)
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		return errors.Errorf("invalid color mode %q, use auto, always or never", c.Color)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return l, errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return l, nil
}
