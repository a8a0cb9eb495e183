package server

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/signadot/lined/system/lined/sink"
)

// DefaultAddr listens on port 12321 on all interfaces.
const DefaultAddr = ":12321"

// Config represents the lined configuration file structure.
type Config struct {
	// Addr is the TCP listen address.
	Addr string `yaml:"addr"`

	// Marker is the separator written at session start and end.
	Marker string `yaml:"marker"`

	// Color colors the client prefix. Nil means decide from the terminal.
	Color *bool `yaml:"color"`

	// Filter is an expression selecting which lines are written.
	// Empty means every line.
	Filter string `yaml:"filter"`
}

// LoadConfig loads a configuration file in YAML format.
// Fields left out of the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.UnmarshalWithOptions(data, cfg, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	return cfg, nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.Marker == "" {
		c.Marker = sink.DefaultMarker
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	_, port, err := net.SplitHostPort(c.Addr)
	if err != nil {
		return fmt.Errorf("invalid addr %q: %w", c.Addr, err)
	}
	p, err := strconv.Atoi(port)
	if err != nil || p < 0 || p > 65535 {
		return fmt.Errorf("invalid port %q in addr %q", port, c.Addr)
	}
	if _, err := NewFilter(c.Filter); err != nil {
		return err
	}
	return nil
}
