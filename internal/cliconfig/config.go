// Package cliconfig holds CLI configuration for rbnupload, merged from
// defaults, a TOML config file, RBN_* environment variables and flags, in
// ascending order of precedence.
package cliconfig

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// DefaultSoftwareID identifies the receiver software to the aggregator.
const DefaultSoftwareID = "QMTECH FT8 RX 1.0"

// Placeholder operator fields. RBN Aggregator ignores them, but the
// datagrams must carry something well-formed.
const (
	DefaultDECall = "AB1CDE"
	DefaultDEGrid = "AB12"
	DefaultDXGrid = "AB12"
)

// Config holds CLI configuration for rbnupload.
type Config struct {
	Addr string
	Port int
	File string

	SoftwareID string
	DECall     string
	DEGrid     string
	DXGrid     string

	Follow       bool
	DryRun       bool
	Debug        bool
	PollInterval time.Duration
	StatusPause  time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		SoftwareID:   DefaultSoftwareID,
		DECall:       DefaultDECall,
		DEGrid:       DefaultDEGrid,
		DXGrid:       DefaultDXGrid,
		PollInterval: 500 * time.Millisecond,
		StatusPause:  time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("broadcast address is required")
	}
	if ip := net.ParseIP(c.Addr); ip == nil || ip.To4() == nil {
		return fmt.Errorf("broadcast address must be IPv4: %q", c.Addr)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be 1-65535, got %d", c.Port)
	}
	if c.File == "" {
		return fmt.Errorf("decode file is required")
	}
	if c.SoftwareID == "" {
		return fmt.Errorf("software id must not be empty")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.StatusPause < 0 {
		return fmt.Errorf("status pause must not be negative")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setIntFromString parses and sets an int value from a string.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", flag, err)
	}
	s.setInt(flag, n, dst)
	return nil
}

// setBool sets a bool value if provided and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses and sets a bool value from a string.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	if b, err := strconv.ParseBool(value); err == nil {
		*dst = b
	}
}

// setDuration parses and sets a duration value from a string.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", flag, err)
	}
	*dst = d
	return nil
}
