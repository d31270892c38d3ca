package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.SoftwareID != DefaultSoftwareID {
		t.Errorf("SoftwareID = %v, want %v", cfg.SoftwareID, DefaultSoftwareID)
	}
	if cfg.DECall != "AB1CDE" {
		t.Errorf("DECall = %v, want AB1CDE", cfg.DECall)
	}
	if cfg.PollInterval != 500*time.Millisecond {
		t.Errorf("PollInterval = %v, want 500ms", cfg.PollInterval)
	}
	if cfg.StatusPause != time.Millisecond {
		t.Errorf("StatusPause = %v, want 1ms", cfg.StatusPause)
	}
	if cfg.Follow {
		t.Error("Follow = true, want false")
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		cfg := DefaultConfig()
		cfg.Addr = "192.168.1.255"
		cfg.Port = 2237
		cfg.File = "/var/ft8/decodes.txt"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid config", func(c *Config) {}, false},
		{"unicast destination ok", func(c *Config) { c.Addr = "127.0.0.1" }, false},
		{"missing address", func(c *Config) { c.Addr = "" }, true},
		{"hostname rejected", func(c *Config) { c.Addr = "rbn.local" }, true},
		{"ipv6 rejected", func(c *Config) { c.Addr = "::1" }, true},
		{"port zero", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 65536 }, true},
		{"missing file", func(c *Config) { c.File = "" }, true},
		{"empty software id", func(c *Config) { c.SoftwareID = "" }, true},
		{"zero poll interval", func(c *Config) { c.PollInterval = 0 }, true},
		{"negative status pause", func(c *Config) { c.StatusPause = -time.Millisecond }, true},
		{"zero status pause ok", func(c *Config) { c.StatusPause = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
