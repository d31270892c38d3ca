package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Addr         string `toml:"addr"`
	Port         int    `toml:"port"`
	File         string `toml:"file"`
	SoftwareID   string `toml:"software_id"`
	DECall       string `toml:"de_call"`
	DEGrid       string `toml:"de_grid"`
	DXGrid       string `toml:"dx_grid"`
	Follow       *bool  `toml:"follow"`
	DryRun       *bool  `toml:"dry_run"`
	Debug        *bool  `toml:"debug"`
	PollInterval string `toml:"poll_interval"`
	StatusPause  string `toml:"status_pause"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.rbnupload/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".rbnupload", "config.toml")
	}
	return ""
}

// FileExists reports whether the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("addr", fc.Addr, &cfg.Addr)
	s.setInt("port", fc.Port, &cfg.Port)
	s.setString("file", fc.File, &cfg.File)
	s.setString("id", fc.SoftwareID, &cfg.SoftwareID)
	s.setString("de-call", fc.DECall, &cfg.DECall)
	s.setString("de-grid", fc.DEGrid, &cfg.DEGrid)
	s.setString("dx-grid", fc.DXGrid, &cfg.DXGrid)

	s.setBool("follow", fc.Follow, &cfg.Follow)
	s.setBool("dry-run", fc.DryRun, &cfg.DryRun)
	s.setBool("debug", fc.Debug, &cfg.Debug)

	if err := s.setDuration("poll-interval", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("status-pause", fc.StatusPause, &cfg.StatusPause); err != nil {
		return err
	}

	return nil
}
