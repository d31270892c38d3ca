package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (RBN_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("addr", os.Getenv("RBN_ADDR"), &cfg.Addr)
	s.setString("file", os.Getenv("RBN_FILE"), &cfg.File)
	s.setString("id", os.Getenv("RBN_SOFTWARE_ID"), &cfg.SoftwareID)
	s.setString("de-call", os.Getenv("RBN_DE_CALL"), &cfg.DECall)
	s.setString("de-grid", os.Getenv("RBN_DE_GRID"), &cfg.DEGrid)
	s.setString("dx-grid", os.Getenv("RBN_DX_GRID"), &cfg.DXGrid)

	if err := s.setIntFromString("port", os.Getenv("RBN_PORT"), &cfg.Port); err != nil {
		return err
	}

	if err := s.setDuration("poll-interval", os.Getenv("RBN_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("status-pause", os.Getenv("RBN_STATUS_PAUSE"), &cfg.StatusPause); err != nil {
		return err
	}

	s.setBoolFromString("follow", os.Getenv("RBN_FOLLOW"), &cfg.Follow)
	s.setBoolFromString("dry-run", os.Getenv("RBN_DRY_RUN"), &cfg.DryRun)
	s.setBoolFromString("debug", os.Getenv("RBN_DEBUG"), &cfg.Debug)

	return nil
}
