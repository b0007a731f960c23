package types

import (
	"fmt"
	"time"
)

// Config represents the configuration for the calc-mcp servers
type Config struct {
	Addr            string        `json:"addr,omitempty" yaml:"addr,omitempty"`
	LogLevel        string        `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	SessionTTL      time.Duration `json:"session_ttl,omitempty" yaml:"session_ttl,omitempty"`
	MaxSessions     int           `json:"max_sessions,omitempty" yaml:"max_sessions,omitempty"`
	JanitorInterval time.Duration `json:"janitor_interval,omitempty" yaml:"janitor_interval,omitempty"`
}

// Validate checks that the configuration values are usable
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session_ttl must not be negative, got %s", c.SessionTTL)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("max_sessions must not be negative, got %d", c.MaxSessions)
	}
	if c.JanitorInterval < 0 {
		return fmt.Errorf("janitor_interval must not be negative, got %s", c.JanitorInterval)
	}
	return nil
}
