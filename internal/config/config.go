// Package config loads the server configuration from defaults and an optional YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/averycrespi/calc-mcp/internal/session"
	"github.com/averycrespi/calc-mcp/pkg/types"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAddr            = "localhost:4200"
	DefaultLogLevel        = "info"
	DefaultJanitorInterval = time.Minute
)

// Default returns the configuration used when no file or flag overrides a value
func Default() types.Config {
	return types.Config{
		Addr:            DefaultAddr,
		LogLevel:        DefaultLogLevel,
		SessionTTL:      session.DefaultTTL,
		MaxSessions:     session.DefaultMaxSessions,
		JanitorInterval: DefaultJanitorInterval,
	}
}

// Loader reads configuration files from a filesystem
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a loader over fs. Pass afero.NewOsFs() for the real filesystem.
func NewLoader(fs afero.Fs) *Loader {
	return &Loader{fs: fs}
}

// Load returns the defaults overlaid with the YAML file at path.
// An empty path returns the defaults.
func (l *Loader) Load(path string) (types.Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return types.Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return types.Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}
