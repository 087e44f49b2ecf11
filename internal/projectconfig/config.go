// Package projectconfig provides the ProjectConfig struct and loader for
// .slmgen.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default values for project configuration. These are the single source of
// truth — New() references them and no other code should duplicate them.
const (
	DefaultServerPort  = 8080
	DefaultMaxSessions = 25
	DefaultSessionTTL  = 60 // minutes
)

// ServerConfig holds analysis API server settings.
type ServerConfig struct {
	Port        int      `yaml:"port,omitempty"`
	CORSOrigins []string `yaml:"cors_origins,omitempty"`
}

// SessionsConfig bounds the in-memory session store.
type SessionsConfig struct {
	Max        int `yaml:"max,omitempty"`
	TTLMinutes int `yaml:"ttl_minutes,omitempty"`
}

// CatalogConfig points at an alternative model catalog file. Empty means
// the embedded default catalog.
type CatalogConfig struct {
	Path string `yaml:"path,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from .slmgen.yaml.
type ProjectConfig struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	Sessions SessionsConfig `yaml:"sessions,omitempty"`
	Catalog  CatalogConfig  `yaml:"catalog,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Server: ServerConfig{
			Port: DefaultServerPort,
		},
		Sessions: SessionsConfig{
			Max:        DefaultMaxSessions,
			TTLMinutes: DefaultSessionTTL,
		},
	}
}

// Load finds .slmgen.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults.
// If no config file is found, returns defaults with a nil error.
// Real I/O errors (e.g. permission denied) are returned to the caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := findConfigFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading .slmgen.yaml: %w", err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing .slmgen.yaml: %w", err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// findConfigFile walks up from dir looking for .slmgen.yaml (max 10 levels).
// Returns os.ErrNotExist if no config file is found. Propagates real I/O
// errors (e.g. permission denied) instead of silently swallowing them.
func findConfigFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ".slmgen.yaml")
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// mergeConfig overlays non-zero file values onto the defaults.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if len(src.Server.CORSOrigins) > 0 {
		dst.Server.CORSOrigins = src.Server.CORSOrigins
	}
	if src.Sessions.Max != 0 {
		dst.Sessions.Max = src.Sessions.Max
	}
	if src.Sessions.TTLMinutes != 0 {
		dst.Sessions.TTLMinutes = src.Sessions.TTLMinutes
	}
	if src.Catalog.Path != "" {
		dst.Catalog.Path = src.Catalog.Path
	}
}
