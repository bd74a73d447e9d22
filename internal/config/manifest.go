package config

import (
	"encoding/json"
	"fmt"
	"os"

	"hybrid/internal/version"
)

// Manifest is the subset of a package.json the about document reads.
type Manifest struct {
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

// LoadManifest reads a package.json-style manifest
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	if m.Dependencies == nil {
		m.Dependencies = map[string]string{}
	}
	return &m, nil
}

// ResolveManifest loads the configured manifest, or builds one from the
// binary version when none is configured.
func (c *Config) ResolveManifest() (*Manifest, error) {
	if c.About.Manifest == "" {
		return &Manifest{
			Version:      version.Version,
			Dependencies: map[string]string{},
		}, nil
	}
	return LoadManifest(c.Path(c.About.Manifest))
}
