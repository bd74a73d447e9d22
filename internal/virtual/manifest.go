// Package virtual generates the in-memory documents served for reserved hosts.
package virtual

import (
	"bytes"
	"encoding/json"
)

// DefaultAboutPackages is the allow-list rendered by the about document.
var DefaultAboutPackages = []string{
	"log-fetch",
	"chunk-fetch",
	"list-fetch",
	"onion-fetch",
}

// About is the JSON document served for the about host.
type About struct {
	Version      string       `json:"version"`
	Dependencies Dependencies `json:"dependencies"`
}

// Dependency is one allow-listed package. A nil Version means the
// package is absent from the manifest.
type Dependency struct {
	Name    string
	Version *string
}

// Dependencies keeps allow-list order when encoded as a JSON object.
type Dependencies []Dependency

// MarshalJSON encodes the entries as an object in slice order.
func (d Dependencies) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, dep := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(dep.Name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(dep.Version)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Manifest renders the about document: version plus one entry per
// allow-listed name, looked up in deps. Names missing from deps are kept
// with a null version.
func Manifest(version string, deps map[string]string, allow []string) ([]byte, error) {
	about := About{
		Version:      version,
		Dependencies: make(Dependencies, 0, len(allow)),
	}
	for _, name := range allow {
		dep := Dependency{Name: name}
		if v, ok := deps[name]; ok {
			v := v
			dep.Version = &v
		}
		about.Dependencies = append(about.Dependencies, dep)
	}

	return json.MarshalIndent(about, "", "\t")
}
