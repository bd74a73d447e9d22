package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ThemeVar is one theme variable: a name and a CSS value.
type ThemeVar struct {
	Name  string `json:"name" mapstructure:"name" toml:"name"`
	Value string `json:"value" mapstructure:"value" toml:"value"`
}

// Theme is an ordered theme mapping. Order is preserved from the source
// document because the stylesheet renders entries in this order.
type Theme []ThemeVar

// DefaultTheme is used when neither a theme file nor inline vars are set.
func DefaultTheme() Theme {
	return Theme{
		{Name: "background", Value: "var(--hy-color-black)"},
		{Name: "text", Value: "var(--hy-color-white)"},
		{Name: "primary", Value: "var(--hy-color-blue)"},
		{Name: "secondary", Value: "var(--hy-color-red)"},
	}
}

// Set assigns value to name. A repeated name keeps its first position.
func (t Theme) Set(name, value string) Theme {
	for i := range t {
		if t[i].Name == name {
			t[i].Value = value
			return t
		}
	}
	return append(t, ThemeVar{Name: name, Value: value})
}

// Lookup returns the value for name.
func (t Theme) Lookup(name string) (string, bool) {
	for _, v := range t {
		if v.Name == name {
			return v.Value, true
		}
	}
	return "", false
}

// ResolveTheme returns the theme file contents when configured, else the
// inline vars, else DefaultTheme.
func (c *Config) ResolveTheme() (Theme, error) {
	if c.Theme.File != "" {
		return LoadTheme(c.Path(c.Theme.File))
	}
	if len(c.Theme.Vars) > 0 {
		return c.Theme.Vars, nil
	}
	return DefaultTheme(), nil
}

// LoadTheme reads a flat name → value document. The decoder is chosen by
// extension: .toml, .yaml/.yml or .json.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme file: %w", err)
	}

	var theme Theme
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		theme, err = parseThemeTOML(data)
	case ".yaml", ".yml":
		theme, err = parseThemeYAML(data)
	case ".json":
		theme, err = parseThemeJSON(data)
	default:
		return nil, &ConfigError{Field: "theme.file", Message: "unsupported theme format " + filepath.Ext(path)}
	}
	if err != nil {
		return nil, fmt.Errorf("parse theme file %s: %w", path, err)
	}
	return theme, nil
}

// parseThemeTOML takes key order from the decoder metadata.
func parseThemeTOML(data []byte) (Theme, error) {
	var raw map[string]interface{}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}

	theme := Theme{}
	for _, key := range md.Keys() {
		if len(key) != 1 {
			continue
		}
		s, ok := raw[key[0]].(string)
		if !ok {
			return nil, fmt.Errorf("theme value for %q must be a string", key[0])
		}
		theme = theme.Set(key[0], s)
	}
	return theme, nil
}

// parseThemeYAML walks the document node so mapping order survives.
func parseThemeYAML(data []byte) (Theme, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	theme := Theme{}
	if len(doc.Content) == 0 {
		return theme, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("theme document must be a mapping")
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i], root.Content[i+1]
		if val.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("theme value for %q must be a string", key.Value)
		}
		theme = theme.Set(key.Value, val.Value)
	}
	return theme, nil
}

// parseThemeJSON reads the object token by token to keep key order.
func parseThemeJSON(data []byte) (Theme, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("theme document must be an object")
	}

	theme := Theme{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("theme value for %q: %w", name, err)
		}
		theme = theme.Set(name, value)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return theme, nil
}
