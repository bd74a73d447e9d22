package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// ConfigDir is the directory holding config.{json,toml,yaml}
const ConfigDir = ".hybrid"

// EnvPrefix prefixes environment overrides, e.g. HYBRID_SERVER_PORT
const EnvPrefix = "HYBRID"

// Config represents the complete hybrid configuration (v1 schema)
type Config struct {
	Version int `json:"version" mapstructure:"version" toml:"version"`

	Server  ServerConfig  `json:"server" mapstructure:"server" toml:"server"`
	Content ContentConfig `json:"content" mapstructure:"content" toml:"content"`
	About   AboutConfig   `json:"about" mapstructure:"about" toml:"about"`
	Theme   ThemeConfig   `json:"theme" mapstructure:"theme" toml:"theme"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging" toml:"logging"`

	// BaseDir anchors relative paths; it is the directory LoadConfig was given.
	BaseDir string `json:"-" mapstructure:"-" toml:"-"`
}

// ServerConfig configures the HTTP bridge
type ServerConfig struct {
	Host     string `json:"host" mapstructure:"host" toml:"host"`
	Port     int    `json:"port" mapstructure:"port" toml:"port"`
	Compress bool   `json:"compress" mapstructure:"compress" toml:"compress"`
}

// ContentConfig configures the protocol handler and its content root
type ContentConfig struct {
	// Root is the content directory; empty serves the built-in pages
	Root         string `json:"root" mapstructure:"root" toml:"root"`
	Scheme       string `json:"scheme" mapstructure:"scheme" toml:"scheme"`
	CSPOrigin    string `json:"cspOrigin" mapstructure:"cspOrigin" toml:"cspOrigin"`
	NotFoundPage string `json:"notFoundPage" mapstructure:"notFoundPage" toml:"notFoundPage"`
}

// AboutConfig configures the about document
type AboutConfig struct {
	// Manifest is a package.json-style file; empty uses the build version
	Manifest string   `json:"manifest" mapstructure:"manifest" toml:"manifest"`
	Packages []string `json:"packages" mapstructure:"packages" toml:"packages"`
}

// ThemeConfig configures the generated stylesheet
type ThemeConfig struct {
	File string `json:"file" mapstructure:"file" toml:"file"`
	Vars Theme  `json:"vars" mapstructure:"vars" toml:"vars"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level" mapstructure:"level" toml:"level"`
	File       string `json:"file" mapstructure:"file" toml:"file"`
	MaxSize    string `json:"maxSize" mapstructure:"maxSize" toml:"maxSize"`
	MaxBackups int    `json:"maxBackups" mapstructure:"maxBackups" toml:"maxBackups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
		Content: ContentConfig{
			Scheme:       "hybrid",
			CSPOrigin:    "hybrid://welcome",
			NotFoundPage: "404.html",
		},
		About: AboutConfig{
			Packages: []string{"log-fetch", "chunk-fetch", "list-fetch", "onion-fetch"},
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxBackups: 3,
		},
		BaseDir: ".",
	}
}

// LoadConfig loads configuration from <dir>/.hybrid/config.*, applies
// HYBRID_* environment overrides and validates the result.
func LoadConfig(dir string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("version", def.Version)
	v.SetDefault("server.host", def.Server.Host)
	v.SetDefault("server.port", def.Server.Port)
	v.SetDefault("server.compress", def.Server.Compress)
	v.SetDefault("content.root", def.Content.Root)
	v.SetDefault("content.scheme", def.Content.Scheme)
	v.SetDefault("content.cspOrigin", def.Content.CSPOrigin)
	v.SetDefault("content.notFoundPage", def.Content.NotFoundPage)
	v.SetDefault("about.manifest", def.About.Manifest)
	v.SetDefault("about.packages", def.About.Packages)
	v.SetDefault("theme.file", def.Theme.File)
	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.maxSize", def.Logging.MaxSize)
	v.SetDefault("logging.maxBackups", def.Logging.MaxBackups)

	// Configure viper
	v.SetConfigName("config")
	v.AddConfigPath(filepath.Join(dir, ConfigDir))
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file leaves defaults and environment in place
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.BaseDir = dir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Path resolves p against BaseDir unless it is empty or absolute
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// ServerAddress returns the HTTP bridge listen address
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// WriteTOML writes the configuration as TOML, creating parent directories
func (c *Config) WriteTOML(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return &ConfigError{Field: "version", Message: "unsupported config version"}
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server.port", Message: fmt.Sprintf("invalid port %d", c.Server.Port)}
	}
	if c.Content.Scheme == "" {
		return &ConfigError{Field: "content.scheme", Message: "scheme is required"}
	}
	if c.Content.NotFoundPage == "" {
		return &ConfigError{Field: "content.notFoundPage", Message: "not-found page is required"}
	}
	for i, v := range c.Theme.Vars {
		if v.Name == "" {
			return &ConfigError{Field: fmt.Sprintf("theme.vars[%d]", i), Message: "name is required"}
		}
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return &ConfigError{Field: "logging.level", Message: "unknown level " + c.Logging.Level}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
