// Package config handles configuration file loading and parsing.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultFileName     = "ConEmu.xml"
	DefaultFormat       = "plain"
	DefaultSortField    = "id"
	DefaultSortOrder    = "asc"
	DefaultPlainTmpl    = "{{.ID}}\t{{.Name}}\t{{.RelativeTime}}"
	DefaultDetailedTmpl = "{{.Key}} {{.Name}} (build {{.Build}}, modified {{.Modified}})"
)

// ErrNoConfigDir is returned when no ConEmu configuration directory is
// configured and the platform default cannot be determined.
var ErrNoConfigDir = errors.New("unable to determine ConEmu configuration directory")

// Config represents the cetheme configuration.
type Config struct {
	ConEmu    ConEmuConfig    `toml:"conemu"`
	Import    ImportConfig    `toml:"import"`
	Output    OutputConfig    `toml:"output"`
	Templates TemplatesConfig `toml:"templates"`
}

// ConEmuConfig locates the ConEmu settings file.
type ConEmuConfig struct {
	ConfigDir string `toml:"config_dir"` // Empty = platform user config dir
	FileName  string `toml:"file_name"`
}

// ImportConfig holds default import options.
type ImportConfig struct {
	Backup  bool   `toml:"backup"`   // Back up the settings file before importing
	Schema  string `toml:"schema"`   // Custom XSD; empty = bundled schema
	BaseDir string `toml:"base_dir"` // Empty = executable directory
}

// OutputConfig holds default listing options.
type OutputConfig struct {
	Format string `toml:"format"` // plain, json, yaml, names, swatch
	Sort   string `toml:"sort"`   // id, name, modified
	Order  string `toml:"order"`  // asc, desc
}

// TemplatesConfig holds plain output templates.
type TemplatesConfig struct {
	Plain    string            `toml:"plain"`
	Detailed string            `toml:"detailed"`
	Custom   map[string]string `toml:"custom"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		ConEmu: ConEmuConfig{
			ConfigDir: "", // Platform default
			FileName:  DefaultFileName,
		},
		Import: ImportConfig{
			Backup: false,
		},
		Output: OutputConfig{
			Format: DefaultFormat,
			Sort:   DefaultSortField,
			Order:  DefaultSortOrder,
		},
		Templates: TemplatesConfig{
			Plain:    DefaultPlainTmpl,
			Detailed: DefaultDetailedTmpl,
			Custom:   make(map[string]string),
		},
	}
}

// ConfigPath returns the path to the config file.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config.
func ConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "cetheme", "config.toml")
}

// DefaultConfigDir returns the directory ConEmu keeps its settings in:
// the roaming application data directory on Windows, the user config
// directory elsewhere.
func DefaultConfigDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return "", ErrNoConfigDir
	}
	return dir, nil
}

// MasterDir returns the configured ConEmu directory, or the platform default.
func (c *Config) MasterDir() (string, error) {
	if c.ConEmu.ConfigDir != "" {
		return c.ConEmu.ConfigDir, nil
	}
	return DefaultConfigDir()
}

// MasterFileName returns the configured settings file name.
func (c *Config) MasterFileName() string {
	if c.ConEmu.FileName == "" {
		return DefaultFileName
	}
	return c.ConEmu.FileName
}

// LoadConfig loads configuration from the specified path.
// If path is empty, uses the default config path.
// Returns default config if file doesn't exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the specified path.
// Creates parent directories if needed.
func (c *Config) Save(path string) error {
	if path == "" {
		path = ConfigPath()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetTemplate returns the template for the given name.
// First checks custom templates, then built-in ones.
// Returns empty string if not found.
func (c *Config) GetTemplate(name string) string {
	if tmpl, ok := c.Templates.Custom[name]; ok {
		return tmpl
	}

	switch name {
	case "plain":
		return c.Templates.Plain
	case "detailed":
		return c.Templates.Detailed
	default:
		return ""
	}
}
