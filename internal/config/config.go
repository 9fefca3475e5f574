// Package config handles the global configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/citeurl/config.yml.
// Credentials can also come from the environment; the environment wins.
type Config struct {
	WikidataUsername string `yaml:"wikidata_username,omitempty"`
	WikidataPassword string `yaml:"wikidata_password,omitempty"`
	LedgerPath       string `yaml:"ledger_path,omitempty"`
	EditIntervalSecs int    `yaml:"edit_interval_secs,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "citeurl"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// LedgerFile is the default upload ledger file name, under
	// XDG_DATA_HOME.
	LedgerFile = "uploads.db"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/citeurl/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load loads the configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.LedgerPath != "" {
		cfg.LedgerPath = ExpandTilde(cfg.LedgerPath)
	}

	configCache = &cfg
	return &cfg, nil
}

// Save writes the configuration file, creating the directory if needed.
// The file holds credentials, so it is written user-only.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	configCache = nil
	return nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// GetWikidataUsername returns the Wikidata username, preferring the
// WIKIDATA_USERNAME environment variable over the config file.
func GetWikidataUsername() string {
	if v := os.Getenv("WIKIDATA_USERNAME"); v != "" {
		return v
	}
	cfg, _ := Load()
	return cfg.WikidataUsername
}

// GetWikidataPassword returns the Wikidata password, preferring the
// WIKIDATA_PASSWORD environment variable over the config file.
func GetWikidataPassword() string {
	if v := os.Getenv("WIKIDATA_PASSWORD"); v != "" {
		return v
	}
	cfg, _ := Load()
	return cfg.WikidataPassword
}

// ResolvedLedgerPath returns the upload ledger path from config, or the
// default under XDG_DATA_HOME (~/.local/share/citeurl/uploads.db).
func ResolvedLedgerPath() string {
	cfg, _ := Load()
	if cfg.LedgerPath != "" {
		return cfg.LedgerPath
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDir, LedgerFile)
}

// Get returns the value of a config key by its yaml name.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "wikidata_username":
		return c.WikidataUsername, nil
	case "wikidata_password":
		return c.WikidataPassword, nil
	case "ledger_path":
		return c.LedgerPath, nil
	case "edit_interval_secs":
		if c.EditIntervalSecs == 0 {
			return "", nil
		}
		return strconv.Itoa(c.EditIntervalSecs), nil
	default:
		return "", fmt.Errorf("unknown config key: %s", key)
	}
}

// Set sets a config key by its yaml name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "wikidata_username":
		c.WikidataUsername = value
	case "wikidata_password":
		c.WikidataPassword = value
	case "ledger_path":
		c.LedgerPath = value
	case "edit_interval_secs":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("edit_interval_secs must be a non-negative integer")
		}
		c.EditIntervalSecs = n
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
