// Package config loads conquista settings from <configdir>/config.yaml with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/conquista/internal/constants"
	"github.com/julianstephens/conquista/internal/utils"
)

// Environment overrides. The connection string variable is read by the
// keyring package, not here.
const (
	EnvDatabase = "CONQUISTA_DATABASE"
	EnvTimezone = "CONQUISTA_TIMEZONE"
	EnvDebug    = "CONQUISTA_DEBUG"
)

type AnalyticsConfig struct {
	Scope constants.AnalyticsScope `yaml:"scope"`
}

type Config struct {
	// Database is a SQLite file path or a password-free postgres:// URL.
	Database  string          `yaml:"database"`
	Timezone  string          `yaml:"timezone"`
	Locale    string          `yaml:"locale"`
	Analytics AnalyticsConfig `yaml:"analytics"`
	Debug     bool            `yaml:"debug"`

	// Dir is the directory the config was loaded from.
	Dir string `yaml:"-"`
}

// Default returns the settings used when no config file exists.
func Default(dir string) Config {
	return Config{
		Database:  filepath.Join(dir, constants.DefaultDBName),
		Timezone:  constants.DefaultTimezone,
		Locale:    constants.DefaultLocale,
		Analytics: AnalyticsConfig{Scope: constants.ScopeUser},
		Dir:       dir,
	}
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.ConfigFileName)
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Load reads dir/config.yaml, fills unset keys with defaults and applies
// environment overrides. A missing file is not an error.
func Load(dir string) (Config, error) {
	cfg, err := readFile(dir)
	if err != nil {
		return Config{}, err
	}

	applyEnv(&cfg)
	cfg.fillDefaults()

	if cfg.Database, err = ExpandHome(cfg.Database); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// readFile returns the defaults overlaid with dir/config.yaml, without
// environment overrides.
func readFile(dir string) (Config, error) {
	dir, err := ExpandHome(dir)
	if err != nil {
		return Config{}, err
	}
	cfg := Default(dir)

	data, err := os.ReadFile(Path(dir))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", Path(dir), err)
		}
	}
	cfg.Dir = dir
	return cfg, nil
}

// Update applies change to the settings stored in dir/config.yaml and writes
// them back. Environment overrides are not persisted.
func Update(dir string, change func(*Config)) (Config, error) {
	cfg, err := readFile(dir)
	if err != nil {
		return Config{}, err
	}
	change(&cfg)
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	if err := cfg.Save(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Database = getenv(EnvDatabase, cfg.Database)
	cfg.Timezone = getenv(EnvTimezone, cfg.Timezone)
	if v := os.Getenv(EnvDebug); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// fillDefaults covers keys a partial config file left empty.
func (c *Config) fillDefaults() {
	def := Default(c.Dir)
	if c.Database == "" {
		c.Database = def.Database
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.Locale == "" {
		c.Locale = def.Locale
	}
	if c.Analytics.Scope == "" {
		c.Analytics.Scope = def.Analytics.Scope
	}
}

func (c Config) Validate() error {
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if _, ok := constants.WeekdayLabels[c.Locale]; !ok {
		return fmt.Errorf("unsupported locale %q", c.Locale)
	}
	switch c.Analytics.Scope {
	case constants.ScopeUser, constants.ScopeGlobal:
	default:
		return fmt.Errorf("invalid analytics scope %q (expected %q or %q)",
			c.Analytics.Scope, constants.ScopeUser, constants.ScopeGlobal)
	}
	return nil
}

// Save writes c to Dir/config.yaml, creating the directory if needed.
func (c Config) Save() error {
	if err := os.MkdirAll(c.Dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.WriteFile(Path(c.Dir), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
