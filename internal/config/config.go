package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix     = "SATHI"
	envConfigPath = "SATHI_CONFIG"
	appDirName    = "sathi"

	// DefaultAPIURL is the production backend
	DefaultAPIURL = "https://sportsbackend-n2xb.onrender.com/api"
)

// Config holds application configuration.
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Data     DataConfig     `mapstructure:"data"`
	Log      LogConfig      `mapstructure:"log"`
	Startup  StartupConfig  `mapstructure:"startup"`
	Location LocationConfig `mapstructure:"location"`
}

// APIConfig holds backend settings.
type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DataConfig holds local storage settings.
type DataConfig struct {
	Path string `mapstructure:"path"`
}

// LogConfig holds logging settings. The TUI owns the terminal, so logs
// always go to a file.
type LogConfig struct {
	Path   string `mapstructure:"path"`
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

// StartupConfig bounds the session bootstrap. Zero means wait forever.
type StartupConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// LocationConfig is the player's position for nearby-player search.
// A terminal has no GPS, so it is configured once.
type LocationConfig struct {
	Latitude  float64 `mapstructure:"latitude"`
	Longitude float64 `mapstructure:"longitude"`
}

// dataDir returns ~/.local/share/sathi
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", appDirName)
}

// Path returns the config file path: $SATHI_CONFIG or ~/.config/sathi/config.toml.
func Path() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", appDirName, "config.toml")
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("api.url", DefaultAPIURL)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("data.path", filepath.Join(dataDir(), "sathi.db"))
	v.SetDefault("log.path", filepath.Join(dataDir(), "sathi.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("startup.timeout", time.Duration(0))
	v.SetDefault("location.latitude", 0.0)
	v.SetDefault("location.longitude", 0.0)

	v.SetConfigType("toml")
	v.SetConfigFile(Path())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads configuration from file and env. Env var overrides use prefix
// SATHI_, e.g. SATHI_API_URL. A missing config file is not an error.
func Load() (Config, error) {
	v := newViper()

	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return Config{}, fmt.Errorf("read config %s: %w", Path(), err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.API.URL = strings.TrimRight(c.API.URL, "/")
	return c, nil
}

func isNotExist(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

// Save writes cfg to the config file, creating the directory if needed.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.url", cfg.API.URL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("data.path", cfg.Data.Path)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("startup.timeout", cfg.Startup.Timeout.String())
	v.Set("location.latitude", cfg.Location.Latitude)
	v.Set("location.longitude", cfg.Location.Longitude)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Set updates one dotted key (e.g. "api.url") in the config file.
func Set(key, value string) error {
	if !IsKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	cfg, err := Load()
	if err != nil {
		return err
	}

	switch key {
	case "api.url":
		cfg.API.URL = value
	case "data.path":
		cfg.Data.Path = value
	case "log.path":
		cfg.Log.Path = value
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	case "location.latitude", "location.longitude":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == "location.latitude" {
			cfg.Location.Latitude = f
		} else {
			cfg.Location.Longitude = f
		}
	case "api.timeout", "startup.timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if key == "api.timeout" {
			cfg.API.Timeout = d
		} else {
			cfg.Startup.Timeout = d
		}
	}
	return Save(cfg)
}

// Keys lists the settable config keys
func Keys() []string {
	return []string{"api.url", "api.timeout", "data.path", "log.path", "log.level", "log.format", "startup.timeout",
		"location.latitude", "location.longitude"}
}

// IsKnownKey reports whether key is one of Keys
func IsKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}
