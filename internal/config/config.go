// Package config loads the artworks program configuration from a TOML file
// and ARTWORKS_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. ARTWORKS_API_PAGE_SIZE.
const EnvPrefix = "ARTWORKS"

// Config holds application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Bulk    BulkConfig    `mapstructure:"bulk"`
}

// APIConfig holds the artworks API settings.
type APIConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	UserAgent string        `mapstructure:"user_agent"`
	PageSize  int           `mapstructure:"page_size"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// RedisConfig holds the optional cache and request budget settings.
// An empty Addr disables both.
type RedisConfig struct {
	Addr              string `mapstructure:"addr"`
	DB                int    `mapstructure:"db"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
	CacheEnabled      bool   `mapstructure:"cache_enabled"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
	File   string `mapstructure:"file"`
}

// MetricsConfig holds the Prometheus listener address (empty = off).
type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

// BulkConfig bounds the "select N rows" page walk.
type BulkConfig struct {
	MaxPages    int           `mapstructure:"max_pages"`
	PageTimeout time.Duration `mapstructure:"page_timeout"`
}

// Enabled reports whether a Redis address is configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.Addr) != ""
}

// Load reads configuration from file and env. The file is taken from
// ARTWORKS_CONFIG, or config.toml in the user config dir; a missing file is
// not an error.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(defaultDir())
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges that viper cannot express.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.UserAgent == "" {
		return fmt.Errorf("api.user_agent is required")
	}
	if c.API.PageSize < 1 || c.API.PageSize > 100 {
		return fmt.Errorf("api.page_size must be between 1 and 100 (got %d)", c.API.PageSize)
	}
	if c.Redis.RequestsPerMinute < 1 {
		return fmt.Errorf("redis.requests_per_minute must be positive (got %d)", c.Redis.RequestsPerMinute)
	}
	if c.Bulk.MaxPages < 0 {
		return fmt.Errorf("bulk.max_pages must not be negative (got %d)", c.Bulk.MaxPages)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.base_url", "https://api.artic.edu/api/v1")
	v.SetDefault("api.user_agent", "artworks/0.1.0")
	v.SetDefault("api.page_size", 12)
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.requests_per_minute", 60)
	v.SetDefault("redis.cache_enabled", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)
	v.SetDefault("log.file", filepath.Join(defaultDir(), "artworks.log"))
	v.SetDefault("metrics.addr", "")
	v.SetDefault("bulk.max_pages", 0)
	v.SetDefault("bulk.page_timeout", 15*time.Second)
}

func defaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "artworks")
}
