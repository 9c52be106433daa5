package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
)

// Placeholder values shipped in the example configuration. A deployment that
// still carries them is treated as not configured and serves a setup notice
// instead of hitting the upstream API with junk credentials.
const (
	PlaceholderSheetID = "YOUR_SHEET_ID"
	PlaceholderAPIKey  = "YOUR_API_KEY"
)

// Config represents the runtime configuration for the LockQuests backend.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Source     SourceConfig     `mapstructure:"source"`
	Photos     PhotosConfig     `mapstructure:"photos"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Refresh    RefreshConfig    `mapstructure:"refresh"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`
}

// SourceConfig selects and configures the upstream room table.
type SourceConfig struct {
	Driver        string        `mapstructure:"driver"` // sheets or workbook
	SheetID       string        `mapstructure:"sheet_id"`
	APIKey        string        `mapstructure:"api_key"`
	SheetRange    string        `mapstructure:"sheet_range"`
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	WorkbookPath  string        `mapstructure:"workbook_path"`
	WorkbookSheet string        `mapstructure:"workbook_sheet"`
}

// Configured reports whether the source has real credentials. The sheets
// driver is unconfigured while the placeholder id or key is still in place.
func (c SourceConfig) Configured() bool {
	switch strings.ToLower(strings.TrimSpace(c.Driver)) {
	case "workbook":
		return strings.TrimSpace(c.WorkbookPath) != ""
	default:
		id := strings.TrimSpace(c.SheetID)
		key := strings.TrimSpace(c.APIKey)
		return id != "" && id != PlaceholderSheetID && key != "" && key != PlaceholderAPIKey
	}
}

// PhotosConfig configures photo existence probing. An empty base URL
// disables probing and every room renders its placeholder image.
type PhotosConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Concurrency int           `mapstructure:"concurrency"`
}

// CacheConfig describes the snapshot cache and its optional Redis backend.
type CacheConfig struct {
	TTL     time.Duration    `mapstructure:"ttl"`
	Version string           `mapstructure:"version"`
	Redis   RedisCacheConfig `mapstructure:"redis"`
}

// RedisCacheConfig holds Redis connection options.
type RedisCacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Address  string        `mapstructure:"address"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TLS      bool          `mapstructure:"tls"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig describes connection options for the supported databases.
type DatabaseConfig struct {
	Driver   string       `mapstructure:"driver"`
	Path     string       `mapstructure:"path"`
	DSN      string       `mapstructure:"dsn"`
	Postgres DBAuthConfig `mapstructure:"postgres"`
	MySQL    DBAuthConfig `mapstructure:"mysql"`
}

// DBAuthConfig represents host based database parameters.
type DBAuthConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// RefreshConfig drives the background cache warmer.
type RefreshConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Schedule      string `mapstructure:"schedule"`
	SweepSchedule string `mapstructure:"sweep_schedule"`
}

// MonitoringConfig enables health checks and metrics.
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
}

// PrometheusConfig toggles the metrics endpoint.
type PrometheusConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// RateLimitConfig bounds per-client request rates on the public API.
type RateLimitConfig struct {
	Max    int           `mapstructure:"max"`
	Window time.Duration `mapstructure:"window"`
}

// LoadConfig initialises application configuration using Viper with sensible defaults.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix("LOCKQUESTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("source.driver", "sheets")
	v.SetDefault("source.sheet_id", PlaceholderSheetID)
	v.SetDefault("source.api_key", PlaceholderAPIKey)
	v.SetDefault("source.sheet_range", "Master List!A:Z")
	v.SetDefault("source.timeout", "15s")
	v.SetDefault("source.workbook_sheet", "Master List")

	v.SetDefault("photos.base_url", "")
	v.SetDefault("photos.timeout", "5s")
	v.SetDefault("photos.concurrency", 8)

	v.SetDefault("cache.ttl", "10m")
	v.SetDefault("cache.version", "1")
	v.SetDefault("cache.redis.enabled", false)
	v.SetDefault("cache.redis.address", "127.0.0.1:6379")
	v.SetDefault("cache.redis.username", "")
	v.SetDefault("cache.redis.password", "")
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.tls", false)
	v.SetDefault("cache.redis.timeout", "5s")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "./data/lockquests.sqlite")

	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.schedule", "@every 10m")
	v.SetDefault("refresh.sweep_schedule", "@daily")

	v.SetDefault("monitoring.prometheus.enabled", true)

	v.SetDefault("rate_limit.max", 120)
	v.SetDefault("rate_limit.window", "1m")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
