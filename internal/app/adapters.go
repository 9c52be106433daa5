package app

import (
	"strings"

	"github.com/mgleavitt/lockquests/internal/cache"
	"github.com/mgleavitt/lockquests/internal/database"
	"github.com/mgleavitt/lockquests/internal/photos"
	"github.com/mgleavitt/lockquests/internal/source"
)

// SheetsSourceConfig converts the application source configuration into the
// source package representation.
func (c SourceConfig) SheetsSourceConfig() source.SheetsConfig {
	return source.SheetsConfig{
		BaseURL:    strings.TrimSpace(c.BaseURL),
		SheetID:    strings.TrimSpace(c.SheetID),
		APIKey:     strings.TrimSpace(c.APIKey),
		SheetRange: c.SheetRange,
		Timeout:    c.Timeout,
	}
}

// WorkbookSourceConfig converts the application source configuration into the
// workbook representation.
func (c SourceConfig) WorkbookSourceConfig() source.WorkbookConfig {
	return source.WorkbookConfig{
		Path:  strings.TrimSpace(c.WorkbookPath),
		Sheet: strings.TrimSpace(c.WorkbookSheet),
	}
}

// ResolverConfig converts the photo configuration into the photos package
// representation.
func (c PhotosConfig) ResolverConfig() photos.Config {
	return photos.Config{
		BaseURL: strings.TrimSpace(c.BaseURL),
		Timeout: c.Timeout,
	}
}

// RedisClientConfig converts the cache configuration into the cache package
// representation.
func (c CacheConfig) RedisClientConfig() cache.RedisConfig {
	return cache.RedisConfig{
		Address:  strings.TrimSpace(c.Redis.Address),
		Username: strings.TrimSpace(c.Redis.Username),
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
		TLS:      c.Redis.TLS,
		Timeout:  c.Redis.Timeout,
	}
}

// ConnectionConfig converts the database configuration into the database
// package representation, resolving the host based drivers when enabled.
func (c DatabaseConfig) ConnectionConfig() database.Config {
	cfg := database.Config{
		Driver: strings.ToLower(strings.TrimSpace(c.Driver)),
		Path:   c.Path,
		DSN:    c.DSN,
	}

	switch cfg.Driver {
	case "postgres", "postgresql":
		if c.Postgres.Enabled {
			cfg.Host = c.Postgres.Host
			cfg.Port = c.Postgres.Port
			cfg.Name = c.Postgres.Database
			cfg.User = c.Postgres.Username
			cfg.Password = c.Postgres.Password
		}
	case "mysql":
		if c.MySQL.Enabled {
			cfg.Host = c.MySQL.Host
			cfg.Port = c.MySQL.Port
			cfg.Name = c.MySQL.Database
			cfg.User = c.MySQL.Username
			cfg.Password = c.MySQL.Password
		}
	}

	return cfg
}
