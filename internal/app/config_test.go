package app

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromFile(t *testing.T) {
	path := filepath.Join("testdata")
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "debug", cfg.Server.LogLevel)

	require.Equal(t, "sheets", cfg.Source.Driver)
	require.Equal(t, "1abcDEFghiJKLmnoPQRstuVWxyz", cfg.Source.SheetID)
	require.Equal(t, "Rooms!A:Z", cfg.Source.SheetRange)
	require.Equal(t, 30*time.Second, cfg.Source.Timeout)
	require.True(t, cfg.Source.Configured())

	require.Equal(t, "https://photos.example.com/rooms", cfg.Photos.BaseURL)
	require.Equal(t, 2*time.Second, cfg.Photos.Timeout)
	require.Equal(t, 4, cfg.Photos.Concurrency)

	require.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	require.Equal(t, "7", cfg.Cache.Version)
	require.True(t, cfg.Cache.Redis.Enabled)
	require.Equal(t, "redis.example.com:6380", cfg.Cache.Redis.Address)
	require.Equal(t, 3, cfg.Cache.Redis.DB)

	require.Equal(t, "postgres", cfg.Database.Driver)
	require.True(t, cfg.Database.Postgres.Enabled)
	require.Equal(t, "db.example.com", cfg.Database.Postgres.Host)

	require.False(t, cfg.Refresh.Enabled)
	require.Equal(t, "@every 30m", cfg.Refresh.Schedule)
	require.Equal(t, "@daily", cfg.Refresh.SweepSchedule, "sweep schedule keeps its default")

	require.Equal(t, 10, cfg.RateLimit.Max)
	require.Equal(t, 30*time.Second, cfg.RateLimit.Window)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, "info", cfg.Server.LogLevel)
	require.Equal(t, "sheets", cfg.Source.Driver)
	require.Equal(t, "Master List!A:Z", cfg.Source.SheetRange)
	require.Equal(t, 15*time.Second, cfg.Source.Timeout)
	require.Equal(t, 10*time.Minute, cfg.Cache.TTL)
	require.Equal(t, "1", cfg.Cache.Version)
	require.Equal(t, "sqlite", cfg.Database.Driver)
	require.Equal(t, "./data/lockquests.sqlite", cfg.Database.Path)
	require.Equal(t, 8, cfg.Photos.Concurrency)
	require.Equal(t, "@every 10m", cfg.Refresh.Schedule)
	require.True(t, cfg.Monitoring.Prometheus.Enabled)

	// Placeholder credentials leave the source unconfigured.
	require.Equal(t, PlaceholderSheetID, cfg.Source.SheetID)
	require.False(t, cfg.Source.Configured())
}

func TestSourceConfigured(t *testing.T) {
	cases := []struct {
		name string
		cfg  SourceConfig
		want bool
	}{
		{"placeholders", SourceConfig{Driver: "sheets", SheetID: PlaceholderSheetID, APIKey: PlaceholderAPIKey}, false},
		{"missing key", SourceConfig{Driver: "sheets", SheetID: "real-id"}, false},
		{"real credentials", SourceConfig{Driver: "sheets", SheetID: "real-id", APIKey: "real-key"}, true},
		{"workbook without path", SourceConfig{Driver: "workbook"}, false},
		{"workbook with path", SourceConfig{Driver: "workbook", WorkbookPath: "./rooms.xlsx"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.cfg.Configured())
		})
	}
}

func TestDatabaseConnectionConfig(t *testing.T) {
	cfg := DatabaseConfig{
		Driver: "Postgres",
		Postgres: DBAuthConfig{
			Enabled:  true,
			Host:     "db.example.com",
			Port:     5433,
			Database: "lockquests",
			Username: "catalog",
			Password: "s3cret",
		},
	}

	conn := cfg.ConnectionConfig()
	require.Equal(t, "postgres", conn.Driver)
	require.Equal(t, "db.example.com", conn.Host)
	require.Equal(t, 5433, conn.Port)
	require.Equal(t, "lockquests", conn.Name)

	// Disabled host blocks fall through to DSN/path only.
	conn = DatabaseConfig{Driver: "mysql", DSN: "raw-dsn"}.ConnectionConfig()
	require.Equal(t, "mysql", conn.Driver)
	require.Empty(t, conn.Host)
	require.Equal(t, "raw-dsn", conn.DSN)
}
