package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Mode     string `mapstructure:"mode"`
	Timezone string `mapstructure:"timezone"`
}

// DatabaseConfig describes the single local SQLite file backing the bot.
type DatabaseConfig struct {
	Path            string `mapstructure:"path"`
	BusyTimeoutMS   int    `mapstructure:"busy_timeout_ms"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	SlowThresholdMS int    `mapstructure:"slow_threshold_ms"`
	// Synchronous is passed to PRAGMA synchronous when set (OFF, NORMAL, FULL).
	Synchronous string `mapstructure:"synchronous"`
}

// GetDSN returns the go-sqlite3 DSN for the configured file.
func (d *DatabaseConfig) GetDSN() string {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on", d.Path, d.BusyTimeoutMS)
	if d.Synchronous != "" {
		dsn += "&_synchronous=" + d.Synchronous
	}
	return dsn
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
	// Rotation limits, used only when OutputPath is a file.
	MaxSizeMB  int `mapstructure:"max_size_mb"`
	MaxBackups int `mapstructure:"max_backups"`
	MaxAgeDays int `mapstructure:"max_age_days"`
}

type TicketsConfig struct {
	RetentionDays   int           `mapstructure:"retention_days"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	// CleanupCron, when set, replaces CleanupInterval with a cron schedule
	// evaluated in the server timezone.
	CleanupCron      string `mapstructure:"cleanup_cron"`
	MaxMessageLength int    `mapstructure:"max_message_length"`
}
