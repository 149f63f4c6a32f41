package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ufobot/ufobot/internal/shared/biztime"
	"github.com/ufobot/ufobot/internal/shared/config"
	"github.com/ufobot/ufobot/internal/shared/db"
	appLogger "github.com/ufobot/ufobot/internal/shared/logger"
)

const memoryPath = ":memory:"

// Open opens the SQLite file described by cfg, creating its parent
// directory when missing.
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("database path is required")
	}

	if cfg.Path != memoryPath {
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	slow := time.Duration(cfg.SlowThresholdMS) * time.Millisecond
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}

	gormLogger := logger.New(
		&filteredLogger{},
		logger.Config{
			SlowThreshold:             slow,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	database, err := gorm.Open(sqlite.Open(cfg.GetDSN()), &gorm.Config{
		Logger:         gormLogger,
		NowFunc:        biztime.NowUTC,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// every :memory: connection is its own database
	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 || cfg.Path == memoryPath {
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	appLogger.Info("database connection established", "path", cfg.Path)

	return database, nil
}

// OpenGuard opens the database and wraps it in the connection guard.
func OpenGuard(cfg *config.DatabaseConfig) (*db.Guard, error) {
	database, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	return db.NewGuard(database), nil
}

// filteredLogger forwards gorm's log lines into slog.
type filteredLogger struct{}

func (l *filteredLogger) Printf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	switch {
	case strings.Contains(msg, "[error]") || strings.Contains(msg, "ERROR"):
		appLogger.Error("database error", "details", msg)
	case strings.Contains(msg, "slow sql") || strings.Contains(msg, "SLOW SQL"):
		appLogger.Warn("slow query", "details", msg)
	default:
		appLogger.Debug("database query", "details", msg)
	}
}
