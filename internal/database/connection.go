// internal/database/connection.go
package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/games-api/internal/config"
	"github.com/javajoker/games-api/internal/models"
)

func Initialize(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel(cfg.LogLevel)),
		TranslateError: true,
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	// Connect to database
	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Second)

	// Test connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.WithField("driver", cfg.Driver).Info("Database connection established successfully")
	return db, nil
}

func logLevel(level string) logger.LogLevel {
	switch level {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logrus.WithError(err).Error("Error getting underlying sql.DB")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logrus.WithError(err).Error("Error closing database connection")
	} else {
		logrus.Info("Database connection closed successfully")
	}
}

// Ping checks the store is reachable; used by the health endpoint.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// RunMigrations creates the account tables and, when they are missing,
// the catalog tables. Existing catalog tables are left untouched because
// they belong to the ingestion job.
func RunMigrations(db *gorm.DB) error {
	logrus.Info("Running database migrations...")

	if err := db.AutoMigrate(models.AccountModels()...); err != nil {
		return fmt.Errorf("failed to run account migrations: %w", err)
	}

	for _, model := range models.CatalogModels() {
		if db.Migrator().HasTable(model) {
			continue
		}
		if err := db.Migrator().CreateTable(model); err != nil {
			return fmt.Errorf("failed to create catalog table: %w", err)
		}
	}

	// Create indexes
	if err := createIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	logrus.Info("Database migrations completed successfully")
	return nil
}

func createIndexes(db *gorm.DB) error {
	indexes := []string{
		// Link tables are keyed (appid, facet id); reverse lookups by facet id
		// drive the facet-name filters.
		"CREATE INDEX IF NOT EXISTS idx_game_genres_genre ON game_genres(genre_id)",
		"CREATE INDEX IF NOT EXISTS idx_game_platforms_platform ON game_platforms(platform_id)",
		"CREATE INDEX IF NOT EXISTS idx_game_categories_category ON game_categories(category_id)",
		"CREATE INDEX IF NOT EXISTS idx_game_steamspy_tags_tag ON game_steamspy_tags(steamspy_tag_id)",

		// Facet names
		"CREATE INDEX IF NOT EXISTS idx_genres_name ON genres(genre_name)",
		"CREATE INDEX IF NOT EXISTS idx_platforms_name ON platforms(platform_name)",
		"CREATE INDEX IF NOT EXISTS idx_categories_name ON categories(category_name)",
		"CREATE INDEX IF NOT EXISTS idx_steamspy_tags_name ON steamspy_tags(tag_name)",

		// Game filters
		"CREATE INDEX IF NOT EXISTS idx_games_release_date ON games(release_date)",
		"CREATE INDEX IF NOT EXISTS idx_games_price ON games(price)",

		// Access tokens
		"CREATE INDEX IF NOT EXISTS idx_access_tokens_expires ON access_tokens(expires_at)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			logrus.WithError(err).WithField("index", index).Warn("Failed to create index")
			// Continue with other indexes instead of failing completely
		}
	}

	return nil
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
