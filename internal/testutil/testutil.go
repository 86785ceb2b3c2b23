// Package testutil provides an in-memory catalog store for package tests.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/javajoker/games-api/internal/config"
	"github.com/javajoker/games-api/internal/database"
)

// NewTestDB opens a private in-memory SQLite store with the full schema.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to ":memory:" is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.RunMigrations(db))
	return db
}

// NewTestConfig returns a development configuration with rate limiting,
// caching and API keys off.
func NewTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			Path:   ":memory:",
		},
		JWT: config.JWTConfig{
			SecretKey:  "test-secret",
			SessionTTL: 1,
		},
		API: config.APIConfig{
			TokenTTLMinutes: 60,
		},
		I18n: config.I18nConfig{
			DefaultLocale: "en",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
		},
	}
}
