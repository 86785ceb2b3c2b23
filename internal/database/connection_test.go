package database

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/javajoker/games-api/internal/config"
	"github.com/javajoker/games-api/internal/models"
)

func openTempSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Initialize(config.DatabaseConfig{
		Driver:       "sqlite",
		Path:         filepath.Join(t.TempDir(), "steam.sqlite"),
		MaxOpenConns: 4,
		MaxIdleConns: 4,
		LogLevel:     "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { Close(db) })
	return db
}

func TestInitialize_UnsupportedDriver(t *testing.T) {
	_, err := Initialize(config.DatabaseConfig{Driver: "mysql"})
	assert.Error(t, err)
}

func TestRunMigrations_CreatesSchemaIdempotently(t *testing.T) {
	db := openTempSQLite(t)

	require.NoError(t, RunMigrations(db))
	require.NoError(t, RunMigrations(db))

	for _, model := range append(models.CatalogModels(), models.AccountModels()...) {
		assert.True(t, db.Migrator().HasTable(model), "%T", model)
	}
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "Email"))
	assert.NoError(t, Ping(db))
}

func TestRunMigrations_LeavesExistingCatalogAlone(t *testing.T) {
	db := openTempSQLite(t)

	// An ingested table with an extra column the models do not know about
	require.NoError(t, db.Exec("CREATE TABLE games (appid INTEGER PRIMARY KEY, name TEXT NOT NULL, extra TEXT)").Error)
	require.NoError(t, RunMigrations(db))

	assert.True(t, db.Migrator().HasColumn("games", "extra"))
	assert.False(t, db.Migrator().HasColumn("games", "price"))
}

func TestWithTransaction(t *testing.T) {
	db := openTempSQLite(t)
	require.NoError(t, RunMigrations(db))

	boom := errors.New("boom")
	err := WithTransaction(db, func(tx *gorm.DB) error {
		require.NoError(t, tx.Create(&models.Genre{GenreID: 1, GenreName: "Action"}).Error)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var count int64
	db.Model(&models.Genre{}).Count(&count)
	assert.Zero(t, count)

	require.NoError(t, WithTransaction(db, func(tx *gorm.DB) error {
		return tx.Create(&models.Genre{GenreID: 1, GenreName: "Action"}).Error
	}))
	db.Model(&models.Genre{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
