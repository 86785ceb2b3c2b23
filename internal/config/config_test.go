package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 24, cfg.JWT.SessionTTL)
	assert.Equal(t, 60, cfg.API.TokenTTLMinutes)
	assert.False(t, cfg.API.RequireToken)
	assert.False(t, cfg.Redis.Enabled())
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.RateLimit.Enabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/data/steam.sqlite")
	t.Setenv("API_REQUIRE_TOKEN", "TRUE")
	t.Setenv("API_TOKEN_TTL_MINUTES", "15")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("JWT_SESSION_TTL", "oops")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/data/steam.sqlite", cfg.Database.DSN())
	assert.True(t, cfg.API.RequireToken)
	assert.Equal(t, 15, cfg.API.TokenTTLMinutes)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "cache:6379", cfg.Redis.Addr())
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 24, cfg.JWT.SessionTTL)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: "production",
			Database:    DatabaseConfig{Driver: "postgres", Password: "secret"},
			JWT:         JWTConfig{SecretKey: "real-secret"},
			API:         APIConfig{TokenTTLMinutes: 60},
		}
	}
	assert.NoError(t, valid().Validate())

	cfg := valid()
	cfg.JWT.SecretKey = defaultJWTSecret
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.API.TokenTTLMinutes = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.RateLimit = RateLimitConfig{Enabled: true}
	assert.Error(t, cfg.Validate())
}

func TestValidate_CacheOutlivesPresignedURLs(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Driver: "sqlite"},
		API:      APIConfig{TokenTTLMinutes: 60, CacheTTLSeconds: 900},
		Redis:    RedisConfig{Host: "cache"},
		AWS:      AWSConfig{AccessKeyID: "AKIAEXAMPLE", PresignTTLMinutes: 15},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "presign TTL")

	cfg.API.CacheTTLSeconds = 899
	assert.NoError(t, cfg.Validate())

	// No S3 client means header images are not presigned
	cfg.API.CacheTTLSeconds = 3600
	cfg.AWS.AccessKeyID = ""
	assert.NoError(t, cfg.Validate())

	// Nothing is cached without Redis
	cfg.AWS.AccessKeyID = "AKIAEXAMPLE"
	cfg.Redis.Host = ""
	assert.NoError(t, cfg.Validate())
}
