package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setS3Env(t *testing.T) {
	t.Helper()
	t.Setenv("S3_BUCKET_NAME", "carrot")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000/")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
}

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	setS3Env(t)
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("ASSET_BASE_URL", "")
	t.Setenv("ALLOWED_ORIGINS", " https://a.example , ,https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 168*time.Hour, cfg.SessionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "http://localhost:9000/carrot", cfg.AssetBaseURL)
}

func TestLoadConfig_ProductionRequiresSecrets(t *testing.T) {
	setS3Env(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("SESSION_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoadConfig_RejectsPrivilegedPort(t *testing.T) {
	setS3Env(t)
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "80")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_RejectsShortSessionSecret(t *testing.T) {
	setS3Env(t)
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_SECRET", "short")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_MissingBucket(t *testing.T) {
	setS3Env(t)
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("S3_BUCKET_NAME", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET_NAME")
}
