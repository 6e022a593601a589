package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable LoadConfig reads so ambient values never
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENVIRONMENT", "PORT", "ALLOWED_ORIGINS", "JWT_SECRET",
		"CATALOG_API_URL", "CATALOG_DEV_EMAIL", "CATALOG_REFRESH_MINUTES",
		"S3_BUCKET_NAME", "S3_ENDPOINT", "S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY",
		"DATABASE_URL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_DevelopmentDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_API_URL", "https://games.example.com/v1/games")
	t.Setenv("CATALOG_DEV_EMAIL", "dev@example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, 5*time.Second, cfg.CatalogTimeout)
	assert.Equal(t, 30*time.Minute, cfg.CatalogRefresh)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.False(t, cfg.ThumbnailMirrorEnabled())
}

func TestLoadConfig_RequiresCatalogSettings(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("CATALOG_API_URL", "games.example.com")
	_, err = LoadConfig()
	require.Error(t, err)

	t.Setenv("CATALOG_DEV_EMAIL", "dev@example.com")
	cfg, err := LoadConfig()
	require.NoError(t, err)

	// a bare host gets the https scheme prepended
	assert.Equal(t, "https://games.example.com", cfg.CatalogAPIURL)
}

func TestLoadConfig_ProductionRequiresSecrets(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CATALOG_API_URL", "https://games.example.com")
	t.Setenv("CATALOG_DEV_EMAIL", "dev@example.com")

	_, err := LoadConfig()
	require.Error(t, err, "missing JWT_SECRET must fail in production")

	t.Setenv("JWT_SECRET", "prod-secret")
	_, err = LoadConfig()
	require.Error(t, err, "missing DATABASE_URL must fail in production")

	t.Setenv("DATABASE_URL", "postgres://app:pw@db:5432/gamevault")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "prod-secret", cfg.JWTSecret)
}

func TestLoadConfig_ParsesAllowedOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_API_URL", "https://games.example.com")
	t.Setenv("CATALOG_DEV_EMAIL", "dev@example.com")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://staging.example.com ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://staging.example.com"}, cfg.AllowedOrigins)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_API_URL", "https://games.example.com")
	t.Setenv("CATALOG_DEV_EMAIL", "dev@example.com")

	t.Setenv("PORT", "abc")
	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("PORT", "80")
	_, err = LoadConfig()
	require.Error(t, err)
}

func TestLoadConfig_ThumbnailMirrorNeedsFullCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("CATALOG_API_URL", "https://games.example.com")
	t.Setenv("CATALOG_DEV_EMAIL", "dev@example.com")
	t.Setenv("S3_BUCKET_NAME", "thumbs")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("S3_ENDPOINT", "https://s3.example.com")
	t.Setenv("S3_ACCESS_KEY_ID", "key")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.ThumbnailMirrorEnabled())
}
