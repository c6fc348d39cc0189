package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("PORT", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("SESSION_TTL", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", c.HTTPPort)
	assert.Equal(t, 7*24*time.Hour, c.SessionTTL)
	assert.Equal(t, int64(10*1024*1024), c.MaxUploadBytes)
	assert.Equal(t, devSecret, c.JWTSecret)
	assert.Equal(t, "photos", c.Storage.Bucket)
	assert.False(t, c.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "24h")
	t.Setenv("DATABASE_URL", "postgres://localhost/twogether")
	t.Setenv("STORAGE_BUCKET", "memories")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", c.HTTPPort)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.Equal(t, "postgres://localhost/twogether", c.DatabaseURL)
	assert.Equal(t, "s3cret", c.JWTSecret)
	assert.Equal(t, "memories", c.Storage.Bucket)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "twogether.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt_secret: from-file\ncors_origin: https://app.example.com\n"), 0o600))
	t.Setenv("TWOGETHER_CONFIG", path)
	t.Setenv("JWT_SECRET", "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com", c.CORSOrigin)
}

func TestProductionRequiresSecrets(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://db/twogether")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "")

	_, err = Load()
	assert.Error(t, err)
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory for the duration of the test and restores it after.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
