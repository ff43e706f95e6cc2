package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origDriver := os.Getenv("DB_DRIVER")
	defer os.Setenv("DB_DRIVER", origDriver)

	os.Setenv("DB_DRIVER", "postgres")
	os.Setenv("DB_HOST", "test-host")
	os.Setenv("DB_MAX_OPEN_CONNS", "20")
	os.Setenv("BASE_URL", "archive.example.com/")
	os.Setenv("SHELVES", "A, B ,C")
	os.Setenv("STORAGE_BACKEND", "minio")
	os.Setenv("MINIO_USE_SSL", "true")
	defer func() {
		for _, k := range []string{"DB_HOST", "DB_MAX_OPEN_CONNS", "BASE_URL", "SHELVES", "STORAGE_BACKEND", "MINIO_USE_SSL"} {
			os.Unsetenv(k)
		}
	}()

	cfg := Load()

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.Equal(t, "https://archive.example.com", cfg.BaseURL)
	assert.Equal(t, []string{"A", "B", "C"}, cfg.Shelves)
	assert.Equal(t, "minio", cfg.Storage.Backend)
	assert.True(t, cfg.Storage.MinIO.UseSSL)
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"DB_DRIVER", "SQLITE_PATH", "BASE_URL", "SHELVES", "STORAGE_BACKEND"} {
		os.Unsetenv(k)
	}

	cfg := Load()

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/arkiv.db", cfg.Database.Path)
	assert.Empty(t, cfg.BaseURL)
	assert.Equal(t, []string{"A", "B", "C", "D"}, cfg.Shelves)
	assert.Equal(t, StorageNone, cfg.Storage.Backend)
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "", normalizeBaseURL(""))
	assert.Equal(t, "https://app.up.railway.app", normalizeBaseURL("app.up.railway.app"))
	assert.Equal(t, "http://localhost:8080", normalizeBaseURL("http://localhost:8080/"))
	assert.Equal(t, "https://example.com", normalizeBaseURL("https://example.com"))
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
