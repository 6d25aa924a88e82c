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
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("DB_DSN", "")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.APIPort)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, TokenStoreSQL, cfg.TokenStore)
	assert.False(t, cfg.EnforceOwnership)
	assert.Equal(t, 72*time.Hour, cfg.JWTExp())
	assert.Contains(t, cfg.DBConnStr, "dbname=blog_db")
}

func TestLoadYAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlBody := `
api_port: "9000"
db_driver: sqlite3
sqlite_path: /tmp/blog.db
enforce_ownership: true
jwt_expiration_hours: 1
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))
	t.Setenv("API_PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.APIPort, "environment overrides the file")
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "/tmp/blog.db", cfg.SQLitePath)
	assert.True(t, cfg.EnforceOwnership)
	assert.Equal(t, time.Hour, cfg.JWTExp())
	assert.Empty(t, cfg.DBConnStr, "no pg DSN is assembled for sqlite")
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load("")
	assert.ErrorContains(t, err, "DB_DRIVER")
}

func TestLoadRejectsUnknownTokenStore(t *testing.T) {
	t.Setenv("TOKEN_STORE", "memcached")

	_, err := Load("")
	assert.ErrorContains(t, err, "TOKEN_STORE")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestWriteTimeoutOutlastsRequestTimeout(t *testing.T) {
	cfg := &Config{RequestTimeoutSeconds: 60}
	assert.Greater(t, cfg.WriteTimeout(), cfg.RequestTimeout())

	cfg = &Config{}
	assert.Equal(t, 10*time.Second, cfg.WriteTimeout())
}
