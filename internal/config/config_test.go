package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsetenv clears keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetenv(t, "PORT", "SESSION_TTL", "REQUEST_TIMEOUT", "ADMIN_USER")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "admin", cfg.Admin.User)
}

func TestLoadEnv(t *testing.T) {
	unsetenv(t, "WORDS_DB")
	t.Setenv("PORT", "9000")
	t.Setenv("WORDS_FILE", "/tmp/words.txt")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("FILTER_WORKERS", "2")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "/tmp/words.txt", cfg.Words.File)
	assert.Equal(t, 90*time.Minute, cfg.Session.TTL)
	assert.Equal(t, 2, cfg.FilterWorkers)
}

func TestLoadYAML(t *testing.T) {
	unsetenv(t, "PORT", "RATE_LIMIT", "WORDS_DB", "ADMIN_USER")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "8081"
rate_limit: 7
words:
  db: /data/words.db
admin:
  user: root
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "8081", cfg.Port)
	assert.Equal(t, 7, cfg.RateLimit)
	assert.Equal(t, "/data/words.db", cfg.Words.DB)
	assert.Equal(t, "root", cfg.Admin.User)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
