package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  secret: "test-secret"
storage:
  dir: "data"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, time.Duration(0), cfg.Auth.TTL())
	assert.Equal(t, "exports", cfg.Exports.Path)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("TEST_AUTH_SECRET", "from-env")

	path := writeConfig(t, `
auth:
  secret: "${TEST_AUTH_SECRET}"
storage:
  dir: "data"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Auth.Secret)
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeConfig(t, `
storage:
  dir: "data"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth secret is required")
}

func TestLoadRejectsBadTTL(t *testing.T) {
	path := writeConfig(t, `
auth:
  secret: "s"
  token_ttl: "soon"
storage:
  dir: "data"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token_ttl")
}

func TestAuthTTLParsing(t *testing.T) {
	a := AuthConfig{TokenTTL: "24h"}
	assert.Equal(t, 24*time.Hour, a.TTL())

	a = AuthConfig{}
	assert.Equal(t, time.Duration(0), a.TTL())
}

func TestCacheTTL(t *testing.T) {
	c := CacheConfig{TTLSeconds: 60}
	assert.Equal(t, time.Minute, c.TTL())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
