package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.True(t, cfg.Server.Scan)
	assert.Equal(t, 10, cfg.Server.MaxAttempts)
	assert.Equal(t, "", cfg.Server.Root)
	assert.Equal(t, "cwd", cfg.Server.RootMode)
	assert.True(t, cfg.Server.Open)
	assert.Equal(t, "/rainfall_charts.html", cfg.Server.Landing)
	assert.Equal(t, []string{"index.html=Temperature Charts", "rainfall_charts.html=Rainfall Charts"}, cfg.Server.Pages)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("SERVER_SCAN", "false")
	t.Setenv("SERVER_MAX_ATTEMPTS", "3")
	t.Setenv("SERVER_ROOT_MODE", "executable")
	t.Setenv("SERVER_OPEN", "0")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "250ms")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.False(t, cfg.Server.Scan)
	assert.Equal(t, 3, cfg.Server.MaxAttempts)
	assert.Equal(t, "executable", cfg.Server.RootMode)
	assert.False(t, cfg.Server.Open)
	assert.Equal(t, 250*time.Millisecond, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "json", cfg.Log.Format)
}

// unsetEnv removes keys for the rest of the test. t.Setenv records the
// caller's values first so they come back afterwards; godotenv skips keys
// that exist even when empty, hence the unset.
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadConfig_DotEnvRestoresEnv(t *testing.T) {
	t.Setenv("SERVER_HOST", "dev.local")

	t.Run("load", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_HOST=0.0.0.0\n"), 0o644))
		unsetEnv(t, "SERVER_HOST")

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	})

	assert.Equal(t, "dev.local", os.Getenv("SERVER_HOST"))
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "SERVER_HOST=0.0.0.0\nSERVER_LANDING=/index.html\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))
	unsetEnv(t, "SERVER_HOST", "SERVER_LANDING")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "/index.html", cfg.Server.Landing)
}

func TestLoadConfig_EnvWinsOverDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SERVER_PORT=9300\n"), 0o644))
	t.Setenv("SERVER_PORT", "9200")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, 9200, cfg.Server.Port)
}

func TestLoadConfig_BadValue(t *testing.T) {
	t.Setenv("SERVER_PORT", "eighty")

	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	bad := *cfg
	bad.Log.Format = "xml"
	assert.Error(t, bad.Validate())

	bad = *cfg
	bad.Server.Port = 0
	assert.Error(t, bad.Validate())
}
