package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dsmmcken/osh/internal/oshlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withTempBaseDir(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	SetBaseDir(tmp)
	t.Cleanup(func() { SetBaseDir("") })
	return tmp
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	withTempBaseDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "", cfg.DefaultMode)
	assert.Equal(t, 0, cfg.LockTimeout)
}

func TestLoadValidConfig(t *testing.T) {
	tmp := withTempBaseDir(t)

	content := "default_mode = \"bag\"\nlock_timeout_seconds = 10\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "config.toml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "bag", cfg.DefaultMode)
	assert.Equal(t, 10, cfg.LockTimeout)
}

func TestLoadMalformedTOML(t *testing.T) {
	tmp := withTempBaseDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "config.toml"), []byte("not valid [[ toml"), 0o644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestSaveThenLoadRoundtrip(t *testing.T) {
	withTempBaseDir(t)

	require.NoError(t, Save(&Config{DefaultMode: "session", LockTimeout: 7}))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "session", cfg.DefaultMode)
	assert.Equal(t, 7, cfg.LockTimeout)
}

func TestEnsureDirCreatesDirectory(t *testing.T) {
	tmp := t.TempDir()
	newDir := filepath.Join(tmp, "subdir", ".osh")
	SetBaseDir(newDir)
	defer SetBaseDir("")

	require.NoError(t, EnsureDir())

	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestBaseDirPrecedence(t *testing.T) {
	defer SetBaseDir("")
	defer os.Unsetenv("OSH_HOME")

	require.NoError(t, os.Setenv("OSH_HOME", "/from/env"))
	assert.Equal(t, "/from/env", BaseDir())

	SetBaseDir("/from/flag")
	assert.Equal(t, "/from/flag", BaseDir())
}

func TestConfigPath(t *testing.T) {
	tmp := withTempBaseDir(t)
	assert.Equal(t, filepath.Join(tmp, "config.toml"), ConfigPath())
}

func TestResolveModePrecedence(t *testing.T) {
	withTempBaseDir(t)

	assert.Equal(t, "all", ResolveMode("", ""), "falls back to built-in default")

	require.NoError(t, Save(&Config{DefaultMode: "folder"}))
	assert.Equal(t, "folder", ResolveMode("", ""), "config.toml beats built-in default")

	assert.Equal(t, "session", ResolveMode("", "session"), "env beats config.toml")
	assert.Equal(t, "bag", ResolveMode("bag", "session"), "flag beats env")
}

func TestResolveLockTimeoutPrecedence(t *testing.T) {
	withTempBaseDir(t)

	assert.Equal(t, oshlog.DefaultLockTimeout, ResolveLockTimeout(0, 0), "falls back to built-in default")

	require.NoError(t, Save(&Config{LockTimeout: 20}))
	assert.Equal(t, 20*time.Second, ResolveLockTimeout(0, 0), "config.toml beats built-in default")

	assert.Equal(t, 15*time.Second, ResolveLockTimeout(0, 15), "env beats config.toml")
	assert.Equal(t, 3*time.Second, ResolveLockTimeout(3, 15), "flag beats env")
}

func TestResolveHomePrefix(t *testing.T) {
	withTempBaseDir(t)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, home, ResolveHomePrefix(), "falls back to os.UserHomeDir")

	require.NoError(t, Save(&Config{HomePrefix: "/custom/home"}))
	assert.Equal(t, "/custom/home", ResolveHomePrefix(), "config.toml beats os.UserHomeDir")
}
