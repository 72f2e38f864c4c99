package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":4567", cfg.Addr)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "todolists:session:", cfg.RedisPrefix)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoad_FileEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	yaml := "addr: \":9000\"\nstore: file\nstore_path: /tmp/sessions\nsession_ttl: 1h\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todolists.yaml"), []byte(yaml), 0o644))
	t.Setenv("TODOLISTS_ADDR", ":9100")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.Addr, "env beats file")
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "/tmp/sessions", cfg.StorePath)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.True(t, strings.HasSuffix(cfg.ConfigFile, "todolists.yaml"))
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TODOLISTS_LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("TODOLISTS_LOG_LEVEL") })

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(viper.New(), "nope.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{Addr: ":1", Store: "mongo"}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Addr: ":1", Store: " Redis "}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, StoreRedis, cfg.Store)

	cfg = &Config{Addr: ":1", Store: StoreMemory, EncryptionKey: "short"}
	assert.Error(t, cfg.Validate())
}

func TestEncryptionKeys(t *testing.T) {
	hexKey := strings.Repeat("ab", 32)
	rawKey := strings.Repeat("k", 32)
	cfg := &Config{EncryptionKey: hexKey, EncryptionFallbackKeys: []string{rawKey}}

	active, fallback, err := cfg.EncryptionKeys()
	require.NoError(t, err)
	assert.Len(t, active, 32)
	assert.Equal(t, byte(0xab), active[0])
	require.Len(t, fallback, 1)
	assert.Equal(t, []byte(rawKey), fallback[0])

	off := &Config{}
	active, _, err = off.EncryptionKeys()
	require.NoError(t, err)
	assert.Nil(t, active)
}
