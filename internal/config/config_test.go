package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateClampsOutOfRange(t *testing.T) {
	cfg := &Config{ViewRadius: -1, IdleTimeoutSeconds: 0, MaxPlayers: 0, AssetArchivePath: "a.zip"}
	require.NoError(t, cfg.Validate())
	require.Equal(t, int32(6), cfg.ViewRadius)
	require.Equal(t, int32(30), cfg.IdleTimeoutSeconds)
	require.Equal(t, int32(20), cfg.MaxPlayers)
	require.Equal(t, "0.0.0.0:5520", cfg.ListenAddr)
}

func TestValidateRejectsMissingArchivePath(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Validate())
}

func TestLoadParsesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.toml")
	body := "listenAddr = \"127.0.0.1:6000\"\nassetArchivePath = \"assets.zip\"\nviewRadius = 4\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:6000", cfg.ListenAddr)
	require.Equal(t, int32(4), cfg.ViewRadius)
}

func TestLoadWorldSettingsDefaults(t *testing.T) {
	ws, err := LoadWorldSettings("")
	require.NoError(t, err)
	require.Equal(t, DefaultWorldSettings(), ws)
}

func TestLoadWorldSettingsYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.yaml")
	body := "spawnX: 10\nspawnY: 70\nspawnZ: -3\ndefaultTintArgb: 4285151016\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	ws, err := LoadWorldSettings(path)
	require.NoError(t, err)
	require.Equal(t, float32(10), ws.SpawnX)
	require.Equal(t, float32(70), ws.SpawnY)
	require.Equal(t, float32(-3), ws.SpawnZ)
}
