package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
env = "test"

[api_server]
port = "9000"

[star_path]
check_in_base_points = 75
streak_threshold = 2
snapshot_ttl = "30s"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	t.Setenv("REDIS_ADDRESS", "redis:6380")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "test", cfg.Env)
	require.Equal(t, "9000", cfg.ApiServer.Port)
	require.Equal(t, 50, cfg.ApiServer.MaxLimit)
	require.Equal(t, int64(75), cfg.StarPath.CheckInBasePoints)
	require.Equal(t, 2, cfg.StarPath.StreakThreshold)
	require.Equal(t, 30*time.Second, cfg.StarPath.SnapshotTTL)
	require.Equal(t, "redis:6380", cfg.Redis.Addr)
}

func TestLoad_InvalidThreshold(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[star_path]\nstreak_threshold = 0\n"), 0600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, int64(50), cfg.StarPath.CheckInBasePoints)
	require.Equal(t, int64(40), cfg.StarPath.VideoScoreFloor)
}
