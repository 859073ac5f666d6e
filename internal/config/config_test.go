package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ROOM_URL", "")
	t.Setenv("ROOM_STORE", "")
	os.Unsetenv("ROOM_STORE")
	os.Unsetenv("ROOM_WS_PATH")
	os.Unsetenv("ROOM_NOTIFICATIONS")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ".roomclient.env", cfg.StorePath)
	assert.Equal(t, "/ws", cfg.WSPath)
	assert.Equal(t, "granted", cfg.Notifications)
}

func TestLoad_DotenvFile(t *testing.T) {
	t.Setenv("ROOM_URL", "")
	os.Unsetenv("ROOM_URL")
	t.Setenv("ROOM_NOTIFICATIONS", "")
	os.Unsetenv("ROOM_NOTIFICATIONS")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ROOM_URL=http://h/room/r9\nROOM_NOTIFICATIONS=denied\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://h/room/r9", cfg.RoomURL)
	assert.Equal(t, "denied", cfg.Notifications)
}
