package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomIDFromPath(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/room/ab12cd34", "ab12cd34"},
		{"/room/ab12cd34/", "ab12cd34"},
		{"/room/", ""},
		{"/room", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, RoomIDFromPath(tc.path), "path %q", tc.path)
	}
}

func TestLoad_DefaultsTeam(t *testing.T) {
	cfg, err := Load("http://localhost:5000/room/ab12cd34", NewMemoryStore())
	require.NoError(t, err)

	assert.Equal(t, "ab12cd34", cfg.RoomID)
	assert.Equal(t, DefaultTeam, cfg.Team)
	assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
}

func TestLoad_ReadsStoredTeam(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, SetTeam(store, "team2"))

	cfg, err := Load("https://duel.example/room/r1", store)
	require.NoError(t, err)
	assert.Equal(t, "team2", cfg.Team)
}

func TestLoad_EmptyStoredTeamFallsBack(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set(TeamKey, ""))

	cfg, err := Load("http://h/room/r1", store)
	require.NoError(t, err)
	assert.Equal(t, DefaultTeam, cfg.Team)
}

func TestLoad_NoRoom(t *testing.T) {
	_, err := Load("http://h/", NewMemoryStore())
	if !errors.Is(err, ErrNoRoomID) {
		t.Fatalf("want ErrNoRoomID, got %v", err)
	}
}

func TestSetTeam_RejectsEmpty(t *testing.T) {
	assert.Error(t, SetTeam(NewMemoryStore(), ""))
}

func TestDotenvStore_RoundTripsThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.env")
	store := NewDotenvStore(path)

	_, ok, err := store.Get(TeamKey)
	require.NoError(t, err)
	assert.False(t, ok, "missing file reads as empty")

	require.NoError(t, store.Set(TeamKey, "team2"))
	require.NoError(t, store.Set("other", "x"))

	reopened := NewDotenvStore(path)
	v, ok, err := reopened.Get(TeamKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "team2", v)
}
