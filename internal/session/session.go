package session

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	TeamKey     = "my_team"
	DefaultTeam = "team1"
)

var ErrNoRoomID = errors.New("no room id in page path")

// Config is the identity of one client session. It is computed once at
// load and never changes afterwards.
type Config struct {
	RoomID string
	Team   string
	// BaseURL is scheme://host of the page, used for REST and the socket.
	BaseURL string
}

// RoomIDFromPath returns the third slash-separated segment, so "/room/ab12"
// yields "ab12".
func RoomIDFromPath(path string) string {
	parts := strings.Split(path, "/")
	if len(parts) < 3 {
		return ""
	}
	return parts[2]
}

// Load derives the session from the page URL and the team stored under
// TeamKey. A missing or empty team falls back to DefaultTeam.
func Load(pageURL string, store Storage) (Config, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return Config{}, fmt.Errorf("parse page url: %w", err)
	}
	roomID := RoomIDFromPath(u.Path)
	if roomID == "" {
		return Config{}, fmt.Errorf("%q: %w", u.Path, ErrNoRoomID)
	}

	team, ok, err := store.Get(TeamKey)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", TeamKey, err)
	}
	if !ok || team == "" {
		team = DefaultTeam
	}

	return Config{
		RoomID:  roomID,
		Team:    team,
		BaseURL: (&url.URL{Scheme: u.Scheme, Host: u.Host}).String(),
	}, nil
}

// SetTeam changes the stored team. Running sessions do not observe it.
func SetTeam(store Storage, team string) error {
	if team == "" {
		return errors.New("team must not be empty")
	}
	return store.Set(TeamKey, team)
}
