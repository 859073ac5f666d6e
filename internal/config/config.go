package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	// RoomURL is the page address of the room, e.g. http://host:5000/room/ab12cd34.
	RoomURL       string `env:"ROOM_URL"`
	StorePath     string `env:"ROOM_STORE" envDefault:".roomclient.env"`
	WSPath        string `env:"ROOM_WS_PATH" envDefault:"/ws"`
	Notifications string `env:"ROOM_NOTIFICATIONS" envDefault:"granted"` // granted | denied
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	Dev           bool   `env:"LOG_DEV" envDefault:"false"`
}

// Load reads optional dotenv files into the environment, then parses it.
// Missing dotenv files are not an error.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
