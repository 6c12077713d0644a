// Package config loads client and server settings from the environment.
// Command-line flags layered on top by the entrypoints take precedence.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Client configures the TUI and its remote store client.
type Client struct {
	APIBaseURL string        `env:"TODOSYNC_API_URL" envDefault:"http://localhost:8080"`
	UserID     int64         `env:"TODOSYNC_USER_ID" envDefault:"1"`
	Timeout    time.Duration `env:"TODOSYNC_TIMEOUT" envDefault:"5s"`
}

// Server configures the local CRUD server.
type Server struct {
	Addr   string `env:"TODOSYNC_ADDR" envDefault:"localhost:8080"`
	DBPath string `env:"TODOSYNC_DB" envDefault:"todosync.sqlite3"`
}

// LoadClient reads client settings from the environment.
func LoadClient() (Client, error) {
	var c Client
	if err := env.Parse(&c); err != nil {
		return Client{}, fmt.Errorf("parse env: %w", err)
	}
	return c, nil
}

// LoadServer reads server settings from the environment.
func LoadServer() (Server, error) {
	var s Server
	if err := env.Parse(&s); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}
