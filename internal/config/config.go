// internal/config/config.go
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the process configuration, read from the environment. A .env file
// is honored via godotenv's autoload import in cmd/server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel is any level name logrus understands (trace, debug, info, ...).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// EventBuffer is the per-connection outbound queue size. A member whose queue
	// fills up has events dropped rather than stalling the lobby.
	EventBuffer int `env:"EVENT_BUFFER" envDefault:"32"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Addr returns the listen address for http.ListenAndServe.
func (c Config) Addr() string {
	return ":" + c.Port
}
