package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Config holds everything the client needs to reach the pizzaria backend and
// keep its local state. Values come from the environment with a PIZZARIA_
// prefix; a .env file in the working directory is loaded first when present.
type Config struct {
	APIURL  string        `envconfig:"API_URL" default:"http://localhost:5000"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"10s"`
	DBPath  string        `envconfig:"DB_PATH" default:"pizzaria-client.db"`
	Debug   bool          `envconfig:"DEBUG" default:"false"`
}

func Load() (*Config, error) {
	// Missing .env is fine, the environment alone is enough.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("pizzaria", &cfg); err != nil {
		return nil, errors.Wrap(err, "parse environment")
	}
	return &cfg, nil
}
