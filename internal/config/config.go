package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr              string        `env:"DRAFT_ROOM_ADDR"                envDefault:":8080"`
	Dev               bool          `env:"DRAFT_ROOM_DEV"                 envDefault:"false"`
	ShutdownTimeout   time.Duration `env:"DRAFT_ROOM_SHUTDOWN_TIMEOUT"    envDefault:"10s"`
	ReadHeaderTimeout time.Duration `env:"DRAFT_ROOM_READ_HEADER_TIMEOUT" envDefault:"5s"`
}

// Load reads an optional dotenv file into the process environment, then
// parses Config from it. Variables already set win over the file.
func Load(dotenv ...string) (Config, error) {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load dotenv: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("parse env: DRAFT_ROOM_SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout)
	}
	return cfg, nil
}
