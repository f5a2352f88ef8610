// Package config loads server configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"questhunt/internal/store"
)

type Config struct {
	Host        string `env:"QUESTHUNT_HOST"`
	Port        int    `env:"QUESTHUNT_PORT" envDefault:"8080"`
	StoreEngine string `env:"QUESTHUNT_STORE" envDefault:"json"`
	// DataPath is a directory for the json engine and a database file for
	// the sqlite engine. Empty means an engine-appropriate default.
	DataPath       string `env:"QUESTHUNT_DATA_PATH"`
	QuestSize      int    `env:"QUESTHUNT_QUEST_SIZE" envDefault:"5"`
	MaxSuggestions int    `env:"QUESTHUNT_MAX_SUGGESTIONS" envDefault:"6"`
}

// Load reads .env when present, then parses the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreEngine = strings.ToLower(strings.TrimSpace(cfg.StoreEngine))
	if strings.TrimSpace(cfg.DataPath) == "" {
		cfg.DataPath = defaultDataPath(cfg.StoreEngine)
	}
	if cfg.Port <= 0 {
		cfg.Port = 8080
	}
	return cfg, nil
}

// ListenAddr renders host and port as a net listen address.
func (c Config) ListenAddr() string {
	host := strings.TrimSpace(c.Host)
	if host == "" {
		return fmt.Sprintf(":%d", c.Port)
	}
	return net.JoinHostPort(host, strconv.Itoa(c.Port))
}

func defaultDataPath(engine string) string {
	switch engine {
	case store.EngineSQLite:
		return "data/questhunt.db"
	default:
		return "data"
	}
}
