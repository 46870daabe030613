package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Poster store backends.
const (
	StoreMemory = "memory"
	StoreValkey = "valkey"
)

// Config holds the server settings.
type Config struct {
	Port          string
	TownID        string
	MapFile       string
	AllowedOrigin string
	PosterStore   string
	ValkeyAddr    string
}

// Load reads an optional .env file, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to read .env: %v", err)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		TownID:        getEnv("TOWN_ID", "town"),
		MapFile:       getEnv("MAP_FILE", "maps/town.json"),
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:5173"),
		PosterStore:   getEnv("POSTER_STORE", StoreMemory),
		ValkeyAddr:    getEnv("VALKEY_ADDR", "127.0.0.1:6379"),
	}

	switch cfg.PosterStore {
	case StoreMemory, StoreValkey:
	default:
		return nil, fmt.Errorf("unknown POSTER_STORE %q (want %s or %s)", cfg.PosterStore, StoreMemory, StoreValkey)
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
