package main

import (
	"fmt"
	"os"
	"strconv"
)

// Config gathers the settings read from the environment. Command-line
// flags override them.
type Config struct {
	Port          string
	GCPProject    string
	GCPRegion     string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// loadConfig reads the environment, applying defaults.
func loadConfig() (Config, error) {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		GCPProject:    os.Getenv("GCP_PROJECT_ID"),
		GCPRegion:     os.Getenv("GCP_REGION"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
