// Package config loads service configuration from environment variables.
package config

import "os"

// Config holds the configuration for the shopping-lists service.
type Config struct {
	// Addr is the listen address for the HTTP server.
	Addr string

	// DBPath is the SQLite database file path.
	DBPath string

	// JWTSecret enables the optional bearer-token identity fallback when
	// non-empty. Deployments behind the gateway leave it unset and rely on
	// the identity header alone.
	JWTSecret string
}

// NewFromEnv creates a Config from environment variables, applying defaults
// for anything unset.
func NewFromEnv() *Config {
	return &Config{
		Addr:      getEnv("ADDR", ":8080"),
		DBPath:    getEnv("DB_PATH", "./data/shopping.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
