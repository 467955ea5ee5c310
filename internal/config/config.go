package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port string

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string

	// Optional recommendation cache; empty disables it.
	RedisURL string

	JWTSecret string

	GoEnv       string // dev/production
	DefaultLang string // fallback for the lang query param

	// Checkout threshold surfaced with every cart payload; "0" disables it.
	MinOrderPrice string
}

// Load reads the environment. DATABASE_URL short-circuits the POSTGRES_*
// checks inside the db package, so only the service-level vars are required
// here.
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     os.Getenv("POSTGRES_HOST"),
		PostgresPort:     os.Getenv("POSTGRES_PORT"),

		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		GoEnv:       os.Getenv("GO_ENV"),
		DefaultLang: os.Getenv("DEFAULT_LANG"),

		MinOrderPrice: os.Getenv("MIN_ORDER_PRICE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}
	if cfg.DefaultLang == "" {
		cfg.DefaultLang = "uk"
	}
	if cfg.MinOrderPrice == "" {
		cfg.MinOrderPrice = "0"
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
