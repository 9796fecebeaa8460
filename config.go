package main

import (
	"fmt"
	"os"

	"github.com/Hemali15f/BookNest/database"
)

type Config struct {
	Port               string
	Env                string
	JWTSecret          string
	RedisURL           string
	TrustClientPricing bool
	AdminEmail         string
	AdminPassword      string
	Database           database.Config
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisURL:           os.Getenv("REDIS_URL"),
		TrustClientPricing: getEnv("TRUST_CLIENT_PRICING", "true") != "false",
		AdminEmail:         getEnv("ADMIN_EMAIL", "admin@bookstore.com"),
		AdminPassword:      getEnv("ADMIN_PASSWORD", "admin123"),
		Database: database.Config{
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Database.User == "" || cfg.Database.Password == "" || cfg.Database.DBName == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
