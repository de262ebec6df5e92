package config

import (
	"os"
	"strconv"
)

type Config struct {
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBMaxConns       int
	RedisHost        string
	RedisPort        string
	SessionSecret    string
	GinMode          string
	InactiveUserDays int
}

func Load() *Config {
	return &Config{
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBUser:        getEnv("DB_USER", "mapping"),
		DBPassword:    getEnv("DB_PASSWORD", "mapping"),
		DBName:        getEnv("DB_NAME", "mapping_platform"),
		DBMaxConns:    getEnvInt("DB_MAX_CONNS", 10),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		// Accounts with no login for roughly two years are eligible for purge
		InactiveUserDays: getEnvInt("INACTIVE_USER_DAYS", 730),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
