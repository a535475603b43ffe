package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Storage  StorageConfig
	Session  SessionConfig
	Checkout CheckoutConfig
	Latency  LatencyConfig
}

type StorageConfig struct {
	Backend       string // "memory", "file", "redis" or "postgres"
	DataDir       string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DatabaseURL   string
}

type SessionConfig struct {
	TokenSecret string
}

type CheckoutConfig struct {
	ServiceFee int // fixed surcharge added to every order total
}

// LatencyConfig controls the simulated network round-trips. Disabled
// means every operation resolves immediately, which is what tests use.
type LatencyConfig struct {
	Enabled  bool
	Login    time.Duration
	Checkout time.Duration
	Payment  time.Duration
	Catalog  time.Duration
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Storage: StorageConfig{
			Backend:       getEnv("STORAGE_BACKEND", "file"),
			DataDir:       getEnv("DATA_DIR", "./data"),
			RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvAsInt("REDIS_DB", 0),
			DatabaseURL:   getEnv("DATABASE_URL", ""),
		},
		Session: SessionConfig{
			TokenSecret: getEnv("SESSION_TOKEN_SECRET", "your-secret-key-change-in-production"),
		},
		Checkout: CheckoutConfig{
			ServiceFee: getEnvAsInt("SERVICE_FEE", 5000),
		},
		Latency: LatencyConfig{
			Enabled:  getEnvAsBool("SIMULATED_LATENCY", true),
			Login:    getEnvAsDuration("LOGIN_LATENCY", 800*time.Millisecond),
			Checkout: getEnvAsDuration("CHECKOUT_LATENCY", 1500*time.Millisecond),
			Payment:  getEnvAsDuration("PAYMENT_LATENCY", 2*time.Second),
			Catalog:  getEnvAsDuration("CATALOG_LATENCY", 600*time.Millisecond),
		},
	}

	return config, nil
}

// Delay returns d when simulated latency is enabled, zero otherwise
func (c LatencyConfig) Delay(d time.Duration) time.Duration {
	if !c.Enabled {
		return 0
	}
	return d
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
