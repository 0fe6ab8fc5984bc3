package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const prodString = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string

	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Scheduling grid. CloseHour may exceed 24 to express "open past
	// midnight" (e.g. 28 = 4am next day).
	OpenHour     int
	CloseHour    int
	SlotMinutes  int
	GuardMinutes int

	// Conflict policy. Resource exclusivity is always on; these extend the
	// same predicate to staff and client dimensions.
	StaffExclusive  bool
	ClientExclusive bool

	// Optional infrastructure. Empty values disable the integration.
	KafkaBrokers []string
	RedisAddr    string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.IsProduction = getEnv("APP_ENV", "dev") == prodString
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "15m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg.OpenHour, err = getEnvAsInt("OPEN_HOUR", 9)
	if err != nil {
		return nil, fmt.Errorf("invalid OPEN_HOUR: %w", err)
	}
	cfg.CloseHour, err = getEnvAsInt("CLOSE_HOUR", 22)
	if err != nil {
		return nil, fmt.Errorf("invalid CLOSE_HOUR: %w", err)
	}
	cfg.SlotMinutes, err = getEnvAsInt("SLOT_MINUTES", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid SLOT_MINUTES: %w", err)
	}
	cfg.GuardMinutes, err = getEnvAsInt("GUARD_MINUTES", 15)
	if err != nil {
		return nil, fmt.Errorf("invalid GUARD_MINUTES: %w", err)
	}

	if cfg.CloseHour <= cfg.OpenHour {
		return nil, fmt.Errorf("CLOSE_HOUR (%d) must be greater than OPEN_HOUR (%d)", cfg.CloseHour, cfg.OpenHour)
	}
	if cfg.SlotMinutes <= 0 {
		return nil, fmt.Errorf("SLOT_MINUTES must be positive")
	}

	cfg.StaffExclusive = getEnvAsBool("STAFF_EXCLUSIVE", false)
	cfg.ClientExclusive = getEnvAsBool("CLIENT_EXCLUSIVE", false)

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer, returning
// the default when unset and an error when set but not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsBool retrieves an environment variable as a boolean, treating
// unparsable values as the default.
func getEnvAsBool(key string, defaultValue bool) bool {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return defaultValue
	}
	return val
}
