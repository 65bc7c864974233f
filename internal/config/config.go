package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Pricing  PricingConfig
	Fleet    FleetConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
}

type ServerConfig struct {
	Port string
	Env  string
	Host string
}

type LogConfig struct {
	Level  string
	Format string
}

type PricingConfig struct {
	BaseFare       float64
	PerMileRate    float64
	DefaultMiles   float64
	StrictRoutes   bool
	PeakStartHour  int
	PeakEndHour    int
	PeakMultiplier float64
}

type FleetConfig struct {
	Size  int
	Zones []string
	Seed  int64
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MaxIdle  int
}

type RedisConfig struct {
	Enabled        bool
	Host           string
	Port           string
	Password       string
	DB             int
	MaxRetries     int
	PoolSize       int
	DialTimeout    time.Duration
	ReadTimeout    time.Duration
	IdempotencyTTL time.Duration
}

type NewRelicConfig struct {
	LicenseKey string
	AppName    string
	Enabled    bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Pricing: PricingConfig{
			BaseFare:       getEnvAsFloat64("PRICING_BASE_FARE", 2.50),
			PerMileRate:    getEnvAsFloat64("PRICING_PER_MILE_RATE", 1.25),
			DefaultMiles:   getEnvAsFloat64("PRICING_DEFAULT_DISTANCE_MILES", 10.0),
			StrictRoutes:   getEnvAsBool("PRICING_STRICT_ROUTES", false),
			PeakStartHour:  getEnvAsInt("PRICING_PEAK_START_HOUR", 17),
			PeakEndHour:    getEnvAsInt("PRICING_PEAK_END_HOUR", 20),
			PeakMultiplier: getEnvAsFloat64("PRICING_PEAK_MULTIPLIER", 1.5),
		},
		Fleet: FleetConfig{
			Size:  getEnvAsInt("FLEET_SIZE", 50),
			Zones: getEnvAsSlice("FLEET_ZONES", []string{"North", "South", "East", "West"}),
			Seed:  int64(getEnvAsInt("FLEET_SEED", 1)),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "taxi_dispatch"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNECTIONS", 25),
			MaxIdle:  getEnvAsInt("DB_MAX_IDLE_CONNECTIONS", 5),
		},
		Redis: RedisConfig{
			Enabled:        getEnvAsBool("REDIS_ENABLED", false),
			Host:           getEnv("REDIS_HOST", "localhost"),
			Port:           getEnv("REDIS_PORT", "6379"),
			Password:       getEnv("REDIS_PASSWORD", ""),
			DB:             getEnvAsInt("REDIS_DB", 0),
			MaxRetries:     getEnvAsInt("REDIS_MAX_RETRIES", 3),
			PoolSize:       getEnvAsInt("REDIS_POOL_SIZE", 50),
			DialTimeout:    5 * time.Second,
			ReadTimeout:    3 * time.Second,
			IdempotencyTTL: time.Duration(getEnvAsInt("REDIS_IDEMPOTENCY_TTL_SECONDS", 86400)) * time.Second,
		},
		NewRelic: NewRelicConfig{
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			AppName:    getEnv("NEW_RELIC_APP_NAME", "GoComet-TaxiDispatch"),
			Enabled:    getEnvAsBool("NEW_RELIC_ENABLED", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.Fleet.Size < 0 {
		return fmt.Errorf("FLEET_SIZE must not be negative")
	}
	if len(c.Fleet.Zones) == 0 {
		return fmt.Errorf("FLEET_ZONES must name at least one zone")
	}
	if c.Pricing.BaseFare < 0 || c.Pricing.PerMileRate < 0 {
		return fmt.Errorf("pricing rates must not be negative")
	}
	if c.Pricing.PeakMultiplier < 1 {
		return fmt.Errorf("PRICING_PEAK_MULTIPLIER must be at least 1")
	}
	if c.Database.Enabled && c.Database.Name == "" {
		return fmt.Errorf("DB_NAME is required when DB_ENABLED is set")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
