package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration.
type Config struct {
	Service  ServiceConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Planner  PlannerConfig
}

type ServiceConfig struct {
	Name        string
	Environment string
	Version     string
	LogLevel    string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// PlannerConfig externalizes the HOS limits of internal/hos so they are
// tunable per deployment without recompiling the core. Defaults match the
// FMCSA 395 limits exactly; overriding is an operational escape hatch, not
// a regulatory change.
type PlannerConfig struct {
	MaxDriveHours      decimal.Decimal
	MaxDutyHours       decimal.Decimal
	BreakAfterHours    decimal.Decimal
	CycleLimitHours    decimal.Decimal
	RestBreakHours     decimal.Decimal
	CycleResetHours    decimal.Decimal
	MinBreakHours      decimal.Decimal
	FuelIntervalMiles  decimal.Decimal
	FuelStopHours      decimal.Decimal
	PickupDropoffHours decimal.Decimal
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        getEnv("SERVICE_NAME", "trip-planner"),
			Environment: getEnv("ENVIRONMENT", "development"),
			Version:     getEnv("VERSION", "1.0.0"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "trip_planner"),
			Password:        getEnv("DB_PASSWORD", "trip_planner"),
			Database:        getEnv("DB_NAME", "trip_planner"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvSlice("KAFKA_BROKERS", []string{"localhost:9092"}),
			Topic:   getEnv("KAFKA_TRIP_PLANNED_TOPIC", "trip-planner.trip.planned"),
		},
		Planner: PlannerConfig{
			MaxDriveHours:      getEnvDecimal("HOS_MAX_DRIVE_HOURS", "11"),
			MaxDutyHours:       getEnvDecimal("HOS_MAX_DUTY_HOURS", "14"),
			BreakAfterHours:    getEnvDecimal("HOS_BREAK_AFTER_HOURS", "8"),
			CycleLimitHours:    getEnvDecimal("HOS_CYCLE_LIMIT_HOURS", "70"),
			RestBreakHours:     getEnvDecimal("HOS_REST_BREAK_HOURS", "10"),
			CycleResetHours:    getEnvDecimal("HOS_CYCLE_RESET_HOURS", "34"),
			MinBreakHours:      getEnvDecimal("HOS_MIN_BREAK_HOURS", "0.5"),
			FuelIntervalMiles:  getEnvDecimal("HOS_FUEL_INTERVAL_MILES", "1000"),
			FuelStopHours:      getEnvDecimal("HOS_FUEL_STOP_HOURS", "0.25"),
			PickupDropoffHours: getEnvDecimal("HOS_PICKUP_DROPOFF_HOURS", "1"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvDecimal(key, defaultValue string) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.RequireFromString(defaultValue)
	}
	return d
}

func getEnvSlice(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}

// DSN returns the database connection string.
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}
