package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the WeFix service
type Config struct {
	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Server configuration
	Port string

	// Geocoding configuration
	NominatimBaseURL string
	GeocodeTimeout   time.Duration

	// Image classifier configuration
	ModelPath string

	// RabbitMQ configuration
	AMQPUrl      string
	AMQPExchange string

	// Similarity configuration
	SimilarLimit int
	NearbyRadius float64

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		// Database defaults
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "server"),
		DBPassword: getEnv("DB_PASSWORD", "secret_app"),
		DBName:     getEnv("DB_NAME", "wefix"),

		// Server defaults
		Port: getEnv("PORT", "8080"),

		// Geocoding defaults
		NominatimBaseURL: getEnv("NOMINATIM_BASE_URL", ""),
		GeocodeTimeout:   getDurationEnv("GEOCODE_TIMEOUT", 10*time.Second),

		// Image classifier defaults ("" means search the default paths)
		ModelPath: getEnv("MODEL_PATH", ""),

		// RabbitMQ defaults ("" disables publishing)
		AMQPUrl:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "wefix"),

		// Similarity defaults
		SimilarLimit: getIntEnv("SIMILAR_LIMIT", 5),
		NearbyRadius: getFloatEnv("NEARBY_RADIUS_KM", 2.0),

		// Logging defaults
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDurationEnv gets a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getIntEnv gets an integer environment variable or returns a default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getFloatEnv gets a float environment variable or returns a default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
