package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the engine.
// This is the only package that reads environment variables.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Engine
	Engine EngineConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// EngineConfig holds numerical engine defaults
type EngineConfig struct {
	// Task executor
	MinWorkers int
	MaxWorkers int // 0 = hardware concurrency

	// Starting-asset solve
	BrentMaxIter   int
	BrentTolerance float64
	ScalarLower    float64
	ScalarUpper    float64

	// Multivariate solvers
	SolverMaxIter   int
	SolverTolerance float64
	GradientStep    float64
	TrustRadius     float64
}

// Load reads configuration from environment variables.
// A .env file is loaded first when one can be found.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		// Engine
		Engine: EngineConfig{
			MinWorkers:      getEnvAsInt("ENGINE_MIN_WORKERS", 1),
			MaxWorkers:      getEnvAsInt("ENGINE_MAX_WORKERS", 0),
			BrentMaxIter:    getEnvAsInt("ENGINE_BRENT_MAX_ITER", 100),
			BrentTolerance:  getEnvAsFloat("ENGINE_BRENT_TOLERANCE", 1e-6),
			ScalarLower:     getEnvAsFloat("ENGINE_SCALAR_LOWER", 0.0),
			ScalarUpper:     getEnvAsFloat("ENGINE_SCALAR_UPPER", 100.0),
			SolverMaxIter:   getEnvAsInt("ENGINE_SOLVER_MAX_ITER", 100),
			SolverTolerance: getEnvAsFloat("ENGINE_SOLVER_TOLERANCE", 1e-4),
			GradientStep:    getEnvAsFloat("ENGINE_GRADIENT_STEP", 1e-2),
			TrustRadius:     getEnvAsFloat("ENGINE_TRUST_RADIUS", 1.0),
		},

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if configuration values are consistent
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Engine.MinWorkers < 1 {
		return fmt.Errorf("ENGINE_MIN_WORKERS must be at least 1")
	}
	if c.Engine.MaxWorkers < 0 {
		return fmt.Errorf("ENGINE_MAX_WORKERS must not be negative")
	}
	if c.Engine.MaxWorkers > 0 && c.Engine.MaxWorkers < c.Engine.MinWorkers {
		return fmt.Errorf("ENGINE_MAX_WORKERS must not be below ENGINE_MIN_WORKERS")
	}
	if c.Engine.ScalarUpper <= c.Engine.ScalarLower {
		return fmt.Errorf("ENGINE_SCALAR_UPPER must exceed ENGINE_SCALAR_LOWER")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		fallback, _ := time.ParseDuration(defaultValue)
		return fallback
	}
	return value
}
