package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	// DefaultJWTSecret is only accepted outside production
	DefaultJWTSecret = "dev-secret-change-me"

	minProductionSecretLength = 32
)

type Config struct {
	Env string

	// HTTP and gRPC servers
	Port            string
	GRPCPort        string
	ShutdownTimeout time.Duration

	// Storage
	DataBackend       string
	DBConnStr         string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	StoreTimeout      time.Duration
	RunMigrations     bool

	// Auth
	JWTSecret string

	CORSAllowOrigins string
	LogLevel         string

	// Demo account seeded at start-up, never in production
	SeedDemoData bool
	DemoEmail    string
	DemoPassword string
}

// Load reads an optional .env file and the process environment.
// A missing .env file is not an error; the second return value reports it.
func Load() (*Config, bool) {
	dotenvLoaded := godotenv.Load() == nil

	cfg := &Config{
		Env: getEnv("ENV", EnvDevelopment),

		Port:            getEnv("PORT", "5050"),
		GRPCPort:        getEnv("GRPC_PORT", "8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DataBackend:       getEnv("DATA_BACKEND", BackendPostgres),
		DBConnStr:         databaseConnString(),
		DBMaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		StoreTimeout:      getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		RunMigrations:     getEnvBool("RUN_MIGRATIONS", true),

		JWTSecret: getEnv("JWT_SECRET", DefaultJWTSecret),

		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),

		SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),
		DemoEmail:    getEnv("DEMO_EMAIL", "demo@fintrack.local"),
		DemoPassword: getEnv("DEMO_PASSWORD", "demo1234"),
	}

	return cfg, dotenvLoaded
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if c.Env != EnvDevelopment && c.Env != EnvProduction && c.Env != "test" {
		errors = append(errors, fmt.Sprintf("invalid env '%s': must be one of development, production, test", c.Env))
	}

	ports := []struct{ name, value string }{{"port", c.Port}, {"grpc port", c.GRPCPort}}
	for _, port := range ports {
		if p, err := strconv.Atoi(port.value); err != nil {
			errors = append(errors, fmt.Sprintf("invalid %s '%s': must be a number", port.name, port.value))
		} else if p < 1 || p > 65535 {
			errors = append(errors, fmt.Sprintf("invalid %s %d: must be between 1 and 65535", port.name, p))
		}
	}
	if c.Port == c.GRPCPort {
		errors = append(errors, "port and grpc port must differ")
	}

	switch c.DataBackend {
	case BackendPostgres:
		if c.DBConnStr == "" {
			errors = append(errors, "database connection string cannot be empty when using postgres backend")
		}
		if c.DBMaxOpenConns < 1 {
			errors = append(errors, fmt.Sprintf("invalid max open connections %d: must be at least 1", c.DBMaxOpenConns))
		}
		if c.DBMaxIdleConns < 0 || c.DBMaxIdleConns > c.DBMaxOpenConns {
			errors = append(errors, fmt.Sprintf("invalid max idle connections %d: must be between 0 and max open connections", c.DBMaxIdleConns))
		}
	case BackendMemory:
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of [postgres memory]", c.DataBackend))
	}

	if c.StoreTimeout < 100*time.Millisecond {
		errors = append(errors, fmt.Sprintf("invalid store timeout %v: must be at least 100ms", c.StoreTimeout))
	} else if c.StoreTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid store timeout %v: must be at most 1 minute", c.StoreTimeout))
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT secret cannot be empty")
	} else if c.IsProduction() {
		if c.JWTSecret == DefaultJWTSecret {
			errors = append(errors, "JWT_SECRET must be set in production")
		} else if len(c.JWTSecret) < minProductionSecretLength {
			errors = append(errors, fmt.Sprintf("JWT secret must be at least %d characters in production", minProductionSecretLength))
		}
	}

	if c.SeedDemoData && c.IsProduction() {
		errors = append(errors, "SEED_DEMO_DATA is not allowed in production")
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		errors = append(errors, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// databaseConnString returns DB_CONN_STR or builds one from the individual DB_* variables
func databaseConnString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_NAME", "fintrack"),
		getEnv("DB_SSLMODE", "disable"),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
