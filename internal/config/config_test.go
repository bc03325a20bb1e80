package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Env:            EnvDevelopment,
		Port:           "5050",
		GRPCPort:       "8080",
		DataBackend:    BackendPostgres,
		DBConnStr:      "host=localhost dbname=fintrack",
		DBMaxOpenConns: 10,
		DBMaxIdleConns: 2,
		StoreTimeout:   5 * time.Second,
		JWTSecret:      DefaultJWTSecret,
		LogLevel:       "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid postgres config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid memory config without connection string",
			mutate: func(c *Config) {
				c.DataBackend = BackendMemory
				c.DBConnStr = ""
			},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid grpc port - out of range",
			mutate:      func(c *Config) { c.GRPCPort = "70000" },
			wantErr:     true,
			errorString: "invalid grpc port 70000: must be between 1 and 65535",
		},
		{
			name:        "ports collide",
			mutate:      func(c *Config) { c.GRPCPort = c.Port },
			wantErr:     true,
			errorString: "port and grpc port must differ",
		},
		{
			name:        "unknown backend",
			mutate:      func(c *Config) { c.DataBackend = "sqlite" },
			wantErr:     true,
			errorString: "invalid data backend 'sqlite'",
		},
		{
			name:        "postgres without connection string",
			mutate:      func(c *Config) { c.DBConnStr = "" },
			wantErr:     true,
			errorString: "database connection string cannot be empty",
		},
		{
			name:        "idle connections above open connections",
			mutate:      func(c *Config) { c.DBMaxIdleConns = 50 },
			wantErr:     true,
			errorString: "invalid max idle connections 50",
		},
		{
			name:        "store timeout too small",
			mutate:      func(c *Config) { c.StoreTimeout = time.Millisecond },
			wantErr:     true,
			errorString: "invalid store timeout 1ms: must be at least 100ms",
		},
		{
			name:        "default secret in production",
			mutate:      func(c *Config) { c.Env = EnvProduction },
			wantErr:     true,
			errorString: "JWT_SECRET must be set in production",
		},
		{
			name: "short secret in production",
			mutate: func(c *Config) {
				c.Env = EnvProduction
				c.JWTSecret = "short"
			},
			wantErr:     true,
			errorString: "JWT secret must be at least 32 characters in production",
		},
		{
			name: "strong secret in production",
			mutate: func(c *Config) {
				c.Env = EnvProduction
				c.JWTSecret = strings.Repeat("s", 40)
			},
			wantErr: false,
		},
		{
			name: "demo data in production",
			mutate: func(c *Config) {
				c.Env = EnvProduction
				c.JWTSecret = strings.Repeat("s", 40)
				c.SeedDemoData = true
			},
			wantErr:     true,
			errorString: "SEED_DEMO_DATA is not allowed in production",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "verbose" },
			wantErr:     true,
			errorString: "invalid log level 'verbose'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorString)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateAggregatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.DataBackend = "sheets"
	cfg.JWTSecret = ""

	err := cfg.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port 'abc'")
	assert.Contains(t, err.Error(), "invalid data backend 'sheets'")
	assert.Contains(t, err.Error(), "JWT secret cannot be empty")
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATA_BACKEND", BackendMemory)
	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("DB_CONN_STR", "")
	t.Setenv("DB_NAME", "ledger")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg, _ := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.DataBackend)
	assert.Equal(t, 2*time.Second, cfg.StoreTimeout)
	assert.Contains(t, cfg.DBConnStr, "dbname=ledger")
	assert.False(t, cfg.RunMigrations)
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_TIMEOUT", "not-a-duration")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")

	cfg, _ := Load()

	assert.Equal(t, "5050", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 20, cfg.DBMaxOpenConns)
}
