package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_engine/pkg/database"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DBBackend     database.Dialect
	SQLitePath    string
	DatabaseURL   string
	DBMaxConns    int32
	RunMigrations bool

	Port         string
	IsProduction bool
	LogLevel     slog.Level

	JWTSecret          string
	AuthEnabled        bool
	RateLimit          string // ulule/limiter format, e.g. "100-M"; empty disables limiting
	CORSAllowedOrigins []string

	TxMaxRetries  int
	CurrencyScale int32
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("DB_BACKEND", string(database.DialectSQLite))
	v.SetDefault("SQLITE_PATH", "ledger.db")
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("AUTH_ENABLED", true)
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("TX_MAX_RETRIES", 3)
	v.SetDefault("CURRENCY_SCALE", 2)
	v.AutomaticEnv()

	cfg := &Config{
		DBBackend:     database.Dialect(strings.ToLower(v.GetString("DB_BACKEND"))),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		DatabaseURL:   v.GetString("PGSQL_URL"),
		DBMaxConns:    v.GetInt32("DB_MAX_CONNS"),
		RunMigrations: v.GetBool("RUN_MIGRATIONS"),
		Port:          v.GetString("PORT"),
		IsProduction:  v.GetBool("IS_PRODUCTION"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		AuthEnabled:   v.GetBool("AUTH_ENABLED"),
		RateLimit:     v.GetString("RATE_LIMIT"),
		TxMaxRetries:  v.GetInt("TX_MAX_RETRIES"),
		CurrencyScale: v.GetInt32("CURRENCY_SCALE"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	switch cfg.DBBackend {
	case database.DialectSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required for the sqlite backend")
		}
	case database.DialectPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unsupported DB_BACKEND %q", cfg.DBBackend)
	}

	if cfg.TxMaxRetries < 0 {
		return nil, fmt.Errorf("TX_MAX_RETRIES must not be negative, got %d", cfg.TxMaxRetries)
	}
	if cfg.CurrencyScale < 0 || cfg.CurrencyScale > 18 {
		return nil, fmt.Errorf("CURRENCY_SCALE must be between 0 and 18, got %d", cfg.CurrencyScale)
	}

	if cfg.AuthEnabled && cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		slog.Warn("JWT_SECRET environment variable not set. Using default insecure key.")
	}

	return cfg, nil
}

// DatabaseConfig returns the settings for opening the configured store.
func (c *Config) DatabaseConfig() database.Config {
	return database.Config{
		Backend:     c.DBBackend,
		SQLitePath:  c.SQLitePath,
		PostgresURL: c.DatabaseURL,
		MaxConns:    c.DBMaxConns,
	}
}
