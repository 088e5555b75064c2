package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations
var migrationsFS embed.FS

// Migrate applies every pending up migration for the configured backend. It uses its own
// connection, which is closed before returning.
func Migrate(cfg Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	source, err := iofs.New(migrationsFS, "migrations/"+string(cfg.Backend))
	if err != nil {
		return fmt.Errorf("could not load migrations for %s: %w", cfg.Backend, err)
	}

	var (
		db     *sql.DB
		driver migratedb.Driver
	)
	switch cfg.Backend {
	case DialectSQLite:
		db, err = sql.Open("sqlite3", SQLiteDSN(cfg.SQLitePath))
		if err != nil {
			return fmt.Errorf("failed to open database connection for migrations: %w", err)
		}
		driver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case DialectPostgres:
		db, err = sql.Open("pgx", cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("failed to open database connection for migrations: %w", err)
		}
		if err = db.Ping(); err != nil {
			_ = db.Close()
			return fmt.Errorf("failed to ping database for migrations: %w", err)
		}
		driver, err = postgres.WithInstance(db, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported database backend %q", cfg.Backend)
	}
	defer func() { _ = db.Close() }()
	if err != nil {
		return fmt.Errorf("could not create %s driver instance for migrations: %w", cfg.Backend, err)
	}

	m, err := migrate.NewWithInstance("iofs", source, string(cfg.Backend), driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	upErr := m.Up()
	sourceErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", upErr)
	}
	if sourceErr != nil {
		return fmt.Errorf("migration source error: %w", sourceErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migration database error: %w", dbErr)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.", slog.String("backend", string(cfg.Backend)))
	} else {
		logger.Info("Database migrations applied successfully.", slog.String("backend", string(cfg.Backend)))
	}
	return nil
}
