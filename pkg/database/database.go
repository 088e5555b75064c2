// Package database provides the statement interface shared by the embedded SQLite store and the
// remote PostgreSQL store. Queries are written once with '?' placeholders and run unchanged on
// either backend.
package database

import (
	"context"
	"errors"
	"fmt"
)

// Driver-neutral failures. Backend errors are wrapped around these so callers can use errors.Is.
var (
	ErrNoRows               = errors.New("no rows in result set")
	ErrUniqueViolation      = errors.New("unique constraint violation")
	ErrForeignKeyViolation  = errors.New("foreign key constraint violation")
	ErrCheckViolation       = errors.New("check constraint violation")
	ErrSerializationFailure = errors.New("serialization failure")
)

// Result reports the effect of a statement.
type Result struct {
	RowsAffected int64
	LastInsertID int64
}

// Row is a single result row.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a forward-only result cursor. Close must be called when done.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// Statement is a query with its arguments, used for batched execution.
type Statement struct {
	Query string
	Args  []any
}

// Executor runs statements. It is implemented by both connections and transactions.
type Executor interface {
	Exec(ctx context.Context, query string, args ...any) (Result, error)
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
	Dialect() Dialect
}

// TxOptions configures a transaction.
type TxOptions struct {
	ReadOnly bool
}

// Tx is an open transaction.
type Tx interface {
	Executor
	// ExecBatch runs the statements in order and returns the summed effect.
	ExecBatch(ctx context.Context, stmts []Statement) (Result, error)
	Commit(ctx context.Context) error
	// Rollback is safe to call after Commit.
	Rollback(ctx context.Context) error
}

// DB is a connection to one of the supported stores.
type DB interface {
	Executor
	Begin(ctx context.Context, opts TxOptions) (Tx, error)
	Ping(ctx context.Context) error
	Close() error
}

// Config selects and configures a backend.
type Config struct {
	Backend     Dialect
	SQLitePath  string
	PostgresURL string
	MaxConns    int32
}

// Open connects to the configured backend.
func Open(ctx context.Context, cfg Config) (DB, error) {
	switch cfg.Backend {
	case DialectSQLite:
		return NewSQLiteDB(ctx, cfg.SQLitePath)
	case DialectPostgres:
		return NewPgxDB(ctx, cfg.PostgresURL, cfg.MaxConns)
	default:
		return nil, fmt.Errorf("unsupported database backend %q", cfg.Backend)
	}
}
