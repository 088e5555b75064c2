package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mattn/go-sqlite3"
)

// SQLiteDSN builds the connection string for the embedded store. Foreign keys are enforced,
// readers do not block the writer, and every transaction takes the write lock when it begins.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate", path)
}

type sqlQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type sqliteExecutor struct {
	q sqlQuerier
}

func (e sqliteExecutor) Dialect() Dialect {
	return DialectSQLite
}

func (e sqliteExecutor) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	res, err := e.q.ExecContext(ctx, query, args...)
	if err != nil {
		return Result{}, translateSQLiteError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return Result{}, fmt.Errorf("read rows affected: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Result{}, fmt.Errorf("read last insert id: %w", err)
	}
	return Result{RowsAffected: affected, LastInsertID: id}, nil
}

func (e sqliteExecutor) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := e.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	return &sqlRows{rows: rows}, nil
}

func (e sqliteExecutor) QueryRow(ctx context.Context, query string, args ...any) Row {
	return sqlRow{row: e.q.QueryRowContext(ctx, query, args...)}
}

type sqlRow struct {
	row *sql.Row
}

func (r sqlRow) Scan(dest ...any) error {
	if err := r.row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoRows
		}
		return translateSQLiteError(err)
	}
	return nil
}

type sqlRows struct {
	rows *sql.Rows
}

func (r *sqlRows) Next() bool             { return r.rows.Next() }
func (r *sqlRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *sqlRows) Err() error             { return translateSQLiteError(r.rows.Err()) }
func (r *sqlRows) Close()                 { _ = r.rows.Close() }

// SQLiteDB is the embedded store.
type SQLiteDB struct {
	sqliteExecutor
	db *sql.DB
}

var _ DB = (*SQLiteDB)(nil)

// NewSQLiteDB opens (creating if needed) the SQLite database file at path.
func NewSQLiteDB(ctx context.Context, path string) (*SQLiteDB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}
	db, err := sql.Open("sqlite3", SQLiteDSN(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}
	slog.Debug("Opened SQLite database", slog.String("path", path))
	return &SQLiteDB{sqliteExecutor: sqliteExecutor{q: db}, db: db}, nil
}

// Begin starts a transaction. The DSN makes every SQLite transaction BEGIN IMMEDIATE.
func (s *SQLiteDB) Begin(ctx context.Context, opts TxOptions) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: opts.ReadOnly})
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	return &sqliteTx{sqliteExecutor: sqliteExecutor{q: tx}, tx: tx}, nil
}

func (s *SQLiteDB) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

type sqliteTx struct {
	sqliteExecutor
	tx *sql.Tx
}

func (t *sqliteTx) ExecBatch(ctx context.Context, stmts []Statement) (Result, error) {
	var total Result
	for _, stmt := range stmts {
		res, err := t.Exec(ctx, stmt.Query, stmt.Args...)
		if err != nil {
			return total, err
		}
		total.RowsAffected += res.RowsAffected
		total.LastInsertID = res.LastInsertID
	}
	return total, nil
}

func (t *sqliteTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return translateSQLiteError(err)
	}
	return nil
}

func (t *sqliteTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

func translateSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return fmt.Errorf("%w: %v", ErrUniqueViolation, err)
	case sqlite3.ErrConstraintForeignKey:
		return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
	case sqlite3.ErrConstraintCheck, sqlite3.ErrConstraintTrigger:
		return fmt.Errorf("%w: %v", ErrCheckViolation, err)
	}
	switch sqliteErr.Code {
	case sqlite3.ErrBusy, sqlite3.ErrLocked:
		return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
	}
	return err
}
