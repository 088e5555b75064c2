package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPgxPool creates a new PostgreSQL connection pool.
func NewPgxPool(ctx context.Context, databaseURL string, maxConns int32) (*pgxpool.Pool, error) {
	if databaseURL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config from URL: %w", err)
	}
	if maxConns > 0 {
		config.MaxConns = maxConns
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test the connection
	err = pool.Ping(ctx)
	if err != nil {
		pool.Close() // Close the pool if ping fails
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	slog.Debug("Opened PostgreSQL pool", slog.String("host", config.ConnConfig.Host), slog.Int("max_conns", int(config.MaxConns)))
	return pool, nil
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxExecutor struct {
	q pgxQuerier
}

func (e pgxExecutor) Dialect() Dialect {
	return DialectPostgres
}

func (e pgxExecutor) Exec(ctx context.Context, query string, args ...any) (Result, error) {
	query = DialectPostgres.Rebind(query)
	if hasReturning(query) {
		var id int64
		if err := e.q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return Result{}, nil
			}
			return Result{}, translatePgError(err)
		}
		return Result{RowsAffected: 1, LastInsertID: id}, nil
	}
	tag, err := e.q.Exec(ctx, query, args...)
	if err != nil {
		return Result{}, translatePgError(err)
	}
	return Result{RowsAffected: tag.RowsAffected()}, nil
}

func (e pgxExecutor) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	rows, err := e.q.Query(ctx, DialectPostgres.Rebind(query), args...)
	if err != nil {
		return nil, translatePgError(err)
	}
	return pgRows{rows: rows}, nil
}

func (e pgxExecutor) QueryRow(ctx context.Context, query string, args ...any) Row {
	return pgRow{row: e.q.QueryRow(ctx, DialectPostgres.Rebind(query), args...)}
}

type pgRow struct {
	row pgx.Row
}

func (r pgRow) Scan(dest ...any) error {
	if err := r.row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNoRows
		}
		return translatePgError(err)
	}
	return nil
}

type pgRows struct {
	rows pgx.Rows
}

func (r pgRows) Next() bool             { return r.rows.Next() }
func (r pgRows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r pgRows) Err() error             { return translatePgError(r.rows.Err()) }
func (r pgRows) Close()                 { r.rows.Close() }

// PgxDB is the remote store backed by a pgx pool.
type PgxDB struct {
	pgxExecutor
	pool *pgxpool.Pool
}

var _ DB = (*PgxDB)(nil)

// NewPgxDB connects to PostgreSQL.
func NewPgxDB(ctx context.Context, databaseURL string, maxConns int32) (*PgxDB, error) {
	pool, err := NewPgxPool(ctx, databaseURL, maxConns)
	if err != nil {
		return nil, err
	}
	return &PgxDB{pgxExecutor: pgxExecutor{q: pool}, pool: pool}, nil
}

// Begin starts a transaction. Writers run SERIALIZABLE so that validation reads and the writes
// they guard cannot interleave with another writer; readers get a stable snapshot.
func (p *PgxDB) Begin(ctx context.Context, opts TxOptions) (Tx, error) {
	txOpts := pgx.TxOptions{IsoLevel: pgx.Serializable, AccessMode: pgx.ReadWrite}
	if opts.ReadOnly {
		txOpts = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}
	}
	tx, err := p.pool.BeginTx(ctx, txOpts)
	if err != nil {
		return nil, translatePgError(err)
	}
	return &pgxTx{pgxExecutor: pgxExecutor{q: tx}, tx: tx}, nil
}

func (p *PgxDB) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *PgxDB) Close() error {
	p.pool.Close()
	slog.Debug("Closed PostgreSQL pool")
	return nil
}

type pgxTx struct {
	pgxExecutor
	tx pgx.Tx
}

func (t *pgxTx) ExecBatch(ctx context.Context, stmts []Statement) (Result, error) {
	batch := &pgx.Batch{}
	for _, stmt := range stmts {
		batch.Queue(DialectPostgres.Rebind(stmt.Query), stmt.Args...)
	}
	br := t.tx.SendBatch(ctx, batch)
	var total Result
	for range stmts {
		tag, err := br.Exec()
		if err != nil {
			_ = br.Close()
			return total, translatePgError(err)
		}
		total.RowsAffected += tag.RowsAffected()
	}
	if err := br.Close(); err != nil {
		return total, translatePgError(err)
	}
	return total, nil
}

func (t *pgxTx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		return translatePgError(err)
	}
	return nil
}

func (t *pgxTx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case "23505":
		return fmt.Errorf("%w: %v", ErrUniqueViolation, err)
	case "23503":
		return fmt.Errorf("%w: %v", ErrForeignKeyViolation, err)
	case "23514", "P0001":
		return fmt.Errorf("%w: %v", ErrCheckViolation, err)
	case "40001", "40P01":
		return fmt.Errorf("%w: %v", ErrSerializationFailure, err)
	}
	return err
}
