package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type SQLiteTestSuite struct {
	suite.Suite
	ctx context.Context
	db  *SQLiteDB
}

func TestSQLiteTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteTestSuite))
}

func (s *SQLiteTestSuite) SetupTest() {
	s.ctx = context.Background()
	cfg := Config{Backend: DialectSQLite, SQLitePath: filepath.Join(s.T().TempDir(), "ledger.db")}
	s.Require().NoError(Migrate(cfg, nil))

	db, err := Open(s.ctx, cfg)
	s.Require().NoError(err)
	s.db = db.(*SQLiteDB)
}

func (s *SQLiteTestSuite) TearDownTest() {
	s.Require().NoError(s.db.Close())
}

func (s *SQLiteTestSuite) insertAccount(ex Executor, code string) error {
	_, err := ex.Exec(s.ctx,
		`INSERT INTO accounts (code, name, account_type, normal_balance, created_at, created_by, last_updated_at, last_updated_by)
		 VALUES (?, ?, 'ASSET', 'DEBIT', 1, 'test', 1, 'test')`, code, "Account "+code)
	return err
}

func (s *SQLiteTestSuite) TestMigrateIsIdempotent() {
	cfg := Config{Backend: DialectSQLite, SQLitePath: filepath.Join(s.T().TempDir(), "again.db")}
	s.Require().NoError(Migrate(cfg, nil))
	s.Require().NoError(Migrate(cfg, nil))
}

func (s *SQLiteTestSuite) TestExecReportsLastInsertID() {
	s.Require().NoError(s.insertAccount(s.db, "1000"))

	res, err := s.db.Exec(s.ctx, `INSERT INTO account_tags (name, created_at) VALUES (?, ?)`, "cash", 1)
	s.Require().NoError(err)
	s.Equal(int64(1), res.RowsAffected)
	s.Positive(res.LastInsertID)

	res2, err := s.db.Exec(s.ctx, `INSERT INTO account_tags (name, created_at) VALUES (?, ?)`, "bank", 1)
	s.Require().NoError(err)
	s.Greater(res2.LastInsertID, res.LastInsertID)
}

func (s *SQLiteTestSuite) TestErrorTranslation() {
	s.Require().NoError(s.insertAccount(s.db, "1000"))

	err := s.insertAccount(s.db, "1000")
	s.ErrorIs(err, ErrUniqueViolation)

	_, err = s.db.Exec(s.ctx, `UPDATE accounts SET control_account_code = ? WHERE code = ?`, "9999", "1000")
	s.ErrorIs(err, ErrForeignKeyViolation)

	_, err = s.db.Exec(s.ctx,
		`INSERT INTO journal_entries (entry_id, entry_time, created_at, created_by, last_updated_at, last_updated_by)
		 VALUES ('e1', 0, 1, 'test', 1, 'test')`)
	s.ErrorIs(err, ErrCheckViolation)

	var name string
	err = s.db.QueryRow(s.ctx, `SELECT name FROM accounts WHERE code = ?`, "missing").Scan(&name)
	s.ErrorIs(err, ErrNoRows)
}

func (s *SQLiteTestSuite) TestPostedEntryIsFrozenByStore() {
	s.Require().NoError(s.insertAccount(s.db, "1000"))
	_, err := s.db.Exec(s.ctx,
		`INSERT INTO journal_entries (entry_id, entry_time, post_time, created_at, created_by, last_updated_at, last_updated_by)
		 VALUES ('e1', 1, 2, 1, 'test', 1, 'test')`)
	s.Require().NoError(err)

	_, err = s.db.Exec(s.ctx, `UPDATE journal_entries SET post_time = 3 WHERE entry_id = 'e1'`)
	s.ErrorIs(err, ErrCheckViolation)

	_, err = s.db.Exec(s.ctx, `DELETE FROM journal_entries WHERE entry_id = 'e1'`)
	s.ErrorIs(err, ErrCheckViolation)

	_, err = s.db.Exec(s.ctx,
		`INSERT INTO journal_entry_lines (line_id, entry_id, line_no, account_code, side, amount) VALUES ('l1', 'e1', 1, '1000', 'DEBIT', 5)`)
	s.ErrorIs(err, ErrCheckViolation)
}

func (s *SQLiteTestSuite) TestTransactionRollbackAndBatch() {
	tx, err := s.db.Begin(s.ctx, TxOptions{})
	s.Require().NoError(err)
	s.Require().NoError(s.insertAccount(tx, "1000"))
	s.Require().NoError(tx.Rollback(s.ctx))

	var count int
	s.Require().NoError(s.db.QueryRow(s.ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count))
	s.Equal(0, count)

	tx, err = s.db.Begin(s.ctx, TxOptions{})
	s.Require().NoError(err)
	stmt := `INSERT INTO accounts (code, name, account_type, normal_balance, created_at, created_by, last_updated_at, last_updated_by)
		 VALUES (?, 'x', 'ASSET', 'DEBIT', 1, 'test', 1, 'test')`
	res, err := tx.ExecBatch(s.ctx, []Statement{{Query: stmt, Args: []any{"1000"}}, {Query: stmt, Args: []any{"1100"}}})
	s.Require().NoError(err)
	s.Equal(int64(2), res.RowsAffected)
	s.Require().NoError(tx.Commit(s.ctx))
	s.Require().NoError(tx.Rollback(s.ctx), "rollback after commit is a no-op")

	rows, err := s.db.Query(s.ctx, `SELECT code FROM accounts ORDER BY code`)
	s.Require().NoError(err)
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var code string
		require.NoError(s.T(), rows.Scan(&code))
		codes = append(codes, code)
	}
	s.Require().NoError(rows.Err())
	s.Equal([]string{"1000", "1100"}, codes)
}

func (s *SQLiteTestSuite) TestOpenRejectsUnknownBackend() {
	_, err := Open(s.ctx, Config{Backend: "mysql"})
	s.Error(err)
	_, err = NewSQLiteDB(s.ctx, "")
	s.Error(err)
}
