package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

const accountColumns = `code, name, account_type, normal_balance, control_account_code,
	created_at, created_by, last_updated_at, last_updated_by`

// AccountRepository stores accounts.
type AccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates an account repository bound to tx.
func NewAccountRepository(tx database.Tx) *AccountRepository {
	return &AccountRepository{BaseRepository: BaseRepository{Tx: tx}}
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func scanAccount(row database.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.Code, &m.Name, &m.AccountType, &m.NormalBalance, &m.ControlAccountCode,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *AccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.Tx.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Code, m.Name, m.AccountType, m.NormalBalance, m.ControlAccountCode,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, "failed to insert account "+account.Code)
}

func (r *AccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	m, err := scanAccount(r.Tx.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code = ?`, code))
	if err != nil {
		return nil, translateError(err, "account "+code)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

func (r *AccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	accounts := make(map[string]domain.Account, len(codes))
	if len(codes) == 0 {
		return accounts, nil
	}
	in, args := inClause(codes)
	rows, err := r.Tx.Query(ctx, `SELECT `+accountColumns+` FROM accounts WHERE code IN `+in, args...)
	if err != nil {
		return nil, translateError(err, "failed to query accounts")
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan account")
		}
		accounts[m.Code] = mapping.ToDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to iterate accounts")
	}
	return accounts, nil
}

func (r *AccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	rows, err := r.Tx.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY code LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, translateError(err, "failed to list accounts")
	}
	defer rows.Close()
	accounts := make([]domain.Account, 0, limit)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan account")
		}
		accounts = append(accounts, mapping.ToDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to iterate accounts")
	}
	return accounts, nil
}

func (r *AccountRepository) ListSubsidiaryCodes(ctx context.Context, code string) ([]string, error) {
	return r.queryCodes(ctx, `SELECT code FROM accounts WHERE control_account_code = ? ORDER BY code`, code)
}

func (r *AccountRepository) FindControlAccountCodes(ctx context.Context, codes []string) ([]string, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	in, args := inClause(codes)
	return r.queryCodes(ctx, `SELECT DISTINCT control_account_code FROM accounts
		WHERE control_account_code IN `+in+` ORDER BY control_account_code`, args...)
}

func (r *AccountRepository) queryCodes(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.Tx.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to query account codes")
	}
	defer rows.Close()
	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, translateError(err, "failed to scan account code")
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to iterate account codes")
	}
	return codes, nil
}

func (r *AccountRepository) CountPostedLines(ctx context.Context, code string) (int64, error) {
	var count int64
	err := r.Tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE l.account_code = ? AND e.post_time IS NOT NULL`, code).Scan(&count)
	if err != nil {
		return 0, translateError(err, "failed to count posted lines for account "+code)
	}
	return count, nil
}

func (r *AccountRepository) SumPostedLines(ctx context.Context, codes []string) (int64, int64, error) {
	if len(codes) == 0 {
		return 0, 0, nil
	}
	in, args := inClause(codes)
	var debit, credit int64
	err := r.Tx.QueryRow(ctx, `
		SELECT
			CAST(COALESCE(SUM(CASE WHEN l.side = 'DEBIT' THEN l.amount ELSE 0 END), 0) AS BIGINT),
			CAST(COALESCE(SUM(CASE WHEN l.side = 'CREDIT' THEN l.amount ELSE 0 END), 0) AS BIGINT)
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		WHERE e.post_time IS NOT NULL AND l.account_code IN `+in, args...).Scan(&debit, &credit)
	if err != nil {
		return 0, 0, translateError(err, "failed to sum posted lines")
	}
	return debit, credit, nil
}

func (r *AccountRepository) UpdateControlAccount(ctx context.Context, code string, controlCode *string, userID string, now time.Time) error {
	var control sql.NullString
	if controlCode != nil {
		control = sql.NullString{String: *controlCode, Valid: true}
	}
	res, err := r.Tx.Exec(ctx, `
		UPDATE accounts SET control_account_code = ?, last_updated_at = ?, last_updated_by = ?
		WHERE code = ?`,
		control, mapping.ToMillis(now), userID, code,
	)
	if err != nil {
		return translateError(err, "failed to update control account of "+code)
	}
	if res.RowsAffected == 0 {
		return apperrors.New(apperrors.KindAccountNotFound, "account %s", code)
	}
	return nil
}
