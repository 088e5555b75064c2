package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

const fiscalYearColumns = `fiscal_year_id, name, begin_time, end_time, status, close_time, reversal_time,
	created_at, created_by, last_updated_at, last_updated_by`

// FiscalYearRepository stores fiscal years.
type FiscalYearRepository struct {
	BaseRepository
}

// NewFiscalYearRepository creates a fiscal year repository bound to tx.
func NewFiscalYearRepository(tx database.Tx) *FiscalYearRepository {
	return &FiscalYearRepository{BaseRepository: BaseRepository{Tx: tx}}
}

var _ portsrepo.FiscalYearRepositoryFacade = (*FiscalYearRepository)(nil)

func scanFiscalYear(row database.Row) (models.FiscalYear, error) {
	var m models.FiscalYear
	err := row.Scan(
		&m.FiscalYearID, &m.Name, &m.BeginTime, &m.EndTime, &m.Status, &m.CloseTime, &m.ReversalTime,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func (r *FiscalYearRepository) SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(fy)
	_, err := r.Tx.Exec(ctx, `
		INSERT INTO fiscal_years (`+fiscalYearColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.FiscalYearID, m.Name, m.BeginTime, m.EndTime, m.Status, m.CloseTime, m.ReversalTime,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	return translateError(err, "failed to insert fiscal year "+fy.ID)
}

func (r *FiscalYearRepository) FindFiscalYearByID(ctx context.Context, id string, forUpdate bool) (*domain.FiscalYear, error) {
	query := `SELECT ` + fiscalYearColumns + ` FROM fiscal_years WHERE fiscal_year_id = ?`
	if forUpdate {
		query += r.dialect().ForUpdate()
	}
	m, err := scanFiscalYear(r.Tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err, "fiscal year "+id)
	}
	fy := mapping.ToDomainFiscalYear(m)
	return &fy, nil
}

func (r *FiscalYearRepository) queryFiscalYears(ctx context.Context, query string, args ...any) ([]domain.FiscalYear, error) {
	rows, err := r.Tx.Query(ctx, query, args...)
	if err != nil {
		return nil, translateError(err, "failed to query fiscal years")
	}
	defer rows.Close()
	years := []domain.FiscalYear{}
	for rows.Next() {
		m, err := scanFiscalYear(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan fiscal year")
		}
		years = append(years, mapping.ToDomainFiscalYear(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to iterate fiscal years")
	}
	return years, nil
}

func (r *FiscalYearRepository) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return r.queryFiscalYears(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years ORDER BY begin_time`)
}

func (r *FiscalYearRepository) FindOverlapping(ctx context.Context, begin, end time.Time, excludeID string) ([]domain.FiscalYear, error) {
	return r.queryFiscalYears(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years
		WHERE begin_time < ? AND end_time > ? AND fiscal_year_id <> ?
		ORDER BY begin_time`,
		mapping.ToMillis(end), mapping.ToMillis(begin), excludeID)
}

func (r *FiscalYearRepository) FindFiscalYearContaining(ctx context.Context, t time.Time) (*domain.FiscalYear, error) {
	ms := mapping.ToMillis(t)
	m, err := scanFiscalYear(r.Tx.QueryRow(ctx, `SELECT `+fiscalYearColumns+` FROM fiscal_years
		WHERE begin_time <= ? AND end_time > ?
		ORDER BY begin_time LIMIT 1`, ms, ms))
	if err != nil {
		if errors.Is(err, database.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError(err, "failed to find fiscal year")
	}
	fy := mapping.ToDomainFiscalYear(m)
	return &fy, nil
}

func (r *FiscalYearRepository) CountUnreversedFiscalYearsFrom(ctx context.Context, t time.Time) (int64, error) {
	var count int64
	err := r.Tx.QueryRow(ctx, `SELECT COUNT(*) FROM fiscal_years WHERE status <> ? AND begin_time >= ?`,
		string(domain.FiscalYearReversed), mapping.ToMillis(t)).Scan(&count)
	if err != nil {
		return 0, translateError(err, "failed to count newer fiscal years")
	}
	return count, nil
}

func (r *FiscalYearRepository) UpdateFiscalYear(ctx context.Context, fy domain.FiscalYear) error {
	m := mapping.ToModelFiscalYear(fy)
	res, err := r.Tx.Exec(ctx, `
		UPDATE fiscal_years SET name = ?, begin_time = ?, end_time = ?, status = ?, close_time = ?,
			reversal_time = ?, last_updated_at = ?, last_updated_by = ?
		WHERE fiscal_year_id = ?`,
		m.Name, m.BeginTime, m.EndTime, m.Status, m.CloseTime,
		m.ReversalTime, m.LastUpdatedAt, m.LastUpdatedBy, m.FiscalYearID,
	)
	if err != nil {
		return translateError(err, "failed to update fiscal year "+fy.ID)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: fiscal year %s", apperrors.ErrNotFound, fy.ID)
	}
	return nil
}

func (r *FiscalYearRepository) DeleteOpenFiscalYear(ctx context.Context, id string) (bool, error) {
	res, err := r.Tx.Exec(ctx, `DELETE FROM fiscal_years WHERE fiscal_year_id = ? AND status = ?`,
		id, string(domain.FiscalYearOpen))
	if err != nil {
		return false, translateError(err, "failed to delete fiscal year "+id)
	}
	return res.RowsAffected == 1, nil
}
