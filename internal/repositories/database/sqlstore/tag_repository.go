package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

const assignmentSelect = `
	SELECT a.assignment_id, a.account_code, t.name, a.created_at, a.created_by
	FROM account_tag_assignments a
	JOIN account_tags t ON t.tag_id = a.tag_id`

// TagRepository stores account tags and their assignments.
type TagRepository struct {
	BaseRepository
}

// NewTagRepository creates a tag repository bound to tx.
func NewTagRepository(tx database.Tx) *TagRepository {
	return &TagRepository{BaseRepository: BaseRepository{Tx: tx}}
}

var _ portsrepo.TagRepositoryFacade = (*TagRepository)(nil)

func scanAssignment(row database.Row) (models.AccountTagAssignment, error) {
	var m models.AccountTagAssignment
	err := row.Scan(&m.AssignmentID, &m.AccountCode, &m.TagName, &m.CreatedAt, &m.CreatedBy)
	return m, err
}

func (r *TagRepository) EnsureTag(ctx context.Context, name string, now time.Time) (int64, error) {
	_, err := r.Tx.Exec(ctx, `INSERT INTO account_tags (name, created_at) VALUES (?, ?) ON CONFLICT (name) DO NOTHING`,
		name, mapping.ToMillis(now))
	if err != nil {
		return 0, translateError(err, "failed to create tag "+name)
	}
	var id int64
	if err := r.Tx.QueryRow(ctx, `SELECT tag_id FROM account_tags WHERE name = ?`, name).Scan(&id); err != nil {
		return 0, translateError(err, "tag "+name)
	}
	return id, nil
}

func (r *TagRepository) SaveAssignment(ctx context.Context, accountCode string, tagID int64, userID string, now time.Time) (int64, error) {
	query := r.dialect().ReturningID(`
		INSERT INTO account_tag_assignments (account_code, tag_id, created_at, created_by)
		VALUES (?, ?, ?, ?)`, "assignment_id")
	res, err := r.Tx.Exec(ctx, query, accountCode, tagID, mapping.ToMillis(now), userID)
	if err != nil {
		return 0, translateError(err, fmt.Sprintf("failed to assign tag %d to account %s", tagID, accountCode))
	}
	return res.LastInsertID, nil
}

func (r *TagRepository) FindAssignmentByID(ctx context.Context, id int64) (*domain.AccountTagAssignment, error) {
	m, err := scanAssignment(r.Tx.QueryRow(ctx, assignmentSelect+` WHERE a.assignment_id = ?`, id))
	if err != nil {
		return nil, translateError(err, fmt.Sprintf("tag assignment %d", id))
	}
	assignment := mapping.ToDomainAccountTagAssignment(m)
	return &assignment, nil
}

func (r *TagRepository) ListAssignmentsByAccount(ctx context.Context, accountCode string) ([]domain.AccountTagAssignment, error) {
	rows, err := r.Tx.Query(ctx, assignmentSelect+` WHERE a.account_code = ? ORDER BY a.assignment_id`, accountCode)
	if err != nil {
		return nil, translateError(err, "failed to list tag assignments")
	}
	defer rows.Close()
	assignments := []domain.AccountTagAssignment{}
	for rows.Next() {
		m, err := scanAssignment(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan tag assignment")
		}
		assignments = append(assignments, mapping.ToDomainAccountTagAssignment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to iterate tag assignments")
	}
	return assignments, nil
}

func (r *TagRepository) DeleteAssignment(ctx context.Context, id int64) error {
	res, err := r.Tx.Exec(ctx, `DELETE FROM account_tag_assignments WHERE assignment_id = ?`, id)
	if err != nil {
		return translateError(err, fmt.Sprintf("failed to delete tag assignment %d", id))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: tag assignment %d", apperrors.ErrNotFound, id)
	}
	return nil
}
