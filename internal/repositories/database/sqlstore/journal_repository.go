package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/models"
	"github.com/SscSPs/ledger_engine/internal/utils/mapping"
	"github.com/SscSPs/ledger_engine/internal/utils/pagination"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

const (
	entryColumns = `entry_id, description, entry_time, post_time,
	created_at, created_by, last_updated_at, last_updated_by`
	lineColumns = `line_id, entry_id, line_no, account_code, side, amount, memo`

	insertLineQuery = `INSERT INTO journal_entry_lines (` + lineColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	defaultListLimit = 50
)

// JournalRepository stores journal entries and their lines.
type JournalRepository struct {
	BaseRepository
}

// NewJournalRepository creates a journal repository bound to tx.
func NewJournalRepository(tx database.Tx) *JournalRepository {
	return &JournalRepository{BaseRepository: BaseRepository{Tx: tx}}
}

var _ portsrepo.JournalRepositoryFacade = (*JournalRepository)(nil)

func scanEntry(row database.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.Description, &m.EntryTime, &m.PostTime,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanLine(row database.Row) (models.JournalEntryLine, error) {
	var m models.JournalEntryLine
	err := row.Scan(&m.LineID, &m.EntryID, &m.LineNo, &m.AccountCode, &m.Side, &m.Amount, &m.Memo)
	return m, err
}

func (r *JournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	_, err := r.Tx.Exec(ctx, `
		INSERT INTO journal_entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.EntryID, m.Description, m.EntryTime, m.PostTime,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "failed to insert journal entry "+entry.ID)
	}
	return r.insertLines(ctx, entry.Lines)
}

func (r *JournalRepository) insertLines(ctx context.Context, lines []domain.JournalEntryLine) error {
	if len(lines) == 0 {
		return nil
	}
	stmts := make([]database.Statement, 0, len(lines))
	for _, line := range lines {
		m := mapping.ToModelJournalEntryLine(line)
		stmts = append(stmts, database.Statement{
			Query: insertLineQuery,
			Args:  []any{m.LineID, m.EntryID, m.LineNo, m.AccountCode, m.Side, m.Amount, m.Memo},
		})
	}
	if _, err := r.Tx.ExecBatch(ctx, stmts); err != nil {
		return translateError(err, "failed to insert journal entry lines")
	}
	return nil
}

func (r *JournalRepository) FindEntryByID(ctx context.Context, entryID string, forUpdate bool) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = ?`
	if forUpdate {
		query += r.dialect().ForUpdate()
	}
	m, err := scanEntry(r.Tx.QueryRow(ctx, query, entryID))
	if err != nil {
		return nil, translateError(err, "journal entry "+entryID)
	}
	entry := mapping.ToDomainJournalEntry(m)

	lines, err := r.findLines(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	entry.Lines = lines[entryID]
	return &entry, nil
}

func (r *JournalRepository) findLines(ctx context.Context, entryIDs []string) (map[string][]domain.JournalEntryLine, error) {
	linesByEntry := make(map[string][]domain.JournalEntryLine, len(entryIDs))
	if len(entryIDs) == 0 {
		return linesByEntry, nil
	}
	in, args := inClause(entryIDs)
	rows, err := r.Tx.Query(ctx, `SELECT `+lineColumns+` FROM journal_entry_lines
		WHERE entry_id IN `+in+` ORDER BY entry_id, line_no`, args...)
	if err != nil {
		return nil, translateError(err, "failed to query journal entry lines")
	}
	defer rows.Close()
	for rows.Next() {
		m, err := scanLine(rows)
		if err != nil {
			return nil, translateError(err, "failed to scan journal entry line")
		}
		linesByEntry[m.EntryID] = append(linesByEntry[m.EntryID], mapping.ToDomainJournalEntryLine(m))
	}
	if err := rows.Err(); err != nil {
		return nil, translateError(err, "failed to iterate journal entry lines")
	}
	return linesByEntry, nil
}

func (r *JournalRepository) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	var (
		conditions []string
		args       []any
	)
	if filter.State != nil {
		switch *filter.State {
		case domain.EntryDraft:
			conditions = append(conditions, "post_time IS NULL")
		case domain.EntryPosted:
			conditions = append(conditions, "post_time IS NOT NULL")
		}
	}
	if filter.From != nil {
		conditions = append(conditions, "entry_time >= ?")
		args = append(args, mapping.ToMillis(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "entry_time < ?")
		args = append(args, mapping.ToMillis(*filter.To))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		afterTime, afterID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.Wrap(apperrors.KindInvalidInput, err, "next token")
		}
		conditions = append(conditions, "(entry_time > ? OR (entry_time = ? AND entry_id > ?))")
		ms := mapping.ToMillis(afterTime)
		args = append(args, ms, ms, afterID)
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY entry_time, entry_id LIMIT ?"
	args = append(args, limit+1)

	rows, err := r.Tx.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, translateError(err, "failed to list journal entries")
	}
	defer rows.Close()
	entries := make([]domain.JournalEntry, 0, limit)
	ids := make([]string, 0, limit)
	hasMore := false
	for rows.Next() {
		if len(entries) == limit {
			hasMore = true
			break
		}
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, translateError(err, "failed to scan journal entry")
		}
		entries = append(entries, mapping.ToDomainJournalEntry(m))
		ids = append(ids, m.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, translateError(err, "failed to iterate journal entries")
	}
	rows.Close()

	lines, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	for i := range entries {
		entries[i].Lines = lines[entries[i].ID]
	}

	var nextToken *string
	if hasMore {
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.EntryTime, last.ID)
		nextToken = &token
	}
	return entries, nextToken, nil
}

func (r *JournalRepository) CountDraftEntriesBetween(ctx context.Context, begin, end time.Time) (int64, error) {
	var count int64
	err := r.Tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM journal_entries
		WHERE post_time IS NULL AND entry_time >= ? AND entry_time < ?`,
		mapping.ToMillis(begin), mapping.ToMillis(end)).Scan(&count)
	if err != nil {
		return 0, translateError(err, "failed to count draft entries")
	}
	return count, nil
}

func (r *JournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	res, err := r.Tx.Exec(ctx, `
		UPDATE journal_entries SET description = ?, entry_time = ?, last_updated_at = ?, last_updated_by = ?
		WHERE entry_id = ? AND post_time IS NULL`,
		entry.Description, mapping.ToMillis(entry.EntryTime), mapping.ToMillis(entry.LastUpdatedAt), entry.LastUpdatedBy, entry.ID,
	)
	if err != nil {
		return translateError(err, "failed to update journal entry "+entry.ID)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: draft journal entry %s", apperrors.ErrNotFound, entry.ID)
	}
	return nil
}

func (r *JournalRepository) ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error {
	if _, err := r.Tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = ?`, entryID); err != nil {
		return translateError(err, "failed to delete lines of journal entry "+entryID)
	}
	return r.insertLines(ctx, lines)
}

func (r *JournalRepository) MarkPosted(ctx context.Context, entryID string, postTime time.Time, userID string, now time.Time) (bool, error) {
	res, err := r.Tx.Exec(ctx, `
		UPDATE journal_entries SET post_time = ?, last_updated_at = ?, last_updated_by = ?
		WHERE entry_id = ? AND post_time IS NULL`,
		mapping.ToMillis(postTime), mapping.ToMillis(now), userID, entryID,
	)
	if err != nil {
		return false, translateError(err, "failed to post journal entry "+entryID)
	}
	return res.RowsAffected == 1, nil
}

func (r *JournalRepository) DeleteDraftEntry(ctx context.Context, entryID string) (bool, error) {
	res, err := r.Tx.Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = ? AND post_time IS NULL`, entryID)
	if err != nil {
		return false, translateError(err, "failed to delete journal entry "+entryID)
	}
	return res.RowsAffected == 1, nil
}
