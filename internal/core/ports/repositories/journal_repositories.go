package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID loads an entry with its lines. forUpdate locks the entry row until the
	// transaction ends. It returns apperrors.ErrNotFound if absent.
	FindEntryByID(ctx context.Context, entryID string, forUpdate bool) (*domain.JournalEntry, error)

	// ListEntries returns a page of entries ordered by entry time and id, with lines, and the
	// token for the next page.
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error)

	// CountDraftEntriesBetween counts draft entries whose entry time is in [begin, end).
	CountDraftEntriesBetween(ctx context.Context, begin, end time.Time) (int64, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveEntry persists a new draft entry and its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryHeader updates description and entry time of a draft entry.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceLines deletes the lines of a draft entry and inserts the given ones.
	ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error

	// MarkPosted sets the post time of a draft entry. It reports false if the entry was not a
	// draft when the write happened.
	MarkPosted(ctx context.Context, entryID string, postTime time.Time, userID string, now time.Time) (bool, error)

	// DeleteDraftEntry removes a draft entry and its lines. It reports false if nothing was deleted.
	DeleteDraftEntry(ctx context.Context, entryID string) (bool, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
