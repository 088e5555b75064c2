package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// TagReader defines read operations for account tags
type TagReader interface {
	// FindAssignmentByID returns apperrors.ErrNotFound if absent.
	FindAssignmentByID(ctx context.Context, id int64) (*domain.AccountTagAssignment, error)
	ListAssignmentsByAccount(ctx context.Context, accountCode string) ([]domain.AccountTagAssignment, error)
}

// TagWriter defines write operations for account tags
type TagWriter interface {
	// EnsureTag creates the tag if it does not exist and returns its id.
	EnsureTag(ctx context.Context, name string, now time.Time) (int64, error)

	// SaveAssignment inserts an assignment and returns its store-generated id. It returns
	// apperrors.ErrDuplicate if the account already carries the tag.
	SaveAssignment(ctx context.Context, accountCode string, tagID int64, userID string, now time.Time) (int64, error)

	// DeleteAssignment removes an assignment. It returns apperrors.ErrNotFound if absent.
	DeleteAssignment(ctx context.Context, id int64) error
}

// TagRepositoryFacade combines all tag-related repository interfaces
type TagRepositoryFacade interface {
	TagReader
	TagWriter
}
