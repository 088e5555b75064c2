package sqlstore

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

// BaseRepository provides common functionality for all repositories. Repositories are bound to
// one open transaction.
type BaseRepository struct {
	Tx database.Tx
}

func (r *BaseRepository) dialect() database.Dialect {
	return r.Tx.Dialect()
}

// translateError maps store failures onto application errors.
func translateError(err error, msg string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, database.ErrNoRows):
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, msg)
	case errors.Is(err, database.ErrUniqueViolation):
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, msg)
	case errors.Is(err, database.ErrSerializationFailure):
		return apperrors.Wrap(apperrors.KindTransactionConflict, err, "%s", msg)
	case errors.Is(err, database.ErrForeignKeyViolation), errors.Is(err, database.ErrCheckViolation):
		return fmt.Errorf("%w: %s: %v", apperrors.ErrValidation, msg, err)
	}
	return apperrors.NewAppError(500, msg, err)
}

// inClause returns "(?, ?, ...)" for n values and the values as driver arguments.
func inClause(values []string) (string, []any) {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", len(values)), ", ") + ")", args
}
