package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByCode retrieves an account. It returns apperrors.ErrNotFound if absent.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves the accounts that exist among codes, keyed by code.
	FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of accounts ordered by code.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// ListSubsidiaryCodes returns the codes of accounts whose control account is code.
	ListSubsidiaryCodes(ctx context.Context, code string) ([]string, error)

	// FindControlAccountCodes returns the subset of codes that are control accounts.
	FindControlAccountCodes(ctx context.Context, codes []string) ([]string, error)

	// CountPostedLines counts lines of posted entries that target the account.
	CountPostedLines(ctx context.Context, code string) (int64, error)

	// SumPostedLines totals debit and credit amounts of posted lines for the accounts.
	SumPostedLines(ctx context.Context, codes []string) (debit int64, credit int64, err error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. It returns apperrors.ErrDuplicate if the code exists.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateControlAccount sets or clears an account's control account link.
	UpdateControlAccount(ctx context.Context, code string, controlCode *string, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
