package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AccountSvc defines the account registry operations.
type AccountSvc interface {
	CreateAccount(ctx context.Context, code, name string, accountType domain.AccountType, normalBalance domain.Side, userID string) (*domain.Account, error)

	// SetControlAccount links an account to a control account, or clears the link when
	// controlCode is nil.
	SetControlAccount(ctx context.Context, code string, controlCode *string, userID string) (*domain.Account, error)

	GetAccount(ctx context.Context, code string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)

	// GetAccountBalance aggregates posted lines, across subsidiaries for a control account.
	GetAccountBalance(ctx context.Context, code string) (*domain.AccountBalance, error)
}

// TagSvc defines operations on account tag assignments.
type TagSvc interface {
	AssignTag(ctx context.Context, accountCode, tagName, userID string) (*domain.AccountTagAssignment, error)
	RemoveTagAssignment(ctx context.Context, id int64, userID string) error
	UpdateTagAssignment(ctx context.Context, id int64, userID string) error
	ListTagAssignments(ctx context.Context, accountCode string) ([]domain.AccountTagAssignment, error)
}

// JournalSvc defines the journal entry lifecycle.
type JournalSvc interface {
	CreateEntry(ctx context.Context, description string, entryTime time.Time, lines []domain.JournalEntryLine, userID string) (*domain.JournalEntry, error)
	UpdateEntry(ctx context.Context, id, description string, entryTime time.Time, userID string) (*domain.JournalEntry, error)
	UpdateLines(ctx context.Context, id string, lines []domain.JournalEntryLine, userID string) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, id string, userID string) error
	PostEntry(ctx context.Context, id string, postTime time.Time, userID string) (*domain.JournalEntry, error)
	UnpostEntry(ctx context.Context, id string, userID string) error
	ChangePostTime(ctx context.Context, id string, postTime time.Time, userID string) error
	GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error)
}

// FiscalYearSvc defines the fiscal year lifecycle.
type FiscalYearSvc interface {
	CreateFiscalYear(ctx context.Context, name string, begin, end time.Time, userID string) (*domain.FiscalYear, error)
	UpdateFiscalYear(ctx context.Context, id, name string, begin, end time.Time, userID string) (*domain.FiscalYear, error)
	DeleteFiscalYear(ctx context.Context, id string, userID string) error
	CloseFiscalYear(ctx context.Context, id string, closeTime time.Time, userID string) (*domain.FiscalYear, error)
	ReverseFiscalYear(ctx context.Context, id string, reversalTime time.Time, userID string) (*domain.FiscalYear, error)
	ChangeReversalTime(ctx context.Context, id string, reversalTime time.Time, userID string) error
	GetFiscalYear(ctx context.Context, id string) (*domain.FiscalYear, error)
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)
}

// LedgerSvcFacade combines all ledger service interfaces. Every call runs in its own
// transaction.
type LedgerSvcFacade interface {
	AccountSvc
	TagSvc
	JournalSvc
	FiscalYearSvc
}
