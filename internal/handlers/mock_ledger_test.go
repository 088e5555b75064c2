package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

func (m *MockLedgerService) account(args mock.Arguments) (*domain.Account, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockLedgerService) entry(args mock.Arguments) (*domain.JournalEntry, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockLedgerService) fiscalYear(args mock.Arguments) (*domain.FiscalYear, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalYear), args.Error(1)
}

func (m *MockLedgerService) CreateAccount(ctx context.Context, code, name string, accountType domain.AccountType, normalBalance domain.Side, userID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, code, name, accountType, normalBalance, userID))
}

func (m *MockLedgerService) SetControlAccount(ctx context.Context, code string, controlCode *string, userID string) (*domain.Account, error) {
	return m.account(m.Called(ctx, code, controlCode, userID))
}

func (m *MockLedgerService) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	return m.account(m.Called(ctx, code))
}

func (m *MockLedgerService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockLedgerService) GetAccountBalance(ctx context.Context, code string) (*domain.AccountBalance, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountBalance), args.Error(1)
}

func (m *MockLedgerService) AssignTag(ctx context.Context, accountCode, tagName, userID string) (*domain.AccountTagAssignment, error) {
	args := m.Called(ctx, accountCode, tagName, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountTagAssignment), args.Error(1)
}

func (m *MockLedgerService) RemoveTagAssignment(ctx context.Context, id int64, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockLedgerService) UpdateTagAssignment(ctx context.Context, id int64, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockLedgerService) ListTagAssignments(ctx context.Context, accountCode string) ([]domain.AccountTagAssignment, error) {
	args := m.Called(ctx, accountCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountTagAssignment), args.Error(1)
}

func (m *MockLedgerService) CreateEntry(ctx context.Context, description string, entryTime time.Time, lines []domain.JournalEntryLine, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, description, entryTime, lines, userID))
}

func (m *MockLedgerService) UpdateEntry(ctx context.Context, id, description string, entryTime time.Time, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, id, description, entryTime, userID))
}

func (m *MockLedgerService) UpdateLines(ctx context.Context, id string, lines []domain.JournalEntryLine, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, id, lines, userID))
}

func (m *MockLedgerService) DeleteEntry(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockLedgerService) PostEntry(ctx context.Context, id string, postTime time.Time, userID string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, id, postTime, userID))
}

func (m *MockLedgerService) UnpostEntry(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockLedgerService) ChangePostTime(ctx context.Context, id string, postTime time.Time, userID string) error {
	return m.Called(ctx, id, postTime, userID).Error(0)
}

func (m *MockLedgerService) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return m.entry(m.Called(ctx, id))
}

func (m *MockLedgerService) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter)
	var entries []domain.JournalEntry
	if args.Get(0) != nil {
		entries = args.Get(0).([]domain.JournalEntry)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return entries, next, args.Error(2)
}

func (m *MockLedgerService) CreateFiscalYear(ctx context.Context, name string, begin, end time.Time, userID string) (*domain.FiscalYear, error) {
	return m.fiscalYear(m.Called(ctx, name, begin, end, userID))
}

func (m *MockLedgerService) UpdateFiscalYear(ctx context.Context, id, name string, begin, end time.Time, userID string) (*domain.FiscalYear, error) {
	return m.fiscalYear(m.Called(ctx, id, name, begin, end, userID))
}

func (m *MockLedgerService) DeleteFiscalYear(ctx context.Context, id string, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *MockLedgerService) CloseFiscalYear(ctx context.Context, id string, closeTime time.Time, userID string) (*domain.FiscalYear, error) {
	return m.fiscalYear(m.Called(ctx, id, closeTime, userID))
}

func (m *MockLedgerService) ReverseFiscalYear(ctx context.Context, id string, reversalTime time.Time, userID string) (*domain.FiscalYear, error) {
	return m.fiscalYear(m.Called(ctx, id, reversalTime, userID))
}

func (m *MockLedgerService) ChangeReversalTime(ctx context.Context, id string, reversalTime time.Time, userID string) error {
	return m.Called(ctx, id, reversalTime, userID).Error(0)
}

func (m *MockLedgerService) GetFiscalYear(ctx context.Context, id string) (*domain.FiscalYear, error) {
	return m.fiscalYear(m.Called(ctx, id))
}

func (m *MockLedgerService) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalYear), args.Error(1)
}
