package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockTransactionManager is a mock type for the TransactionManager interface
type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) Begin(ctx context.Context, mode portsrepo.TxMode) (portsrepo.UnitOfWork, error) {
	args := m.Called(ctx, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(portsrepo.UnitOfWork), args.Error(1)
}

// MockUnitOfWork is a mock type for the UnitOfWork interface. Only account repositories are wired.
type MockUnitOfWork struct {
	mock.Mock
	accounts *MockAccountRepository
}

func (m *MockUnitOfWork) Mode() portsrepo.TxMode {
	return m.Called().Get(0).(portsrepo.TxMode)
}

func (m *MockUnitOfWork) Accounts() portsrepo.AccountRepositoryFacade { return m.accounts }

func (m *MockUnitOfWork) Tags() portsrepo.TagRepositoryFacade { return nil }

func (m *MockUnitOfWork) Journals() portsrepo.JournalRepositoryFacade { return nil }

func (m *MockUnitOfWork) FiscalYears() portsrepo.FiscalYearRepositoryFacade { return nil }

func (m *MockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// MockAccountRepository is a mock type for the AccountRepositoryFacade interface
type MockAccountRepository struct {
	mock.Mock
}

// --- Implement mock methods for AccountRepository ---

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, codes []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListSubsidiaryCodes(ctx context.Context, code string) ([]string, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountRepository) FindControlAccountCodes(ctx context.Context, codes []string) ([]string, error) {
	args := m.Called(ctx, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAccountRepository) CountPostedLines(ctx context.Context, code string) (int64, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) SumPostedLines(ctx context.Context, codes []string) (int64, int64, error) {
	args := m.Called(ctx, codes)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateControlAccount(ctx context.Context, code string, controlCode *string, userID string, now time.Time) error {
	return m.Called(ctx, code, controlCode, userID, now).Error(0)
}

// --- Test Suite Setup ---

type AccountServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	now    time.Time
	txm    *MockTransactionManager
	repo   *MockAccountRepository
	ledger *services.Ledger
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.now = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	suite.txm = new(MockTransactionManager)
	suite.repo = new(MockAccountRepository)
	suite.ledger = services.NewLedger(suite.txm,
		services.WithClock(func() time.Time { return suite.now }),
		services.WithMaxRetries(2),
	)
}

func (suite *AccountServiceTestSuite) TearDownTest() {
	suite.txm.AssertExpectations(suite.T())
	suite.repo.AssertExpectations(suite.T())
}

// newUnitOfWork registers a unit of work the next Begin in mode will return.
func (suite *AccountServiceTestSuite) newUnitOfWork(mode portsrepo.TxMode) *MockUnitOfWork {
	uow := &MockUnitOfWork{accounts: suite.repo}
	uow.On("Mode").Return(mode).Maybe()
	suite.txm.On("Begin", mock.Anything, mode).Return(uow, nil).Once()
	return uow
}

func notFound(code string) error {
	return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, code)
}

// --- Test Cases ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	userID := uuid.NewString()
	uow := suite.newUnitOfWork(portsrepo.ReadWrite)
	uow.On("Commit", mock.Anything).Return(nil).Once()

	suite.repo.On("FindAccountByCode", mock.Anything, "1000").Return(nil, notFound("1000")).Once()
	suite.repo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Code == "1000" && a.Name == "Cash" &&
			a.CreatedBy == userID && a.LastUpdatedBy == userID &&
			a.CreatedAt.Equal(suite.now) && a.ControlAccountCode == nil
	})).Return(nil).Once()

	account, err := suite.ledger.CreateAccount(suite.ctx, "1000", "  Cash ", domain.Asset, domain.Debit, userID)

	suite.Require().NoError(err)
	suite.Equal("Cash", account.Name)
	suite.Equal(domain.Debit, account.NormalBalance)
	uow.AssertExpectations(suite.T())
	uow.AssertNotCalled(suite.T(), "Rollback", mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_SaveErrorRollsBack() {
	uow := suite.newUnitOfWork(portsrepo.ReadWrite)
	uow.On("Rollback", mock.Anything).Return(nil).Once()
	dbErr := errors.New("disk I/O error")

	suite.repo.On("FindAccountByCode", mock.Anything, "1000").Return(nil, notFound("1000")).Once()
	suite.repo.On("SaveAccount", mock.Anything, mock.Anything).Return(dbErr).Once()

	_, err := suite.ledger.CreateAccount(suite.ctx, "1000", "Cash", domain.Asset, domain.Debit, "u1")

	suite.ErrorIs(err, dbErr)
	uow.AssertExpectations(suite.T())
	uow.AssertNotCalled(suite.T(), "Commit", mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_UniqueViolationIsDuplicate() {
	uow := suite.newUnitOfWork(portsrepo.ReadWrite)
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	suite.repo.On("FindAccountByCode", mock.Anything, "1000").Return(nil, notFound("1000")).Once()
	suite.repo.On("SaveAccount", mock.Anything, mock.Anything).
		Return(fmt.Errorf("%w: accounts.code", apperrors.ErrDuplicate)).Once()

	_, err := suite.ledger.CreateAccount(suite.ctx, "1000", "Cash", domain.Asset, domain.Debit, "u1")

	suite.ErrorIs(err, apperrors.ErrDuplicateAccount)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_RuleViolationIsNotRetried() {
	uow := suite.newUnitOfWork(portsrepo.ReadWrite)
	uow.On("Rollback", mock.Anything).Return(nil).Once()

	suite.repo.On("FindAccountByCode", mock.Anything, "1000").Return(&domain.Account{Code: "1000"}, nil).Once()

	_, err := suite.ledger.CreateAccount(suite.ctx, "1000", "Cash", domain.Asset, domain.Debit, "u1")

	suite.ErrorIs(err, apperrors.ErrDuplicateAccount)
	suite.txm.AssertNumberOfCalls(suite.T(), "Begin", 1)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_InvalidInputNeverTouchesStore() {
	testCases := []struct {
		name    string
		code    string
		accName string
		typ     domain.AccountType
		side    domain.Side
	}{
		{"empty code", "", "Cash", domain.Asset, domain.Debit},
		{"whitespace in code", "10 00", "Cash", domain.Asset, domain.Debit},
		{"blank name", "1000", "   ", domain.Asset, domain.Debit},
		{"unknown type", "1000", "Cash", "INCOME", domain.Debit},
		{"unknown side", "1000", "Cash", domain.Asset, "BOTH"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			uow := suite.newUnitOfWork(portsrepo.ReadWrite)
			uow.On("Rollback", mock.Anything).Return(nil).Once()

			_, err := suite.ledger.CreateAccount(suite.ctx, tc.code, tc.accName, tc.typ, tc.side, "u1")

			suite.ErrorIs(err, apperrors.ErrInvalidInput)
			uow.AssertExpectations(suite.T())
		})
	}
	suite.repo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestWriteRetriesOnCommitConflict() {
	conflict := apperrors.Wrap(apperrors.KindTransactionConflict, errors.New("could not serialize access"), "commit")

	first := suite.newUnitOfWork(portsrepo.ReadWrite)
	first.On("Commit", mock.Anything).Return(conflict).Once()
	first.On("Rollback", mock.Anything).Return(nil).Once()

	second := suite.newUnitOfWork(portsrepo.ReadWrite)
	second.On("Commit", mock.Anything).Return(nil).Once()

	suite.repo.On("FindAccountByCode", mock.Anything, "1000").Return(nil, notFound("1000")).Twice()
	suite.repo.On("SaveAccount", mock.Anything, mock.Anything).Return(nil).Twice()

	account, err := suite.ledger.CreateAccount(suite.ctx, "1000", "Cash", domain.Asset, domain.Debit, "u1")

	suite.Require().NoError(err)
	suite.Equal("1000", account.Code)
	first.AssertExpectations(suite.T())
	second.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestWriteGivesUpAfterMaxRetries() {
	conflict := apperrors.New(apperrors.KindTransactionConflict, "could not serialize access")
	for range 3 { // first attempt plus two retries
		uow := suite.newUnitOfWork(portsrepo.ReadWrite)
		uow.On("Commit", mock.Anything).Return(conflict).Once()
		uow.On("Rollback", mock.Anything).Return(nil).Once()
	}
	suite.repo.On("FindAccountByCode", mock.Anything, "1000").Return(nil, notFound("1000")).Times(3)
	suite.repo.On("SaveAccount", mock.Anything, mock.Anything).Return(nil).Times(3)

	_, err := suite.ledger.CreateAccount(suite.ctx, "1000", "Cash", domain.Asset, domain.Debit, "u1")

	suite.ErrorIs(err, apperrors.ErrTransactionConflict)
	suite.txm.AssertNumberOfCalls(suite.T(), "Begin", 3)
}

func (suite *AccountServiceTestSuite) TestBeginFailureIsReturned() {
	beginErr := apperrors.NewAppError(500, "failed to begin transaction", errors.New("connection refused"))
	suite.txm.On("Begin", mock.Anything, portsrepo.ReadOnly).Return(nil, beginErr).Once()

	_, err := suite.ledger.GetAccount(suite.ctx, "1000")

	suite.ErrorIs(err, beginErr)
}

func (suite *AccountServiceTestSuite) TestRollbackFailureKeepsOriginalError() {
	uow := suite.newUnitOfWork(portsrepo.ReadOnly)
	uow.On("Rollback", mock.Anything).Return(errors.New("connection reset")).Once()

	suite.repo.On("FindAccountByCode", mock.Anything, "9999").Return(nil, notFound("9999")).Once()

	_, err := suite.ledger.GetAccount(suite.ctx, "9999")

	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	uow.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestListAccounts_DefaultLimit() {
	uow := suite.newUnitOfWork(portsrepo.ReadOnly)
	uow.On("Commit", mock.Anything).Return(nil).Once()
	suite.repo.On("ListAccounts", mock.Anything, 50, 0).Return([]domain.Account{{Code: "1000"}}, nil).Once()

	accounts, err := suite.ledger.ListAccounts(suite.ctx, 0, 0)

	suite.Require().NoError(err)
	suite.Len(accounts, 1)
}

func (suite *AccountServiceTestSuite) TestGetAccountBalance_ControlAccountSumsSubsidiaries() {
	uow := suite.newUnitOfWork(portsrepo.ReadOnly)
	uow.On("Commit", mock.Anything).Return(nil).Once()

	suite.repo.On("FindAccountByCode", mock.Anything, "1000").
		Return(&domain.Account{Code: "1000", NormalBalance: domain.Debit}, nil).Once()
	suite.repo.On("ListSubsidiaryCodes", mock.Anything, "1000").Return([]string{"1200", "1100"}, nil).Once()
	suite.repo.On("ListSubsidiaryCodes", mock.Anything, "1100").Return([]string{"1110"}, nil).Once()
	suite.repo.On("ListSubsidiaryCodes", mock.Anything, mock.Anything).Return([]string{}, nil)
	suite.repo.On("SumPostedLines", mock.Anything, []string{"1100", "1110", "1200"}).Return(int64(500), int64(200), nil).Once()

	balance, err := suite.ledger.GetAccountBalance(suite.ctx, "1000")

	suite.Require().NoError(err)
	suite.True(balance.IsControl)
	suite.Equal(int64(300), balance.Balance)
	suite.Equal([]string{"1100", "1110", "1200"}, balance.Subsidiaries)
}

// --- Run Test Suite ---
func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
