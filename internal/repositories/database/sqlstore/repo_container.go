package sqlstore

import (
	"context"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

// TransactionManager begins units of work on a database.DB.
type TransactionManager struct {
	db database.DB
}

// NewTransactionManager creates a TransactionManager for db.
func NewTransactionManager(db database.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

var _ portsrepo.TransactionManager = (*TransactionManager)(nil)

// Begin opens a transaction and binds a fresh set of repositories to it.
func (m *TransactionManager) Begin(ctx context.Context, mode portsrepo.TxMode) (portsrepo.UnitOfWork, error) {
	tx, err := m.db.Begin(ctx, database.TxOptions{ReadOnly: mode == portsrepo.ReadOnly})
	if err != nil {
		return nil, translateError(err, "failed to begin transaction")
	}
	return &unitOfWork{
		tx:          tx,
		mode:        mode,
		accounts:    NewAccountRepository(tx),
		tags:        NewTagRepository(tx),
		journals:    NewJournalRepository(tx),
		fiscalYears: NewFiscalYearRepository(tx),
	}, nil
}

type unitOfWork struct {
	tx          database.Tx
	mode        portsrepo.TxMode
	accounts    *AccountRepository
	tags        *TagRepository
	journals    *JournalRepository
	fiscalYears *FiscalYearRepository
}

func (u *unitOfWork) Mode() portsrepo.TxMode                            { return u.mode }
func (u *unitOfWork) Accounts() portsrepo.AccountRepositoryFacade       { return u.accounts }
func (u *unitOfWork) Tags() portsrepo.TagRepositoryFacade               { return u.tags }
func (u *unitOfWork) Journals() portsrepo.JournalRepositoryFacade       { return u.journals }
func (u *unitOfWork) FiscalYears() portsrepo.FiscalYearRepositoryFacade { return u.fiscalYears }

func (u *unitOfWork) Commit(ctx context.Context) error {
	if err := u.tx.Commit(ctx); err != nil {
		return translateError(err, "failed to commit transaction")
	}
	return nil
}

func (u *unitOfWork) Rollback(ctx context.Context) error {
	if err := u.tx.Rollback(ctx); err != nil {
		return translateError(err, "failed to rollback transaction")
	}
	return nil
}
