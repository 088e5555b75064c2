package repositories

import "context"

// TxMode selects whether a unit of work may write.
type TxMode int

const (
	ReadOnly TxMode = iota
	ReadWrite
)

func (m TxMode) String() string {
	if m == ReadWrite {
		return "read-write"
	}
	return "read-only"
}

// Session exposes the repositories bound to one open transaction. Every read and write made
// through a session sees the same snapshot and commits or rolls back together.
type Session interface {
	Mode() TxMode
	Accounts() AccountRepositoryFacade
	Tags() TagRepositoryFacade
	Journals() JournalRepositoryFacade
	FiscalYears() FiscalYearRepositoryFacade
}

// UnitOfWork is a Session that can be finished.
type UnitOfWork interface {
	Session
	Commit(ctx context.Context) error
	// Rollback is safe to call after Commit.
	Rollback(ctx context.Context) error
}

// TransactionManager begins units of work against the configured store.
type TransactionManager interface {
	Begin(ctx context.Context, mode TxMode) (UnitOfWork, error)
}
