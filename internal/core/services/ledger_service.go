package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
)

const (
	defaultMaxRetries = 3
	retryBackoff      = 10 * time.Millisecond
)

// Ledger coordinates transactions over the account registry, tag store, journal and fiscal
// years. Work is done inside a Tx obtained from Begin, or through Write and Read which commit
// for the caller.
type Ledger struct {
	BaseService
	txm         portsrepo.TransactionManager
	accounts    *accountService
	tags        *tagService
	journals    *journalService
	fiscalYears *fiscalYearService
	maxRetries  int
	now         func() time.Time
}

// LedgerOption configures a Ledger.
type LedgerOption func(*Ledger)

// WithMaxRetries sets how often Write retries a unit of work after a serialization conflict.
func WithMaxRetries(n int) LedgerOption {
	return func(l *Ledger) {
		if n >= 0 {
			l.maxRetries = n
		}
	}
}

// WithClock overrides the clock used for audit timestamps.
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) { l.now = now }
}

// NewLedger creates a Ledger on top of a transaction manager.
func NewLedger(txm portsrepo.TransactionManager, opts ...LedgerOption) *Ledger {
	accounts := &accountService{}
	l := &Ledger{
		txm:         txm,
		accounts:    accounts,
		tags:        &tagService{accounts: accounts},
		journals:    &journalService{},
		fiscalYears: &fiscalYearService{},
		maxRetries:  defaultMaxRetries,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ portssvc.LedgerSvcFacade = (*Ledger)(nil)

// Begin opens a transaction. userID is recorded as the actor of every change made through it.
func (l *Ledger) Begin(ctx context.Context, mode portsrepo.TxMode, userID string) (*Tx, error) {
	uow, err := l.txm.Begin(ctx, mode)
	if err != nil {
		l.LogError(ctx, err, "Failed to begin transaction", slog.String("mode", mode.String()))
		return nil, err
	}
	return &Tx{ledger: l, uow: uow, userID: userID}, nil
}

// Write runs fn in a read-write transaction and commits it. The whole unit is retried when the
// store reports a serialization conflict, so fn must not have side effects outside the Tx.
func (l *Ledger) Write(ctx context.Context, userID string, fn func(tx *Tx) error) error {
	for attempt := 0; ; attempt++ {
		err := l.attempt(ctx, portsrepo.ReadWrite, userID, fn)
		if err == nil || !errors.Is(err, apperrors.ErrTransactionConflict) || attempt >= l.maxRetries {
			return err
		}
		l.GetLogger(ctx).Warn("Retrying transaction after conflict", slog.Int("attempt", attempt+1), slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * retryBackoff):
		}
	}
}

// Read runs fn in a read-only transaction.
func (l *Ledger) Read(ctx context.Context, fn func(tx *Tx) error) error {
	return l.attempt(ctx, portsrepo.ReadOnly, "", fn)
}

func (l *Ledger) attempt(ctx context.Context, mode portsrepo.TxMode, userID string, fn func(tx *Tx) error) error {
	tx, err := l.Begin(ctx, mode, userID)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func write[T any](ctx context.Context, l *Ledger, userID string, fn func(tx *Tx) (T, error)) (T, error) {
	var out T
	err := l.Write(ctx, userID, func(tx *Tx) error {
		var err error
		out, err = fn(tx)
		return err
	})
	return out, err
}

func read[T any](ctx context.Context, l *Ledger, fn func(tx *Tx) (T, error)) (T, error) {
	var out T
	err := l.Read(ctx, func(tx *Tx) error {
		var err error
		out, err = fn(tx)
		return err
	})
	return out, err
}

// Tx is an open ledger transaction. Any failed operation rolls it back; afterwards every call
// returns TransactionClosed. A Tx is safe for use by one goroutine at a time.
type Tx struct {
	ledger *Ledger
	uow    portsrepo.UnitOfWork
	userID string

	mu   sync.Mutex
	done bool
}

// Mode reports whether the transaction may write.
func (t *Tx) Mode() portsrepo.TxMode {
	return t.uow.Mode()
}

func (t *Tx) run(ctx context.Context, op string, mutates bool, fn func(sess portsrepo.Session, now time.Time) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return apperrors.New(apperrors.KindTransactionClosed, "%s: transaction already finished", op)
	}
	if err := ctx.Err(); err != nil {
		t.abort(ctx)
		return err
	}
	if mutates && t.uow.Mode() == portsrepo.ReadOnly {
		t.abort(ctx)
		return apperrors.New(apperrors.KindReadOnlyTransaction, "%s requires a read-write transaction", op)
	}

	if err := fn(t.uow, domain.NormalizeTime(t.ledger.now())); err != nil {
		if apperrors.KindOf(err) != "" {
			t.ledger.LogRejection(ctx, err, "Ledger operation rejected", slog.String("operation", op))
		} else {
			t.ledger.LogError(ctx, err, "Ledger operation failed", slog.String("operation", op))
		}
		t.abort(ctx)
		return err
	}
	return nil
}

// abort rolls back and finishes the transaction. The caller holds t.mu.
func (t *Tx) abort(ctx context.Context) {
	t.done = true
	if err := t.uow.Rollback(context.WithoutCancel(ctx)); err != nil {
		t.ledger.LogError(ctx, err, "Failed to roll back transaction")
	}
}

// Commit makes the transaction's changes durable.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return apperrors.New(apperrors.KindTransactionClosed, "commit: transaction already finished")
	}
	if err := ctx.Err(); err != nil {
		t.abort(ctx)
		return err
	}
	t.done = true
	if err := t.uow.Commit(ctx); err != nil {
		_ = t.uow.Rollback(context.WithoutCancel(ctx))
		t.ledger.LogError(ctx, err, "Failed to commit transaction")
		return err
	}
	return nil
}

// Rollback discards the transaction's changes. It is a no-op on a finished transaction.
func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.done {
		return nil
	}
	t.done = true
	return t.uow.Rollback(context.WithoutCancel(ctx))
}

// --- Account registry ---

// CreateAccount registers a new account under a unique code.
func (t *Tx) CreateAccount(ctx context.Context, code, name string, accountType domain.AccountType, normalBalance domain.Side) (*domain.Account, error) {
	var out *domain.Account
	err := t.run(ctx, "CreateAccount", true, func(sess portsrepo.Session, now time.Time) (err error) {
		out, err = t.ledger.accounts.CreateAccount(ctx, sess, code, name, accountType, normalBalance, t.userID, now)
		return err
	})
	return out, err
}

// SetControlAccount links an account to a control account, or clears the link when controlCode is nil.
func (t *Tx) SetControlAccount(ctx context.Context, code string, controlCode *string) (*domain.Account, error) {
	var out *domain.Account
	err := t.run(ctx, "SetControlAccount", true, func(sess portsrepo.Session, now time.Time) (err error) {
		out, err = t.ledger.accounts.SetControlAccount(ctx, sess, code, controlCode, t.userID, now)
		return err
	})
	return out, err
}

// GetAccount returns the account with the given code.
func (t *Tx) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	var out *domain.Account
	err := t.run(ctx, "GetAccount", false, func(sess portsrepo.Session, _ time.Time) (err error) {
		out, err = t.ledger.accounts.GetAccount(ctx, sess, code)
		return err
	})
	return out, err
}

// ListAccounts returns a page of accounts ordered by code.
func (t *Tx) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	var out []domain.Account
	err := t.run(ctx, "ListAccounts", false, func(sess portsrepo.Session, _ time.Time) (err error) {
		out, err = t.ledger.accounts.ListAccounts(ctx, sess, limit, offset)
		return err
	})
	return out, err
}

// GetAccountBalance totals posted lines for the account, aggregating subsidiaries of a control account.
func (t *Tx) GetAccountBalance(ctx context.Context, code string) (*domain.AccountBalance, error) {
	var out *domain.AccountBalance
	err := t.run(ctx, "GetAccountBalance", false, func(sess portsrepo.Session, _ time.Time) (err error) {
		out, err = t.ledger.accounts.GetAccountBalance(ctx, sess, code)
		return err
	})
	return out, err
}

// --- Tag store ---

// AssignTag attaches a tag to an account, creating the tag on first use.
func (t *Tx) AssignTag(ctx context.Context, accountCode, tagName string) (*domain.AccountTagAssignment, error) {
	var out *domain.AccountTagAssignment
	err := t.run(ctx, "AssignTag", true, func(sess portsrepo.Session, now time.Time) (err error) {
		out, err = t.ledger.tags.AssignTag(ctx, sess, accountCode, tagName, t.userID, now)
		return err
	})
	return out, err
}

// RemoveTagAssignment deletes a tag assignment.
func (t *Tx) RemoveTagAssignment(ctx context.Context, id int64) error {
	return t.run(ctx, "RemoveTagAssignment", true, func(sess portsrepo.Session, _ time.Time) error {
		return t.ledger.tags.RemoveTagAssignment(ctx, sess, id)
	})
}

// UpdateTagAssignment always fails: assignments are removed and re-created, never edited.
func (t *Tx) UpdateTagAssignment(ctx context.Context, id int64) error {
	return t.run(ctx, "UpdateTagAssignment", true, func(sess portsrepo.Session, _ time.Time) error {
		return t.ledger.tags.UpdateTagAssignment(ctx, sess, id)
	})
}

// ListTagAssignments returns the tags assigned to an account.
func (t *Tx) ListTagAssignments(ctx context.Context, accountCode string) ([]domain.AccountTagAssignment, error) {
	var out []domain.AccountTagAssignment
	err := t.run(ctx, "ListTagAssignments", false, func(sess portsrepo.Session, _ time.Time) (err error) {
		out, err = t.ledger.tags.ListTagAssignments(ctx, sess, accountCode)
		return err
	})
	return out, err
}

// --- Journal entries ---

// CreateEntry records a balanced draft journal entry.
func (t *Tx) CreateEntry(ctx context.Context, description string, entryTime time.Time, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	var out *domain.JournalEntry
	err := t.run(ctx, "CreateEntry", true, func(sess portsrepo.Session, now time.Time) (err error) {
		out, err = t.ledger.journals.CreateEntry(ctx, sess, description, domain.NormalizeTime(entryTime), lines, t.userID, now)
		return err
	})
	return out, err
}

// UpdateEntry changes the description and entry time of a draft entry.
func (t *Tx) UpdateEntry(ctx context.Context, id, description string, entryTime time.Time) (*domain.JournalEntry, error) {
	var out *domain.JournalEntry
	err := t.run(ctx, "UpdateEntry", true, func(sess portsrepo.Session, now time.Time) (err error) {
		out, err = t.ledger.journals.UpdateEntry(ctx, sess, id, description, domain.NormalizeTime(entryTime), t.userID, now)
		return err
	})
	return out, err
}

// UpdateLines replaces every line of a draft entry.
func (t *Tx) UpdateLines(ctx context.Context, id string, lines []domain.JournalEntryLine) (*domain.JournalEntry, error) {
	var out *domain.JournalEntry
	err := t.run(ctx, "UpdateLines", true, func(sess portsrepo.Session, now time.Time) (err error) {
		out, err = t.ledger.journals.UpdateLines(ctx, sess, id, lines, t.userID, now)
		return err
	})
	return out, err
}

// DeleteEntry removes a draft entry together with its lines.
func (t *Tx) DeleteEntry(ctx context.Context, id string) error {
	return t.run(ctx, "DeleteEntry", true, func(sess portsrepo.Session, _ time.Time) error {
		return t.ledger.journals.DeleteEntry(ctx, sess, id)
	})
}

// PostEntry freezes a draft entry at postTime.
func (t *Tx) PostEntry(ctx context.Context, id string, postTime time.Time) (*domain.JournalEntry, error) {
	var out *domain.JournalEntry
	err := t.run(ctx, "PostEntry", true, func(sess portsrepo.Session, now time.Time) (err error) {
		out, err = t.ledger.journals.Post(ctx, sess, id, domain.NormalizeTime(postTime), t.userID, now)
		return err
	})
	return out, err
}

// UnpostEntry always fails: posted entries are immutable.
func (t *Tx) UnpostEntry(ctx context.Context, id string) error {
	return t.run(ctx, "UnpostEntry", true, func(sess portsrepo.Session, _ time.Time) error {
		return t.ledger.journals.Unpost(ctx, sess, id)
	})
}

// ChangePostTime always fails: a post time is set once.
func (t *Tx) ChangePostTime(ctx context.Context, id string, postTime time.Time) error {
	return t.run(ctx, "ChangePostTime", true, func(sess portsrepo.Session, _ time.Time) error {
		return t.ledger.journals.ChangePostTime(ctx, sess, id, postTime)
	})
}

// GetEntry returns an entry with its lines.
func (t *Tx) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	var out *domain.JournalEntry
	err := t.run(ctx, "GetEntry", false, func(sess portsrepo.Session, _ time.Time) (err error) {
		out, err = t.ledger.journals.GetEntry(ctx, sess, id)
		return err
	})
	return out, err
}

// ListEntries returns entries matching filter and the token for the next page, if any.
func (t *Tx) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	var (
		out  []domain.JournalEntry
		next *string
	)
	err := t.run(ctx, "ListEntries", false, func(sess portsrepo.Session, _ time.Time) (err error) {
		out, next, err = t.ledger.journals.ListEntries(ctx, sess, filter)
		return err
	})
	return out, next, err
}

// --- Fiscal years ---

// CreateFiscalYear opens a fiscal year over [begin, end).
func (t *Tx) CreateFiscalYear(ctx context.Context, name string, begin, end time.Time) (*domain.FiscalYear, error) {
	var out *domain.FiscalYear
	err := t.run(ctx, "CreateFiscalYear", true, func(sess portsrepo.Session, now time.Time) (err error) {
		out, err = t.ledger.fiscalYears.CreateFiscalYear(ctx, sess, name, domain.NormalizeTime(begin), domain.NormalizeTime(end), t.userID, now)
		return err
	})
	return out, err
}

// UpdateFiscalYear renames or moves an open fiscal year.
func (t *Tx) UpdateFiscalYear(ctx context.Context, id, name string, begin, end time.Time) (*domain.FiscalYear, error) {
	var out *domain.FiscalYear
	err := t.run(ctx, "UpdateFiscalYear", true, func(sess portsrepo.Session, now time.Time) (err error) {
		out, err = t.ledger.fiscalYears.UpdateFiscalYear(ctx, sess, id, name, domain.NormalizeTime(begin), domain.NormalizeTime(end), t.userID, now)
		return err
	})
	return out, err
}

// DeleteFiscalYear removes an open fiscal year.
func (t *Tx) DeleteFiscalYear(ctx context.Context, id string) error {
	return t.run(ctx, "DeleteFiscalYear", true, func(sess portsrepo.Session, _ time.Time) error {
		return t.ledger.fiscalYears.DeleteFiscalYear(ctx, sess, id)
	})
}

// CloseFiscalYear closes an open year once no draft entries fall inside it.
func (t *Tx) CloseFiscalYear(ctx context.Context, id string, closeTime time.Time) (*domain.FiscalYear, error) {
	var out *domain.FiscalYear
	err := t.run(ctx, "CloseFiscalYear", true, func(sess portsrepo.Session, now time.Time) (err error) {
		out, err = t.ledger.fiscalYears.Close(ctx, sess, id, domain.NormalizeTime(closeTime), t.userID, now)
		return err
	})
	return out, err
}

// ReverseFiscalYear reverses the latest closed year.
func (t *Tx) ReverseFiscalYear(ctx context.Context, id string, reversalTime time.Time) (*domain.FiscalYear, error) {
	var out *domain.FiscalYear
	err := t.run(ctx, "ReverseFiscalYear", true, func(sess portsrepo.Session, now time.Time) (err error) {
		out, err = t.ledger.fiscalYears.Reverse(ctx, sess, id, domain.NormalizeTime(reversalTime), t.userID, now)
		return err
	})
	return out, err
}

// ChangeReversalTime always fails: a reversal time cannot be edited.
func (t *Tx) ChangeReversalTime(ctx context.Context, id string, _ time.Time) error {
	return t.run(ctx, "ChangeReversalTime", true, func(sess portsrepo.Session, _ time.Time) error {
		return t.ledger.fiscalYears.ChangeReversalTime(ctx, sess, id)
	})
}

// GetFiscalYear returns the fiscal year with the given id.
func (t *Tx) GetFiscalYear(ctx context.Context, id string) (*domain.FiscalYear, error) {
	var out *domain.FiscalYear
	err := t.run(ctx, "GetFiscalYear", false, func(sess portsrepo.Session, _ time.Time) (err error) {
		out, err = t.ledger.fiscalYears.GetFiscalYear(ctx, sess, id)
		return err
	})
	return out, err
}

// ListFiscalYears returns every fiscal year ordered by begin time.
func (t *Tx) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	var out []domain.FiscalYear
	err := t.run(ctx, "ListFiscalYears", false, func(sess portsrepo.Session, _ time.Time) (err error) {
		out, err = t.ledger.fiscalYears.ListFiscalYears(ctx, sess)
		return err
	})
	return out, err
}

// --- Single-operation convenience methods ---

func (l *Ledger) CreateAccount(ctx context.Context, code, name string, accountType domain.AccountType, normalBalance domain.Side, userID string) (*domain.Account, error) {
	return write(ctx, l, userID, func(tx *Tx) (*domain.Account, error) {
		return tx.CreateAccount(ctx, code, name, accountType, normalBalance)
	})
}

func (l *Ledger) SetControlAccount(ctx context.Context, code string, controlCode *string, userID string) (*domain.Account, error) {
	return write(ctx, l, userID, func(tx *Tx) (*domain.Account, error) {
		return tx.SetControlAccount(ctx, code, controlCode)
	})
}

func (l *Ledger) GetAccount(ctx context.Context, code string) (*domain.Account, error) {
	return read(ctx, l, func(tx *Tx) (*domain.Account, error) { return tx.GetAccount(ctx, code) })
}

func (l *Ledger) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	return read(ctx, l, func(tx *Tx) ([]domain.Account, error) { return tx.ListAccounts(ctx, limit, offset) })
}

func (l *Ledger) GetAccountBalance(ctx context.Context, code string) (*domain.AccountBalance, error) {
	return read(ctx, l, func(tx *Tx) (*domain.AccountBalance, error) { return tx.GetAccountBalance(ctx, code) })
}

func (l *Ledger) AssignTag(ctx context.Context, accountCode, tagName, userID string) (*domain.AccountTagAssignment, error) {
	return write(ctx, l, userID, func(tx *Tx) (*domain.AccountTagAssignment, error) {
		return tx.AssignTag(ctx, accountCode, tagName)
	})
}

func (l *Ledger) RemoveTagAssignment(ctx context.Context, id int64, userID string) error {
	return l.Write(ctx, userID, func(tx *Tx) error { return tx.RemoveTagAssignment(ctx, id) })
}

func (l *Ledger) UpdateTagAssignment(ctx context.Context, id int64, userID string) error {
	return l.Write(ctx, userID, func(tx *Tx) error { return tx.UpdateTagAssignment(ctx, id) })
}

func (l *Ledger) ListTagAssignments(ctx context.Context, accountCode string) ([]domain.AccountTagAssignment, error) {
	return read(ctx, l, func(tx *Tx) ([]domain.AccountTagAssignment, error) {
		return tx.ListTagAssignments(ctx, accountCode)
	})
}

func (l *Ledger) CreateEntry(ctx context.Context, description string, entryTime time.Time, lines []domain.JournalEntryLine, userID string) (*domain.JournalEntry, error) {
	return write(ctx, l, userID, func(tx *Tx) (*domain.JournalEntry, error) {
		return tx.CreateEntry(ctx, description, entryTime, lines)
	})
}

func (l *Ledger) UpdateEntry(ctx context.Context, id, description string, entryTime time.Time, userID string) (*domain.JournalEntry, error) {
	return write(ctx, l, userID, func(tx *Tx) (*domain.JournalEntry, error) {
		return tx.UpdateEntry(ctx, id, description, entryTime)
	})
}

func (l *Ledger) UpdateLines(ctx context.Context, id string, lines []domain.JournalEntryLine, userID string) (*domain.JournalEntry, error) {
	return write(ctx, l, userID, func(tx *Tx) (*domain.JournalEntry, error) {
		return tx.UpdateLines(ctx, id, lines)
	})
}

func (l *Ledger) DeleteEntry(ctx context.Context, id string, userID string) error {
	return l.Write(ctx, userID, func(tx *Tx) error { return tx.DeleteEntry(ctx, id) })
}

func (l *Ledger) PostEntry(ctx context.Context, id string, postTime time.Time, userID string) (*domain.JournalEntry, error) {
	return write(ctx, l, userID, func(tx *Tx) (*domain.JournalEntry, error) {
		return tx.PostEntry(ctx, id, postTime)
	})
}

func (l *Ledger) UnpostEntry(ctx context.Context, id string, userID string) error {
	return l.Write(ctx, userID, func(tx *Tx) error { return tx.UnpostEntry(ctx, id) })
}

func (l *Ledger) ChangePostTime(ctx context.Context, id string, postTime time.Time, userID string) error {
	return l.Write(ctx, userID, func(tx *Tx) error { return tx.ChangePostTime(ctx, id, postTime) })
}

func (l *Ledger) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return read(ctx, l, func(tx *Tx) (*domain.JournalEntry, error) { return tx.GetEntry(ctx, id) })
}

func (l *Ledger) ListEntries(ctx context.Context, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	var (
		entries []domain.JournalEntry
		next    *string
	)
	err := l.Read(ctx, func(tx *Tx) (err error) {
		entries, next, err = tx.ListEntries(ctx, filter)
		return err
	})
	return entries, next, err
}

func (l *Ledger) CreateFiscalYear(ctx context.Context, name string, begin, end time.Time, userID string) (*domain.FiscalYear, error) {
	return write(ctx, l, userID, func(tx *Tx) (*domain.FiscalYear, error) {
		return tx.CreateFiscalYear(ctx, name, begin, end)
	})
}

func (l *Ledger) UpdateFiscalYear(ctx context.Context, id, name string, begin, end time.Time, userID string) (*domain.FiscalYear, error) {
	return write(ctx, l, userID, func(tx *Tx) (*domain.FiscalYear, error) {
		return tx.UpdateFiscalYear(ctx, id, name, begin, end)
	})
}

func (l *Ledger) DeleteFiscalYear(ctx context.Context, id string, userID string) error {
	return l.Write(ctx, userID, func(tx *Tx) error { return tx.DeleteFiscalYear(ctx, id) })
}

func (l *Ledger) CloseFiscalYear(ctx context.Context, id string, closeTime time.Time, userID string) (*domain.FiscalYear, error) {
	return write(ctx, l, userID, func(tx *Tx) (*domain.FiscalYear, error) {
		return tx.CloseFiscalYear(ctx, id, closeTime)
	})
}

func (l *Ledger) ReverseFiscalYear(ctx context.Context, id string, reversalTime time.Time, userID string) (*domain.FiscalYear, error) {
	return write(ctx, l, userID, func(tx *Tx) (*domain.FiscalYear, error) {
		return tx.ReverseFiscalYear(ctx, id, reversalTime)
	})
}

func (l *Ledger) ChangeReversalTime(ctx context.Context, id string, reversalTime time.Time, userID string) error {
	return l.Write(ctx, userID, func(tx *Tx) error { return tx.ChangeReversalTime(ctx, id, reversalTime) })
}

func (l *Ledger) GetFiscalYear(ctx context.Context, id string) (*domain.FiscalYear, error) {
	return read(ctx, l, func(tx *Tx) (*domain.FiscalYear, error) { return tx.GetFiscalYear(ctx, id) })
}

func (l *Ledger) ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error) {
	return read(ctx, l, func(tx *Tx) ([]domain.FiscalYear, error) { return tx.ListFiscalYears(ctx) })
}
