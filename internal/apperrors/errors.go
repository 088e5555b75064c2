package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the requested change is not allowed in the resource's current state.
var ErrConflict = errors.New("state conflict")

// ErrInternal indicates a failure of the underlying store or runtime.
var ErrInternal = errors.New("internal error")

// Kind is the stable, machine-readable name of a ledger rule violation.
type Kind string

const (
	KindInvalidInput Kind = "InvalidInput"

	// Account registry
	KindAccountNotFound                 Kind = "AccountNotFound"
	KindDuplicateAccount                Kind = "DuplicateAccount"
	KindInvalidControlAccountLink       Kind = "InvalidControlAccountLink"
	KindControlAccountHasPostedActivity Kind = "ControlAccountHasPostedActivity"

	// Tag store
	KindTagAssignmentImmutable Kind = "TagAssignmentImmutable"
	KindTagAssignmentNotFound  Kind = "TagAssignmentNotFound"
	KindDuplicateTagAssignment Kind = "DuplicateTagAssignment"

	// Journal entries
	KindEntryNotFound                        Kind = "EntryNotFound"
	KindInvalidEntryTime                     Kind = "InvalidEntryTime"
	KindInsufficientLines                    Kind = "InsufficientLines"
	KindInvalidLineAmount                    Kind = "InvalidLineAmount"
	KindUnbalancedEntry                      Kind = "UnbalancedEntry"
	KindPostedEntryLinesImmutable            Kind = "PostedEntryLinesImmutable"
	KindCannotDeletePostedEntry              Kind = "CannotDeletePostedEntry"
	KindInvalidPostTime                      Kind = "InvalidPostTime"
	KindControlAccountDirectPostingForbidden Kind = "ControlAccountDirectPostingForbidden"
	KindPostedEntryImmutable                 Kind = "PostedEntryImmutable"
	KindEntryInClosedFiscalYear              Kind = "EntryInClosedFiscalYear"

	// Fiscal years
	KindFiscalYearNotFound               Kind = "FiscalYearNotFound"
	KindFiscalYearTooShort               Kind = "FiscalYearTooShort"
	KindFiscalYearTooLong                Kind = "FiscalYearTooLong"
	KindFiscalYearPeriodOverlap          Kind = "FiscalYearPeriodOverlap"
	KindFiscalYearNotOpen                Kind = "FiscalYearNotOpen"
	KindClosedFiscalYearImmutable        Kind = "ClosedFiscalYearImmutable"
	KindInvalidCloseTime                 Kind = "InvalidCloseTime"
	KindUnpostedEntriesBlockClose        Kind = "UnpostedEntriesBlockClose"
	KindCannotDeleteClosedOrReversedYear Kind = "CannotDeleteClosedOrReversedYear"
	KindCannotReverseUnclosedYear        Kind = "CannotReverseUnclosedYear"
	KindNewerFiscalYearsExist            Kind = "NewerFiscalYearsExist"
	KindReversalTimeMustBeAfterClose     Kind = "ReversalTimeMustBeAfterClose"
	KindReversalTimeImmutable            Kind = "ReversalTimeImmutable"

	// Transactions
	KindReadOnlyTransaction Kind = "ReadOnlyTransaction"
	KindTransactionClosed   Kind = "TransactionClosed"
	KindTransactionConflict Kind = "TransactionConflict"
)

// category maps every kind onto one of the coarse sentinels above.
var category = map[Kind]error{
	KindInvalidInput: ErrValidation,

	KindAccountNotFound:                 ErrNotFound,
	KindDuplicateAccount:                ErrDuplicate,
	KindInvalidControlAccountLink:       ErrValidation,
	KindControlAccountHasPostedActivity: ErrConflict,

	KindTagAssignmentImmutable: ErrConflict,
	KindTagAssignmentNotFound:  ErrNotFound,
	KindDuplicateTagAssignment: ErrDuplicate,

	KindEntryNotFound:                        ErrNotFound,
	KindInvalidEntryTime:                     ErrValidation,
	KindInsufficientLines:                    ErrValidation,
	KindInvalidLineAmount:                    ErrValidation,
	KindUnbalancedEntry:                      ErrValidation,
	KindPostedEntryLinesImmutable:            ErrConflict,
	KindCannotDeletePostedEntry:              ErrConflict,
	KindInvalidPostTime:                      ErrValidation,
	KindControlAccountDirectPostingForbidden: ErrValidation,
	KindPostedEntryImmutable:                 ErrConflict,
	KindEntryInClosedFiscalYear:              ErrConflict,

	KindFiscalYearNotFound:               ErrNotFound,
	KindFiscalYearTooShort:               ErrValidation,
	KindFiscalYearTooLong:                ErrValidation,
	KindFiscalYearPeriodOverlap:          ErrConflict,
	KindFiscalYearNotOpen:                ErrConflict,
	KindClosedFiscalYearImmutable:        ErrConflict,
	KindInvalidCloseTime:                 ErrValidation,
	KindUnpostedEntriesBlockClose:        ErrConflict,
	KindCannotDeleteClosedOrReversedYear: ErrConflict,
	KindCannotReverseUnclosedYear:        ErrConflict,
	KindNewerFiscalYearsExist:            ErrConflict,
	KindReversalTimeMustBeAfterClose:     ErrValidation,
	KindReversalTimeImmutable:            ErrConflict,

	KindReadOnlyTransaction: ErrConflict,
	KindTransactionClosed:   ErrConflict,
	KindTransactionConflict: ErrConflict,
}

// Category returns the coarse sentinel (ErrNotFound, ErrValidation, ...) for the kind.
func (k Kind) Category() error {
	if c, ok := category[k]; ok {
		return c
	}
	return ErrInternal
}

// Error is a named ledger failure. Two errors match under errors.Is when their kinds match,
// and an Error also matches the sentinel of its category.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return target == e.Kind.Category()
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around a cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of the first Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Sentinels for errors.Is checks.
var (
	ErrInvalidInput = &Error{Kind: KindInvalidInput}

	ErrAccountNotFound                 = &Error{Kind: KindAccountNotFound}
	ErrDuplicateAccount                = &Error{Kind: KindDuplicateAccount}
	ErrInvalidControlAccountLink       = &Error{Kind: KindInvalidControlAccountLink}
	ErrControlAccountHasPostedActivity = &Error{Kind: KindControlAccountHasPostedActivity}

	ErrTagAssignmentImmutable = &Error{Kind: KindTagAssignmentImmutable}
	ErrTagAssignmentNotFound  = &Error{Kind: KindTagAssignmentNotFound}
	ErrDuplicateTagAssignment = &Error{Kind: KindDuplicateTagAssignment}

	ErrEntryNotFound                        = &Error{Kind: KindEntryNotFound}
	ErrInvalidEntryTime                     = &Error{Kind: KindInvalidEntryTime}
	ErrInsufficientLines                    = &Error{Kind: KindInsufficientLines}
	ErrInvalidLineAmount                    = &Error{Kind: KindInvalidLineAmount}
	ErrUnbalancedEntry                      = &Error{Kind: KindUnbalancedEntry}
	ErrPostedEntryLinesImmutable            = &Error{Kind: KindPostedEntryLinesImmutable}
	ErrCannotDeletePostedEntry              = &Error{Kind: KindCannotDeletePostedEntry}
	ErrInvalidPostTime                      = &Error{Kind: KindInvalidPostTime}
	ErrControlAccountDirectPostingForbidden = &Error{Kind: KindControlAccountDirectPostingForbidden}
	ErrPostedEntryImmutable                 = &Error{Kind: KindPostedEntryImmutable}
	ErrEntryInClosedFiscalYear              = &Error{Kind: KindEntryInClosedFiscalYear}

	ErrFiscalYearNotFound               = &Error{Kind: KindFiscalYearNotFound}
	ErrFiscalYearTooShort               = &Error{Kind: KindFiscalYearTooShort}
	ErrFiscalYearTooLong                = &Error{Kind: KindFiscalYearTooLong}
	ErrFiscalYearPeriodOverlap          = &Error{Kind: KindFiscalYearPeriodOverlap}
	ErrFiscalYearNotOpen                = &Error{Kind: KindFiscalYearNotOpen}
	ErrClosedFiscalYearImmutable        = &Error{Kind: KindClosedFiscalYearImmutable}
	ErrInvalidCloseTime                 = &Error{Kind: KindInvalidCloseTime}
	ErrUnpostedEntriesBlockClose        = &Error{Kind: KindUnpostedEntriesBlockClose}
	ErrCannotDeleteClosedOrReversedYear = &Error{Kind: KindCannotDeleteClosedOrReversedYear}
	ErrCannotReverseUnclosedYear        = &Error{Kind: KindCannotReverseUnclosedYear}
	ErrNewerFiscalYearsExist            = &Error{Kind: KindNewerFiscalYearsExist}
	ErrReversalTimeMustBeAfterClose     = &Error{Kind: KindReversalTimeMustBeAfterClose}
	ErrReversalTimeImmutable            = &Error{Kind: KindReversalTimeImmutable}

	ErrReadOnlyTransaction = &Error{Kind: KindReadOnlyTransaction}
	ErrTransactionClosed   = &Error{Kind: KindTransactionClosed}
	ErrTransactionConflict = &Error{Kind: KindTransactionConflict}
)

// AppError carries an infrastructure failure together with a suggested status code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
