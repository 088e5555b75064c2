package domain

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// FiscalYearStatus is the lifecycle status of a fiscal year.
type FiscalYearStatus string

const (
	FiscalYearOpen     FiscalYearStatus = "OPEN"
	FiscalYearClosed   FiscalYearStatus = "CLOSED"
	FiscalYearReversed FiscalYearStatus = "REVERSED"
)

// IsValid reports whether the status is one of the known statuses.
func (s FiscalYearStatus) IsValid() bool {
	switch s {
	case FiscalYearOpen, FiscalYearClosed, FiscalYearReversed:
		return true
	}
	return false
}

// FiscalYearEvent is an operation requested against a fiscal year.
type FiscalYearEvent string

const (
	FiscalYearClose              FiscalYearEvent = "CLOSE"
	FiscalYearReverse            FiscalYearEvent = "REVERSE"
	FiscalYearDelete             FiscalYearEvent = "DELETE"
	FiscalYearEditPeriod         FiscalYearEvent = "EDIT_PERIOD"
	FiscalYearReopen             FiscalYearEvent = "REOPEN"
	FiscalYearChangeReversalTime FiscalYearEvent = "CHANGE_REVERSAL_TIME"
)

// Transition returns the status reached by applying ev, or the named error for a forbidden edge.
// There is no edge back to OPEN and none from REVERSED to CLOSED.
func (s FiscalYearStatus) Transition(ev FiscalYearEvent) (FiscalYearStatus, error) {
	switch s {
	case FiscalYearOpen:
		switch ev {
		case FiscalYearClose:
			return FiscalYearClosed, nil
		case FiscalYearDelete, FiscalYearEditPeriod:
			return FiscalYearOpen, nil
		case FiscalYearReverse, FiscalYearChangeReversalTime:
			return s, apperrors.New(apperrors.KindCannotReverseUnclosedYear, "fiscal year is open")
		case FiscalYearReopen:
			return s, apperrors.New(apperrors.KindInvalidInput, "fiscal year is already open")
		}
	case FiscalYearClosed, FiscalYearReversed:
		switch ev {
		case FiscalYearClose:
			return s, apperrors.New(apperrors.KindFiscalYearNotOpen, "fiscal year is %s", s)
		case FiscalYearReverse:
			if s == FiscalYearClosed {
				return FiscalYearReversed, nil
			}
			return s, apperrors.New(apperrors.KindReversalTimeImmutable, "fiscal year is already reversed")
		case FiscalYearDelete:
			return s, apperrors.New(apperrors.KindCannotDeleteClosedOrReversedYear, "fiscal year is %s", s)
		case FiscalYearEditPeriod, FiscalYearReopen:
			return s, apperrors.New(apperrors.KindClosedFiscalYearImmutable, "fiscal year is %s", s)
		case FiscalYearChangeReversalTime:
			return s, apperrors.New(apperrors.KindReversalTimeImmutable, "reversal time is set only by reversing")
		}
	}
	return s, apperrors.New(apperrors.KindInvalidInput, "unknown transition %s from %s", ev, s)
}

// FiscalYear is an accounting period covering [BeginTime, EndTime).
type FiscalYear struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	BeginTime    time.Time        `json:"beginTime"`
	EndTime      time.Time        `json:"endTime"`
	Status       FiscalYearStatus `json:"status"`
	CloseTime    *time.Time       `json:"closeTime,omitempty"`
	ReversalTime *time.Time       `json:"reversalTime,omitempty"`
	AuditFields
}

// Contains reports whether t falls inside the fiscal year's period.
func (fy FiscalYear) Contains(t time.Time) bool {
	return !t.Before(fy.BeginTime) && t.Before(fy.EndTime)
}

// Overlaps reports whether the fiscal year's period intersects [begin, end).
func (fy FiscalYear) Overlaps(begin, end time.Time) bool {
	return fy.BeginTime.Before(end) && begin.Before(fy.EndTime)
}
