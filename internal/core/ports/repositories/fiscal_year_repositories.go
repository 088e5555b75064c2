package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// FiscalYearReader defines read operations for fiscal years
type FiscalYearReader interface {
	// FindFiscalYearByID returns apperrors.ErrNotFound if absent. forUpdate locks the row.
	FindFiscalYearByID(ctx context.Context, id string, forUpdate bool) (*domain.FiscalYear, error)

	// ListFiscalYears returns all fiscal years ordered by begin time.
	ListFiscalYears(ctx context.Context) ([]domain.FiscalYear, error)

	// FindOverlapping returns fiscal years, other than excludeID, intersecting [begin, end).
	FindOverlapping(ctx context.Context, begin, end time.Time, excludeID string) ([]domain.FiscalYear, error)

	// FindFiscalYearContaining returns the fiscal year whose period contains t, or nil.
	FindFiscalYearContaining(ctx context.Context, t time.Time) (*domain.FiscalYear, error)

	// CountUnreversedFiscalYearsFrom counts OPEN or CLOSED fiscal years that begin at or after t.
	CountUnreversedFiscalYearsFrom(ctx context.Context, t time.Time) (int64, error)
}

// FiscalYearWriter defines write operations for fiscal years
type FiscalYearWriter interface {
	SaveFiscalYear(ctx context.Context, fy domain.FiscalYear) error

	// UpdateFiscalYear writes name, period, status, close and reversal time. It returns
	// apperrors.ErrNotFound if absent.
	UpdateFiscalYear(ctx context.Context, fy domain.FiscalYear) error

	// DeleteOpenFiscalYear removes an OPEN fiscal year. It reports false if nothing was deleted.
	DeleteOpenFiscalYear(ctx context.Context, id string) (bool, error)
}

// FiscalYearRepositoryFacade combines all fiscal-year-related repository interfaces
type FiscalYearRepositoryFacade interface {
	FiscalYearReader
	FiscalYearWriter
}
