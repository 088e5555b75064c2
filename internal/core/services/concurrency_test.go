package services_test

import (
	"errors"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

const workers = 8

func (s *LedgerTestSuite) TestConcurrentPostsFreezeOnce() {
	entry := s.createEntry(ms(1), 100)

	var succeeded, rejected atomic.Int32
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		postTime := ms(int64(10 + i))
		g.Go(func() error {
			_, err := s.ledger.PostEntry(s.ctx, entry.ID, postTime, testUser)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, apperrors.ErrPostedEntryImmutable):
				rejected.Add(1)
			default:
				return err
			}
			return nil
		})
	}
	s.Require().NoError(g.Wait())
	s.Equal(int32(1), succeeded.Load())
	s.Equal(int32(workers-1), rejected.Load())

	stored, err := s.ledger.GetEntry(s.ctx, entry.ID)
	s.Require().NoError(err)
	s.True(stored.IsPosted())
}

func (s *LedgerTestSuite) TestConcurrentOverlappingYearsOnlyOneWins() {
	var succeeded atomic.Int32
	var g errgroup.Group
	for i := 0; i < workers; i++ {
		begin := day(2024, 1, 1).Add(time.Duration(i) * 24 * time.Hour)
		g.Go(func() error {
			_, err := s.ledger.CreateFiscalYear(s.ctx, "FY", begin, begin.AddDate(1, 0, 0), testUser)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, apperrors.ErrFiscalYearPeriodOverlap):
			default:
				return err
			}
			return nil
		})
	}
	s.Require().NoError(g.Wait())
	s.Equal(int32(1), succeeded.Load())

	years, err := s.ledger.ListFiscalYears(s.ctx)
	s.Require().NoError(err)
	s.Len(years, 1)
}

// A close racing with entry creation either sees the draft and fails, or closes first and the
// late entry is rejected. Both never succeed together.
func (s *LedgerTestSuite) TestCloseRacingDraftCreation() {
	fy := s.createYear("FY2024", day(2024, 1, 1), day(2025, 1, 1))

	var closeErr, createErr error
	var g errgroup.Group
	g.Go(func() error {
		_, closeErr = s.ledger.CloseFiscalYear(s.ctx, fy.ID, day(2025, 1, 2), testUser)
		return nil
	})
	g.Go(func() error {
		_, createErr = s.ledger.CreateEntry(s.ctx, "late", day(2024, 12, 31), []domain.JournalEntryLine{
			debit("1000", 5), credit("4000", 5),
		}, testUser)
		return nil
	})
	s.Require().NoError(g.Wait())

	if closeErr == nil {
		s.ErrorIs(createErr, apperrors.ErrEntryInClosedFiscalYear)
	} else {
		s.ErrorIs(closeErr, apperrors.ErrUnpostedEntriesBlockClose)
		s.NoError(createErr)
	}
}
