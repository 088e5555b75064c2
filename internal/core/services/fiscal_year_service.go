package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

// fiscalYearService manages fiscal year periods and their OPEN -> CLOSED -> REVERSED lifecycle.
type fiscalYearService struct {
	BaseService
}

func (s *fiscalYearService) loadFiscalYear(ctx context.Context, sess portsrepo.Session, id string, forUpdate bool) (*domain.FiscalYear, error) {
	fy, err := sess.FiscalYears().FindFiscalYearByID(ctx, id, forUpdate)
	if err != nil {
		return nil, notFoundAs(err, apperrors.KindFiscalYearNotFound, "fiscal year %s", id)
	}
	return fy, nil
}

func (s *fiscalYearService) loadForEvent(ctx context.Context, sess portsrepo.Session, id string, ev domain.FiscalYearEvent) (*domain.FiscalYear, domain.FiscalYearStatus, error) {
	fy, err := s.loadFiscalYear(ctx, sess, id, true)
	if err != nil {
		return nil, "", err
	}
	next, err := fy.Status.Transition(ev)
	if err != nil {
		return nil, "", err
	}
	return fy, next, nil
}

// checkPeriod validates the length of [begin, end) and that it overlaps no other year.
func (s *fiscalYearService) checkPeriod(ctx context.Context, sess portsrepo.Session, begin, end time.Time, excludeID string) error {
	if err := accounting.ValidateFiscalYearPeriod(begin, end); err != nil {
		return err
	}
	overlapping, err := sess.FiscalYears().FindOverlapping(ctx, begin, end, excludeID)
	if err != nil {
		return err
	}
	if other := accounting.FindOverlap(overlapping, begin, end, excludeID); other != nil {
		return apperrors.New(apperrors.KindFiscalYearPeriodOverlap, "period overlaps fiscal year %s", other.Name)
	}
	return nil
}

func (s *fiscalYearService) CreateFiscalYear(ctx context.Context, sess portsrepo.Session, name string, begin, end time.Time, userID string, now time.Time) (*domain.FiscalYear, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "fiscal year name is required")
	}
	if err := s.checkPeriod(ctx, sess, begin, end, ""); err != nil {
		return nil, err
	}

	fy := domain.FiscalYear{
		ID:        uuid.NewString(),
		Name:      name,
		BeginTime: begin,
		EndTime:   end,
		Status:    domain.FiscalYearOpen,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := sess.FiscalYears().SaveFiscalYear(ctx, fy); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year created", slog.String("fiscal_year_id", fy.ID), slog.String("name", name))
	return &fy, nil
}

func (s *fiscalYearService) UpdateFiscalYear(ctx context.Context, sess portsrepo.Session, id, name string, begin, end time.Time, userID string, now time.Time) (*domain.FiscalYear, error) {
	fy, _, err := s.loadForEvent(ctx, sess, id, domain.FiscalYearEditPeriod)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "fiscal year name is required")
	}
	if err := s.checkPeriod(ctx, sess, begin, end, id); err != nil {
		return nil, err
	}

	fy.Name = name
	fy.BeginTime = begin
	fy.EndTime = end
	fy.LastUpdatedAt = now
	fy.LastUpdatedBy = userID
	if err := s.update(ctx, sess, fy); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year updated", slog.String("fiscal_year_id", id))
	return fy, nil
}

func (s *fiscalYearService) update(ctx context.Context, sess portsrepo.Session, fy *domain.FiscalYear) error {
	return notFoundAs(sess.FiscalYears().UpdateFiscalYear(ctx, *fy), apperrors.KindFiscalYearNotFound, "fiscal year %s", fy.ID)
}

// Close freezes an OPEN fiscal year once no draft entry is dated inside it.
func (s *fiscalYearService) Close(ctx context.Context, sess portsrepo.Session, id string, closeTime time.Time, userID string, now time.Time) (*domain.FiscalYear, error) {
	if !domain.IsValidTimestamp(closeTime) {
		return nil, apperrors.New(apperrors.KindInvalidCloseTime, "close time must be after the epoch")
	}
	fy, next, err := s.loadForEvent(ctx, sess, id, domain.FiscalYearClose)
	if err != nil {
		return nil, err
	}

	drafts, err := sess.Journals().CountDraftEntriesBetween(ctx, fy.BeginTime, fy.EndTime)
	if err != nil {
		return nil, err
	}
	if drafts > 0 {
		return nil, apperrors.New(apperrors.KindUnpostedEntriesBlockClose,
			"%d draft entries are dated inside fiscal year %s", drafts, fy.Name)
	}

	fy.Status = next
	fy.CloseTime = &closeTime
	fy.LastUpdatedAt = now
	fy.LastUpdatedBy = userID
	if err := s.update(ctx, sess, fy); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year closed", slog.String("fiscal_year_id", id), slog.Int64("close_time", closeTime.UnixMilli()))
	return fy, nil
}

func (s *fiscalYearService) DeleteFiscalYear(ctx context.Context, sess portsrepo.Session, id string) error {
	if _, _, err := s.loadForEvent(ctx, sess, id, domain.FiscalYearDelete); err != nil {
		return err
	}
	deleted, err := sess.FiscalYears().DeleteOpenFiscalYear(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.New(apperrors.KindCannotDeleteClosedOrReversedYear, "fiscal year %s is no longer open", id)
	}
	s.LogInfo(ctx, "Fiscal year deleted", slog.String("fiscal_year_id", id))
	return nil
}

// Reverse moves a CLOSED fiscal year to REVERSED. Every later year, open or closed, must be
// reversed or deleted first.
func (s *fiscalYearService) Reverse(ctx context.Context, sess portsrepo.Session, id string, reversalTime time.Time, userID string, now time.Time) (*domain.FiscalYear, error) {
	fy, next, err := s.loadForEvent(ctx, sess, id, domain.FiscalYearReverse)
	if err != nil {
		return nil, err
	}

	newer, err := sess.FiscalYears().CountUnreversedFiscalYearsFrom(ctx, fy.EndTime)
	if err != nil {
		return nil, err
	}
	if newer > 0 {
		return nil, apperrors.New(apperrors.KindNewerFiscalYearsExist,
			"%d later fiscal years begin after %s; reverse or delete them first", newer, fy.Name)
	}
	if err := accounting.ValidateReversalTime(fy.CloseTime, reversalTime); err != nil {
		return nil, err
	}

	fy.Status = next
	fy.ReversalTime = &reversalTime
	fy.LastUpdatedAt = now
	fy.LastUpdatedBy = userID
	if err := s.update(ctx, sess, fy); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Fiscal year reversed", slog.String("fiscal_year_id", id), slog.Int64("reversal_time", reversalTime.UnixMilli()))
	return fy, nil
}

// ChangeReversalTime always fails: the reversal time is written once, by Reverse.
func (s *fiscalYearService) ChangeReversalTime(ctx context.Context, sess portsrepo.Session, id string) error {
	fy, err := s.loadFiscalYear(ctx, sess, id, false)
	if err != nil {
		return err
	}
	if _, err := fy.Status.Transition(domain.FiscalYearChangeReversalTime); err != nil {
		return err
	}
	return apperrors.New(apperrors.KindReversalTimeImmutable, "reversal time of fiscal year %s cannot change", id)
}

func (s *fiscalYearService) GetFiscalYear(ctx context.Context, sess portsrepo.Session, id string) (*domain.FiscalYear, error) {
	return s.loadFiscalYear(ctx, sess, id, false)
}

func (s *fiscalYearService) ListFiscalYears(ctx context.Context, sess portsrepo.Session) ([]domain.FiscalYear, error) {
	return sess.FiscalYears().ListFiscalYears(ctx)
}
