package services

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_engine/internal/utils/accounting"
)

const maxListLimit = 500

// journalService provides the draft/posted lifecycle of journal entries.
type journalService struct {
	BaseService
}

func (s *journalService) loadEntry(ctx context.Context, sess portsrepo.Session, id string, forUpdate bool) (*domain.JournalEntry, error) {
	entry, err := sess.Journals().FindEntryByID(ctx, id, forUpdate)
	if err != nil {
		return nil, notFoundAs(err, apperrors.KindEntryNotFound, "journal entry %s", id)
	}
	return entry, nil
}

// checkAccounts verifies that every line targets an existing account.
func (s *journalService) checkAccounts(ctx context.Context, sess portsrepo.Session, lines []domain.JournalEntryLine) ([]string, error) {
	codes := lineAccountCodes(lines)
	found, err := sess.Accounts().FindAccountsByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	for _, code := range codes {
		if _, ok := found[code]; !ok {
			return nil, apperrors.New(apperrors.KindAccountNotFound, "account %s", code)
		}
	}
	return codes, nil
}

func lineAccountCodes(lines []domain.JournalEntryLine) []string {
	seen := make(map[string]bool, len(lines))
	codes := make([]string, 0, len(lines))
	for _, line := range lines {
		if !seen[line.AccountCode] {
			seen[line.AccountCode] = true
			codes = append(codes, line.AccountCode)
		}
	}
	sort.Strings(codes)
	return codes
}

// checkOpenPeriod rejects a business date inside a CLOSED fiscal year.
func (s *journalService) checkOpenPeriod(ctx context.Context, sess portsrepo.Session, entryTime time.Time) error {
	fy, err := sess.FiscalYears().FindFiscalYearContaining(ctx, entryTime)
	if err != nil {
		return err
	}
	if fy != nil && fy.Status == domain.FiscalYearClosed {
		return apperrors.New(apperrors.KindEntryInClosedFiscalYear,
			"entry time %d falls in closed fiscal year %s", entryTime.UnixMilli(), fy.Name)
	}
	return nil
}

// validateLines runs the line and balance rules and checks accounts.
func (s *journalService) validateLines(ctx context.Context, sess portsrepo.Session, lines []domain.JournalEntryLine) error {
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return err
	}
	_, err := s.checkAccounts(ctx, sess, lines)
	return err
}

// buildLines numbers lines in the order given and assigns fresh ids.
func buildLines(entryID string, lines []domain.JournalEntryLine) []domain.JournalEntryLine {
	out := make([]domain.JournalEntryLine, len(lines))
	for i, line := range lines {
		out[i] = domain.JournalEntryLine{
			ID:          uuid.NewString(),
			EntryID:     entryID,
			LineNo:      i + 1,
			AccountCode: line.AccountCode,
			Side:        line.Side,
			Amount:      line.Amount,
			Memo:        strings.TrimSpace(line.Memo),
		}
	}
	return out
}

func (s *journalService) CreateEntry(ctx context.Context, sess portsrepo.Session, description string, entryTime time.Time, lines []domain.JournalEntryLine, userID string, now time.Time) (*domain.JournalEntry, error) {
	if err := accounting.ValidateEntryTime(entryTime); err != nil {
		return nil, err
	}
	if err := s.validateLines(ctx, sess, lines); err != nil {
		return nil, err
	}
	if err := s.checkOpenPeriod(ctx, sess, entryTime); err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		ID:          entryID,
		Description: strings.TrimSpace(description),
		EntryTime:   entryTime,
		Lines:       buildLines(entryID, lines),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := sess.Journals().SaveEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created", slog.String("entry_id", entryID), slog.Int("line_count", len(lines)))
	return &entry, nil
}

// loadForEvent loads and locks an entry and checks that ev is allowed from its state.
func (s *journalService) loadForEvent(ctx context.Context, sess portsrepo.Session, id string, ev domain.EntryEvent) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, sess, id, true)
	if err != nil {
		return nil, err
	}
	if _, err := entry.State().Transition(ev); err != nil {
		return nil, err
	}
	return entry, nil
}

// touchDraft writes the header of a draft entry. A posted entry yields PostedEntryLinesImmutable.
func (s *journalService) touchDraft(ctx context.Context, sess portsrepo.Session, entry *domain.JournalEntry) error {
	err := sess.Journals().UpdateEntryHeader(ctx, *entry)
	if errors.Is(err, apperrors.ErrNotFound) && apperrors.KindOf(err) == "" {
		return apperrors.Wrap(apperrors.KindPostedEntryLinesImmutable, err, "journal entry %s is no longer a draft", entry.ID)
	}
	return err
}

func (s *journalService) UpdateEntry(ctx context.Context, sess portsrepo.Session, id, description string, entryTime time.Time, userID string, now time.Time) (*domain.JournalEntry, error) {
	entry, err := s.loadForEvent(ctx, sess, id, domain.EntryEdit)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryTime(entryTime); err != nil {
		return nil, err
	}
	if err := s.checkOpenPeriod(ctx, sess, entry.EntryTime); err != nil {
		return nil, err
	}
	if err := s.checkOpenPeriod(ctx, sess, entryTime); err != nil {
		return nil, err
	}

	entry.Description = strings.TrimSpace(description)
	entry.EntryTime = entryTime
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	if err := s.touchDraft(ctx, sess, entry); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry updated", slog.String("entry_id", id))
	return entry, nil
}

// UpdateLines replaces the lines of a draft entry wholesale.
func (s *journalService) UpdateLines(ctx context.Context, sess portsrepo.Session, id string, lines []domain.JournalEntryLine, userID string, now time.Time) (*domain.JournalEntry, error) {
	entry, err := s.loadForEvent(ctx, sess, id, domain.EntryEdit)
	if err != nil {
		return nil, err
	}
	if err := s.validateLines(ctx, sess, lines); err != nil {
		return nil, err
	}
	if err := s.checkOpenPeriod(ctx, sess, entry.EntryTime); err != nil {
		return nil, err
	}

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	if err := s.touchDraft(ctx, sess, entry); err != nil {
		return nil, err
	}
	entry.Lines = buildLines(entry.ID, lines)
	if err := sess.Journals().ReplaceLines(ctx, entry.ID, entry.Lines); err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry lines replaced", slog.String("entry_id", id), slog.Int("line_count", len(lines)))
	return entry, nil
}

func (s *journalService) DeleteEntry(ctx context.Context, sess portsrepo.Session, id string) error {
	if _, err := s.loadForEvent(ctx, sess, id, domain.EntryDelete); err != nil {
		return err
	}
	deleted, err := sess.Journals().DeleteDraftEntry(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperrors.New(apperrors.KindCannotDeletePostedEntry, "journal entry %s is no longer a draft", id)
	}
	s.LogInfo(ctx, "Journal entry deleted", slog.String("entry_id", id))
	return nil
}

// Post freezes a balanced draft at postTime.
func (s *journalService) Post(ctx context.Context, sess portsrepo.Session, id string, postTime time.Time, userID string, now time.Time) (*domain.JournalEntry, error) {
	entry, err := s.loadForEvent(ctx, sess, id, domain.EntryPost)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidatePostTime(entry.EntryTime, postTime); err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntryBalance(entry.Lines); err != nil {
		return nil, err
	}
	codes, err := s.checkAccounts(ctx, sess, entry.Lines)
	if err != nil {
		return nil, err
	}
	controls, err := sess.Accounts().FindControlAccountCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	if len(controls) > 0 {
		return nil, apperrors.New(apperrors.KindControlAccountDirectPostingForbidden,
			"accounts %s are control accounts; post to their subsidiaries", strings.Join(controls, ", "))
	}
	if err := s.checkOpenPeriod(ctx, sess, entry.EntryTime); err != nil {
		return nil, err
	}

	posted, err := sess.Journals().MarkPosted(ctx, id, postTime, userID, now)
	if err != nil {
		return nil, err
	}
	if !posted {
		return nil, apperrors.New(apperrors.KindPostedEntryImmutable, "journal entry %s is already posted", id)
	}
	entry.PostTime = &postTime
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", id), slog.Int64("post_time", postTime.UnixMilli()))
	return entry, nil
}

// Unpost always fails: a posted entry stays posted and a draft has nothing to undo.
func (s *journalService) Unpost(ctx context.Context, sess portsrepo.Session, id string) error {
	entry, err := s.loadEntry(ctx, sess, id, false)
	if err != nil {
		return err
	}
	if _, err := entry.State().Transition(domain.EntryUnpost); err != nil {
		return err
	}
	return apperrors.New(apperrors.KindPostedEntryImmutable, "journal entry %s cannot be unposted", id)
}

// ChangePostTime always fails: the post time is set exactly once, by Post.
func (s *journalService) ChangePostTime(ctx context.Context, sess portsrepo.Session, id string, _ time.Time) error {
	entry, err := s.loadEntry(ctx, sess, id, false)
	if err != nil {
		return err
	}
	if _, err := entry.State().Transition(domain.EntryChangePostTime); err != nil {
		return err
	}
	return apperrors.New(apperrors.KindPostedEntryImmutable, "post time of journal entry %s cannot change", id)
}

func (s *journalService) GetEntry(ctx context.Context, sess portsrepo.Session, id string) (*domain.JournalEntry, error) {
	return s.loadEntry(ctx, sess, id, false)
}

func (s *journalService) ListEntries(ctx context.Context, sess portsrepo.Session, filter domain.EntryFilter) ([]domain.JournalEntry, *string, error) {
	if filter.Limit < 0 || filter.Limit > maxListLimit {
		return nil, nil, apperrors.New(apperrors.KindInvalidInput, "limit must be between 0 and %d", maxListLimit)
	}
	if filter.State != nil && *filter.State != domain.EntryDraft && *filter.State != domain.EntryPosted {
		return nil, nil, apperrors.New(apperrors.KindInvalidInput, "unknown entry state %q", *filter.State)
	}
	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		return nil, nil, apperrors.New(apperrors.KindInvalidInput, "from must be before to")
	}
	return sess.Journals().ListEntries(ctx, filter)
}
