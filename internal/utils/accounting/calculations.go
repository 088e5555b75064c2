package accounting

import (
	"math"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

const (
	MinEntryLines = 2

	MinFiscalYearLength = 30 * 24 * time.Hour
	MaxFiscalYearLength = 400 * 24 * time.Hour
)

// ValidateLines checks line count, accounts, sides and amounts. It does not check balance.
func ValidateLines(lines []domain.JournalEntryLine) error {
	if len(lines) < MinEntryLines {
		return apperrors.New(apperrors.KindInsufficientLines, "entry has %d lines, at least %d required", len(lines), MinEntryLines)
	}
	for i, line := range lines {
		if strings.TrimSpace(line.AccountCode) == "" {
			return apperrors.New(apperrors.KindInvalidInput, "line %d has no account code", i+1)
		}
		if !line.Side.IsValid() {
			return apperrors.New(apperrors.KindInvalidLineAmount, "line %d has invalid side %q", i+1, line.Side)
		}
		if line.Amount <= 0 {
			return apperrors.New(apperrors.KindInvalidLineAmount, "line %d amount must be positive, got %d", i+1, line.Amount)
		}
	}
	return nil
}

// SumSides totals debits and credits. ok is false if either total overflows int64.
func SumSides(lines []domain.JournalEntryLine) (debits, credits int64, ok bool) {
	for _, line := range lines {
		switch line.Side {
		case domain.Debit:
			if debits > math.MaxInt64-line.Amount {
				return 0, 0, false
			}
			debits += line.Amount
		case domain.Credit:
			if credits > math.MaxInt64-line.Amount {
				return 0, 0, false
			}
			credits += line.Amount
		}
	}
	return debits, credits, true
}

// ValidateEntryBalance checks the line rules and that debits equal credits exactly.
func ValidateEntryBalance(lines []domain.JournalEntryLine) error {
	if err := ValidateLines(lines); err != nil {
		return err
	}
	debits, credits, ok := SumSides(lines)
	if !ok {
		return apperrors.New(apperrors.KindUnbalancedEntry, "line totals overflow")
	}
	if debits != credits {
		return apperrors.New(apperrors.KindUnbalancedEntry, "debits %d do not equal credits %d", debits, credits)
	}
	return nil
}

// ValidateEntryTime checks the business date of an entry.
func ValidateEntryTime(entryTime time.Time) error {
	if !domain.IsValidTimestamp(entryTime) {
		return apperrors.New(apperrors.KindInvalidEntryTime, "entry time must be after the epoch")
	}
	return nil
}

// ValidatePostTime checks a post time against the entry's business date.
func ValidatePostTime(entryTime, postTime time.Time) error {
	if !domain.IsValidTimestamp(postTime) {
		return apperrors.New(apperrors.KindInvalidPostTime, "post time must be after the epoch")
	}
	if postTime.Before(entryTime) {
		return apperrors.New(apperrors.KindInvalidPostTime, "post time %d is before entry time %d", postTime.UnixMilli(), entryTime.UnixMilli())
	}
	return nil
}

// ValidateFiscalYearPeriod checks that [begin, end) is between 30 and 400 days long.
func ValidateFiscalYearPeriod(begin, end time.Time) error {
	if !domain.IsValidTimestamp(begin) || !domain.IsValidTimestamp(end) {
		return apperrors.New(apperrors.KindInvalidInput, "fiscal year begin and end must be after the epoch")
	}
	length := end.Sub(begin)
	if length < MinFiscalYearLength {
		return apperrors.New(apperrors.KindFiscalYearTooShort, "period of %s is shorter than 30 days", length)
	}
	if length > MaxFiscalYearLength {
		return apperrors.New(apperrors.KindFiscalYearTooLong, "period of %s is longer than 400 days", length)
	}
	return nil
}

// FindOverlap returns the first fiscal year, other than excludeID, whose period intersects [begin, end).
func FindOverlap(years []domain.FiscalYear, begin, end time.Time, excludeID string) *domain.FiscalYear {
	for i := range years {
		if years[i].ID == excludeID {
			continue
		}
		if years[i].Overlaps(begin, end) {
			return &years[i]
		}
	}
	return nil
}

// ValidateReversalTime checks that a reversal happens strictly after the close.
func ValidateReversalTime(closeTime *time.Time, reversalTime time.Time) error {
	if !domain.IsValidTimestamp(reversalTime) {
		return apperrors.New(apperrors.KindReversalTimeMustBeAfterClose, "reversal time must be after the epoch")
	}
	if closeTime == nil || !reversalTime.After(*closeTime) {
		return apperrors.New(apperrors.KindReversalTimeMustBeAfterClose, "reversal time must be after close time")
	}
	return nil
}

// ValidateControlLink rejects a link from code to target that is a self link or would close a
// cycle. parentOf returns the current control account of a code, or "" when it has none.
func ValidateControlLink(code, target string, parentOf func(string) (string, error)) error {
	if code == target {
		return apperrors.New(apperrors.KindInvalidControlAccountLink, "account %s cannot control itself", code)
	}
	seen := map[string]bool{code: true}
	for cur := target; cur != ""; {
		if seen[cur] {
			return apperrors.New(apperrors.KindInvalidControlAccountLink, "linking %s to %s creates a cycle", code, target)
		}
		seen[cur] = true
		next, err := parentOf(cur)
		if err != nil {
			return err
		}
		cur = next
	}
	return nil
}
