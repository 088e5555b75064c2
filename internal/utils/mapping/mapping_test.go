package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiscalYearRoundTripKeepsMilliseconds(t *testing.T) {
	closeTime := time.Date(2025, 1, 5, 10, 30, 0, 123_000_000, time.UTC)
	fy := domain.FiscalYear{
		ID:        "fy-1",
		Name:      "FY2024",
		BeginTime: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:    domain.FiscalYearClosed,
		CloseTime: &closeTime,
	}

	m := ToModelFiscalYear(fy)
	assert.True(t, m.CloseTime.Valid)
	assert.False(t, m.ReversalTime.Valid)

	back := ToDomainFiscalYear(m)
	require.NotNil(t, back.CloseTime)
	assert.True(t, closeTime.Equal(*back.CloseTime))
	assert.Nil(t, back.ReversalTime)
	assert.Equal(t, fy.Status, back.Status)
}

func TestAccountControlLink(t *testing.T) {
	parent := "1000"
	m := ToModelAccount(domain.Account{Code: "1100", ControlAccountCode: &parent})
	assert.True(t, m.ControlAccountCode.Valid)

	d := ToDomainAccount(m)
	require.NotNil(t, d.ControlAccountCode)
	assert.Equal(t, "1000", *d.ControlAccountCode)

	empty := ""
	assert.False(t, ToModelAccount(domain.Account{Code: "1100", ControlAccountCode: &empty}).ControlAccountCode.Valid)
}

func TestJournalEntryDraftHasNoPostTime(t *testing.T) {
	m := ToModelJournalEntry(domain.JournalEntry{ID: "e1", EntryTime: time.UnixMilli(1)})
	assert.False(t, m.PostTime.Valid)
	assert.Equal(t, int64(1), m.EntryTime)
	assert.Equal(t, domain.EntryDraft, ToDomainJournalEntry(m).State())
}
