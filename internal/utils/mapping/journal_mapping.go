package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.ID,
		Description: d.Description,
		EntryTime:   ToMillis(d.EntryTime),
		PostTime:    ToNullMillis(d.PostTime),
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry without lines
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		ID:          m.EntryID,
		Description: m.Description,
		EntryTime:   FromMillis(m.EntryTime),
		PostTime:    FromNullMillis(m.PostTime),
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain line to a model line
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:      d.ID,
		EntryID:     d.EntryID,
		LineNo:      d.LineNo,
		AccountCode: d.AccountCode,
		Side:        string(d.Side),
		Amount:      d.Amount,
		Memo:        d.Memo,
	}
}

// ToDomainJournalEntryLine converts a model line to a domain line
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		ID:          m.LineID,
		EntryID:     m.EntryID,
		LineNo:      m.LineNo,
		AccountCode: m.AccountCode,
		Side:        domain.Side(m.Side),
		Amount:      m.Amount,
		Memo:        m.Memo,
	}
}
