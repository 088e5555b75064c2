package models

import "database/sql"

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID     string
	Description string
	EntryTime   int64
	PostTime    sql.NullInt64 // NULL while draft
	AuditFields
}

// JournalEntryLine is the journal_entry_lines table row.
type JournalEntryLine struct {
	LineID      string
	EntryID     string
	LineNo      int
	AccountCode string
	Side        string
	Amount      int64
	Memo        string
}
