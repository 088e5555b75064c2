package domain

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

// Side indicates whether a journal line is a debit or a credit.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// IsValid reports whether the side is DEBIT or CREDIT.
func (s Side) IsValid() bool {
	return s == Debit || s == Credit
}

// EntryState is the lifecycle state of a journal entry. It is derived from PostTime.
type EntryState string

const (
	EntryDraft  EntryState = "DRAFT"
	EntryPosted EntryState = "POSTED"
)

// EntryEvent is an operation requested against a journal entry.
type EntryEvent string

const (
	EntryEdit           EntryEvent = "EDIT"
	EntryDelete         EntryEvent = "DELETE"
	EntryPost           EntryEvent = "POST"
	EntryUnpost         EntryEvent = "UNPOST"
	EntryChangePostTime EntryEvent = "CHANGE_POST_TIME"
)

// Transition returns the state reached by applying ev, or the named error for a forbidden edge.
// Delete on a draft returns EntryDraft; the caller removes the entry.
func (s EntryState) Transition(ev EntryEvent) (EntryState, error) {
	switch s {
	case EntryDraft:
		switch ev {
		case EntryEdit, EntryDelete:
			return EntryDraft, nil
		case EntryPost:
			return EntryPosted, nil
		case EntryUnpost:
			return s, apperrors.New(apperrors.KindPostedEntryImmutable, "draft entries have nothing to unpost")
		case EntryChangePostTime:
			return s, apperrors.New(apperrors.KindPostedEntryImmutable, "post time can only be set by posting")
		}
	case EntryPosted:
		switch ev {
		case EntryEdit:
			return s, apperrors.New(apperrors.KindPostedEntryLinesImmutable, "posted entries cannot be edited")
		case EntryDelete:
			return s, apperrors.New(apperrors.KindCannotDeletePostedEntry, "posted entries cannot be deleted")
		case EntryPost:
			return s, apperrors.New(apperrors.KindPostedEntryImmutable, "entry is already posted")
		case EntryUnpost:
			return s, apperrors.New(apperrors.KindPostedEntryImmutable, "posted entries cannot be unposted")
		case EntryChangePostTime:
			return s, apperrors.New(apperrors.KindPostedEntryImmutable, "post time of a posted entry is frozen")
		}
	}
	return s, apperrors.New(apperrors.KindInvalidInput, "unknown transition %s from %s", ev, s)
}

// JournalEntry is a dated set of balanced lines. It is a draft until PostTime is set.
type JournalEntry struct {
	ID          string             `json:"id"`
	Description string             `json:"description"`
	EntryTime   time.Time          `json:"entryTime"`
	PostTime    *time.Time         `json:"postTime,omitempty"`
	Lines       []JournalEntryLine `json:"lines"`
	AuditFields
}

// State derives the lifecycle state from PostTime.
func (e JournalEntry) State() EntryState {
	if e.PostTime == nil {
		return EntryDraft
	}
	return EntryPosted
}

// IsPosted reports whether the entry has been posted.
func (e JournalEntry) IsPosted() bool {
	return e.State() == EntryPosted
}

// JournalEntryLine is a single debit or credit against one account, in minor units.
type JournalEntryLine struct {
	ID          string `json:"id"`
	EntryID     string `json:"entryID"`
	LineNo      int    `json:"lineNo"`
	AccountCode string `json:"accountCode"`
	Side        Side   `json:"side"`
	Amount      int64  `json:"amount"` // always positive
	Memo        string `json:"memo,omitempty"`
}

// SignedAmount is +Amount for a debit and -Amount for a credit.
func (l JournalEntryLine) SignedAmount() int64 {
	if l.Side == Credit {
		return -l.Amount
	}
	return l.Amount
}

// EntryFilter narrows a listing of journal entries.
type EntryFilter struct {
	State     *EntryState
	From      *time.Time // inclusive, on EntryTime
	To        *time.Time // exclusive, on EntryTime
	Limit     int
	NextToken *string
}
