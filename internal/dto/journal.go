package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one debit or credit in a request. Amount is in major units.
type JournalLineRequest struct {
	AccountCode string          `json:"accountCode" binding:"required,accountcode"`
	Side        domain.Side     `json:"side" binding:"required,oneof=DEBIT CREDIT"`
	Amount      decimal.Decimal `json:"amount"`
	Memo        string          `json:"memo" binding:"max=255"`
}

// CreateJournalEntryRequest defines the data needed to create a draft entry.
type CreateJournalEntryRequest struct {
	Description string               `json:"description"`
	EntryTime   time.Time            `json:"entryTime" binding:"required"`
	Lines       []JournalLineRequest `json:"lines" binding:"dive"`
}

// UpdateJournalEntryRequest replaces the header of a draft entry.
type UpdateJournalEntryRequest struct {
	Description string    `json:"description"`
	EntryTime   time.Time `json:"entryTime" binding:"required"`
}

// UpdateLinesRequest replaces every line of a draft entry.
type UpdateLinesRequest struct {
	Lines []JournalLineRequest `json:"lines" binding:"dive"`
}

type PostEntryRequest struct {
	PostTime time.Time `json:"postTime" binding:"required"`
}

// ToDomainLines converts request lines to minor units.
func ToDomainLines(lines []JournalLineRequest, scale int32) ([]domain.JournalEntryLine, error) {
	res := make([]domain.JournalEntryLine, len(lines))
	for i, l := range lines {
		amount, err := ToMinorUnits(l.Amount, scale)
		if err != nil {
			return nil, err
		}
		res[i] = domain.JournalEntryLine{
			AccountCode: l.AccountCode,
			Side:        l.Side,
			Amount:      amount,
			Memo:        l.Memo,
		}
	}
	return res, nil
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	ID          string          `json:"id"`
	LineNo      int             `json:"lineNo"`
	AccountCode string          `json:"accountCode"`
	Side        domain.Side     `json:"side"`
	Amount      decimal.Decimal `json:"amount"`
	Memo        string          `json:"memo,omitempty"`
}

// JournalEntryResponse defines the data returned for a journal entry and its lines.
type JournalEntryResponse struct {
	ID            string                `json:"id"`
	Description   string                `json:"description"`
	EntryTime     time.Time             `json:"entryTime"`
	PostTime      *time.Time            `json:"postTime,omitempty"`
	State         domain.EntryState     `json:"state"`
	Lines         []JournalLineResponse `json:"lines"`
	CreatedAt     time.Time             `json:"createdAt"`
	CreatedBy     string                `json:"createdBy"`
	LastUpdatedAt time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy string                `json:"lastUpdatedBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry, scale int32) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			ID:          l.ID,
			LineNo:      l.LineNo,
			AccountCode: l.AccountCode,
			Side:        l.Side,
			Amount:      FromMinorUnits(l.Amount, scale),
			Memo:        l.Memo,
		}
	}
	return JournalEntryResponse{
		ID:            e.ID,
		Description:   e.Description,
		EntryTime:     e.EntryTime,
		PostTime:      e.PostTime,
		State:         e.State(),
		Lines:         lines,
		CreatedAt:     e.CreatedAt,
		CreatedBy:     e.CreatedBy,
		LastUpdatedAt: e.LastUpdatedAt,
		LastUpdatedBy: e.LastUpdatedBy,
	}
}

// ListJournalEntriesParams defines query parameters for listing entries. From and To bound
// the entry time as [from, to).
type ListJournalEntriesParams struct {
	State     string    `form:"state" binding:"omitempty,oneof=DRAFT POSTED"`
	From      time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Limit     int       `form:"limit"`
	NextToken string    `form:"nextToken"`
}

// ToEntryFilter converts the query parameters to a domain filter.
func (p ListJournalEntriesParams) ToEntryFilter() domain.EntryFilter {
	filter := domain.EntryFilter{Limit: p.Limit}
	if p.State != "" {
		state := domain.EntryState(p.State)
		filter.State = &state
	}
	if !p.From.IsZero() {
		from := p.From
		filter.From = &from
	}
	if !p.To.IsZero() {
		to := p.To
		filter.To = &to
	}
	if p.NextToken != "" {
		token := p.NextToken
		filter.NextToken = &token
	}
	return filter
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken *string, scale int32) ListJournalEntriesResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i], scale)
	}
	return ListJournalEntriesResponse{Entries: res, NextToken: nextToken}
}
