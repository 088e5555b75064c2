package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Code          string             `json:"code" binding:"required,accountcode"`
	Name          string             `json:"name" binding:"required"`
	AccountType   domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	NormalBalance domain.Side        `json:"normalBalance" binding:"required,oneof=DEBIT CREDIT"`
}

// SetControlAccountRequest links an account to a control account. A null or empty code clears the link.
type SetControlAccountRequest struct {
	ControlAccountCode *string `json:"controlAccountCode"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	Code               string             `json:"code"`
	Name               string             `json:"name"`
	AccountType        domain.AccountType `json:"accountType"`
	NormalBalance      domain.Side        `json:"normalBalance"`
	ControlAccountCode *string            `json:"controlAccountCode,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	CreatedBy          string             `json:"createdBy"`
	LastUpdatedAt      time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy      string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		Code:               acc.Code,
		Name:               acc.Name,
		AccountType:        acc.AccountType,
		NormalBalance:      acc.NormalBalance,
		ControlAccountCode: acc.ControlAccountCode,
		CreatedAt:          acc.CreatedAt,
		CreatedBy:          acc.CreatedBy,
		LastUpdatedAt:      acc.LastUpdatedAt,
		LastUpdatedBy:      acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountCode   string          `json:"accountCode"`
	NormalBalance domain.Side     `json:"normalBalance"`
	DebitTotal    decimal.Decimal `json:"debitTotal"`
	CreditTotal   decimal.Decimal `json:"creditTotal"`
	Balance       decimal.Decimal `json:"balance"`
	IsControl     bool            `json:"isControl"`
	Subsidiaries  []string        `json:"subsidiaries,omitempty"`
}

// ToAccountBalanceResponse converts minor-unit totals to decimal amounts.
func ToAccountBalanceResponse(b *domain.AccountBalance, scale int32) AccountBalanceResponse {
	return AccountBalanceResponse{
		AccountCode:   b.AccountCode,
		NormalBalance: b.NormalBalance,
		DebitTotal:    FromMinorUnits(b.DebitTotal, scale),
		CreditTotal:   FromMinorUnits(b.CreditTotal, scale),
		Balance:       FromMinorUnits(b.Balance, scale),
		IsControl:     b.IsControl,
		Subsidiaries:  b.Subsidiaries,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps a list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
