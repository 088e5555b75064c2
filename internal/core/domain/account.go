package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether the account type is one of the known types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// Account represents a ledger account, identified by its code.
type Account struct {
	Code          string      `json:"code"`
	Name          string      `json:"name"`
	AccountType   AccountType `json:"accountType"`
	NormalBalance Side        `json:"normalBalance"`
	// ControlAccountCode links a subsidiary account to the control account that aggregates it.
	ControlAccountCode *string `json:"controlAccountCode,omitempty"`
	AuditFields
}

// HasControlAccount reports whether the account is a subsidiary of a control account.
func (a Account) HasControlAccount() bool {
	return a.ControlAccountCode != nil && *a.ControlAccountCode != ""
}

// AccountBalance is the posted balance of an account in minor units. For a control account the
// totals cover every account beneath it.
type AccountBalance struct {
	AccountCode   string   `json:"accountCode"`
	NormalBalance Side     `json:"normalBalance"`
	DebitTotal    int64    `json:"debitTotal"`
	CreditTotal   int64    `json:"creditTotal"`
	Balance       int64    `json:"balance"`
	IsControl     bool     `json:"isControl"`
	Subsidiaries  []string `json:"subsidiaries,omitempty"`
}

// NewAccountBalance computes the balance on the account's normal side.
func NewAccountBalance(code string, normal Side, debit, credit int64) AccountBalance {
	b := AccountBalance{AccountCode: code, NormalBalance: normal, DebitTotal: debit, CreditTotal: credit}
	if normal == Credit {
		b.Balance = credit - debit
	} else {
		b.Balance = debit - credit
	}
	return b
}
