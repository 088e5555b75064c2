package models

import "database/sql"

// Account is the accounts table row.
type Account struct {
	Code               string
	Name               string
	AccountType        string
	NormalBalance      string
	ControlAccountCode sql.NullString
	AuditFields
}
