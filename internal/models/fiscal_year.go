package models

import "database/sql"

// FiscalYear is the fiscal_years table row.
type FiscalYear struct {
	FiscalYearID string
	Name         string
	BeginTime    int64
	EndTime      int64
	Status       string
	CloseTime    sql.NullInt64
	ReversalTime sql.NullInt64
	AuditFields
}
