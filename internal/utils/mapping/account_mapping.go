package mapping

import (
	"database/sql"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	m := models.Account{
		Code:          d.Code,
		Name:          d.Name,
		AccountType:   string(d.AccountType),
		NormalBalance: string(d.NormalBalance),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.HasControlAccount() {
		m.ControlAccountCode = sql.NullString{String: *d.ControlAccountCode, Valid: true}
	}
	return m
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	d := domain.Account{
		Code:          m.Code,
		Name:          m.Name,
		AccountType:   domain.AccountType(m.AccountType),
		NormalBalance: domain.Side(m.NormalBalance),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.ControlAccountCode.Valid {
		code := m.ControlAccountCode.String
		d.ControlAccountCode = &code
	}
	return d
}

// ToDomainAccountTagAssignment converts a model assignment to a domain assignment
func ToDomainAccountTagAssignment(m models.AccountTagAssignment) domain.AccountTagAssignment {
	return domain.AccountTagAssignment{
		ID:          m.AssignmentID,
		AccountCode: m.AccountCode,
		TagName:     m.TagName,
		CreatedAt:   FromMillis(m.CreatedAt),
		CreatedBy:   m.CreatedBy,
	}
}
