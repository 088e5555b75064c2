package mapping

import (
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToModelFiscalYear converts a domain FiscalYear to a model FiscalYear
func ToModelFiscalYear(d domain.FiscalYear) models.FiscalYear {
	return models.FiscalYear{
		FiscalYearID: d.ID,
		Name:         d.Name,
		BeginTime:    ToMillis(d.BeginTime),
		EndTime:      ToMillis(d.EndTime),
		Status:       string(d.Status),
		CloseTime:    ToNullMillis(d.CloseTime),
		ReversalTime: ToNullMillis(d.ReversalTime),
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFiscalYear converts a model FiscalYear to a domain FiscalYear
func ToDomainFiscalYear(m models.FiscalYear) domain.FiscalYear {
	return domain.FiscalYear{
		ID:           m.FiscalYearID,
		Name:         m.Name,
		BeginTime:    FromMillis(m.BeginTime),
		EndTime:      FromMillis(m.EndTime),
		Status:       domain.FiscalYearStatus(m.Status),
		CloseTime:    FromNullMillis(m.CloseTime),
		ReversalTime: FromNullMillis(m.ReversalTime),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
