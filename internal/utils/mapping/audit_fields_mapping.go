package mapping

import (
	"database/sql"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/models"
)

// ToMillis converts a time to the stored representation.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// FromMillis converts a stored unix-millisecond value to UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ToNullMillis converts an optional time to a nullable column value.
func ToNullMillis(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.UnixMilli(), Valid: true}
}

// FromNullMillis converts a nullable column value to an optional time.
func FromNullMillis(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := FromMillis(v.Int64)
	return &t
}

// ToModelAuditFields converts a domain AuditFields to a model AuditFields
func ToModelAuditFields(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     ToMillis(d.CreatedAt),
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: ToMillis(d.LastUpdatedAt),
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

// ToDomainAuditFields converts a model AuditFields to a domain AuditFields
func ToDomainAuditFields(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     FromMillis(m.CreatedAt),
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: FromMillis(m.LastUpdatedAt),
		LastUpdatedBy: m.LastUpdatedBy,
	}
}
