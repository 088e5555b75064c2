package models

// AuditFields holds audit columns as stored: times are unix milliseconds.
type AuditFields struct {
	CreatedAt     int64
	CreatedBy     string
	LastUpdatedAt int64
	LastUpdatedBy string
}
