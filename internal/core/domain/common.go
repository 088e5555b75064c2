package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // actor reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// IsValidTimestamp reports whether t is a usable ledger timestamp: strictly after the unix epoch
// at millisecond resolution.
func IsValidTimestamp(t time.Time) bool {
	return !t.IsZero() && t.UnixMilli() > 0
}

// NormalizeTime converts t to UTC at the millisecond resolution the stores keep.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}
