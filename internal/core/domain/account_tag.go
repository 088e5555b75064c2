package domain

import "time"

// AccountTag is a free-form label that can be attached to accounts.
type AccountTag struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// AccountTagAssignment records that a tag is attached to an account. Assignments are never
// modified in place; they are removed and created again.
type AccountTagAssignment struct {
	ID          int64     `json:"id"`
	AccountCode string    `json:"accountCode"`
	TagName     string    `json:"tagName"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}
