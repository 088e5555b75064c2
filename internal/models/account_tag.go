package models

// AccountTagAssignment is an account_tag_assignments row joined with its tag name.
type AccountTagAssignment struct {
	AssignmentID int64
	AccountCode  string
	TagName      string
	CreatedAt    int64
	CreatedBy    string
}
