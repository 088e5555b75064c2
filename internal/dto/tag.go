package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// AssignTagRequest attaches a tag to the account in the path.
type AssignTagRequest struct {
	TagName string `json:"tagName" binding:"required,max=64"`
}

type TagAssignmentResponse struct {
	ID          int64     `json:"id"`
	AccountCode string    `json:"accountCode"`
	TagName     string    `json:"tagName"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   string    `json:"createdBy"`
}

func ToTagAssignmentResponse(a *domain.AccountTagAssignment) TagAssignmentResponse {
	return TagAssignmentResponse{
		ID:          a.ID,
		AccountCode: a.AccountCode,
		TagName:     a.TagName,
		CreatedAt:   a.CreatedAt,
		CreatedBy:   a.CreatedBy,
	}
}

type ListTagAssignmentsResponse struct {
	Assignments []TagAssignmentResponse `json:"assignments"`
}

func ToListTagAssignmentsResponse(assignments []domain.AccountTagAssignment) ListTagAssignmentsResponse {
	res := make([]TagAssignmentResponse, len(assignments))
	for i := range assignments {
		res[i] = ToTagAssignmentResponse(&assignments[i])
	}
	return ListTagAssignmentsResponse{Assignments: res}
}
