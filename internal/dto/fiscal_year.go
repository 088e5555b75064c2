package dto

import (
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

// CreateFiscalYearRequest defines a new fiscal year covering [beginTime, endTime).
type CreateFiscalYearRequest struct {
	Name      string    `json:"name" binding:"required"`
	BeginTime time.Time `json:"beginTime" binding:"required"`
	EndTime   time.Time `json:"endTime" binding:"required"`
}

// UpdateFiscalYearRequest replaces the name and period of an open fiscal year.
type UpdateFiscalYearRequest CreateFiscalYearRequest

type CloseFiscalYearRequest struct {
	CloseTime time.Time `json:"closeTime" binding:"required"`
}

type ReverseFiscalYearRequest struct {
	ReversalTime time.Time `json:"reversalTime" binding:"required"`
}

// FiscalYearResponse defines the data returned for a fiscal year.
type FiscalYearResponse struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	BeginTime     time.Time               `json:"beginTime"`
	EndTime       time.Time               `json:"endTime"`
	Status        domain.FiscalYearStatus `json:"status"`
	CloseTime     *time.Time              `json:"closeTime,omitempty"`
	ReversalTime  *time.Time              `json:"reversalTime,omitempty"`
	CreatedAt     time.Time               `json:"createdAt"`
	CreatedBy     string                  `json:"createdBy"`
	LastUpdatedAt time.Time               `json:"lastUpdatedAt"`
	LastUpdatedBy string                  `json:"lastUpdatedBy"`
}

func ToFiscalYearResponse(fy *domain.FiscalYear) FiscalYearResponse {
	return FiscalYearResponse{
		ID:            fy.ID,
		Name:          fy.Name,
		BeginTime:     fy.BeginTime,
		EndTime:       fy.EndTime,
		Status:        fy.Status,
		CloseTime:     fy.CloseTime,
		ReversalTime:  fy.ReversalTime,
		CreatedAt:     fy.CreatedAt,
		CreatedBy:     fy.CreatedBy,
		LastUpdatedAt: fy.LastUpdatedAt,
		LastUpdatedBy: fy.LastUpdatedBy,
	}
}

type ListFiscalYearsResponse struct {
	FiscalYears []FiscalYearResponse `json:"fiscalYears"`
}

func ToListFiscalYearsResponse(years []domain.FiscalYear) ListFiscalYearsResponse {
	res := make([]FiscalYearResponse, len(years))
	for i := range years {
		res[i] = ToFiscalYearResponse(&years[i])
	}
	return ListFiscalYearsResponse{FiscalYears: res}
}
