package handlers_test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/stretchr/testify/mock"
)

var (
	fy2024Begin = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	fy2024End   = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
)

func testFiscalYear(status domain.FiscalYearStatus) *domain.FiscalYear {
	return &domain.FiscalYear{ID: "fy-2024", Name: "FY2024", BeginTime: fy2024Begin, EndTime: fy2024End, Status: status}
}

func (suite *HandlerTestSuite) TestCreateFiscalYear() {
	suite.ledger.On("CreateFiscalYear", mock.Anything, "FY2024", sameTime(fy2024Begin), sameTime(fy2024End), suite.userID).
		Return(testFiscalYear(domain.FiscalYearOpen), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/fiscal-years", `{"name":"FY2024","beginTime":"2024-01-01T00:00:00Z","endTime":"2025-01-01T00:00:00Z"}`)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.FiscalYearResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.FiscalYearOpen, resp.Status)
	suite.Nil(resp.CloseTime)
}

func (suite *HandlerTestSuite) TestCreateFiscalYear_RuleViolations() {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"too short", apperrors.New(apperrors.KindFiscalYearTooShort, "10 days"), http.StatusBadRequest},
		{"too long", apperrors.New(apperrors.KindFiscalYearTooLong, "500 days"), http.StatusBadRequest},
		{"overlap", apperrors.New(apperrors.KindFiscalYearPeriodOverlap, "overlaps FY2023"), http.StatusConflict},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.ledger.On("CreateFiscalYear", mock.Anything, "FY", mock.Anything, mock.Anything, suite.userID).Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/fiscal-years", `{"name":"FY","beginTime":"2024-01-01T00:00:00Z","endTime":"2024-01-11T00:00:00Z"}`)
			suite.assertError(w, tc.status, apperrors.KindOf(tc.err))
		})
	}
}

func (suite *HandlerTestSuite) TestCreateFiscalYear_MissingEndTime() {
	w := suite.do(http.MethodPost, "/api/v1/fiscal-years", `{"name":"FY2024","beginTime":"2024-01-01T00:00:00Z"}`)
	suite.assertError(w, http.StatusBadRequest, apperrors.KindInvalidInput)
}

func (suite *HandlerTestSuite) TestUpdateFiscalYear_Closed() {
	suite.ledger.On("UpdateFiscalYear", mock.Anything, "fy-2024", "FY2024", mock.Anything, mock.Anything, suite.userID).
		Return(nil, apperrors.New(apperrors.KindClosedFiscalYearImmutable, "fiscal year is CLOSED")).Once()

	w := suite.do(http.MethodPut, "/api/v1/fiscal-years/fy-2024", `{"name":"FY2024","beginTime":"2024-01-01T00:00:00Z","endTime":"2025-01-01T00:00:00Z"}`)
	suite.assertError(w, http.StatusConflict, apperrors.KindClosedFiscalYearImmutable)
}

func (suite *HandlerTestSuite) TestCloseFiscalYear() {
	closeTime := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	closed := testFiscalYear(domain.FiscalYearClosed)
	closed.CloseTime = &closeTime
	suite.ledger.On("CloseFiscalYear", mock.Anything, "fy-2024", sameTime(closeTime), suite.userID).Return(closed, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/fiscal-years/fy-2024/close", `{"closeTime":"2025-01-15T00:00:00Z"}`)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.FiscalYearResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.FiscalYearClosed, resp.Status)
	suite.Require().NotNil(resp.CloseTime)
}

func (suite *HandlerTestSuite) TestCloseFiscalYear_UnpostedEntries() {
	suite.ledger.On("CloseFiscalYear", mock.Anything, "fy-2024", mock.Anything, suite.userID).
		Return(nil, apperrors.New(apperrors.KindUnpostedEntriesBlockClose, "2 draft entries")).Once()

	w := suite.do(http.MethodPost, "/api/v1/fiscal-years/fy-2024/close", `{"closeTime":"2025-01-15T00:00:00Z"}`)
	suite.assertError(w, http.StatusConflict, apperrors.KindUnpostedEntriesBlockClose)
}

func (suite *HandlerTestSuite) TestReverseFiscalYear() {
	suite.ledger.On("ReverseFiscalYear", mock.Anything, "fy-2024", mock.Anything, suite.userID).
		Return(testFiscalYear(domain.FiscalYearReversed), nil).Once()
	suite.ledger.On("ReverseFiscalYear", mock.Anything, "fy-2023", mock.Anything, suite.userID).
		Return(nil, apperrors.New(apperrors.KindNewerFiscalYearsExist, "FY2024 is closed")).Once()

	w := suite.do(http.MethodPost, "/api/v1/fiscal-years/fy-2024/reverse", `{"reversalTime":"2025-02-01T00:00:00Z"}`)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodPost, "/api/v1/fiscal-years/fy-2023/reverse", `{"reversalTime":"2025-02-01T00:00:00Z"}`)
	suite.assertError(w, http.StatusConflict, apperrors.KindNewerFiscalYearsExist)
}

func (suite *HandlerTestSuite) TestChangeReversalTime_Immutable() {
	suite.ledger.On("ChangeReversalTime", mock.Anything, "fy-2024", mock.Anything, suite.userID).
		Return(apperrors.New(apperrors.KindReversalTimeImmutable, "reversal time is set only by reversing")).Once()

	w := suite.do(http.MethodPut, "/api/v1/fiscal-years/fy-2024/reversal-time", `{"reversalTime":"2025-03-01T00:00:00Z"}`)
	suite.assertError(w, http.StatusConflict, apperrors.KindReversalTimeImmutable)
}

func (suite *HandlerTestSuite) TestDeleteFiscalYear() {
	suite.ledger.On("DeleteFiscalYear", mock.Anything, "fy-2024", suite.userID).Return(nil).Once()
	suite.ledger.On("DeleteFiscalYear", mock.Anything, "fy-2023", suite.userID).
		Return(apperrors.New(apperrors.KindCannotDeleteClosedOrReversedYear, "fiscal year is CLOSED")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/fiscal-years/fy-2024", nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/fiscal-years/fy-2023", nil)
	suite.assertError(w, http.StatusConflict, apperrors.KindCannotDeleteClosedOrReversedYear)
}

func (suite *HandlerTestSuite) TestListFiscalYears() {
	suite.ledger.On("ListFiscalYears", mock.Anything).
		Return([]domain.FiscalYear{*testFiscalYear(domain.FiscalYearClosed)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/fiscal-years", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListFiscalYearsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.FiscalYears, 1)
}
