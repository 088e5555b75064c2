package handlers_test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
	"github.com/SscSPs/ledger_engine/internal/core/domain"
	"github.com/SscSPs/ledger_engine/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var entryTime = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func testEntry(id string, posted bool) *domain.JournalEntry {
	e := &domain.JournalEntry{
		ID:          id,
		Description: "cash sale",
		EntryTime:   entryTime,
		Lines: []domain.JournalEntryLine{
			{ID: "l1", EntryID: id, LineNo: 1, AccountCode: "1000", Side: domain.Debit, Amount: 1050},
			{ID: "l2", EntryID: id, LineNo: 2, AccountCode: "4000", Side: domain.Credit, Amount: 1050},
		},
	}
	if posted {
		postTime := entryTime.Add(time.Hour)
		e.PostTime = &postTime
	}
	return e
}

func sameTime(want time.Time) any {
	return mock.MatchedBy(func(t time.Time) bool { return t.Equal(want) })
}

const balancedEntryBody = `{
	"description": "cash sale",
	"entryTime": "2024-03-01T00:00:00Z",
	"lines": [
		{"accountCode": "1000", "side": "DEBIT", "amount": "10.50"},
		{"accountCode": "4000", "side": "CREDIT", "amount": 10.5}
	]
}`

func (suite *HandlerTestSuite) TestCreateEntry_ConvertsAmountsToMinorUnits() {
	suite.ledger.On("CreateEntry", mock.Anything, "cash sale", sameTime(entryTime),
		mock.MatchedBy(func(lines []domain.JournalEntryLine) bool {
			return len(lines) == 2 &&
				lines[0].AccountCode == "1000" && lines[0].Side == domain.Debit && lines[0].Amount == 1050 &&
				lines[1].AccountCode == "4000" && lines[1].Side == domain.Credit && lines[1].Amount == 1050
		}),
		suite.userID,
	).Return(testEntry("e1", false), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", balancedEntryBody)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.EntryDraft, resp.State)
	suite.Nil(resp.PostTime)
	suite.Require().Len(resp.Lines, 2)
	suite.True(decimal.RequireFromString("10.5").Equal(resp.Lines[0].Amount))
}

func (suite *HandlerTestSuite) TestCreateEntry_FractionalMinorUnit() {
	body := `{"entryTime":"2024-03-01T00:00:00Z","lines":[
		{"accountCode":"1000","side":"DEBIT","amount":"10.505"},
		{"accountCode":"4000","side":"CREDIT","amount":"10.505"}]}`

	w := suite.do(http.MethodPost, "/api/v1/journal-entries", body)

	suite.assertError(w, http.StatusBadRequest, apperrors.KindInvalidLineAmount)
	suite.ledger.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *HandlerTestSuite) TestCreateEntry_InvalidBody() {
	testCases := []struct {
		name string
		body string
	}{
		{"missing entry time", `{"lines":[]}`},
		{"bad side", `{"entryTime":"2024-03-01T00:00:00Z","lines":[{"accountCode":"1000","side":"LEFT","amount":"1"}]}`},
		{"bad account code", `{"entryTime":"2024-03-01T00:00:00Z","lines":[{"accountCode":"","side":"DEBIT","amount":"1"}]}`},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/journal-entries", tc.body)
			suite.assertError(w, http.StatusBadRequest, apperrors.KindInvalidInput)
		})
	}
	suite.ledger.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *HandlerTestSuite) TestCreateEntry_RuleViolations() {
	testCases := []struct {
		name   string
		err    error
		status int
		kind   apperrors.Kind
	}{
		{"unbalanced", apperrors.New(apperrors.KindUnbalancedEntry, "debits 1050 != credits 1000"), http.StatusBadRequest, apperrors.KindUnbalancedEntry},
		{"insufficient lines", apperrors.New(apperrors.KindInsufficientLines, "1 line"), http.StatusBadRequest, apperrors.KindInsufficientLines},
		{"unknown account", apperrors.New(apperrors.KindAccountNotFound, "account 9999"), http.StatusNotFound, apperrors.KindAccountNotFound},
		{"closed year", apperrors.New(apperrors.KindEntryInClosedFiscalYear, "FY2023"), http.StatusConflict, apperrors.KindEntryInClosedFiscalYear},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.ledger.On("CreateEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, suite.userID).
				Return(nil, tc.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/journal-entries", balancedEntryBody)
			suite.assertError(w, tc.status, tc.kind)
		})
	}
}

func (suite *HandlerTestSuite) TestUpdateEntry() {
	newTime := entryTime.Add(24 * time.Hour)
	updated := testEntry("e1", false)
	updated.EntryTime = newTime
	suite.ledger.On("UpdateEntry", mock.Anything, "e1", "corrected", sameTime(newTime), suite.userID).Return(updated, nil).Once()

	w := suite.do(http.MethodPatch, "/api/v1/journal-entries/e1", `{"description":"corrected","entryTime":"2024-03-02T00:00:00Z"}`)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestUpdateLines_PostedEntry() {
	suite.ledger.On("UpdateLines", mock.Anything, "e1", mock.Anything, suite.userID).
		Return(nil, apperrors.New(apperrors.KindPostedEntryLinesImmutable, "entry e1 is posted")).Once()

	w := suite.do(http.MethodPut, "/api/v1/journal-entries/e1/lines", `{"lines":[
		{"accountCode":"1000","side":"DEBIT","amount":"1"},
		{"accountCode":"4000","side":"CREDIT","amount":"1"}]}`)
	suite.assertError(w, http.StatusConflict, apperrors.KindPostedEntryLinesImmutable)
}

func (suite *HandlerTestSuite) TestPostEntry() {
	postTime := time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC)
	suite.ledger.On("PostEntry", mock.Anything, "e1", sameTime(postTime), suite.userID).Return(testEntry("e1", true), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/e1/post", `{"postTime":"2024-03-01T01:00:00Z"}`)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.EntryPosted, resp.State)
	suite.Require().NotNil(resp.PostTime)
	suite.True(postTime.Equal(*resp.PostTime))
}

func (suite *HandlerTestSuite) TestPostEntry_AlreadyPosted() {
	suite.ledger.On("PostEntry", mock.Anything, "e1", mock.Anything, suite.userID).
		Return(nil, apperrors.New(apperrors.KindPostedEntryImmutable, "entry is already posted")).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/e1/post", `{"postTime":"2024-03-01T01:00:00Z"}`)
	suite.assertError(w, http.StatusConflict, apperrors.KindPostedEntryImmutable)
}

func (suite *HandlerTestSuite) TestPostEntry_MissingPostTime() {
	w := suite.do(http.MethodPost, "/api/v1/journal-entries/e1/post", `{}`)
	suite.assertError(w, http.StatusBadRequest, apperrors.KindInvalidInput)
}

func (suite *HandlerTestSuite) TestUnpostAndChangePostTimeAreRejected() {
	suite.ledger.On("UnpostEntry", mock.Anything, "e1", suite.userID).
		Return(apperrors.New(apperrors.KindPostedEntryImmutable, "posted entries cannot be unposted")).Once()
	suite.ledger.On("ChangePostTime", mock.Anything, "e1", mock.Anything, suite.userID).
		Return(apperrors.New(apperrors.KindPostedEntryImmutable, "post time of a posted entry is frozen")).Once()

	w := suite.do(http.MethodPost, "/api/v1/journal-entries/e1/unpost", nil)
	suite.assertError(w, http.StatusConflict, apperrors.KindPostedEntryImmutable)

	w = suite.do(http.MethodPut, "/api/v1/journal-entries/e1/post-time", `{"postTime":"2024-04-01T00:00:00Z"}`)
	suite.assertError(w, http.StatusConflict, apperrors.KindPostedEntryImmutable)
}

func (suite *HandlerTestSuite) TestDeleteEntry() {
	suite.ledger.On("DeleteEntry", mock.Anything, "e1", suite.userID).Return(nil).Once()
	suite.ledger.On("DeleteEntry", mock.Anything, "e2", suite.userID).
		Return(apperrors.New(apperrors.KindCannotDeletePostedEntry, "entry e2 is posted")).Once()

	w := suite.do(http.MethodDelete, "/api/v1/journal-entries/e1", nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.do(http.MethodDelete, "/api/v1/journal-entries/e2", nil)
	suite.assertError(w, http.StatusConflict, apperrors.KindCannotDeletePostedEntry)
}

func (suite *HandlerTestSuite) TestGetEntry_NotFound() {
	suite.ledger.On("GetEntry", mock.Anything, "missing").
		Return(nil, apperrors.New(apperrors.KindEntryNotFound, "entry missing")).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries/missing", nil)
	suite.assertError(w, http.StatusNotFound, apperrors.KindEntryNotFound)
}

func (suite *HandlerTestSuite) TestListEntries_PassesFilter() {
	next := "token-2"
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	suite.ledger.On("ListEntries", mock.Anything, mock.MatchedBy(func(f domain.EntryFilter) bool {
		return f.State != nil && *f.State == domain.EntryDraft &&
			f.From != nil && f.From.Equal(from) && f.To == nil &&
			f.Limit == 10 &&
			f.NextToken != nil && *f.NextToken == "token-1"
	})).Return([]domain.JournalEntry{*testEntry("e1", false)}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/journal-entries?state=DRAFT&from=2024-01-01T00:00:00Z&limit=10&nextToken=token-1", nil)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ListJournalEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token-2", *resp.NextToken)
}

func (suite *HandlerTestSuite) TestListEntries_InvalidState() {
	w := suite.do(http.MethodGet, "/api/v1/journal-entries?state=VOID", nil)
	suite.assertError(w, http.StatusBadRequest, apperrors.KindInvalidInput)
	suite.ledger.AssertNotCalled(suite.T(), "ListEntries")
}
