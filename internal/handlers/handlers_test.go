package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/posync/internal/core/domain"
	portssvc "github.com/SscSPs/posync/internal/core/ports/services"
	"github.com/SscSPs/posync/internal/core/services"
	"github.com/SscSPs/posync/internal/dto"
	"github.com/SscSPs/posync/internal/export"
	"github.com/SscSPs/posync/internal/handlers"
	"github.com/SscSPs/posync/internal/middleware"
	"github.com/SscSPs/posync/internal/platform/config"
	"github.com/SscSPs/posync/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func testConfig() *config.Config {
	return &config.Config{
		IsProduction:     true,
		CurrencySymbol:   "₦",
		DepositSurcharge: decimal.NewFromInt(50),
		RateLimit:        "1000-M",
		UploadRateLimit:  "30-M",
		MaxUploadBytes:   1 << 20,
	}
}

// --- Mock ReconciliationService ---
type MockReconciliationService struct {
	mock.Mock
}

func (m *MockReconciliationService) GetCashSummary(ctx context.Context, sessionID string) (domain.CashSummary, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.CashSummary), args.Error(1)
}

func (m *MockReconciliationService) GetCapitalSummary(ctx context.Context, sessionID string) (domain.CapitalSummary, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.CapitalSummary), args.Error(1)
}

func (m *MockReconciliationService) GetDashboard(ctx context.Context, sessionID string) (domain.DashboardTotals, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(domain.DashboardTotals), args.Error(1)
}

var _ portssvc.ReconciliationSvc = (*MockReconciliationService)(nil)

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	registry  *memory.SessionRegistry
	sessionID string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	suite.registry = memory.NewSessionRegistry()
	container := services.NewServiceContainer(cfg, suite.registry)

	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container))

	w := suite.do(http.MethodPost, "/api/v1/sessions", nil, "")
	suite.Require().Equal(http.StatusCreated, w.Code)
	var session dto.SessionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &session))
	suite.Require().NotEmpty(session.SessionID)
	suite.sessionID = session.SessionID
}

func (suite *HandlerTestSuite) do(method, url string, body any, sessionID string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(b)
	}
	req, _ := http.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) doScoped(method, url string, body any) *httptest.ResponseRecorder {
	return suite.do(method, url, body, suite.sessionID)
}

func (suite *HandlerTestSuite) upload(url string, files map[string][2]string, fields map[string][]string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for field, file := range files {
		part, err := mw.CreateFormFile(field, file[0])
		suite.Require().NoError(err)
		_, err = part.Write([]byte(file[1]))
		suite.Require().NoError(err)
	}
	for field, values := range fields {
		for _, v := range values {
			suite.Require().NoError(mw.WriteField(field, v))
		}
	}
	suite.Require().NoError(mw.Close())

	req, _ := http.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(middleware.SessionHeader, suite.sessionID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) string {
	var body map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return body["error"]
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := suite.do(http.MethodGet, "/health", nil, "")
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestSessionHeaderRequired() {
	w := suite.do(http.MethodGet, "/api/v1/deposits", nil, "")
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(decodeError(w), middleware.SessionHeader)

	w = suite.do(http.MethodGet, "/api/v1/deposits", nil, "no-such-session")
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Session not found or expired", decodeError(w))
}

func (suite *HandlerTestSuite) TestEndSession() {
	w := suite.doScoped(http.MethodDelete, "/api/v1/sessions/current", nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.doScoped(http.MethodGet, "/api/v1/dashboard", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestLineItems() {
	w := suite.doScoped(http.MethodPost, "/api/v1/line-items/expenses", gin.H{"amount": "200.5", "description": "fuel"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created domain.Positioned[domain.CashLineItem]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	suite.Equal(0, created.Index)
	suite.True(decimal.RequireFromString("200.5").Equal(created.Record.Amount))

	w = suite.doScoped(http.MethodPost, "/api/v1/line-items/expenses/0/insert-below", nil)
	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.JSONEq(`{"index":1}`, w.Body.String())

	w = suite.doScoped(http.MethodGet, "/api/v1/line-items/expenses", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var list dto.ListResponse[domain.CashLineItem]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Equal(domain.Expenses, list.Category)
	suite.Equal(2, list.Count)

	w = suite.doScoped(http.MethodPut, "/api/v1/line-items/expenses/1", gin.H{"amount": 30, "description": "water"})
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.doScoped(http.MethodDelete, "/api/v1/line-items/expenses/5", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.doScoped(http.MethodDelete, "/api/v1/line-items/expenses/abc", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.doScoped(http.MethodDelete, "/api/v1/line-items/expenses/0", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestLineItems_Validation() {
	w := suite.doScoped(http.MethodGet, "/api/v1/line-items/deposits", nil)
	suite.Equal(http.StatusBadRequest, w.Code, "deposits are not a line item category")

	w = suite.doScoped(http.MethodPost, "/api/v1/line-items/expenses", gin.H{"amount": 0, "description": "nothing"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.True(strings.HasPrefix(decodeError(w), "Invalid request format"))

	w = suite.doScoped(http.MethodPost, "/api/v1/line-items/expenses", gin.H{"amount": 10})
	suite.Equal(http.StatusBadRequest, w.Code, "description is required")

	w = suite.doScoped(http.MethodPost, "/api/v1/line-items/capital_inflows", gin.H{"amount": 300})
	suite.Equal(http.StatusCreated, w.Code, "capital flows need no description: %s", w.Body.String())
}

func (suite *HandlerTestSuite) TestDepositAddsSurcharge() {
	w := suite.doScoped(http.MethodPost, "/api/v1/deposits", gin.H{
		"accountNumber": "0123456789",
		"accountName":   "Ada Obi",
		"amount":        1000,
		"charge":        50,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created domain.Positioned[domain.DepositRecord]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &created))
	suite.True(decimal.NewFromInt(1050).Equal(created.Record.RecordedAmount))
	suite.True(decimal.NewFromInt(1000).Equal(created.Record.ActualAmount))
	suite.False(created.Record.Timestamp.IsZero())

	w = suite.doScoped(http.MethodPost, "/api/v1/deposits", gin.H{"accountName": "No Number", "amount": 10})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestOtherPOSUpsert() {
	entry := gin.H{"name": "Baxi", "withdrawalTotal": 12000, "depositTotal": 8000}

	w := suite.doScoped(http.MethodPut, "/api/v1/other-pos", entry)
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())

	entry["depositTotal"] = 9000
	w = suite.doScoped(http.MethodPut, "/api/v1/other-pos", entry)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.doScoped(http.MethodGet, "/api/v1/other-pos", nil)
	var list dto.ListResponse[domain.PosTerminalEntry]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Require().Len(list.Records, 1)
	suite.True(decimal.NewFromInt(9000).Equal(list.Records[0].DepositTotal))

	w = suite.doScoped(http.MethodDelete, "/api/v1/other-pos/Moniepoint", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.doScoped(http.MethodDelete, "/api/v1/other-pos/Baxi", nil)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestCashReconciliation() {
	w := suite.doScoped(http.MethodPut, "/api/v1/cash-balance", gin.H{"opening": 1000, "closing": 0})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.doScoped(http.MethodPost, "/api/v1/deposits", gin.H{"accountNumber": "01", "accountName": "A", "amount": 1000, "charge": 50})
	suite.doScoped(http.MethodPost, "/api/v1/line-items/expenses", gin.H{"amount": 200, "description": "fuel"})

	w = suite.doScoped(http.MethodGet, "/api/v1/reconciliation/cash", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var summary dto.CashSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	suite.True(decimal.NewFromInt(2100).Equal(summary.Credit))
	suite.True(decimal.NewFromInt(200).Equal(summary.Debit))
	suite.Equal(domain.Surplus, summary.Outcome)
	suite.Equal("₦1,900.00", summary.FormattedResult)

	w = suite.doScoped(http.MethodPost, "/api/v1/sessions/current/reset", nil)
	suite.Equal(http.StatusNoContent, w.Code)

	w = suite.doScoped(http.MethodGet, "/api/v1/reconciliation/cash", nil)
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &summary))
	suite.True(summary.Result.IsZero())
}

func (suite *HandlerTestSuite) TestExports() {
	suite.doScoped(http.MethodPost, "/api/v1/withdrawals", gin.H{"cardLast4": "4321", "amountWithdrawn": 5000, "amountPaidOut": 4900, "charge": 100})

	w := suite.doScoped(http.MethodGet, "/api/v1/exports/records.xlsx", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "spreadsheetml")
	suite.Contains(w.Header().Get("Content-Disposition"), "records.xlsx")

	snap, err := export.ReadWorkbook(bytes.NewReader(w.Body.Bytes()))
	suite.Require().NoError(err)
	suite.Len(snap.Withdrawals, 1)

	w = suite.doScoped(http.MethodGet, "/api/v1/exports/withdrawals.xlsx", nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.doScoped(http.MethodGet, "/api/v1/exports/reconciliation.pdf", nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("application/pdf", w.Header().Get("Content-Type"))
	suite.True(bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))

	w = suite.doScoped(http.MethodGet, "/api/v1/exports/loans.xlsx", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.doScoped(http.MethodGet, "/api/v1/exports/records.csv", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestImportRecords() {
	snap := domain.Snapshot{
		CashBalance: domain.NewScalarCashBalance(decimal.NewFromInt(700), decimal.Zero),
		Expenses:    []domain.CashLineItem{domain.NewCashLineItem(decimal.NewFromInt(25), "tea")},
		OtherPOS:    []domain.PosTerminalEntry{domain.NewPosTerminalEntry("Baxi", decimal.NewFromInt(10), decimal.NewFromInt(20))},
	}
	var workbook bytes.Buffer
	suite.Require().NoError(export.WriteWorkbook(&workbook, snap))

	w := suite.upload("/api/v1/imports/records", map[string][2]string{"file": {"records.xlsx", workbook.String()}}, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.ImportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(1, resp.Counts[domain.Expenses])
	suite.Equal(1, resp.Counts[domain.OtherPOS])

	w = suite.doScoped(http.MethodGet, "/api/v1/cash-balance", nil)
	var balance domain.ScalarCashBalance
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &balance))
	suite.True(decimal.NewFromInt(700).Equal(balance.Opening))

	w = suite.upload("/api/v1/imports/records", map[string][2]string{"file": {"records.xlsx", "garbage"}}, nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	unsurcharged := domain.Snapshot{Deposits: []domain.DepositRecord{{
		AccountNumber:  "0123456789",
		AccountName:    "Ada Obi",
		RecordedAmount: decimal.NewFromInt(5000),
		ActualAmount:   decimal.NewFromInt(1000),
	}}}
	workbook.Reset()
	suite.Require().NoError(export.WriteWorkbook(&workbook, unsurcharged))
	w = suite.upload("/api/v1/imports/records", map[string][2]string{"file": {"records.xlsx", workbook.String()}}, nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code, w.Body.String())

	w = suite.doScoped(http.MethodGet, "/api/v1/line-items/expenses", nil)
	var list dto.ListResponse[domain.CashLineItem]
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	suite.Equal(1, list.Count, "a failed import leaves the session unchanged")

	w = suite.upload("/api/v1/imports/records", nil, map[string][]string{"other": {"x"}})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCompareFiles() {
	files := map[string][2]string{
		"file1": {"bank.csv", "Reference,Branch\nTX1,Ikeja\nTX2,Yaba\nTX3,Yaba\n"},
		"file2": {"ledger.csv", "Ref\nTX2\nTX3\nTX9\n"},
	}
	w := suite.upload("/api/v1/comparisons", files, map[string][]string{
		"column1":        {"Reference"},
		"column2":        {"Ref"},
		"filter_column1": {"Branch"},
		"filter_values1": {"Yaba", "Ikeja"},
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var result struct {
		OnlyInLeft  []string `json:"onlyInLeft"`
		OnlyInRight []string `json:"onlyInRight"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.Equal([]string{"TX1"}, result.OnlyInLeft)
	suite.Equal([]string{"TX9"}, result.OnlyInRight)

	w = suite.upload("/api/v1/comparisons", files, map[string][]string{"column1": {"Reference"}, "column2": {"Missing"}})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.upload("/api/v1/comparisons", files, map[string][]string{"column1": {"Reference"}})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.upload("/api/v1/comparisons/columns", map[string][2]string{"file": {"bank.csv", files["file1"][1]}}, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"columns":["Reference","Branch"]}`, w.Body.String())

	w = suite.upload("/api/v1/comparisons/columns", map[string][2]string{"file": {"old.xls", "x"}}, nil)
	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *HandlerTestSuite) TestUploadTooLarge() {
	big := strings.Repeat("a", 2<<20)
	w := suite.upload("/api/v1/comparisons/columns", map[string][2]string{"file": {"big.csv", big}}, nil)
	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// --- Mock-backed failures ---
type ReconciliationFailureTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockReconciler *MockReconciliationService
	sessionID      string
}

func (suite *ReconciliationFailureTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	registry := memory.NewSessionRegistry()

	container := services.NewServiceContainer(cfg, registry)
	suite.mockReconciler = new(MockReconciliationService)
	container.Reconciliation = suite.mockReconciler

	suite.router = gin.New()
	suite.Require().NoError(handlers.RegisterRoutes(suite.router, cfg, container))
	suite.sessionID = container.Session.CreateSession(context.Background()).SessionID
}

func (suite *ReconciliationFailureTestSuite) TestCashSummary_InternalError() {
	suite.mockReconciler.On("GetCashSummary", mock.Anything, suite.sessionID).
		Return(domain.CashSummary{}, errors.New("snapshot failed")).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reconciliation/cash", nil)
	req.Header.Set(middleware.SessionHeader, suite.sessionID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to generate cash summary", decodeError(w))
	suite.mockReconciler.AssertExpectations(suite.T())
}

func (suite *ReconciliationFailureTestSuite) TestDashboard_Formatting() {
	suite.mockReconciler.On("GetDashboard", mock.Anything, suite.sessionID).
		Return(domain.DashboardTotals{TotalDeposits: decimal.NewFromInt(1234567)}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	req.Header.Set(middleware.SessionHeader, suite.sessionID)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Require().Equal(http.StatusOK, w.Code)
	var resp dto.DashboardResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("₦1,234,567.00", resp.TotalDeposits)
	suite.mockReconciler.AssertNotCalled(suite.T(), "GetCashSummary")
}

func TestReconciliationFailures(t *testing.T) {
	suite.Run(t, new(ReconciliationFailureTestSuite))
}
