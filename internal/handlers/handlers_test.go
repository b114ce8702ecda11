package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/handlers"
	"github.com/SscSPs/pos_inventory_app/internal/middleware"
	"github.com/SscSPs/pos_inventory_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testUserID = "cashier-7"

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	ledgerSvc     *MockLedgerService
	saleSvc       *MockSaleService
	purchaseSvc   *MockPurchaseService
	productSvc    *MockProductService
	reportingSvc  *MockReportingService
	jwtSecret     string
	authorization string
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// generateTestToken creates a dummy JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	signed, err := utils.IssueToken(userID, suite.jwtSecret, time.Hour, "pos-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.authorization = "Bearer " + suite.generateTestToken(testUserID)

	suite.ledgerSvc = new(MockLedgerService)
	suite.saleSvc = new(MockSaleService)
	suite.purchaseSvc = new(MockPurchaseService)
	suite.productSvc = new(MockProductService)
	suite.reportingSvc = new(MockReportingService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterLedgerRoutes(v1, suite.ledgerSvc)
	handlers.RegisterSaleRoutes(v1, suite.saleSvc)
	handlers.RegisterPurchaseRoutes(v1, suite.purchaseSvc)
	handlers.RegisterProductRoutes(v1, suite.productSvc)
	handlers.RegisterReportingRoutes(v1, suite.reportingSvc)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.ledgerSvc.AssertExpectations(suite.T())
	suite.saleSvc.AssertExpectations(suite.T())
	suite.purchaseSvc.AssertExpectations(suite.T())
	suite.productSvc.AssertExpectations(suite.T())
	suite.reportingSvc.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewBuffer(raw)
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", suite.authorization)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

// --- Auth ---

func (suite *HandlerTestSuite) TestMissingTokenIsRejected() {
	suite.authorization = ""
	w := suite.do(http.MethodGet, "/api/v1/products", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

// --- Ledger ---

func (suite *HandlerTestSuite) TestCreateAccount_Success() {
	req := dto.CreateLedgerAccountRequest{Type: domain.AccountTypeCustomer, Name: "Omar", ContactPhone: "0300"}
	suite.ledgerSvc.On("CreateAccount", mock.Anything, req, testUserID).Return(&domain.LedgerAccount{
		AccountID: "acc-1", Type: domain.AccountTypeCustomer, Name: "Omar", ContactPhone: "0300",
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/ledger/accounts", req)

	suite.Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.Equal("acc-1", body["accountID"])
	suite.Equal("CUSTOMER", body["type"])
}

func (suite *HandlerTestSuite) TestCreateAccount_BindingErrors() {
	w := suite.do(http.MethodPost, "/api/v1/ledger/accounts", `{"type":"CASH","name":"Till"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/v1/ledger/accounts", `{"type":`)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateAccount_Duplicate() {
	suite.ledgerSvc.On("CreateAccount", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.ErrDuplicateAccount).Once()

	w := suite.do(http.MethodPost, "/api/v1/ledger/accounts", dto.CreateLedgerAccountRequest{Type: domain.AccountTypeSupplier, Name: "Metro"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListAccounts_UppercasesType() {
	suite.ledgerSvc.On("ListAccounts", mock.Anything, domain.AccountTypeSupplier).Return([]domain.LedgerAccountWithBalance{
		{LedgerAccount: domain.LedgerAccount{AccountID: "s1", Type: domain.AccountTypeSupplier, Name: "Metro"}, Balance: decimal.NewFromInt(-250)},
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledger/accounts?type=supplier", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	var accounts []map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &accounts))
	suite.Require().Len(accounts, 1)
	suite.Equal("-250", accounts[0]["balance"])
}

func (suite *HandlerTestSuite) TestCashLedger_DateParsing() {
	w := suite.do(http.MethodGet, "/api/v1/ledger/cash?startDate=10/05/2024", nil)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.ledgerSvc.On("GetCashLedger", mock.Anything, mock.MatchedBy(func(p dto.CashLedgerParams) bool {
		return p.StartDate != nil && p.StartDate.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) && p.EndDate == nil
	})).Return(&domain.CashLedger{OpeningBalance: decimal.NewFromInt(100), ClosingBalance: decimal.NewFromInt(100)}, nil).Once()

	w = suite.do(http.MethodGet, "/api/v1/ledger/cash?startDate=2024-05-01", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("100", body["openingBalance"])
	suite.Empty(body["entries"])
}

func (suite *HandlerTestSuite) TestAccountEntries_NotFound() {
	suite.ledgerSvc.On("GetAccountLedger", mock.Anything, "ghost").Return(nil, apperrors.ErrAccountNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/ledger/accounts/ghost/entries", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteAccount() {
	suite.ledgerSvc.On("DeleteAccount", mock.Anything, "acc-1", testUserID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/ledger/accounts/acc-1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestManualEntry_RejectsNegativeAmount() {
	w := suite.do(http.MethodPost, "/api/v1/ledger/entries", `{"accountID":"a","description":"fix","debit":"-5"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.ledgerSvc.AssertNotCalled(suite.T(), "PostManualEntry", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCustomerPayment() {
	suite.ledgerSvc.On("RecordCustomerPayment", mock.Anything, mock.MatchedBy(func(r dto.RecordPaymentRequest) bool {
		return r.AccountID == "c1" && r.Amount.Equal(decimal.NewFromInt(150))
	}), testUserID).Return(&domain.PaymentResult{
		Account: domain.LedgerAccount{AccountID: "c1", Type: domain.AccountTypeCustomer, Name: "Omar"},
		Amount:  decimal.NewFromInt(150),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/ledger/payments/customer", `{"accountID":"c1","amount":150}`)

	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Equal("150", suite.decode(w)["amount"])
}

func (suite *HandlerTestSuite) TestSupplierPayment_ZeroAmountAndTransient() {
	w := suite.do(http.MethodPost, "/api/v1/ledger/payments/supplier", `{"accountID":"s1","amount":0}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.ledgerSvc.On("RecordSupplierPayment", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.ErrTransient).Once()

	w = suite.do(http.MethodPost, "/api/v1/ledger/payments/supplier", `{"accountID":"s1","amount":"20.50"}`)
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func (suite *HandlerTestSuite) TestAmountsBeyondTwoDecimalsAreRejected() {
	tests := []struct {
		name string
		path string
		body string
	}{
		{"customer payment", "/api/v1/ledger/payments/customer", `{"accountID":"c1","amount":"0.001"}`},
		{"supplier payment", "/api/v1/ledger/payments/supplier", `{"accountID":"s1","amount":12.345}`},
		{"manual entry", "/api/v1/ledger/entries", `{"accountID":"a","description":"fix","credit":"5.005"}`},
		{"product price", "/api/v1/products", `{"name":"tea","price":"1.999","costPrice":"1"}`},
		{"purchase cost", "/api/v1/purchases", `{"supplierAccountID":"s1","paymentType":"CASH","items":[{"productID":"p1","quantity":1,"costPrice":"0.125"}]}`},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, tt.path, tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.ledgerSvc.AssertNotCalled(suite.T(), "RecordCustomerPayment", mock.Anything, mock.Anything, mock.Anything)
	suite.ledgerSvc.AssertNotCalled(suite.T(), "RecordSupplierPayment", mock.Anything, mock.Anything, mock.Anything)
	suite.ledgerSvc.AssertNotCalled(suite.T(), "PostManualEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.productSvc.AssertNotCalled(suite.T(), "CreateProduct", mock.Anything, mock.Anything, mock.Anything)
	suite.purchaseSvc.AssertNotCalled(suite.T(), "PostPurchase", mock.Anything, mock.Anything, mock.Anything)
}

// --- Sales ---

func (suite *HandlerTestSuite) TestCreateSale_Success() {
	req := dto.CreateSaleRequest{
		PaymentType: domain.PaymentTypeCash,
		Items:       []dto.SaleItemRequest{{ProductID: "p1", Quantity: 2}},
	}
	suite.saleSvc.On("PostSale", mock.Anything, req, testUserID).Return(&domain.Sale{
		SaleID:      "sale-1",
		UserID:      testUserID,
		PaymentType: domain.PaymentTypeCash,
		TotalAmount: decimal.NewFromInt(40),
		Items:       []domain.SaleItem{{SaleItemID: "i1", ProductID: "p1", ProductName: "tea", Quantity: 2, PriceAtSale: decimal.NewFromInt(20)}},
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales", req)

	suite.Require().Equal(http.StatusCreated, w.Code)
	body := suite.decode(w)
	suite.Equal("sale-1", body["saleID"])
	suite.Equal("40", body["totalAmount"])
	suite.Len(body["items"], 1)
}

func (suite *HandlerTestSuite) TestCreateSale_BindingErrors() {
	tests := []struct {
		name string
		body string
	}{
		{"no items", `{"paymentType":"CASH","items":[]}`},
		{"unknown payment type", `{"paymentType":"CHEQUE","items":[{"productID":"p","quantity":1}]}`},
		{"zero quantity", `{"paymentType":"CASH","items":[{"productID":"p","quantity":0}]}`},
		{"bad email", `{"paymentType":"CREDIT","customerName":"x","customerEmail":"nope","items":[{"productID":"p","quantity":1}]}`},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodPost, "/api/v1/sales", tt.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.saleSvc.AssertNotCalled(suite.T(), "PostSale", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateSale_InsufficientStock() {
	suite.saleSvc.On("PostSale", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.NewInsufficientStockError("p1", "tea", 5, 2)).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales", `{"paymentType":"CASH","items":[{"productID":"p1","quantity":5}]}`)

	suite.Require().Equal(http.StatusConflict, w.Code)
	body := suite.decode(w)
	suite.Equal("Insufficient stock for tea", body["error"])
	suite.Equal("p1", body["productID"])
	suite.EqualValues(2, body["available"])
}

func (suite *HandlerTestSuite) TestCreateSale_CreditWithoutCustomer() {
	suite.saleSvc.On("PostSale", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.ErrValidation).Once()

	w := suite.do(http.MethodPost, "/api/v1/sales", `{"paymentType":"CREDIT","items":[{"productID":"p1","quantity":1}]}`)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListSales_PassesToken() {
	next := "tok-2"
	suite.saleSvc.On("ListSales", mock.Anything, dto.ListSalesParams{Limit: 10, NextToken: "tok-1"}).
		Return([]domain.Sale{{SaleID: "s1"}}, &next, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/sales?limit=10&nextToken=tok-1", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.Equal("tok-2", body["nextToken"])
	suite.Len(body["sales"], 1)
}

func (suite *HandlerTestSuite) TestGetSale_NotFound() {
	suite.saleSvc.On("GetSale", mock.Anything, "nope").Return(nil, apperrors.ErrSaleNotFound).Once()

	w := suite.do(http.MethodGet, "/api/v1/sales/nope", nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteSale() {
	suite.saleSvc.On("DeleteSale", mock.Anything, "s1", testUserID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/sales/s1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

// --- Purchases and products ---

func (suite *HandlerTestSuite) TestCreatePurchase() {
	suite.purchaseSvc.On("PostPurchase", mock.Anything, mock.MatchedBy(func(r dto.CreatePurchaseRequest) bool {
		return r.SupplierAccountID == "s1" && len(r.Items) == 1 && r.Items[0].CostPrice != nil && r.Items[0].CostPrice.Equal(decimal.NewFromInt(90))
	}), testUserID).Return(&domain.PurchaseResult{
		TotalAmount:     decimal.NewFromInt(900),
		SupplierAccount: domain.LedgerAccount{AccountID: "s1", Type: domain.AccountTypeSupplier, Name: "Metro"},
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/purchases",
		`{"supplierAccountID":"s1","paymentType":"CREDIT","items":[{"productID":"p1","quantity":10,"costPrice":"90"}]}`)

	suite.Require().Equal(http.StatusCreated, w.Code)
	suite.Equal("900", suite.decode(w)["totalAmount"])
}

func (suite *HandlerTestSuite) TestCreatePurchase_CardRejected() {
	w := suite.do(http.MethodPost, "/api/v1/purchases",
		`{"supplierAccountID":"s1","paymentType":"CARD","items":[{"productID":"p1","quantity":1}]}`)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestCreateProduct_NegativePriceAndDuplicate() {
	w := suite.do(http.MethodPost, "/api/v1/products", `{"name":"tea","price":"-1"}`)
	suite.Equal(http.StatusBadRequest, w.Code)

	suite.productSvc.On("CreateProduct", mock.Anything, mock.Anything, testUserID).
		Return(nil, apperrors.ErrDuplicateProduct).Once()

	w = suite.do(http.MethodPost, "/api/v1/products", `{"name":"tea","price":"10","costPrice":"6","stockQuantity":3}`)
	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *HandlerTestSuite) TestListProducts_InternalErrorIsHidden() {
	suite.productSvc.On("ListProducts", mock.Anything, dto.ListProductsParams{}).
		Return(nil, apperrors.NewAppError(500, "query failed", io.ErrUnexpectedEOF)).Once()

	w := suite.do(http.MethodGet, "/api/v1/products", nil)

	suite.Require().Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to list products", suite.decode(w)["error"])
}

// --- Reporting ---

func (suite *HandlerTestSuite) TestSummary() {
	suite.reportingSvc.On("Summary", mock.Anything, domain.ChartRange7Days).Return(&domain.AnalyticsSummary{
		TotalProducts: 4,
		TotalSales:    decimal.NewFromInt(70),
		DailySales:    []domain.DailySales{{Day: time.Date(2024, 5, 9, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(70)}},
		Range:         domain.ChartRange7Days,
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/analytics/summary?range=7days", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	body := suite.decode(w)
	suite.EqualValues(4, body["totalProducts"])
	points := body["dailySales"].([]interface{})
	suite.Require().Len(points, 1)
	suite.Equal("09-05-2024", points[0].(map[string]interface{})["date"])
}

func (suite *HandlerTestSuite) TestExportSales_WritesCSV() {
	suite.reportingSvc.On("ExportSalesCSV", mock.Anything, mock.MatchedBy(func(p dto.SalesExportParams) bool {
		return p.StartDate != nil && p.EndDate != nil
	}), mock.Anything).Run(func(args mock.Arguments) {
		_, _ = io.WriteString(args.Get(2).(io.Writer), "\uFEFFInvoice ID\ns1\n")
	}).Return(1, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/sales/export?startDate=2024-05-01&endDate=2024-05-10", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/csv")
	suite.Contains(w.Header().Get("Content-Disposition"), "sales-report-")
	suite.Equal("\uFEFFInvoice ID\ns1\n", w.Body.String())
}

func (suite *HandlerTestSuite) TestExportSales_Empty() {
	suite.reportingSvc.On("ExportSalesCSV", mock.Anything, dto.SalesExportParams{}, mock.Anything).Return(0, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/reports/sales/export", nil)

	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Type"), "text/plain")
	suite.Equal("No sales data found for the specified date range", w.Body.String())
}

func (suite *HandlerTestSuite) TestExportSales_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/reports/sales/export?endDate=yesterday", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}
