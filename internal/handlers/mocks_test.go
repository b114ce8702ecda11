package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetOrCreateCashAccount(ctx context.Context) (*domain.LedgerAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}
func (m *MockLedgerService) ResolveAccount(ctx context.Context, accountID string, expectedType domain.AccountType) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountID, expectedType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}
func (m *MockLedgerService) FindOrCreateCustomerByName(ctx context.Context, name, email, phone string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, name, email, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}
func (m *MockLedgerService) ListAccounts(ctx context.Context, accountType domain.AccountType) ([]domain.LedgerAccountWithBalance, error) {
	args := m.Called(ctx, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccountWithBalance), args.Error(1)
}
func (m *MockLedgerService) GetAccountLedger(ctx context.Context, accountID string) (*domain.AccountLedger, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountLedger), args.Error(1)
}
func (m *MockLedgerService) GetCashLedger(ctx context.Context, params dto.CashLedgerParams) (*domain.CashLedger, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashLedger), args.Error(1)
}
func (m *MockLedgerService) CreateAccount(ctx context.Context, req dto.CreateLedgerAccountRequest, userID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}
func (m *MockLedgerService) DeleteAccount(ctx context.Context, accountID string, userID string) error {
	args := m.Called(ctx, accountID, userID)
	return args.Error(0)
}
func (m *MockLedgerService) PostManualEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}
func (m *MockLedgerService) RecordCustomerPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}
func (m *MockLedgerService) RecordSupplierPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock SaleService ---
type MockSaleService struct {
	mock.Mock
}

func (m *MockSaleService) PostSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) GetSale(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}
func (m *MockSaleService) ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, *string, error) {
	args := m.Called(ctx, params)
	var next *string
	if v := args.Get(1); v != nil {
		next = v.(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Sale), next, args.Error(2)
}
func (m *MockSaleService) DeleteSale(ctx context.Context, saleID string, userID string) error {
	args := m.Called(ctx, saleID, userID)
	return args.Error(0)
}

var _ portssvc.SaleSvcFacade = (*MockSaleService)(nil)

// --- Mock PurchaseService ---
type MockPurchaseService struct {
	mock.Mock
}

func (m *MockPurchaseService) PostPurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

var _ portssvc.PurchaseSvc = (*MockPurchaseService)(nil)

// --- Mock ProductService ---
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductService) ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

var _ portssvc.ProductSvc = (*MockProductService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Summary(ctx context.Context, chartRange domain.ChartRange) (*domain.AnalyticsSummary, error) {
	args := m.Called(ctx, chartRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalyticsSummary), args.Error(1)
}
func (m *MockReportingService) ExportSalesCSV(ctx context.Context, params dto.SalesExportParams, w io.Writer) (int, error) {
	args := m.Called(ctx, params, w)
	return args.Int(0), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
