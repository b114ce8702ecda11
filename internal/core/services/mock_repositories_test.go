package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_inventory_app/internal/core/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockLedgerAccountRepository is a mock type for the LedgerAccountRepositoryFacade interface
type MockLedgerAccountRepository struct {
	mock.Mock
}

func (m *MockLedgerAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) FindCashAccount(ctx context.Context) (*domain.LedgerAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) FindAccountByName(ctx context.Context, accountType domain.AccountType, name string) (*domain.LedgerAccount, error) {
	args := m.Called(ctx, accountType, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.LedgerAccount, error) {
	args := m.Called(ctx, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerAccount), args.Error(1)
}

func (m *MockLedgerAccountRepository) SaveAccount(ctx context.Context, account domain.LedgerAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockLedgerAccountRepository) SaveAccountIfAbsent(ctx context.Context, account domain.LedgerAccount) (bool, error) {
	args := m.Called(ctx, account)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerAccountRepository) SoftDeleteAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// MockLedgerEntryRepository is a mock type for the LedgerEntryRepositoryFacade interface
type MockLedgerEntryRepository struct {
	mock.Mock
}

func (m *MockLedgerEntryRepository) ListEntriesByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) ListEntriesByAccountIDs(ctx context.Context, accountIDs []string) (map[string][]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerEntryRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) CountProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) CountSaleItems(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReportingRepository) SumSales(ctx context.Context, from *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockReportingRepository) DailySales(ctx context.Context, from *time.Time) ([]domain.DailySales, error) {
	args := m.Called(ctx, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailySales), args.Error(1)
}

func (m *MockReportingRepository) ListSalesForExport(ctx context.Context, from, to *time.Time) ([]domain.Sale, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

// --- Test Suite Setup ---

type MockedRepositoryTestSuite struct {
	suite.Suite
	accountRepo   *MockLedgerAccountRepository
	entryRepo     *MockLedgerEntryRepository
	reportingRepo *MockReportingRepository
	now           time.Time
}

func TestMockedRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MockedRepositoryTestSuite))
}

func (suite *MockedRepositoryTestSuite) SetupTest() {
	suite.accountRepo = new(MockLedgerAccountRepository)
	suite.entryRepo = new(MockLedgerEntryRepository)
	suite.reportingRepo = new(MockReportingRepository)
	suite.now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
}

func (suite *MockedRepositoryTestSuite) repos() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:   suite.accountRepo,
		EntryRepo:     suite.entryRepo,
		ReportingRepo: suite.reportingRepo,
	}
}

func (suite *MockedRepositoryTestSuite) clock() services.ServiceOption {
	return services.WithClock(func() time.Time { return suite.now })
}

// --- Test Cases ---

func (suite *MockedRepositoryTestSuite) TestCreateAccount_Success() {
	svc := services.NewLedgerService(suite.repos(), suite.clock())
	ctx := context.Background()

	suite.accountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.LedgerAccount) bool {
		return acc.Type == domain.AccountTypeSupplier &&
			acc.Name == "Metro" &&
			acc.ContactEmail == "ops@metro.test" &&
			acc.CreatedBy == "user-1" &&
			acc.CreatedAt.Equal(suite.now) &&
			acc.AccountID != ""
	})).Return(nil).Once()

	acc, err := svc.CreateAccount(ctx, dto.CreateLedgerAccountRequest{
		Type:         domain.AccountTypeSupplier,
		Name:         "  Metro ",
		ContactEmail: "ops@metro.test",
	}, "user-1")

	suite.Require().NoError(err)
	assert.Equal(suite.T(), "Metro", acc.Name)
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *MockedRepositoryTestSuite) TestCreateAccount_DuplicatePassesThrough() {
	svc := services.NewLedgerService(suite.repos(), suite.clock())
	ctx := context.Background()

	suite.accountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.LedgerAccount")).Return(apperrors.ErrDuplicateAccount).Once()

	acc, err := svc.CreateAccount(ctx, dto.CreateLedgerAccountRequest{Type: domain.AccountTypeCustomer, Name: "Omar"}, "user-1")

	assert.Nil(suite.T(), acc)
	assert.ErrorIs(suite.T(), err, apperrors.ErrDuplicate)
	suite.accountRepo.AssertExpectations(suite.T())
}

func (suite *MockedRepositoryTestSuite) TestGetAccountLedger_EntryStoreFailure() {
	svc := services.NewLedgerService(suite.repos(), suite.clock())
	ctx := context.Background()
	storeErr := errors.New("connection reset")

	suite.accountRepo.On("FindAccountByID", ctx, "acc-1").
		Return(&domain.LedgerAccount{AccountID: "acc-1", Type: domain.AccountTypeCustomer, Name: "Omar"}, nil).Once()
	suite.entryRepo.On("ListEntriesByAccount", ctx, "acc-1", (*time.Time)(nil), (*time.Time)(nil)).Return(nil, storeErr).Once()

	ledger, err := svc.GetAccountLedger(ctx, "acc-1")

	assert.Nil(suite.T(), ledger)
	assert.ErrorIs(suite.T(), err, storeErr)
	suite.accountRepo.AssertExpectations(suite.T())
	suite.entryRepo.AssertExpectations(suite.T())
}

func (suite *MockedRepositoryTestSuite) TestListAccounts_BalancesFromEntries() {
	svc := services.NewLedgerService(suite.repos(), suite.clock())
	ctx := context.Background()

	suite.accountRepo.On("ListAccountsByType", ctx, domain.AccountTypeCustomer).Return([]domain.LedgerAccount{
		{AccountID: "a", Type: domain.AccountTypeCustomer, Name: "A"},
		{AccountID: "b", Type: domain.AccountTypeCustomer, Name: "B"},
	}, nil).Once()
	suite.entryRepo.On("ListEntriesByAccountIDs", ctx, []string{"a", "b"}).Return(map[string][]domain.LedgerEntry{
		"a": {
			{AccountID: "a", Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
			{AccountID: "a", Debit: decimal.Zero, Credit: decimal.NewFromInt(120)},
		},
	}, nil).Once()

	accounts, err := svc.ListAccounts(ctx, domain.AccountTypeCustomer)

	suite.Require().NoError(err)
	suite.Require().Len(accounts, 2)
	assert.True(suite.T(), decimal.NewFromInt(380).Equal(accounts[0].Balance))
	assert.True(suite.T(), accounts[1].Balance.IsZero())
}

func (suite *MockedRepositoryTestSuite) TestSummary_RepositoryFailure() {
	svc := services.NewReportingService(suite.reportingRepo, suite.clock())
	ctx := context.Background()
	storeErr := errors.New("statement timeout")

	suite.reportingRepo.On("CountProducts", ctx).Return(int64(3), nil).Once()
	suite.reportingRepo.On("CountSaleItems", ctx).Return(int64(0), storeErr).Once()

	summary, err := svc.Summary(ctx, domain.ChartRange7Days)

	assert.Nil(suite.T(), summary)
	assert.ErrorIs(suite.T(), err, storeErr)
	suite.reportingRepo.AssertNotCalled(suite.T(), "SumSales", mock.Anything, mock.Anything)
	suite.reportingRepo.AssertExpectations(suite.T())
}

func (suite *MockedRepositoryTestSuite) TestSummary_ChartStartFollowsRange() {
	svc := services.NewReportingService(suite.reportingRepo, suite.clock())
	ctx := context.Background()
	wantStart := suite.now.AddDate(0, 0, -7)

	suite.reportingRepo.On("CountProducts", ctx).Return(int64(0), nil)
	suite.reportingRepo.On("CountSaleItems", ctx).Return(int64(0), nil)
	suite.reportingRepo.On("SumSales", ctx, mock.Anything).Return(decimal.Zero, nil)
	suite.reportingRepo.On("DailySales", ctx, mock.MatchedBy(func(from *time.Time) bool {
		return from != nil && from.Equal(wantStart)
	})).Return([]domain.DailySales{}, nil).Once()

	summary, err := svc.Summary(ctx, domain.ChartRange7Days)

	suite.Require().NoError(err)
	assert.Equal(suite.T(), domain.ChartRange7Days, summary.Range)
	suite.reportingRepo.AssertNumberOfCalls(suite.T(), "SumSales", 6)
	suite.reportingRepo.AssertExpectations(suite.T())
}
