//go:build integration

package pgsql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_inventory_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/pos_inventory_app/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// Run with: POS_TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/repositories/database/pgsql/
const testDatabaseURLEnv = "POS_TEST_DATABASE_URL"

type PgxRepositoriesTestSuite struct {
	suite.Suite
	ctx   context.Context
	pool  *pgxpool.Pool
	repos portsrepo.RepositoryProvider
	now   time.Time
}

func TestPgxRepositoriesTestSuite(t *testing.T) {
	suite.Run(t, new(PgxRepositoriesTestSuite))
}

func (s *PgxRepositoriesTestSuite) SetupSuite() {
	url := os.Getenv(testDatabaseURLEnv)
	if url == "" {
		s.T().Skipf("%s not set", testDatabaseURLEnv)
	}
	s.ctx = context.Background()

	_, err := database.RunMigrations(url, "file://../../../../migrations")
	s.Require().NoError(err)

	s.pool, err = database.NewPgxPool(s.ctx, url, true)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
}

func (s *PgxRepositoriesTestSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
}

func (s *PgxRepositoriesTestSuite) SetupTest() {
	s.now = time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	_, err := s.pool.Exec(s.ctx, `TRUNCATE sale_items, sales, ledger_entries, products, ledger_accounts;`)
	s.Require().NoError(err)
}

func (s *PgxRepositoriesTestSuite) saveProduct(name string, stock int64) domain.Product {
	p := domain.Product{
		ProductID:     uuid.NewString(),
		Name:          name,
		Price:         decimal.RequireFromString("10.50"),
		CostPrice:     decimal.RequireFromString("7"),
		StockQuantity: stock,
		CategoryID:    "grocery",
		AuditFields:   domain.NewAuditFields("user-1", s.now),
	}
	s.Require().NoError(s.repos.ProductRepo.SaveProduct(s.ctx, p))
	return p
}

func (s *PgxRepositoriesTestSuite) stockOf(productID string) int64 {
	found, err := s.repos.ProductRepo.FindProductsByIDs(s.ctx, []string{productID})
	s.Require().NoError(err)
	return found[productID].StockQuantity
}

func (s *PgxRepositoriesTestSuite) TestDecrementStockIsConditional() {
	p := s.saveProduct("rice", 5)

	applied, err := s.repos.ProductRepo.DecrementStock(s.ctx, p.ProductID, 3, s.now)
	s.Require().NoError(err)
	s.True(applied)
	s.Equal(int64(2), s.stockOf(p.ProductID))

	applied, err = s.repos.ProductRepo.DecrementStock(s.ctx, p.ProductID, 3, s.now)
	s.Require().NoError(err)
	s.False(applied, "not enough stock left")

	applied, err = s.repos.ProductRepo.DecrementStock(s.ctx, p.ProductID, -10, s.now)
	s.Require().NoError(err)
	s.False(applied, "negative quantities never raise stock")
	s.Equal(int64(2), s.stockOf(p.ProductID))
}

func (s *PgxRepositoriesTestSuite) TestIncrementStockOverflowIsValidation() {
	p := s.saveProduct("rice", 5)

	err := s.repos.ProductRepo.IncrementStock(s.ctx, p.ProductID, 1<<62, decimal.RequireFromString("7"), s.now)
	s.Require().NoError(err)
	err = s.repos.ProductRepo.IncrementStock(s.ctx, p.ProductID, 1<<62, decimal.RequireFromString("7"), s.now)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PgxRepositoriesTestSuite) TestProductRoundTripKeepsCategory() {
	p := s.saveProduct("green tea", 4)

	found, err := s.repos.ProductRepo.FindProductByName(s.ctx, "green tea", false)
	s.Require().NoError(err)
	s.Equal(p.ProductID, found.ProductID)
	s.Equal("grocery", found.CategoryID)
	s.True(p.Price.Equal(found.Price))

	dup := p
	dup.ProductID = uuid.NewString()
	s.ErrorIs(s.repos.ProductRepo.SaveProduct(s.ctx, dup), apperrors.ErrDuplicateProduct)
}

func (s *PgxRepositoriesTestSuite) TestSaveAccountIfAbsentKeepsOneCash() {
	cash := func() domain.LedgerAccount {
		return domain.LedgerAccount{
			AccountID:   uuid.NewString(),
			Type:        domain.AccountTypeCash,
			Name:        domain.CashAccountName,
			AuditFields: domain.NewAuditFields("user-1", s.now),
		}
	}

	first := cash()
	inserted, err := s.repos.AccountRepo.SaveAccountIfAbsent(s.ctx, first)
	s.Require().NoError(err)
	s.True(inserted)

	inserted, err = s.repos.AccountRepo.SaveAccountIfAbsent(s.ctx, cash())
	s.Require().NoError(err)
	s.False(inserted)

	found, err := s.repos.AccountRepo.FindCashAccount(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.AccountID, found.AccountID)
}

func (s *PgxRepositoriesTestSuite) TestListSalesPagesNewestFirst() {
	p := s.saveProduct("rice", 100)
	var ids []string
	for i := 0; i < 3; i++ {
		sale := domain.Sale{
			SaleID:      uuid.NewString(),
			UserID:      "user-1",
			PaymentType: domain.PaymentTypeCash,
			TotalAmount: p.Price,
			Items: []domain.SaleItem{{
				SaleItemID:  uuid.NewString(),
				ProductID:   p.ProductID,
				ProductName: p.Name,
				Quantity:    1,
				PriceAtSale: p.Price,
			}},
			AuditFields: domain.NewAuditFields("user-1", s.now.Add(time.Duration(i)*time.Minute)),
		}
		for j := range sale.Items {
			sale.Items[j].SaleID = sale.SaleID
		}
		s.Require().NoError(s.repos.SaleRepo.SaveSale(s.ctx, sale))
		ids = append(ids, sale.SaleID)
	}

	page, next, err := s.repos.SaleRepo.ListSales(s.ctx, 2, nil)
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Require().NotNil(next)
	s.Equal(ids[2], page[0].SaleID)
	s.Equal(ids[1], page[1].SaleID)
	s.Len(page[0].Items, 1)

	rest, next, err := s.repos.SaleRepo.ListSales(s.ctx, 2, next)
	s.Require().NoError(err)
	s.Require().Len(rest, 1)
	s.Equal(ids[0], rest[0].SaleID)
	s.Nil(next)
}
