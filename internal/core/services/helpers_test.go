package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/core/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

const testUserID = "user-1"

// storeSuite wires every service to a fresh in-memory store with a fixed clock.
type storeSuite struct {
	suite.Suite
	ctx   context.Context
	now   time.Time
	store *memory.Store
	repos portsrepo.RepositoryProvider
	svc   *portssvc.ServiceContainer
}

func (s *storeSuite) SetupTest() {
	s.ctx = context.Background()
	s.now = time.Date(2024, 5, 10, 12, 30, 0, 0, time.UTC)
	s.store = memory.NewStore()
	s.repos = memory.NewRepositoryProvider(s.store)
	s.svc = services.NewContainer(s.repos, s.options()...)
}

func (s *storeSuite) options() []services.ServiceOption {
	return []services.ServiceOption{
		services.WithClock(func() time.Time { return s.now }),
		services.WithTxTimeout(time.Second),
	}
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func (s *storeSuite) product(name, price, cost string, stock int64) *domain.Product {
	p, err := s.svc.Product.CreateProduct(s.ctx, dto.CreateProductRequest{
		Name:          name,
		Price:         dec(price),
		CostPrice:     dec(cost),
		StockQuantity: stock,
	}, testUserID)
	s.Require().NoError(err)
	return p
}

func (s *storeSuite) party(t domain.AccountType, name string) *domain.LedgerAccount {
	acc, err := s.svc.Ledger.CreateAccount(s.ctx, dto.CreateLedgerAccountRequest{Type: t, Name: name}, testUserID)
	s.Require().NoError(err)
	return acc
}

func (s *storeSuite) stockOf(productID string) int64 {
	found, err := s.repos.ProductRepo.FindProductsByIDs(s.ctx, []string{productID})
	s.Require().NoError(err)
	p, ok := found[productID]
	s.Require().True(ok, "product %s not found", productID)
	return p.StockQuantity
}

func (s *storeSuite) entriesOf(accountID string) []domain.LedgerEntry {
	entries, err := s.repos.EntryRepo.ListEntriesByAccount(s.ctx, accountID, nil, nil)
	s.Require().NoError(err)
	return entries
}

func (s *storeSuite) cashEntries() []domain.LedgerEntry {
	cash, err := s.repos.AccountRepo.FindCashAccount(s.ctx)
	if err != nil {
		return nil
	}
	return s.entriesOf(cash.AccountID)
}
