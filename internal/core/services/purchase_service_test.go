package services_test

import (
	"math"
	"testing"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/stretchr/testify/suite"
)

type PurchaseServiceTestSuite struct {
	storeSuite
}

func TestPurchaseServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PurchaseServiceTestSuite))
}

func (s *PurchaseServiceTestSuite) TestCreditPurchaseCreditsSupplier() {
	supplier := s.party(domain.AccountTypeSupplier, "Metro")
	rice := s.product("Rice", "250", "200", 3)
	oil := s.product("Oil", "120", "100", 0)

	result, err := s.svc.Purchase.PostPurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: supplier.AccountID,
		PaymentType:       domain.PaymentTypeCredit,
		Items: []dto.PurchaseItemRequest{
			{ProductID: rice.ProductID, Quantity: 10, CostPrice: decPtr("210")},
			{ProductID: oil.ProductID, Quantity: 4},
		},
	}, testUserID)
	s.Require().NoError(err)
	s.True(dec("2500").Equal(result.TotalAmount), "total was %s", result.TotalAmount)
	s.Equal(supplier.AccountID, result.SupplierAccount.AccountID)

	s.Equal(int64(13), s.stockOf(rice.ProductID))
	s.Equal(int64(4), s.stockOf(oil.ProductID))

	found, err := s.repos.ProductRepo.FindProductsByIDs(s.ctx, []string{rice.ProductID})
	s.Require().NoError(err)
	s.True(dec("210").Equal(found[rice.ProductID].CostPrice), "cost price is overwritten")

	entries := s.entriesOf(supplier.AccountID)
	s.Require().Len(entries, 1)
	s.True(dec("2500").Equal(entries[0].Credit))
	s.True(entries[0].Debit.IsZero())
	s.Equal(domain.RefTypePurchase, entries[0].RefType)
	s.Equal("Purchase from Metro", entries[0].Description)
	s.Empty(s.cashEntries())
}

func (s *PurchaseServiceTestSuite) TestCashPurchaseCreditsCash() {
	supplier := s.party(domain.AccountTypeSupplier, "Metro")
	p := s.product("Rice", "250", "200", 0)

	_, err := s.svc.Purchase.PostPurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: supplier.AccountID,
		PaymentType:       domain.PaymentTypeCash,
		Description:       "Weekly restock",
		Items:             []dto.PurchaseItemRequest{{ProductID: p.ProductID, Quantity: 2}},
	}, testUserID)
	s.Require().NoError(err)

	cash := s.cashEntries()
	s.Require().Len(cash, 1)
	s.True(dec("400").Equal(cash[0].Credit))
	s.Equal("Weekly restock", cash[0].Description)
	s.Empty(s.entriesOf(supplier.AccountID))
}

func (s *PurchaseServiceTestSuite) TestUnknownSupplierOrProductRollsBack() {
	supplier := s.party(domain.AccountTypeSupplier, "Metro")
	customer := s.party(domain.AccountTypeCustomer, "Omar")
	p := s.product("Rice", "250", "200", 1)

	_, err := s.svc.Purchase.PostPurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: customer.AccountID,
		PaymentType:       domain.PaymentTypeCredit,
		Items:             []dto.PurchaseItemRequest{{ProductID: p.ProductID, Quantity: 2}},
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrAccountNotFound)

	_, err = s.svc.Purchase.PostPurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: supplier.AccountID,
		PaymentType:       domain.PaymentTypeCredit,
		Items: []dto.PurchaseItemRequest{
			{ProductID: p.ProductID, Quantity: 2},
			{ProductID: "ghost", Quantity: 1},
		},
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrProductNotFound)

	s.Equal(int64(1), s.stockOf(p.ProductID))
	s.Empty(s.entriesOf(supplier.AccountID))
}

func (s *PurchaseServiceTestSuite) TestRequestValidation() {
	tests := []struct {
		name string
		req  dto.CreatePurchaseRequest
	}{
		{"missing supplier", dto.CreatePurchaseRequest{PaymentType: domain.PaymentTypeCash, Items: []dto.PurchaseItemRequest{{ProductID: "p", Quantity: 1}}}},
		{"card not allowed", dto.CreatePurchaseRequest{SupplierAccountID: "s", PaymentType: domain.PaymentTypeCard, Items: []dto.PurchaseItemRequest{{ProductID: "p", Quantity: 1}}}},
		{"no items", dto.CreatePurchaseRequest{SupplierAccountID: "s", PaymentType: domain.PaymentTypeCash}},
		{"negative cost", dto.CreatePurchaseRequest{SupplierAccountID: "s", PaymentType: domain.PaymentTypeCash, Items: []dto.PurchaseItemRequest{{ProductID: "p", Quantity: 1, CostPrice: decPtr("-1")}}}},
		{"zero quantity", dto.CreatePurchaseRequest{SupplierAccountID: "s", PaymentType: domain.PaymentTypeCash, Items: []dto.PurchaseItemRequest{{ProductID: "p"}}}},
		{"sub-cent cost", dto.CreatePurchaseRequest{SupplierAccountID: "s", PaymentType: domain.PaymentTypeCash, Items: []dto.PurchaseItemRequest{{ProductID: "p", Quantity: 1, CostPrice: decPtr("1.005")}}}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Purchase.PostPurchase(s.ctx, tt.req, testUserID)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (s *PurchaseServiceTestSuite) TestStockOverflowRollsBack() {
	supplier := s.party(domain.AccountTypeSupplier, "Metro")
	p := s.product("Rice", "250", "200", 5)

	_, err := s.svc.Purchase.PostPurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: supplier.AccountID,
		PaymentType:       domain.PaymentTypeCredit,
		Items:             []dto.PurchaseItemRequest{{ProductID: p.ProductID, Quantity: math.MaxInt64}},
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.svc.Purchase.PostPurchase(s.ctx, dto.CreatePurchaseRequest{
		SupplierAccountID: supplier.AccountID,
		PaymentType:       domain.PaymentTypeCredit,
		Items: []dto.PurchaseItemRequest{
			{ProductID: p.ProductID, Quantity: 1},
			{ProductID: p.ProductID, Quantity: math.MaxInt64 - 5},
		},
	}, testUserID)
	s.ErrorIs(err, apperrors.ErrValidation)

	s.Equal(int64(5), s.stockOf(p.ProductID))
	s.Empty(s.entriesOf(supplier.AccountID))
}
