package services

import (
	"context"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
)

// SaleReaderSvc defines read operations for sales.
type SaleReaderSvc interface {
	GetSale(ctx context.Context, saleID string) (*domain.Sale, error)
	ListSales(ctx context.Context, params dto.ListSalesParams) ([]domain.Sale, *string, error)
}

// SaleWriterSvc defines sale posting and removal.
type SaleWriterSvc interface {
	// PostSale validates, reserves stock, persists the sale and posts its ledger entry atomically.
	PostSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*domain.Sale, error)

	// DeleteSale soft deletes a sale and its items. Stock and ledger entries are left as they are.
	DeleteSale(ctx context.Context, saleID string, userID string) error
}

// SaleSvcFacade combines all sale-related service interfaces
type SaleSvcFacade interface {
	SaleReaderSvc
	SaleWriterSvc
}

// PurchaseSvc defines purchase posting.
type PurchaseSvc interface {
	// PostPurchase restocks products, overwrites their cost and posts the supplier or cash credit atomically.
	PostPurchase(ctx context.Context, req dto.CreatePurchaseRequest, userID string) (*domain.PurchaseResult, error)
}

// ProductSvc defines the catalog operations the ledger depends on.
type ProductSvc interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, userID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params dto.ListProductsParams) ([]domain.Product, error)
}
