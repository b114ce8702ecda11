package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductReader defines read operations for products.
type ProductReader interface {
	// FindProductsByIDs returns the live products among ids, keyed by product id.
	FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error)

	// FindProductByName finds a product by normalised name. Deleted rows are included only when asked.
	FindProductByName(ctx context.Context, name string, includeDeleted bool) (*domain.Product, error)

	// ListProducts lists live products ordered by name.
	ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error)
}

// ProductWriter defines write operations for products.
type ProductWriter interface {
	// SaveProduct persists a new product. A live name clash returns apperrors.ErrDuplicateProduct.
	SaveProduct(ctx context.Context, product domain.Product) error

	// RestoreProduct revives a soft-deleted product with new attributes.
	RestoreProduct(ctx context.Context, product domain.Product) error

	// DecrementStock subtracts quantity only if enough stock remains at apply time.
	// It returns false without changing anything when the condition fails.
	DecrementStock(ctx context.Context, productID string, quantity int64, now time.Time) (bool, error)

	// IncrementStock adds quantity and overwrites the product's cost price.
	IncrementStock(ctx context.Context, productID string, quantity int64, costPrice decimal.Decimal, now time.Time) error
}

// ProductRepositoryFacade combines all product repository interfaces.
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
}

// SaleReader defines read operations for sales.
type SaleReader interface {
	// FindSaleByID retrieves a live sale with its items.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// ListSales lists live sales newest first using keyset pagination.
	// It returns the token for the next page, or nil when there are no more.
	ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error)
}

// SaleWriter defines write operations for sales.
type SaleWriter interface {
	// SaveSale persists a sale and its items.
	SaveSale(ctx context.Context, sale domain.Sale) error

	// SoftDeleteSale marks a sale and all its items deleted.
	SoftDeleteSale(ctx context.Context, saleID string, userID string, now time.Time) error
}

// SaleRepositoryFacade combines all sale repository interfaces.
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}
