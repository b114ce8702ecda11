package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines read-only aggregate queries for the analytics dashboard.
type ReportingRepository interface {
	// CountProducts counts live products.
	CountProducts(ctx context.Context) (int64, error)

	// CountSaleItems counts live sale items.
	CountSaleItems(ctx context.Context) (int64, error)

	// SumSales totals live sales created at or after from. A nil from means all time.
	SumSales(ctx context.Context, from *time.Time) (decimal.Decimal, error)

	// DailySales totals live sales per UTC day, oldest first, from the given instant.
	DailySales(ctx context.Context, from *time.Time) ([]domain.DailySales, error)

	// ListSalesForExport lists live sales with items inside an optional inclusive window, newest first.
	ListSalesForExport(ctx context.Context, from, to *time.Time) ([]domain.Sale, error)
}
