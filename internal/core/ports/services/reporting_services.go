package services

import (
	"context"
	"io"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
)

// ReportingService defines read-only analytics
type ReportingService interface {
	// Summary builds the dashboard summary with the daily chart covering chartRange.
	Summary(ctx context.Context, chartRange domain.ChartRange) (*domain.AnalyticsSummary, error)

	// ExportSalesCSV writes the sales report as CSV to w and returns the number of sales written.
	// Nothing is written when there are no sales in the window.
	ExportSalesCSV(ctx context.Context, params dto.SalesExportParams, w io.Writer) (int, error)
}
