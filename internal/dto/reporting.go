package dto

import (
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DailySalesDateFormat is the DD-MM-YYYY key used by the dashboard chart.
const DailySalesDateFormat = "02-01-2006"

// SalesExportParams are the optional inclusive bounds of the CSV export.
type SalesExportParams struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// DailySalesPoint is one chart point.
type DailySalesPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// AnalyticsSummaryResponse represents the dashboard summary response
type AnalyticsSummaryResponse struct {
	TotalProducts  int64                 `json:"totalProducts"`
	TotalSaleItems int64                 `json:"totalSaleItems"`
	TotalSales     decimal.Decimal       `json:"totalSales"`
	TimeBasedSales domain.TimeBasedSales `json:"timeBasedSales"`
	DailySales     []DailySalesPoint     `json:"dailySales"`
	Range          domain.ChartRange     `json:"range"`
}

// ToAnalyticsSummaryResponse converts a domain.AnalyticsSummary to its response DTO.
func ToAnalyticsSummaryResponse(s *domain.AnalyticsSummary) AnalyticsSummaryResponse {
	points := make([]DailySalesPoint, len(s.DailySales))
	for i, d := range s.DailySales {
		points[i] = DailySalesPoint{Date: d.Day.Format(DailySalesDateFormat), Total: d.Total}
	}
	return AnalyticsSummaryResponse{
		TotalProducts:  s.TotalProducts,
		TotalSaleItems: s.TotalSaleItems,
		TotalSales:     s.TotalSales,
		TimeBasedSales: s.TimeBasedSales,
		DailySales:     points,
		Range:          s.Range,
	}
}
