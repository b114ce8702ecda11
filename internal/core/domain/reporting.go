package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChartRange selects the window of the daily sales chart.
type ChartRange string

const (
	ChartRange7Days    ChartRange = "7days"
	ChartRange30Days   ChartRange = "30days"
	ChartRange90Days   ChartRange = "90days"
	ChartRange6Months  ChartRange = "6months"
	ChartRange12Months ChartRange = "12months"
	ChartRangeAll      ChartRange = "all"
)

// DefaultChartRange is used when no range is requested.
const DefaultChartRange = ChartRange30Days

// Start returns the beginning of the window relative to now, or nil for an unbounded range.
func (r ChartRange) Start(now time.Time) (*time.Time, bool) {
	var start time.Time
	switch r {
	case ChartRange7Days:
		start = now.AddDate(0, 0, -7)
	case ChartRange30Days:
		start = now.AddDate(0, 0, -30)
	case ChartRange90Days:
		start = now.AddDate(0, 0, -90)
	case ChartRange6Months:
		start = now.AddDate(0, -6, 0)
	case ChartRange12Months:
		start = now.AddDate(-1, 0, 0)
	case ChartRangeAll:
		return nil, true
	default:
		return nil, false
	}
	return &start, true
}

// TimeBasedSales buckets sales totals by trailing windows.
type TimeBasedSales struct {
	Today         decimal.Decimal `json:"today"`
	LastWeek      decimal.Decimal `json:"lastWeek"`
	LastMonth     decimal.Decimal `json:"lastMonth"`
	LastSixMonths decimal.Decimal `json:"lastSixMonths"`
	LastYear      decimal.Decimal `json:"lastYear"`
	AllTime       decimal.Decimal `json:"allTime"`
}

// DailySales is the sales total for one calendar day (UTC).
type DailySales struct {
	Day   time.Time       `json:"day"`
	Total decimal.Decimal `json:"total"`
}

// AnalyticsSummary is the dashboard summary.
type AnalyticsSummary struct {
	TotalProducts  int64           `json:"totalProducts"`
	TotalSaleItems int64           `json:"totalSaleItems"`
	TotalSales     decimal.Decimal `json:"totalSales"`
	TimeBasedSales TimeBasedSales  `json:"timeBasedSales"`
	DailySales     []DailySales    `json:"dailySales"`
	Range          ChartRange      `json:"range"`
}
