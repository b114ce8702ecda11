package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/shopspring/decimal"
)

const (
	exportDateFormat     = "2006-01-02 15:04"
	walkInCustomerName   = "Walk-in Customer"
	utf8ByteOrderMark    = "\uFEFF"
	exportItemsSeparator = "; "
)

var salesExportHeader = []string{
	"Invoice ID", "Date", "Customer", "Email", "Phone",
	"Payment Type", "Total Amount", "Cashier", "Items Count", "Items",
}

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ServiceOption) portssvc.ReportingService {
	return &reportingService{
		BaseService:   newBaseService(options...),
		reportingRepo: repo,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) Summary(ctx context.Context, chartRange domain.ChartRange) (*domain.AnalyticsSummary, error) {
	if chartRange == "" {
		chartRange = domain.DefaultChartRange
	}
	now := s.Now()
	chartStart, ok := chartRange.Start(now)
	if !ok {
		return nil, fmt.Errorf("%w: unknown range %q", apperrors.ErrValidation, chartRange)
	}

	summary := &domain.AnalyticsSummary{Range: chartRange}
	var err error
	if summary.TotalProducts, err = s.reportingRepo.CountProducts(ctx); err != nil {
		s.LogError(ctx, err, "Failed to count products")
		return nil, err
	}
	if summary.TotalSaleItems, err = s.reportingRepo.CountSaleItems(ctx); err != nil {
		s.LogError(ctx, err, "Failed to count sale items")
		return nil, err
	}

	today := startOfDay(now)
	lastWeek := now.AddDate(0, 0, -7)
	lastMonth := now.AddDate(0, -1, 0)
	lastSixMonths := now.AddDate(0, -6, 0)
	lastYear := now.AddDate(-1, 0, 0)
	buckets := []struct {
		from *time.Time
		dst  *decimal.Decimal
	}{
		{&today, &summary.TimeBasedSales.Today},
		{&lastWeek, &summary.TimeBasedSales.LastWeek},
		{&lastMonth, &summary.TimeBasedSales.LastMonth},
		{&lastSixMonths, &summary.TimeBasedSales.LastSixMonths},
		{&lastYear, &summary.TimeBasedSales.LastYear},
		{nil, &summary.TimeBasedSales.AllTime},
	}
	for _, b := range buckets {
		total, err := s.reportingRepo.SumSales(ctx, b.from)
		if err != nil {
			s.LogError(ctx, err, "Failed to sum sales")
			return nil, err
		}
		*b.dst = total
	}
	summary.TotalSales = summary.TimeBasedSales.AllTime

	if summary.DailySales, err = s.reportingRepo.DailySales(ctx, chartStart); err != nil {
		s.LogError(ctx, err, "Failed to load daily sales", slog.String("range", string(chartRange)))
		return nil, err
	}
	return summary, nil
}

// ExportSalesCSV writes one row per live sale, newest first, preceded by a UTF-8
// byte order mark and a header row.
func (s *reportingService) ExportSalesCSV(ctx context.Context, params dto.SalesExportParams, w io.Writer) (int, error) {
	var from, to *time.Time
	if params.StartDate != nil {
		start := startOfDay(*params.StartDate)
		from = &start
	}
	if params.EndDate != nil {
		end := endOfDay(*params.EndDate)
		to = &end
	}
	if from != nil && to != nil && from.After(*to) {
		return 0, fmt.Errorf("%w: startDate must not be after endDate", apperrors.ErrValidation)
	}

	sales, err := s.reportingRepo.ListSalesForExport(ctx, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load sales for export")
		return 0, err
	}
	if len(sales) == 0 {
		return 0, nil
	}

	if _, err := io.WriteString(w, utf8ByteOrderMark); err != nil {
		return 0, err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(salesExportHeader); err != nil {
		return 0, err
	}
	for _, sale := range sales {
		if err := cw.Write(salesExportRow(sale)); err != nil {
			return 0, err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		s.LogError(ctx, err, "Failed to write sales export")
		return 0, err
	}

	s.LogInfo(ctx, "Sales exported", slog.Int("count", len(sales)))
	return len(sales), nil
}

func salesExportRow(sale domain.Sale) []string {
	customer := sale.CustomerName
	if customer == "" {
		customer = walkInCustomerName
	}
	items := make([]string, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = fmt.Sprintf("%dx %s @ Rs.%s", item.Quantity, item.ProductName, item.PriceAtSale.String())
	}
	return []string{
		sale.SaleID,
		sale.CreatedAt.UTC().Format(exportDateFormat),
		customer,
		sale.CustomerEmail,
		sale.CustomerPhone,
		string(sale.PaymentType),
		sale.TotalAmount.String(),
		sale.UserID,
		strconv.Itoa(len(sale.Items)),
		strings.Join(items, exportItemsSeparator),
	}
}
