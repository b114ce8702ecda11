package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_inventory_app/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

func (r *reportingRepository) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.Pool.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *reportingRepository) CountProducts(ctx context.Context) (int64, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM products WHERE NOT is_deleted;`)
	if err != nil {
		return 0, fmt.Errorf("error counting products: %w", err)
	}
	return n, nil
}

func (r *reportingRepository) CountSaleItems(ctx context.Context) (int64, error) {
	n, err := r.count(ctx, `SELECT COUNT(*) FROM sale_items WHERE NOT is_deleted;`)
	if err != nil {
		return 0, fmt.Errorf("error counting sale items: %w", err)
	}
	return n, nil
}

func (r *reportingRepository) SumSales(ctx context.Context, from *time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM sales
		WHERE NOT is_deleted AND ($1::timestamptz IS NULL OR created_at >= $1);
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, from).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("error summing sales: %w", err)
	}
	return total, nil
}

// DailySales groups live sales by UTC calendar day, oldest first.
func (r *reportingRepository) DailySales(ctx context.Context, from *time.Time) ([]domain.DailySales, error) {
	query := `
		SELECT date_trunc('day', created_at AT TIME ZONE 'UTC') AS day, SUM(total_amount) AS total
		FROM sales
		WHERE NOT is_deleted AND ($1::timestamptz IS NULL OR created_at >= $1)
		GROUP BY day
		ORDER BY day ASC;
	`
	rows, err := r.Pool.Query(ctx, query, from)
	if err != nil {
		return nil, fmt.Errorf("error querying daily sales: %w", err)
	}
	defer rows.Close()

	result := []domain.DailySales{}
	for rows.Next() {
		var day time.Time
		var total decimal.Decimal
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("error scanning daily sales row: %w", err)
		}
		y, m, d := day.Date()
		result = append(result, domain.DailySales{Day: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), Total: total})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily sales rows: %w", err)
	}
	return result, nil
}

// ListSalesForExport lists live sales with their live items, newest first.
func (r *reportingRepository) ListSalesForExport(ctx context.Context, from, to *time.Time) ([]domain.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE NOT is_deleted
			AND ($1::timestamptz IS NULL OR created_at >= $1)
			AND ($2::timestamptz IS NULL OR created_at <= $2)
		ORDER BY created_at DESC, sale_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying sales for export: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		return nil, fmt.Errorf("error scanning sales for export: %w", err)
	}
	return attachItems(ctx, r.Pool, ms)
}
