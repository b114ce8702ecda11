package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (r *repo) CountProducts(_ context.Context) (int64, error) {
	var n int64
	_ = r.read(func(st *state) error {
		for _, p := range st.products {
			if !p.IsDeleted {
				n++
			}
		}
		return nil
	})
	return n, nil
}

func (r *repo) CountSaleItems(_ context.Context) (int64, error) {
	var n int64
	_ = r.read(func(st *state) error {
		for _, s := range st.sales {
			for _, it := range s.Items {
				if !it.IsDeleted {
					n++
				}
			}
		}
		return nil
	})
	return n, nil
}

func (r *repo) SumSales(_ context.Context, from *time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.liveSales(from, nil) {
		total = total.Add(s.TotalAmount)
	}
	return total, nil
}

func (r *repo) DailySales(_ context.Context, from *time.Time) ([]domain.DailySales, error) {
	totals := make(map[time.Time]decimal.Decimal)
	for _, s := range r.liveSales(from, nil) {
		day := s.CreatedAt.UTC().Truncate(24 * time.Hour)
		totals[day] = totals[day].Add(s.TotalAmount)
	}
	days := make([]domain.DailySales, 0, len(totals))
	for day, total := range totals {
		days = append(days, domain.DailySales{Day: day, Total: total})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day.Before(days[j].Day) })
	return days, nil
}

func (r *repo) ListSalesForExport(_ context.Context, from, to *time.Time) ([]domain.Sale, error) {
	return r.liveSales(from, to), nil
}
