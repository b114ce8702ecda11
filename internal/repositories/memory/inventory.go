package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/SscSPs/pos_inventory_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

func (r *repo) FindProductsByIDs(_ context.Context, productIDs []string) (map[string]domain.Product, error) {
	found := make(map[string]domain.Product, len(productIDs))
	_ = r.read(func(st *state) error {
		for _, id := range productIDs {
			if p, ok := st.products[id]; ok && !p.IsDeleted {
				found[id] = p
			}
		}
		return nil
	})
	return found, nil
}

func (r *repo) FindProductByName(_ context.Context, name string, includeDeleted bool) (*domain.Product, error) {
	var found *domain.Product
	err := r.read(func(st *state) error {
		for _, p := range st.products {
			if p.Name != name || (p.IsDeleted && !includeDeleted) {
				continue
			}
			// Prefer a live row over a deleted one with the same name.
			if found == nil || found.IsDeleted {
				cp := p
				found = &cp
			}
		}
		if found == nil {
			return apperrors.ErrProductNotFound
		}
		return nil
	})
	return found, err
}

func (r *repo) ListProducts(_ context.Context, limit int, offset int) ([]domain.Product, error) {
	var products []domain.Product
	_ = r.read(func(st *state) error {
		for _, p := range st.products {
			if !p.IsDeleted {
				products = append(products, p)
			}
		}
		return nil
	})
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	if offset >= len(products) {
		return []domain.Product{}, nil
	}
	products = products[offset:]
	if limit > 0 && limit < len(products) {
		products = products[:limit]
	}
	return products, nil
}

func (r *repo) SaveProduct(_ context.Context, product domain.Product) error {
	return r.write(func(st *state) error {
		for _, p := range st.products {
			if !p.IsDeleted && p.Name == product.Name {
				return fmt.Errorf("%w: %q", apperrors.ErrDuplicateProduct, product.Name)
			}
		}
		if product.StockQuantity < 0 {
			return fmt.Errorf("%w: negative stock", apperrors.ErrValidation)
		}
		st.products[product.ProductID] = product
		return nil
	})
}

func (r *repo) RestoreProduct(_ context.Context, product domain.Product) error {
	return r.write(func(st *state) error {
		existing, ok := st.products[product.ProductID]
		if !ok {
			return apperrors.ErrProductNotFound
		}
		product.IsDeleted = false
		product.CreatedAt = existing.CreatedAt
		product.CreatedBy = existing.CreatedBy
		st.products[product.ProductID] = product
		return nil
	})
}

func (r *repo) DecrementStock(_ context.Context, productID string, quantity int64, now time.Time) (bool, error) {
	applied := false
	err := r.write(func(st *state) error {
		p, ok := st.products[productID]
		if !ok || p.IsDeleted || quantity <= 0 || p.StockQuantity < quantity {
			return nil
		}
		p.StockQuantity -= quantity
		p.LastUpdatedAt = now
		st.products[productID] = p
		applied = true
		return nil
	})
	return applied, err
}

func (r *repo) IncrementStock(_ context.Context, productID string, quantity int64, costPrice decimal.Decimal, now time.Time) error {
	return r.write(func(st *state) error {
		p, ok := st.products[productID]
		if !ok || p.IsDeleted {
			return apperrors.ErrProductNotFound
		}
		if p.StockQuantity > math.MaxInt64-quantity {
			return fmt.Errorf("%w: stock for product %s would exceed the maximum", apperrors.ErrValidation, productID)
		}
		p.StockQuantity += quantity
		p.CostPrice = costPrice
		p.LastUpdatedAt = now
		st.products[productID] = p
		return nil
	})
}

func (r *repo) SaveSale(_ context.Context, sale domain.Sale) error {
	return r.write(func(st *state) error {
		if _, exists := st.sales[sale.SaleID]; exists {
			return fmt.Errorf("%w: sale %s", apperrors.ErrDuplicate, sale.SaleID)
		}
		st.sales[sale.SaleID] = copySale(sale)
		return nil
	})
}

func (r *repo) FindSaleByID(_ context.Context, saleID string) (*domain.Sale, error) {
	var found *domain.Sale
	err := r.read(func(st *state) error {
		s, ok := st.sales[saleID]
		if !ok || s.IsDeleted {
			return apperrors.ErrSaleNotFound
		}
		cp := copySale(s)
		found = &cp
		return nil
	})
	return found, err
}

// newestFirst orders sales by creation time then id, both descending.
func newestFirst(sales []domain.Sale) {
	sort.Slice(sales, func(i, j int) bool {
		if !sales[i].CreatedAt.Equal(sales[j].CreatedAt) {
			return sales[i].CreatedAt.After(sales[j].CreatedAt)
		}
		return sales[i].SaleID > sales[j].SaleID
	})
}

func (r *repo) liveSales(from, to *time.Time) []domain.Sale {
	var sales []domain.Sale
	_ = r.read(func(st *state) error {
		for _, s := range st.sales {
			if !s.IsDeleted && inWindow(s.CreatedAt, from, to) {
				sales = append(sales, copySale(s))
			}
		}
		return nil
	})
	newestFirst(sales)
	return sales
}

func (r *repo) ListSales(_ context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	sales := r.liveSales(nil, nil)

	if nextToken != nil && *nextToken != "" {
		afterAt, afterID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		start := len(sales)
		for i, s := range sales {
			if s.CreatedAt.Before(afterAt) || (s.CreatedAt.Equal(afterAt) && s.SaleID < afterID) {
				start = i
				break
			}
		}
		sales = sales[start:]
	}

	if limit <= 0 || len(sales) <= limit {
		return sales, nil, nil
	}
	page := sales[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(last.CreatedAt, last.SaleID)
	return page, &token, nil
}

func (r *repo) SoftDeleteSale(_ context.Context, saleID string, userID string, now time.Time) error {
	return r.write(func(st *state) error {
		s, ok := st.sales[saleID]
		if !ok || s.IsDeleted {
			return apperrors.ErrSaleNotFound
		}
		s = copySale(s)
		s.IsDeleted = true
		s.LastUpdatedAt = now
		s.LastUpdatedBy = userID
		for i := range s.Items {
			s.Items[i].IsDeleted = true
		}
		st.sales[saleID] = s
		return nil
	})
}
