package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_inventory_app/internal/models"
	"github.com/SscSPs/pos_inventory_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const productColumns = `product_id, name, price, cost_price, stock_quantity, unit, barcode, category_id, is_deleted,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxProductRepository struct {
	db dbtx
}

// newPgxProductRepository creates a new repository for products.
func newPgxProductRepository(db dbtx) *PgxProductRepository {
	return &PgxProductRepository{db: db}
}

var _ portsrepo.ProductRepositoryFacade = (*PgxProductRepository)(nil)

// FindProductsByIDs returns the live products among productIDs keyed by ID.
// Inside a transaction the rows stay locked until it ends.
func (r *PgxProductRepository) FindProductsByIDs(ctx context.Context, productIDs []string) (map[string]domain.Product, error) {
	found := make(map[string]domain.Product, len(productIDs))
	if len(productIDs) == 0 {
		return found, nil
	}
	query := `SELECT ` + productColumns + ` FROM products
		WHERE product_id = ANY($1) AND NOT is_deleted
		ORDER BY product_id
		FOR UPDATE;`
	rows, err := r.db.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Product])
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	for _, m := range ms {
		found[m.ProductID] = mapping.ToDomainProduct(m)
	}
	return found, nil
}

// FindProductByName looks a product up by its normalised name, preferring a live row.
func (r *PgxProductRepository) FindProductByName(ctx context.Context, name string, includeDeleted bool) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE name = $1 AND ($2::boolean OR NOT is_deleted)
		ORDER BY is_deleted ASC, last_updated_at DESC
		LIMIT 1;`
	rows, err := r.db.Query(ctx, query, name, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("failed to query product %q: %w", name, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Product])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to scan product %q: %w", name, err)
	}
	p := mapping.ToDomainProduct(m)
	return &p, nil
}

// ListProducts lists live products ordered by name.
func (r *PgxProductRepository) ListProducts(ctx context.Context, limit int, offset int) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE NOT is_deleted
		ORDER BY name ASC
		LIMIT $1 OFFSET $2;`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Product])
	if err != nil {
		return nil, fmt.Errorf("failed to scan products: %w", err)
	}
	products := make([]domain.Product, len(ms))
	for i, m := range ms {
		products[i] = mapping.ToDomainProduct(m)
	}
	return products, nil
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.db.Exec(ctx, query,
		m.ProductID, m.Name, m.Price, m.CostPrice, m.StockQuantity, m.Unit, m.Barcode, m.CategoryID, m.IsDeleted,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %q", apperrors.ErrDuplicateProduct, m.Name)
		case pgCheckViolation:
			return fmt.Errorf("%w: product %q violates a constraint", apperrors.ErrValidation, m.Name)
		case pgNumericOutOfRange:
			return fmt.Errorf("%w: product %q has a value out of range", apperrors.ErrValidation, m.Name)
		}
		return fmt.Errorf("failed to save product %s: %w", m.ProductID, err)
	}
	return nil
}

// RestoreProduct revives a soft-deleted product and replaces its attributes.
// The original creation audit fields are kept.
func (r *PgxProductRepository) RestoreProduct(ctx context.Context, product domain.Product) error {
	m := mapping.ToModelProduct(product)
	query := `
		UPDATE products
		SET name = $2, price = $3, cost_price = $4, stock_quantity = $5, unit = $6, barcode = $7,
			category_id = $8, is_deleted = FALSE, last_updated_at = $9, last_updated_by = $10
		WHERE product_id = $1;
	`
	tag, err := r.db.Exec(ctx, query,
		m.ProductID, m.Name, m.Price, m.CostPrice, m.StockQuantity, m.Unit, m.Barcode,
		m.CategoryID, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return fmt.Errorf("%w: %q", apperrors.ErrDuplicateProduct, m.Name)
		}
		return fmt.Errorf("failed to restore product %s: %w", m.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}

// DecrementStock applies the decrement only while enough stock remains; the
// condition is evaluated by the UPDATE itself.
func (r *PgxProductRepository) DecrementStock(ctx context.Context, productID string, quantity int64, now time.Time) (bool, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $2, last_updated_at = $3
		WHERE product_id = $1 AND $2 > 0 AND stock_quantity >= $2 AND NOT is_deleted;
	`
	tag, err := r.db.Exec(ctx, query, productID, quantity, now)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock for %s: %w", productID, err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *PgxProductRepository) IncrementStock(ctx context.Context, productID string, quantity int64, costPrice decimal.Decimal, now time.Time) error {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $2, cost_price = $3, last_updated_at = $4
		WHERE product_id = $1 AND NOT is_deleted;
	`
	tag, err := r.db.Exec(ctx, query, productID, quantity, costPrice, now)
	if err != nil {
		if pgErrorCode(err) == pgNumericOutOfRange {
			return fmt.Errorf("%w: stock for product %s would exceed the maximum", apperrors.ErrValidation, productID)
		}
		return fmt.Errorf("failed to increment stock for %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProductNotFound
	}
	return nil
}
