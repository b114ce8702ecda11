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
	"github.com/SscSPs/pos_inventory_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
)

const saleColumns = `sale_id, user_id, payment_type, total_amount, customer_name, customer_email, customer_phone,
	customer_account_id, is_deleted, created_at, created_by, last_updated_at, last_updated_by`

const saleItemColumns = `sale_item_id, sale_id, product_id, product_name, quantity, price_at_sale, is_deleted`

type PgxSaleRepository struct {
	db dbtx
}

// newPgxSaleRepository creates a new repository for sales.
func newPgxSaleRepository(db dbtx) *PgxSaleRepository {
	return &PgxSaleRepository{db: db}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

// SaveSale inserts the sale header and its items in one batch.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale domain.Sale) error {
	m, items := mapping.ToModelSale(sale)

	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.SaleID, m.UserID, m.PaymentType, m.TotalAmount, m.CustomerName, m.CustomerEmail, m.CustomerPhone,
		m.CustomerAccountID, m.IsDeleted, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	for _, it := range items {
		batch.Queue(`
			INSERT INTO sale_items (`+saleItemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7);`,
			it.SaleItemID, it.SaleID, it.ProductID, it.ProductName, it.Quantity, it.PriceAtSale, it.IsDeleted,
		)
	}

	br := r.db.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to save sale %s: %w", m.SaleID, err)
	}
	return nil
}

// attachItems loads the live items of the given sales, keeping each sale's item order.
func attachItems(ctx context.Context, db dbtx, sales []models.Sale) ([]domain.Sale, error) {
	if len(sales) == 0 {
		return []domain.Sale{}, nil
	}
	ids := make([]string, len(sales))
	for i, s := range sales {
		ids[i] = s.SaleID
	}

	rows, err := db.Query(ctx, `
		SELECT `+saleItemColumns+`
		FROM sale_items
		WHERE sale_id = ANY($1) AND NOT is_deleted
		ORDER BY sale_id, item_seq;`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.SaleItem])
	if err != nil {
		return nil, fmt.Errorf("failed to scan sale items: %w", err)
	}
	bySale := make(map[string][]models.SaleItem, len(sales))
	for _, it := range items {
		bySale[it.SaleID] = append(bySale[it.SaleID], it)
	}

	result := make([]domain.Sale, len(sales))
	for i, s := range sales {
		result[i] = mapping.ToDomainSale(s, bySale[s.SaleID])
	}
	return result, nil
}

func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	rows, err := r.db.Query(ctx, `SELECT `+saleColumns+` FROM sales WHERE sale_id = $1 AND NOT is_deleted;`, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale %s: %w", saleID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSaleNotFound
		}
		return nil, fmt.Errorf("failed to scan sale %s: %w", saleID, err)
	}
	sales, err := attachItems(ctx, r.db, []models.Sale{m})
	if err != nil {
		return nil, err
	}
	return &sales[0], nil
}

// ListSales retrieves a page of live sales newest first using token-based pagination.
// The token is the (created_at, sale_id) of the last row of the previous page.
func (r *PgxSaleRepository) ListSales(ctx context.Context, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	var afterAt *time.Time
	var afterID *string
	if nextToken != nil && *nextToken != "" {
		at, id, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, decodeErr)
		}
		afterAt, afterID = &at, &id
	}

	// Fetch one extra row to learn whether another page exists.
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE NOT is_deleted
			AND ($1::timestamptz IS NULL OR (created_at, sale_id) < ($1, $2::text))
		ORDER BY created_at DESC, sale_id DESC
		LIMIT $3;`
	rows, err := r.db.Query(ctx, query, afterAt, afterID, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query sales: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Sale])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan sales: %w", err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.SaleID)
		nextTokenVal = &token
	}

	sales, err := attachItems(ctx, r.db, ms)
	if err != nil {
		return nil, nil, err
	}
	return sales, nextTokenVal, nil
}

// SoftDeleteSale marks a live sale and its items deleted.
func (r *PgxSaleRepository) SoftDeleteSale(ctx context.Context, saleID string, userID string, now time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE sales SET is_deleted = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE sale_id = $1 AND NOT is_deleted;`, saleID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to delete sale %s: %w", saleID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSaleNotFound
	}
	if _, err := r.db.Exec(ctx, `UPDATE sale_items SET is_deleted = TRUE WHERE sale_id = $1;`, saleID); err != nil {
		return fmt.Errorf("failed to delete items of sale %s: %w", saleID, err)
	}
	return nil
}
