package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Product is a row of products.
type Product struct {
	ProductID     string          `db:"product_id"`
	Name          string          `db:"name"`
	Price         decimal.Decimal `db:"price"`
	CostPrice     decimal.Decimal `db:"cost_price"`
	StockQuantity int64           `db:"stock_quantity"`
	Unit          sql.NullString  `db:"unit"`
	Barcode       sql.NullString  `db:"barcode"`
	CategoryID    sql.NullString  `db:"category_id"`
	IsDeleted     bool            `db:"is_deleted"`
	AuditFields
}

// Sale is a row of sales.
type Sale struct {
	SaleID            string          `db:"sale_id"`
	UserID            string          `db:"user_id"`
	PaymentType       string          `db:"payment_type"`
	TotalAmount       decimal.Decimal `db:"total_amount"`
	CustomerName      sql.NullString  `db:"customer_name"`
	CustomerEmail     sql.NullString  `db:"customer_email"`
	CustomerPhone     sql.NullString  `db:"customer_phone"`
	CustomerAccountID sql.NullString  `db:"customer_account_id"`
	IsDeleted         bool            `db:"is_deleted"`
	AuditFields
}

// SaleItem is a row of sale_items. ProductName is the name at the time of sale.
type SaleItem struct {
	SaleItemID  string          `db:"sale_item_id"`
	SaleID      string          `db:"sale_id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Quantity    int64           `db:"quantity"`
	PriceAtSale decimal.Decimal `db:"price_at_sale"`
	IsDeleted   bool            `db:"is_deleted"`
}
