package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerAccount is a row of ledger_accounts.
type LedgerAccount struct {
	AccountID    string         `db:"account_id"`
	AccountType  string         `db:"account_type"`
	Name         string         `db:"name"`
	ContactName  sql.NullString `db:"contact_name"`
	ContactEmail sql.NullString `db:"contact_email"`
	ContactPhone sql.NullString `db:"contact_phone"`
	IsDeleted    bool           `db:"is_deleted"`
	AuditFields
}

// LedgerEntry is a row of ledger_entries. Seq is a BIGSERIAL that records insertion order.
type LedgerEntry struct {
	EntryID     string          `db:"entry_id"`
	AccountID   string          `db:"account_id"`
	EntryDate   time.Time       `db:"entry_date"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	RefType     sql.NullString  `db:"ref_type"`
	RefID       sql.NullString  `db:"ref_id"`
	Seq         int64           `db:"seq"`
	AuditFields
}
