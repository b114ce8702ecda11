package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RefType names the business event that produced a ledger entry.
type RefType string

const (
	RefTypeSale     RefType = "SALE"
	RefTypePurchase RefType = "PURCHASE"
	RefTypePayment  RefType = "PAYMENT"
	RefTypeManual   RefType = "MANUAL"
)

// IsValid reports whether r is a known reference type. The empty value is allowed.
func (r RefType) IsValid() bool {
	switch r {
	case "", RefTypeSale, RefTypePurchase, RefTypePayment, RefTypeManual:
		return true
	}
	return false
}

// LedgerEntry is one append-only debit or credit line against a single account.
// Exactly one of Debit and Credit is positive; the other is zero.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`
	AccountID   string          `json:"accountID"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	RefType     RefType         `json:"refType,omitempty"`
	RefID       string          `json:"refID,omitempty"` // weak reference, not enforced
	Sequence    int64           `json:"-"`               // insertion order, assigned by the store
	AuditFields
}

// Net returns the entry's signed contribution to its account balance.
func (e LedgerEntry) Net() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// LedgerEntryWithBalance is an entry annotated with the account balance after it.
type LedgerEntryWithBalance struct {
	LedgerEntry
	Balance decimal.Decimal `json:"balance"`
}

// AccountLedger is the chronological view of a single account.
type AccountLedger struct {
	Account LedgerAccount            `json:"account"`
	Entries []LedgerEntryWithBalance `json:"entries"`
	Balance decimal.Decimal          `json:"balance"`
}

// CashLedger is the chronological view of the cash account inside an optional window.
// Account is nil when no cash account has been created yet.
type CashLedger struct {
	Account        *LedgerAccount           `json:"account,omitempty"`
	Entries        []LedgerEntryWithBalance `json:"entries"`
	OpeningBalance decimal.Decimal          `json:"openingBalance"`
	ClosingBalance decimal.Decimal          `json:"closingBalance"`
}

// PaymentResult is returned by customer and supplier payment recording.
type PaymentResult struct {
	Account LedgerAccount   `json:"account"`
	Amount  decimal.Decimal `json:"amount"`
}
