package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a ledger account.
type AccountType string

const (
	AccountTypeCash     AccountType = "CASH"
	AccountTypeCustomer AccountType = "CUSTOMER"
	AccountTypeSupplier AccountType = "SUPPLIER"
)

// CashAccountName is the name given to the singleton cash account when it is created on demand.
const CashAccountName = "Cash"

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeCash, AccountTypeCustomer, AccountTypeSupplier:
		return true
	}
	return false
}

// IsParty reports whether t is a counterparty type that users may create directly.
func (t AccountType) IsParty() bool {
	return t == AccountTypeCustomer || t == AccountTypeSupplier
}

// LedgerAccount is a named bucket that ledger entries are posted against.
type LedgerAccount struct {
	AccountID    string      `json:"accountID"`
	Type         AccountType `json:"type"`
	Name         string      `json:"name"` // stored trimmed
	ContactName  string      `json:"contactName,omitempty"`
	ContactEmail string      `json:"contactEmail,omitempty"`
	ContactPhone string      `json:"contactPhone,omitempty"`
	IsDeleted    bool        `json:"-"`
	AuditFields
}

// LedgerAccountWithBalance pairs an account with its derived balance (sum of debit minus credit).
type LedgerAccountWithBalance struct {
	LedgerAccount
	Balance decimal.Decimal `json:"balance"`
}
