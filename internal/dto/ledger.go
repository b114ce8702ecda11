package dto

import (
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerAccountRequest defines the data needed to create a customer or supplier account.
type CreateLedgerAccountRequest struct {
	Type         domain.AccountType `json:"type" binding:"required,oneof=CUSTOMER SUPPLIER"`
	Name         string             `json:"name" binding:"required"`
	ContactName  string             `json:"contactName"`
	ContactEmail string             `json:"contactEmail" binding:"omitempty,email"`
	ContactPhone string             `json:"contactPhone"`
}

// CreateLedgerEntryRequest defines a manual single-sided posting.
// Exactly one of Debit and Credit must be supplied.
type CreateLedgerEntryRequest struct {
	AccountID   string           `json:"accountID" binding:"required"`
	Date        *time.Time       `json:"date"` // defaults to now
	Description string           `json:"description" binding:"required"`
	Debit       *decimal.Decimal `json:"debit" binding:"omitempty,dgte0,dscale2"`
	Credit      *decimal.Decimal `json:"credit" binding:"omitempty,dgte0,dscale2"`
	RefType     domain.RefType   `json:"refType" binding:"omitempty,oneof=SALE PURCHASE PAYMENT MANUAL"`
	RefID       string           `json:"refID"`
}

// RecordPaymentRequest settles part or all of a customer or supplier balance in cash.
type RecordPaymentRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"dgt0,dscale2"`
	Description string          `json:"description"`
	Date        *time.Time      `json:"date"`
}

// CashLedgerParams are the optional YYYY-MM-DD bounds of the cash ledger view.
type CashLedgerParams struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// LedgerAccountResponse defines the data returned for a ledger account.
type LedgerAccountResponse struct {
	AccountID    string             `json:"accountID"`
	Type         domain.AccountType `json:"type"`
	Name         string             `json:"name"`
	ContactName  string             `json:"contactName,omitempty"`
	ContactEmail string             `json:"contactEmail,omitempty"`
	ContactPhone string             `json:"contactPhone,omitempty"`
	Balance      *decimal.Decimal   `json:"balance,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID     string           `json:"entryID"`
	AccountID   string           `json:"accountID"`
	Date        time.Time        `json:"date"`
	Description string           `json:"description"`
	Debit       decimal.Decimal  `json:"debit"`
	Credit      decimal.Decimal  `json:"credit"`
	RefType     domain.RefType   `json:"refType,omitempty"`
	RefID       string           `json:"refID,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
}

// AccountLedgerResponse is an account with its chronological entries.
type AccountLedgerResponse struct {
	Account LedgerAccountResponse `json:"account"`
	Entries []LedgerEntryResponse `json:"entries"`
	Balance decimal.Decimal       `json:"balance"`
}

// CashLedgerResponse is the cash account view inside an optional date window.
type CashLedgerResponse struct {
	Account        *LedgerAccountResponse `json:"account,omitempty"`
	Entries        []LedgerEntryResponse  `json:"entries"`
	OpeningBalance decimal.Decimal        `json:"openingBalance"`
	ClosingBalance decimal.Decimal        `json:"closingBalance"`
}

// PaymentResponse is returned after recording a payment.
type PaymentResponse struct {
	Account LedgerAccountResponse `json:"account"`
	Amount  decimal.Decimal       `json:"amount"`
}

// ToLedgerAccountResponse converts a domain.LedgerAccount to LedgerAccountResponse DTO
func ToLedgerAccountResponse(acc *domain.LedgerAccount) LedgerAccountResponse {
	return LedgerAccountResponse{
		AccountID:    acc.AccountID,
		Type:         acc.Type,
		Name:         acc.Name,
		ContactName:  acc.ContactName,
		ContactEmail: acc.ContactEmail,
		ContactPhone: acc.ContactPhone,
		CreatedAt:    acc.CreatedAt,
	}
}

// ToListLedgerAccountResponse converts accounts with balances to response DTOs.
func ToListLedgerAccountResponse(accounts []domain.LedgerAccountWithBalance) []LedgerAccountResponse {
	res := make([]LedgerAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToLedgerAccountResponse(&accounts[i].LedgerAccount)
		balance := accounts[i].Balance
		res[i].Balance = &balance
	}
	return res
}

// ToLedgerEntryResponse converts a domain.LedgerEntry to LedgerEntryResponse DTO
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:     e.EntryID,
		AccountID:   e.AccountID,
		Date:        e.Date,
		Description: e.Description,
		Debit:       e.Debit,
		Credit:      e.Credit,
		RefType:     e.RefType,
		RefID:       e.RefID,
	}
}

func toEntriesWithBalance(entries []domain.LedgerEntryWithBalance) []LedgerEntryResponse {
	res := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToLedgerEntryResponse(&entries[i].LedgerEntry)
		balance := entries[i].Balance
		res[i].Balance = &balance
	}
	return res
}

// ToAccountLedgerResponse converts a domain.AccountLedger to its response DTO.
func ToAccountLedgerResponse(l *domain.AccountLedger) AccountLedgerResponse {
	return AccountLedgerResponse{
		Account: ToLedgerAccountResponse(&l.Account),
		Entries: toEntriesWithBalance(l.Entries),
		Balance: l.Balance,
	}
}

// ToCashLedgerResponse converts a domain.CashLedger to its response DTO.
func ToCashLedgerResponse(l *domain.CashLedger) CashLedgerResponse {
	res := CashLedgerResponse{
		Entries:        toEntriesWithBalance(l.Entries),
		OpeningBalance: l.OpeningBalance,
		ClosingBalance: l.ClosingBalance,
	}
	if l.Account != nil {
		acc := ToLedgerAccountResponse(l.Account)
		res.Account = &acc
	}
	return res
}

// ToPaymentResponse converts a domain.PaymentResult to PaymentResponse DTO.
func ToPaymentResponse(p *domain.PaymentResult) PaymentResponse {
	return PaymentResponse{
		Account: ToLedgerAccountResponse(&p.Account),
		Amount:  p.Amount,
	}
}
