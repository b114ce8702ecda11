package services

import (
	"context"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
)

// AccountResolverSvc exposes account resolution outside of a posting.
type AccountResolverSvc interface {
	// GetOrCreateCashAccount returns the singleton cash account, creating it on first use.
	GetOrCreateCashAccount(ctx context.Context) (*domain.LedgerAccount, error)

	// ResolveAccount fetches a live account and checks its type.
	ResolveAccount(ctx context.Context, accountID string, expectedType domain.AccountType) (*domain.LedgerAccount, error)

	// FindOrCreateCustomerByName returns the customer account with that name, creating it if needed.
	FindOrCreateCustomerByName(ctx context.Context, name, email, phone string) (*domain.LedgerAccount, error)
}

// LedgerReaderSvc defines the read-only ledger views.
type LedgerReaderSvc interface {
	// ListAccounts lists live accounts of a type ordered by name, each with its balance.
	ListAccounts(ctx context.Context, accountType domain.AccountType) ([]domain.LedgerAccountWithBalance, error)

	// GetAccountLedger returns an account with its entries and running balances.
	GetAccountLedger(ctx context.Context, accountID string) (*domain.AccountLedger, error)

	// GetCashLedger returns the cash account entries inside an optional date window.
	GetCashLedger(ctx context.Context, params dto.CashLedgerParams) (*domain.CashLedger, error)
}

// LedgerWriterSvc defines the ledger mutations available to users.
type LedgerWriterSvc interface {
	// CreateAccount creates a customer or supplier account.
	CreateAccount(ctx context.Context, req dto.CreateLedgerAccountRequest, userID string) (*domain.LedgerAccount, error)

	// DeleteAccount soft deletes a customer or supplier account.
	DeleteAccount(ctx context.Context, accountID string, userID string) error

	// PostManualEntry appends one manual debit or credit.
	PostManualEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, userID string) (*domain.LedgerEntry, error)

	// RecordCustomerPayment credits the customer and debits cash in one atomic step.
	RecordCustomerPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error)

	// RecordSupplierPayment debits the supplier and credits cash in one atomic step.
	RecordSupplierPayment(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	AccountResolverSvc
	LedgerReaderSvc
	LedgerWriterSvc
}
