package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
)

// LedgerAccountReader defines read operations for ledger accounts.
// Soft-deleted accounts are never returned.
type LedgerAccountReader interface {
	// FindAccountByID retrieves a live account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.LedgerAccount, error)

	// FindCashAccount retrieves the singleton live CASH account.
	FindCashAccount(ctx context.Context) (*domain.LedgerAccount, error)

	// FindAccountByName retrieves a live account of the given type by case-insensitive trimmed name.
	FindAccountByName(ctx context.Context, accountType domain.AccountType, name string) (*domain.LedgerAccount, error)

	// ListAccountsByType lists live accounts of a type ordered by name.
	ListAccountsByType(ctx context.Context, accountType domain.AccountType) ([]domain.LedgerAccount, error)
}

// LedgerAccountWriter defines write operations for ledger accounts.
type LedgerAccountWriter interface {
	// SaveAccount persists a new account. A uniqueness clash returns apperrors.ErrDuplicateAccount.
	SaveAccount(ctx context.Context, account domain.LedgerAccount) error

	// SaveAccountIfAbsent inserts the account unless a live account with the same
	// uniqueness key already exists. It reports whether a row was inserted.
	SaveAccountIfAbsent(ctx context.Context, account domain.LedgerAccount) (bool, error)

	// SoftDeleteAccount marks an account deleted.
	SoftDeleteAccount(ctx context.Context, accountID string, userID string, now time.Time) error
}

// LedgerAccountRepositoryFacade combines all ledger account repository interfaces.
type LedgerAccountRepositoryFacade interface {
	LedgerAccountReader
	LedgerAccountWriter
}

// LedgerEntryReader defines read operations for ledger entries.
type LedgerEntryReader interface {
	// ListEntriesByAccount returns the account's entries ordered by date then insertion order.
	// from and to are inclusive bounds and may be nil.
	ListEntriesByAccount(ctx context.Context, accountID string, from, to *time.Time) ([]domain.LedgerEntry, error)

	// ListEntriesByAccountIDs returns entries grouped by account, each group ordered like ListEntriesByAccount.
	ListEntriesByAccountIDs(ctx context.Context, accountIDs []string) (map[string][]domain.LedgerEntry, error)
}

// LedgerEntryWriter defines the append-only write operation for ledger entries.
type LedgerEntryWriter interface {
	// SaveEntries appends entries in order.
	SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error
}

// LedgerEntryRepositoryFacade combines all ledger entry repository interfaces.
type LedgerEntryRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}
