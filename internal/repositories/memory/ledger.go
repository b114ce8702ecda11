package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/SscSPs/pos_inventory_app/internal/utils/accounting"
	"github.com/SscSPs/pos_inventory_app/internal/utils/normalize"
)

func (r *repo) FindAccountByID(_ context.Context, accountID string) (*domain.LedgerAccount, error) {
	var found *domain.LedgerAccount
	err := r.read(func(st *state) error {
		acc, ok := st.accounts[accountID]
		if !ok || acc.IsDeleted {
			return apperrors.ErrAccountNotFound
		}
		found = &acc
		return nil
	})
	return found, err
}

func (r *repo) FindCashAccount(_ context.Context) (*domain.LedgerAccount, error) {
	var found *domain.LedgerAccount
	err := r.read(func(st *state) error {
		for _, acc := range st.accounts {
			if acc.Type == domain.AccountTypeCash && !acc.IsDeleted {
				a := acc
				found = &a
				return nil
			}
		}
		return apperrors.ErrAccountNotFound
	})
	return found, err
}

func (r *repo) FindAccountByName(_ context.Context, accountType domain.AccountType, name string) (*domain.LedgerAccount, error) {
	key := normalize.AccountNameKey(name)
	var found *domain.LedgerAccount
	err := r.read(func(st *state) error {
		for _, acc := range st.accounts {
			if acc.Type == accountType && !acc.IsDeleted && normalize.AccountNameKey(acc.Name) == key {
				a := acc
				found = &a
				return nil
			}
		}
		return apperrors.ErrAccountNotFound
	})
	return found, err
}

func (r *repo) ListAccountsByType(_ context.Context, accountType domain.AccountType) ([]domain.LedgerAccount, error) {
	var accounts []domain.LedgerAccount
	_ = r.read(func(st *state) error {
		for _, acc := range st.accounts {
			if acc.Type == accountType && !acc.IsDeleted {
				accounts = append(accounts, acc)
			}
		}
		return nil
	})
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Name != accounts[j].Name {
			return accounts[i].Name < accounts[j].Name
		}
		return accounts[i].AccountID < accounts[j].AccountID
	})
	return accounts, nil
}

// clashes mirrors the partial unique indexes of the SQL schema.
func clashes(st *state, candidate domain.LedgerAccount) bool {
	key := normalize.AccountNameKey(candidate.Name)
	for _, acc := range st.accounts {
		if acc.IsDeleted || acc.Type != candidate.Type {
			continue
		}
		if candidate.Type == domain.AccountTypeCash || normalize.AccountNameKey(acc.Name) == key {
			return true
		}
	}
	return false
}

func (r *repo) SaveAccount(_ context.Context, account domain.LedgerAccount) error {
	return r.write(func(st *state) error {
		if _, exists := st.accounts[account.AccountID]; exists || clashes(st, account) {
			return fmt.Errorf("%w: %s account %q already exists", apperrors.ErrDuplicateAccount, account.Type, account.Name)
		}
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (r *repo) SaveAccountIfAbsent(_ context.Context, account domain.LedgerAccount) (bool, error) {
	inserted := false
	err := r.write(func(st *state) error {
		if _, exists := st.accounts[account.AccountID]; exists || clashes(st, account) {
			return nil
		}
		st.accounts[account.AccountID] = account
		inserted = true
		return nil
	})
	return inserted, err
}

func (r *repo) SoftDeleteAccount(_ context.Context, accountID string, userID string, now time.Time) error {
	return r.write(func(st *state) error {
		acc, ok := st.accounts[accountID]
		if !ok || acc.IsDeleted {
			return apperrors.ErrAccountNotFound
		}
		acc.IsDeleted = true
		acc.LastUpdatedAt = now
		acc.LastUpdatedBy = userID
		st.accounts[accountID] = acc
		return nil
	})
}

func inWindow(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func (r *repo) ListEntriesByAccount(_ context.Context, accountID string, from, to *time.Time) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	_ = r.read(func(st *state) error {
		for _, e := range st.entries {
			if e.AccountID == accountID && inWindow(e.Date, from, to) {
				entries = append(entries, e)
			}
		}
		return nil
	})
	return accounting.SortEntries(entries), nil
}

func (r *repo) ListEntriesByAccountIDs(_ context.Context, accountIDs []string) (map[string][]domain.LedgerEntry, error) {
	wanted := make(map[string]bool, len(accountIDs))
	for _, id := range accountIDs {
		wanted[id] = true
	}
	grouped := make(map[string][]domain.LedgerEntry, len(accountIDs))
	_ = r.read(func(st *state) error {
		for _, e := range st.entries {
			if wanted[e.AccountID] {
				grouped[e.AccountID] = append(grouped[e.AccountID], e)
			}
		}
		return nil
	})
	for id, entries := range grouped {
		grouped[id] = accounting.SortEntries(entries)
	}
	return grouped, nil
}

func (r *repo) SaveEntries(_ context.Context, entries []domain.LedgerEntry) error {
	return r.write(func(st *state) error {
		// Check everything first so a bad entry leaves none of the batch behind.
		for _, e := range entries {
			if _, ok := st.accounts[e.AccountID]; !ok {
				return fmt.Errorf("%w: %s", apperrors.ErrAccountNotFound, e.AccountID)
			}
			if e.Debit.IsNegative() || e.Credit.IsNegative() {
				return fmt.Errorf("%w: negative amount on entry %s", apperrors.ErrValidation, e.EntryID)
			}
		}
		for _, e := range entries {
			st.seq++
			e.Sequence = st.seq
			st.entries = append(st.entries, e)
		}
		return nil
	})
}
