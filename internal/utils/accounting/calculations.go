package accounting

import (
	"sort"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SortEntries orders entries chronologically, breaking date ties by store insertion order.
// The input slice is left untouched.
func SortEntries(entries []domain.LedgerEntry) []domain.LedgerEntry {
	sorted := make([]domain.LedgerEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Sequence < sorted[j].Sequence
	})
	return sorted
}

// CalculateRunningBalance annotates entries with the balance after each one, starting from zero.
// Balance is debit-minus-credit: positive means the account is debit-heavy.
func CalculateRunningBalance(entries []domain.LedgerEntry) []domain.LedgerEntryWithBalance {
	return CalculateRunningBalanceFrom(decimal.Zero, entries)
}

// CalculateRunningBalanceFrom is CalculateRunningBalance seeded with an opening balance.
func CalculateRunningBalanceFrom(opening decimal.Decimal, entries []domain.LedgerEntry) []domain.LedgerEntryWithBalance {
	sorted := SortEntries(entries)
	result := make([]domain.LedgerEntryWithBalance, len(sorted))
	balance := opening
	for i, e := range sorted {
		balance = balance.Add(e.Net())
		result[i] = domain.LedgerEntryWithBalance{LedgerEntry: e, Balance: balance}
	}
	return result
}

// CalculateAccountBalance returns the sum of debits minus the sum of credits.
func CalculateAccountBalance(entries []domain.LedgerEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Net())
	}
	return sum
}

// ClosingBalance returns the balance after the last annotated entry, or opening if there are none.
func ClosingBalance(opening decimal.Decimal, annotated []domain.LedgerEntryWithBalance) decimal.Decimal {
	if len(annotated) == 0 {
		return opening
	}
	return annotated[len(annotated)-1].Balance
}
