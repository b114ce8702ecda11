// Package normalize holds the canonical forms used for name uniqueness.
package normalize

import "strings"

// AccountName trims surrounding whitespace. Account names keep their case for display;
// uniqueness is checked case-insensitively by the store.
func AccountName(name string) string {
	return strings.TrimSpace(name)
}

// AccountNameKey is the comparison key for account name uniqueness.
func AccountNameKey(name string) string {
	return strings.ToLower(AccountName(name))
}

// ProductName lowercases, trims and collapses internal whitespace runs to a single space.
func ProductName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}
