package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the resource changed underneath the request.
var ErrConflict = errors.New("conflicting update")

// ErrTransient indicates that the store aborted the operation and it may be retried.
var ErrTransient = errors.New("temporarily unavailable")

// ErrInternal indicates an unexpected failure.
var ErrInternal = errors.New("internal error")

// Ledger and inventory specific errors. Each one matches its family with errors.Is.
var (
	ErrAccountNotFound   = fmt.Errorf("%w: ledger account", ErrNotFound)
	ErrProductNotFound   = fmt.Errorf("%w: product", ErrNotFound)
	ErrSaleNotFound      = fmt.Errorf("%w: sale", ErrNotFound)
	ErrDuplicateAccount  = fmt.Errorf("%w: ledger account", ErrDuplicate)
	ErrDuplicateProduct  = fmt.Errorf("%w: product", ErrDuplicate)
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrStockConflict     = fmt.Errorf("%w: stock update failed", ErrConflict)
)

// StockError carries the product that failed a stock check or a conditional decrement.
type StockError struct {
	ProductID   string
	ProductName string
	Requested   int64
	Available   int64
	Err         error // ErrInsufficientStock or ErrStockConflict
}

func (e *StockError) Error() string {
	if errors.Is(e.Err, ErrStockConflict) {
		return fmt.Sprintf("Stock update failed for %s", e.ProductName)
	}
	return fmt.Sprintf("Insufficient stock for %s", e.ProductName)
}

func (e *StockError) Unwrap() error { return e.Err }

// NewInsufficientStockError reports a failed pre-check.
func NewInsufficientStockError(productID, productName string, requested, available int64) *StockError {
	return &StockError{
		ProductID:   productID,
		ProductName: productName,
		Requested:   requested,
		Available:   available,
		Err:         ErrInsufficientStock,
	}
}

// NewStockConflictError reports a conditional decrement that matched no row.
func NewStockConflictError(productID, productName string, requested int64) *StockError {
	return &StockError{
		ProductID:   productID,
		ProductName: productName,
		Requested:   requested,
		Err:         ErrStockConflict,
	}
}

// AppError wraps an underlying failure with an HTTP-ish status code and a safe message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
