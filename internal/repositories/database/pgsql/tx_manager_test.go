package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassifyTxError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"serialization failure", &pgconn.PgError{Code: pgSerializationFailure}, true},
		{"deadlock", fmt.Errorf("commit: %w", &pgconn.PgError{Code: pgDeadlockDetected}), true},
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), true},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, false},
		{"domain error", apperrors.ErrValidation, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTxError(tt.err)
			assert.Equal(t, tt.transient, errors.Is(got, apperrors.ErrTransient))
		})
	}

	assert.NoError(t, classifyTxError(nil))
	already := fmt.Errorf("%w: x", apperrors.ErrTransient)
	assert.Same(t, already, classifyTxError(already))
}

func TestPgErrorCodeUnwraps(t *testing.T) {
	err := apperrors.NewAppError(500, "failed to commit transaction", &pgconn.PgError{Code: pgSerializationFailure})
	assert.Equal(t, pgSerializationFailure, pgErrorCode(err))
	assert.Equal(t, "", pgErrorCode(errors.New("plain")))
}
