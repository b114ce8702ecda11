package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_inventory_app/internal/apperrors"
	portsrepo "github.com/SscSPs/pos_inventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_inventory_app/internal/middleware"
)

// DefaultTxTimeout bounds a single atomic scope when no option overrides it.
const DefaultTxTimeout = 5 * time.Second

// BaseService provides common functionality for all services
type BaseService struct {
	TxTimeout time.Duration
	Clock     func() time.Time
}

// ServiceOption is a functional option shared by all services.
type ServiceOption func(*BaseService)

// WithTxTimeout sets the deadline applied to each atomic scope.
func WithTxTimeout(d time.Duration) ServiceOption {
	return func(s *BaseService) {
		if d > 0 {
			s.TxTimeout = d
		}
	}
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		if clock != nil {
			s.Clock = clock
		}
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{TxTimeout: DefaultTxTimeout, Clock: time.Now}
	for _, option := range options {
		option(&base)
	}
	return base
}

// Now returns the current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}

// WithinTx runs fn in one atomic scope bounded by TxTimeout.
// A scope that runs out of time is reported as apperrors.ErrTransient.
func (s *BaseService) WithinTx(ctx context.Context, txm portsrepo.TransactionManager, fn portsrepo.TxFunc) error {
	timeout := s.TxTimeout
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := txm.WithinTx(ctx, fn)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, apperrors.ErrTransient) {
		return fmt.Errorf("%w: %v", apperrors.ErrTransient, err)
	}
	return err
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// logFailure logs expected client errors at warn level and everything else at error level.
func (s *BaseService) logFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	if isClientError(err) {
		args := make([]any, 0, len(keyvals)+1)
		args = append(args, slog.String("error", err.Error()))
		args = append(args, keyvals...)
		s.GetLogger(ctx).Warn(msg, args...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrConflict) ||
		errors.Is(err, apperrors.ErrInsufficientStock)
}
