package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/SscSPs/builder_crm/internal/apperrors"
	"github.com/SscSPs/builder_crm/internal/core/domain"
	"github.com/SscSPs/builder_crm/internal/middleware"
)

// DefaultStoreTimeout bounds every record-store interaction of a service call.
const DefaultStoreTimeout = 5 * time.Second

// BaseService provides common functionality for all services
type BaseService struct {
	StoreTimeout time.Duration
	Location     *time.Location
	Clock        func() time.Time
}

// ServiceOption is a functional option for configuring a service
type ServiceOption func(*BaseService)

// WithStoreTimeout overrides DefaultStoreTimeout.
func WithStoreTimeout(d time.Duration) ServiceOption {
	return func(s *BaseService) {
		if d > 0 {
			s.StoreTimeout = d
		}
	}
}

// WithLocation sets the time zone calendar dates are interpreted in.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *BaseService) {
		if loc != nil {
			s.Location = loc
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *BaseService) {
		if clock != nil {
			s.Clock = clock
		}
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{
		StoreTimeout: DefaultStoreTimeout,
		Location:     time.Local,
		Clock:        time.Now,
	}
	for _, option := range options {
		option(&base)
	}
	return base
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

// now returns the current time truncated to microseconds, the precision Postgres stores.
func (s *BaseService) now() time.Time {
	return s.Clock().UTC().Truncate(time.Microsecond)
}

// begin validates the caller identity and bounds the call by StoreTimeout.
func (s *BaseService) begin(ctx context.Context, identity domain.Identity) (context.Context, context.CancelFunc, error) {
	if err := identity.Validate(); err != nil {
		s.LogDebug(ctx, "Rejected call without tenant identity")
		return ctx, func() {}, err
	}
	ctx, cancel := context.WithTimeout(ctx, s.StoreTimeout)
	return ctx, cancel, nil
}

// storeError turns a record-store failure into the error returned to callers.
//
// Domain errors (not found, conflict, validation) pass through untouched and
// are only logged at debug level. Everything else, including deadline
// expiry, is logged and surfaced as an internal error.
func (s *BaseService) storeError(ctx context.Context, err error, msg string, keyvals ...any) error {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && !errors.Is(err, apperrors.ErrInternal) {
		s.LogDebug(ctx, msg, append(keyvals, slog.String("reason", err.Error()))...)
		return err
	}
	s.LogError(ctx, err, msg, keyvals...)
	if errors.Is(err, apperrors.ErrInternal) {
		return err
	}
	return apperrors.NewInternalError(msg, err)
}
