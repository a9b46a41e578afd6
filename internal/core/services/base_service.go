package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/core/ports"
	"github.com/SscSPs/hotel_frontdesk/internal/middleware"
)

const defaultOperationTimeout = 3 * time.Second

// BaseService provides common functionality for all services
type BaseService struct {
	Activity         ports.ActivitySink
	OperationTimeout time.Duration
	Clock            func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the current instant in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock().UTC()
	}
	return time.Now().UTC()
}

// withTimeout bounds one front-desk operation.
func (s *BaseService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.OperationTimeout
	if timeout <= 0 {
		timeout = defaultOperationTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

// pendingEvents collects activity produced inside a unit of work; it is only
// published once the work has committed.
type pendingEvents []domain.ActivityEvent

func (p *pendingEvents) add(actor string, action domain.ActivityAction, entityType, entityID string, details map[string]any) {
	*p = append(*p, domain.ActivityEvent{
		EventID:    uuid.NewString(),
		Actor:      actor,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
	})
}

// publish hands events to the activity sink. The sink never blocks or fails the caller.
func (s *BaseService) publish(ctx context.Context, events pendingEvents) {
	if s.Activity == nil {
		return
	}
	now := s.Now()
	for _, ev := range events {
		ev.OccurredAt = now
		s.Activity.Record(ctx, ev)
	}
}

// record publishes a single event.
func (s *BaseService) record(ctx context.Context, actor string, action domain.ActivityAction, entityType, entityID string, details map[string]any) {
	var events pendingEvents
	events.add(actor, action, entityType, entityID, details)
	s.publish(ctx, events)
}

const (
	entityReservation = "reservation"
	entityFolio       = "folio"
)
