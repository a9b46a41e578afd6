// Package activity delivers audit events produced by the front-desk services.
package activity

import (
	"context"
	"log/slog"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/core/ports"
	"github.com/SscSPs/hotel_frontdesk/internal/middleware"
	"github.com/SscSPs/hotel_frontdesk/internal/observability/metrics"
)

// LogSink writes each event as a structured log line on the request logger.
type LogSink struct{}

var _ ports.ActivitySink = LogSink{}

func (LogSink) Record(ctx context.Context, event domain.ActivityEvent) {
	middleware.GetLoggerFromCtx(ctx).Info("Activity",
		slog.String("event_id", event.EventID),
		slog.String("actor", event.Actor),
		slog.String("action", string(event.Action)),
		slog.String("entity_type", event.EntityType),
		slog.String("entity_id", event.EntityID),
		slog.Any("details", event.Details),
		slog.Time("occurred_at", event.OccurredAt))
	metrics.IncActivityEvent("log", metrics.ActivityPublished)
}

// MultiSink fans an event out to several sinks in order.
type MultiSink []ports.ActivitySink

var _ ports.ActivitySink = MultiSink(nil)

func (m MultiSink) Record(ctx context.Context, event domain.ActivityEvent) {
	for _, s := range m {
		if s != nil {
			s.Record(ctx, event)
		}
	}
}
