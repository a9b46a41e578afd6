package activity

import (
	"context"
	"sync"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/core/ports"
	"github.com/SscSPs/hotel_frontdesk/internal/observability/metrics"
)

type queued struct {
	ctx   context.Context
	event domain.ActivityEvent
}

// AsyncSink hands events to a background worker through a bounded buffer. When the
// buffer is full the event is dropped and counted; Record never blocks.
type AsyncSink struct {
	next  ports.ActivitySink
	queue chan queued

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

var _ ports.ActivitySink = (*AsyncSink)(nil)

// NewAsyncSink starts the worker. buffer < 1 is treated as 1.
func NewAsyncSink(next ports.ActivitySink, buffer int) *AsyncSink {
	if buffer < 1 {
		buffer = 1
	}
	a := &AsyncSink{
		next:  next,
		queue: make(chan queued, buffer),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *AsyncSink) run() {
	defer close(a.done)
	for q := range a.queue {
		a.next.Record(q.ctx, q.event)
	}
}

func (a *AsyncSink) Record(ctx context.Context, event domain.ActivityEvent) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		metrics.IncActivityEvent("async", metrics.ActivityDropped)
		return
	}
	// The request context ends with the response; keep its values (logger) only.
	select {
	case a.queue <- queued{ctx: context.WithoutCancel(ctx), event: event}:
	default:
		metrics.IncActivityEvent("async", metrics.ActivityDropped)
	}
}

// Close stops accepting events and waits for queued ones to be delivered or ctx to end.
func (a *AsyncSink) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
