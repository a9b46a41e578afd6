package activity_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/hotel_frontdesk/internal/adapters/activity"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

type recordingSink struct {
	mu      sync.Mutex
	events  []domain.ActivityEvent
	release chan struct{}
}

func (r *recordingSink) Record(_ context.Context, e domain.ActivityEvent) {
	if r.release != nil {
		<-r.release
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingSink) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

func event(id string) domain.ActivityEvent {
	return domain.ActivityEvent{EventID: id, Action: domain.ActionCheckIn, EntityType: "reservation", EntityID: "res-1"}
}

func TestAsyncSink_DeliversThenCloses(t *testing.T) {
	next := &recordingSink{}
	sink := activity.NewAsyncSink(next, 8)

	for i := 0; i < 5; i++ {
		sink.Record(context.Background(), event("e"))
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sink.Close(ctx))
	assert.Equal(t, 5, next.count())

	sink.Record(context.Background(), event("late"))
	assert.Equal(t, 5, next.count(), "events after Close are dropped")
}

func TestAsyncSink_DropsWhenFull(t *testing.T) {
	next := &recordingSink{release: make(chan struct{})}
	sink := activity.NewAsyncSink(next, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// The worker takes one, the buffer holds one; the rest are dropped without blocking.
		for i := 0; i < 10; i++ {
			sink.Record(context.Background(), event("e"))
		}
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full buffer")
	}

	close(next.release)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, sink.Close(ctx))
	assert.LessOrEqual(t, next.count(), 2)
	assert.GreaterOrEqual(t, next.count(), 1)
}

func TestAsyncSink_RequestCancellationDoesNotLoseEvent(t *testing.T) {
	next := &recordingSink{}
	sink := activity.NewAsyncSink(next, 4)

	ctx, cancel := context.WithCancel(context.Background())
	sink.Record(ctx, event("e"))
	cancel()

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second)
	defer closeCancel()
	require.NoError(t, sink.Close(closeCtx))
	assert.Equal(t, 1, next.count())
}

func TestKafkaSink_PublishesKeyedEvent(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var got domain.ActivityEvent
		if err := json.Unmarshal(val, &got); err != nil {
			return err
		}
		if got.EventID != "evt-1" {
			return errors.New("unexpected event id " + got.EventID)
		}
		return nil
	})

	sink := activity.NewKafkaSinkWithProducer(producer, "frontdesk.activity")
	sink.Record(context.Background(), event("evt-1"))
	require.NoError(t, sink.Close())
}

func TestKafkaSink_FailureIsSwallowed(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	sink := activity.NewKafkaSinkWithProducer(producer, "frontdesk.activity")
	assert.NotPanics(t, func() { sink.Record(context.Background(), event("evt-2")) })
	require.NoError(t, sink.Close())
}

func TestMultiSink(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	activity.MultiSink{a, nil, b, activity.LogSink{}}.Record(context.Background(), event("e"))
	assert.Equal(t, 1, a.count())
	assert.Equal(t, 1, b.count())
}
