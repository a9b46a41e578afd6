package services

import (
	"context"
	"slices"
	"sync"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
)

// entityLocker serializes mutations per entity key within this process. Each Lock call
// acquires its keys in sorted order; callers holding locks from an earlier call must only
// take keys of a later level (reservation, then room, then folio).
type entityLocker struct {
	mu    sync.Mutex
	slots map[string]*lockSlot
}

type lockSlot struct {
	ch   chan struct{}
	refs int
}

func newEntityLocker() *entityLocker {
	return &entityLocker{slots: make(map[string]*lockSlot)}
}

func reservationKey(id string) string { return "1:reservation:" + id }
func roomKey(id string) string        { return "2:room:" + id }
func folioKey(reservationID string) string {
	return "3:folio:" + reservationID
}

// Lock blocks until every key is held or ctx is done. The returned func releases them.
func (l *entityLocker) Lock(ctx context.Context, keys ...string) (func(), error) {
	keys = slices.Clone(keys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	held := make([]string, 0, len(keys))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			l.release(held[i])
		}
	}

	for _, key := range keys {
		slot := l.acquireSlot(key)
		select {
		case slot.ch <- struct{}{}:
			held = append(held, key)
		case <-ctx.Done():
			l.dropRef(key)
			release()
			return nil, apperrors.NewDependencyError("lock "+key, ctx.Err())
		}
	}
	return release, nil
}

func (l *entityLocker) acquireSlot(key string) *lockSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot, ok := l.slots[key]
	if !ok {
		slot = &lockSlot{ch: make(chan struct{}, 1)}
		l.slots[key] = slot
	}
	slot.refs++
	return slot
}

func (l *entityLocker) release(key string) {
	l.mu.Lock()
	slot := l.slots[key]
	l.mu.Unlock()
	<-slot.ch
	l.dropRef(key)
}

func (l *entityLocker) dropRef(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	slot := l.slots[key]
	slot.refs--
	if slot.refs == 0 {
		delete(l.slots, key)
	}
}
