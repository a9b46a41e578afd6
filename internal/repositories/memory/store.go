package memory

import (
	"context"
	"sync"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
)

// Store is the process-local system of record used with STORAGE=memory and in tests.
// All repositories built from one Store share its data and lock.
type Store struct {
	mu sync.RWMutex

	rooms        map[string]domain.Room
	reservations map[string]domain.Reservation
	folios       map[string]*domain.Folio // keyed by reservation id
	tasks        []domain.HousekeepingTask

	rateTables       []domain.RateTable
	seasons          []domain.Season
	weekdayModifiers []domain.WeekdayModifier
	specialDates     []domain.SpecialDate
	taxRates         []domain.TaxRate
	lastAuditDate    time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		rooms:        make(map[string]domain.Room),
		reservations: make(map[string]domain.Reservation),
		folios:       make(map[string]*domain.Folio),
	}
}

type txCtxKey struct{}

// undoLog collects compensations for writes made inside WithinTx.
type undoLog struct {
	undo []func()
}

// txManager implements portsrepo.TransactionManager with an undo log. Writes are applied
// immediately; on failure they are reverted in reverse order.
type txManager struct {
	store *Store
}

var _ portsrepo.TransactionManager = (*txManager)(nil)

func (m *txManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txCtxKey{}).(*undoLog); ok {
		return fn(ctx)
	}
	log := &undoLog{}
	if err := fn(context.WithValue(ctx, txCtxKey{}, log)); err != nil {
		m.store.mu.Lock()
		for i := len(log.undo) - 1; i >= 0; i-- {
			log.undo[i]()
		}
		m.store.mu.Unlock()
		return err
	}
	return nil
}

// remember registers a compensation; callers hold s.mu.
func remember(ctx context.Context, undo func()) {
	if log, ok := ctx.Value(txCtxKey{}).(*undoLog); ok {
		log.undo = append(log.undo, undo)
	}
}
