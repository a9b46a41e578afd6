package services

import (
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/ports"
	portsrepo "github.com/SscSPs/hotel_frontdesk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/platform/config"
)

type containerOptions struct {
	activity     ports.ActivitySink
	housekeeping ports.HousekeepingSink
	clock        func() time.Time
}

// ContainerOption customizes NewServiceContainer.
type ContainerOption func(*containerOptions)

// WithActivitySink sets where audit events go. Without it events are discarded.
func WithActivitySink(sink ports.ActivitySink) ContainerOption {
	return func(o *containerOptions) { o.activity = sink }
}

// WithHousekeepingSink overrides the housekeeping repository as the cleaning-task target.
func WithHousekeepingSink(sink ports.HousekeepingSink) ContainerOption {
	return func(o *containerOptions) { o.housekeeping = sink }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(clock func() time.Time) ContainerOption {
	return func(o *containerOptions) { o.clock = clock }
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...ContainerOption) *portssvc.ServiceContainer {
	o := containerOptions{}
	if repos.HousekeepingRepo != nil {
		o.housekeeping = repos.HousekeepingRepo
	}
	for _, opt := range opts {
		opt(&o)
	}

	base := BaseService{
		Activity:         o.activity,
		OperationTimeout: cfg.RepoTimeout,
		Clock:            o.clock,
	}
	locks := newEntityLocker()

	container := &portssvc.ServiceContainer{}

	// Leaves first: settings feed pricing and the calendar.
	container.Settings = NewSettingsService(repos.SettingsRepo, cfg.SettingsCacheTTL)
	container.Calendar = NewCalendarService(container.Settings)
	container.Pricing = NewPricingService(container.Settings, repos.RoomRepo, base)
	container.Availability = NewAvailabilityService(repos.RoomRepo, repos.ReservationRepo, base)
	container.Room = NewRoomService(repos.RoomRepo, base)

	ledger := &folioLedger{
		folioRepo: repos.FolioRepo,
		roomRepo:  repos.RoomRepo,
		settings:  container.Settings,
		now:       base.Now,
	}

	container.Reservation = &reservationService{
		BaseService:     base,
		tx:              repos.TxManager,
		roomRepo:        repos.RoomRepo,
		reservationRepo: repos.ReservationRepo,
		housekeeping:    o.housekeeping,
		pricing:         container.Pricing,
		calendar:        container.Calendar,
		availability:    container.Availability,
		ledger:          ledger,
		locks:           locks,
	}
	container.Folio = &folioService{
		BaseService:     base,
		reservationRepo: repos.ReservationRepo,
		calendar:        container.Calendar,
		ledger:          ledger,
		locks:           locks,
	}
	container.Payment = &paymentService{
		BaseService:     base,
		reservationRepo: repos.ReservationRepo,
		calendar:        container.Calendar,
		ledger:          ledger,
		locks:           locks,
	}
	container.Reschedule = &rescheduleService{
		BaseService:     base,
		tx:              repos.TxManager,
		roomRepo:        repos.RoomRepo,
		reservationRepo: repos.ReservationRepo,
		folioRepo:       repos.FolioRepo,
		housekeeping:    o.housekeeping,
		pricing:         container.Pricing,
		calendar:        container.Calendar,
		availability:    container.Availability,
		ledger:          ledger,
		locks:           locks,
	}

	return container
}
