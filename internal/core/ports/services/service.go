package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Settings     SettingsProviderSvc
	Pricing      PricingSvc
	Calendar     CalendarSvc
	Availability AvailabilitySvc
	Room         RoomSvc
	Reservation  ReservationSvcFacade
	Folio        FolioSvcFacade
	Payment      PaymentSvc
	Reschedule   RescheduleSvc
}
