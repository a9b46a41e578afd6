package services

import (
	"context"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	portssvc "github.com/SscSPs/hotel_frontdesk/internal/core/ports/services"
	"github.com/SscSPs/hotel_frontdesk/internal/observability/metrics"
)

type calendarService struct {
	settings portssvc.SettingsProviderSvc
}

// NewCalendarService creates a CalendarSvc backed by the last audit date.
func NewCalendarService(settings portssvc.SettingsProviderSvc) portssvc.CalendarSvc {
	return &calendarService{settings: settings}
}

var _ portssvc.CalendarSvc = (*calendarService)(nil)

func (s *calendarService) Calendar(ctx context.Context) (domain.BusinessCalendar, error) {
	last, err := s.settings.LastAuditDate(ctx)
	if err != nil {
		return domain.BusinessCalendar{}, err
	}
	return domain.BusinessCalendar{LastAuditDate: last}, nil
}

func (s *calendarService) EnsureOpen(ctx context.Context, operation string, date time.Time) error {
	cal, err := s.Calendar(ctx)
	if err != nil {
		return err
	}
	return gateOpen(cal, operation, date)
}

func (s *calendarService) EnsureOpenRange(ctx context.Context, operation string, stay domain.DateRange) error {
	cal, err := s.Calendar(ctx)
	if err != nil {
		return err
	}
	return gateOpenDates(cal, operation, stay.Dates())
}

func (s *calendarService) EnsureAfterBusinessDay(ctx context.Context, operation string, date time.Time) error {
	cal, err := s.Calendar(ctx)
	if err != nil {
		return err
	}
	return gateAfterBusinessDay(cal, operation, date)
}

// gateOpen rejects a date earlier than the business day.
func gateOpen(cal domain.BusinessCalendar, operation string, date time.Time) error {
	if cal.IsBeforeBusinessDay(date) {
		return gateError(cal, operation, date)
	}
	return nil
}

// gateOpenDates rejects the first date earlier than the business day.
func gateOpenDates(cal domain.BusinessCalendar, operation string, dates []time.Time) error {
	for _, d := range dates {
		if err := gateOpen(cal, operation, d); err != nil {
			return err
		}
	}
	return nil
}

// gateAfterBusinessDay rejects a date on or before the business day.
func gateAfterBusinessDay(cal domain.BusinessCalendar, operation string, date time.Time) error {
	if cal.IsOnOrBeforeBusinessDay(date) {
		return gateError(cal, operation, date)
	}
	return nil
}

func gateError(cal domain.BusinessCalendar, operation string, date time.Time) error {
	metrics.IncGateRejection(operation)
	return &apperrors.GateError{
		BlockedDate: domain.DateOnly(date),
		BusinessDay: cal.BusinessDay(),
		Operation:   operation,
	}
}
