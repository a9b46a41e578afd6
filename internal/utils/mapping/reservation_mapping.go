package mapping

import (
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/models"
)

// ToModelReservation converts a domain Reservation to a model Reservation
func ToModelReservation(d domain.Reservation) models.Reservation {
	return models.Reservation{
		ReservationID:      d.ReservationID,
		RoomID:             d.RoomID,
		GuestName:          d.Guest.Name,
		GuestPhone:         d.Guest.Phone,
		GuestEmail:         d.Guest.Email,
		GuestIDNumber:      d.Guest.IDNumber,
		GuestNationality:   d.Guest.Nationality,
		CheckIn:            domain.DateOnly(d.CheckIn),
		CheckOut:           domain.DateOnly(d.CheckOut),
		Adults:             d.Adults,
		Children:           d.Children,
		TotalAmount:        d.TotalAmount,
		Status:             string(d.Status),
		Source:             string(d.Source),
		Notes:              d.Notes,
		CheckedInAt:        toNullTime(d.CheckedInAt),
		CheckedOutAt:       toNullTime(d.CheckedOutAt),
		CancelledAt:        toNullTime(d.CancelledAt),
		CancellationReason: d.CancellationReason,
		RefundAmount:       d.RefundAmount,
		NoShowCharge:       d.NoShowCharge,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainReservation converts a model Reservation to a domain Reservation
func ToDomainReservation(m models.Reservation) domain.Reservation {
	return domain.Reservation{
		ReservationID: m.ReservationID,
		RoomID:        m.RoomID,
		Guest: domain.Guest{
			Name:        m.GuestName,
			Phone:       m.GuestPhone,
			Email:       m.GuestEmail,
			IDNumber:    m.GuestIDNumber,
			Nationality: m.GuestNationality,
		},
		CheckIn:            domain.DateOnly(m.CheckIn),
		CheckOut:           domain.DateOnly(m.CheckOut),
		Adults:             m.Adults,
		Children:           m.Children,
		TotalAmount:        m.TotalAmount,
		Status:             domain.ReservationStatus(m.Status),
		Source:             domain.ReservationSource(m.Source),
		Notes:              m.Notes,
		CheckedInAt:        fromNullTime(m.CheckedInAt),
		CheckedOutAt:       fromNullTime(m.CheckedOutAt),
		CancelledAt:        fromNullTime(m.CancelledAt),
		CancellationReason: m.CancellationReason,
		RefundAmount:       m.RefundAmount,
		NoShowCharge:       m.NoShowCharge,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}
