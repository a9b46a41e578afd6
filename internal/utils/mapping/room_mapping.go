package mapping

import (
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/models"
)

// ToModelRoom converts a domain Room to a model Room
func ToModelRoom(d domain.Room) models.Room {
	return models.Room{
		RoomID:        d.RoomID,
		Number:        d.Number,
		RoomTypeCode:  d.RoomTypeCode,
		Floor:         d.Floor,
		BasePrice:     d.BasePrice,
		Status:        string(d.Status),
		NeedsCleaning: d.NeedsCleaning,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRoom converts a model Room to a domain Room
func ToDomainRoom(m models.Room) domain.Room {
	return domain.Room{
		RoomID:        m.RoomID,
		Number:        m.Number,
		RoomTypeCode:  m.RoomTypeCode,
		Floor:         m.Floor,
		BasePrice:     m.BasePrice,
		Status:        domain.RoomStatus(m.Status),
		NeedsCleaning: m.NeedsCleaning,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
