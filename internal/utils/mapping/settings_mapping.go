package mapping

import (
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/models"
)

// ToDomainRateTable converts a model RateTable to a domain RateTable
func ToDomainRateTable(m models.RateTable) domain.RateTable {
	return domain.RateTable{RoomTypeCode: m.RoomTypeCode, WeekdayRate: m.WeekdayRate, WeekendRate: m.WeekendRate}
}

// ToDomainSeason converts a model Season to a domain Season
func ToDomainSeason(m models.Season) domain.Season {
	return domain.Season{
		SeasonID:        m.SeasonID,
		Name:            m.Name,
		StartDate:       domain.DateOnly(m.StartDate),
		EndDate:         domain.DateOnly(m.EndDate),
		ModifierPercent: m.ModifierPercent,
		Active:          m.Active,
		RoomTypes:       m.RoomTypes,
	}
}

// ToDomainWeekdayModifier converts a model WeekdayModifier to a domain WeekdayModifier
func ToDomainWeekdayModifier(m models.WeekdayModifier) domain.WeekdayModifier {
	return domain.WeekdayModifier{
		ModifierID:      m.ModifierID,
		Name:            m.Name,
		Weekday:         time.Weekday(m.Weekday),
		ModifierPercent: m.ModifierPercent,
		Enabled:         m.Enabled,
		RoomTypes:       m.RoomTypes,
	}
}

// ToDomainSpecialDate converts a model SpecialDate to a domain SpecialDate
func ToDomainSpecialDate(m models.SpecialDate) domain.SpecialDate {
	return domain.SpecialDate{
		SpecialDateID:   m.SpecialDateID,
		Name:            m.Name,
		Date:            domain.DateOnly(m.Date),
		ModifierPercent: m.ModifierPercent,
		Active:          m.Active,
		RoomTypes:       m.RoomTypes,
	}
}

// ToDomainTaxRate converts a model TaxRate to a domain TaxRate
func ToDomainTaxRate(m models.TaxRate) domain.TaxRate {
	return domain.TaxRate{
		Category:             domain.ChargeCategory(m.Category),
		ServiceChargePercent: m.ServiceChargePercent,
		VATPercent:           m.VATPercent,
	}
}

// ToModelHousekeepingTask converts a domain HousekeepingTask to a model HousekeepingTask
func ToModelHousekeepingTask(d domain.HousekeepingTask) models.HousekeepingTask {
	return models.HousekeepingTask{
		TaskID:        d.TaskID,
		RoomID:        d.RoomID,
		ReservationID: d.ReservationID,
		Type:          string(d.Type),
		Status:        string(d.Status),
		Priority:      d.Priority,
		RequestedAt:   d.RequestedAt,
		RequestedBy:   d.RequestedBy,
	}
}

// ToDomainHousekeepingTask converts a model HousekeepingTask to a domain HousekeepingTask
func ToDomainHousekeepingTask(m models.HousekeepingTask) domain.HousekeepingTask {
	return domain.HousekeepingTask{
		TaskID:        m.TaskID,
		RoomID:        m.RoomID,
		ReservationID: m.ReservationID,
		Type:          domain.HousekeepingTaskType(m.Type),
		Status:        domain.HousekeepingTaskStatus(m.Status),
		Priority:      m.Priority,
		RequestedAt:   m.RequestedAt,
		RequestedBy:   m.RequestedBy,
	}
}
