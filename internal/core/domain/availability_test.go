package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(id, room string, in, out int, status domain.ReservationStatus) domain.Reservation {
	return domain.Reservation{
		ReservationID: id,
		RoomID:        room,
		CheckIn:       day(2025, time.June, in),
		CheckOut:      day(2025, time.June, out),
		Status:        status,
	}
}

func TestFindConflict(t *testing.T) {
	existing := []domain.Reservation{
		booking("A", "101", 1, 5, domain.StatusConfirmed),
		booking("B", "101", 10, 12, domain.StatusCancelled),
		booking("C", "101", 12, 14, domain.StatusNoShow),
		booking("D", "102", 1, 30, domain.StatusCheckedIn),
	}

	tests := []struct {
		name    string
		in, out int
		exclude string
		want    string
	}{
		{"same-day turnover after", 5, 8, "", ""},
		{"same-day turnover before", 0, 1, "", ""},
		{"overlaps tail", 4, 6, "", "A"},
		{"contained", 2, 3, "", "A"},
		{"self excluded", 2, 6, "A", ""},
		{"cancelled ignored", 10, 12, "", ""},
		{"no-show ignored", 12, 13, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stay, err := domain.NewDateRange(day(2025, time.June, tt.in), day(2025, time.June, tt.out))
			require.NoError(t, err)
			got := domain.FindConflict(existing, "101", stay, tt.exclude)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.ReservationID)
		})
	}
}
