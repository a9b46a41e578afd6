package domain

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned when checkOut is not strictly after checkIn.
var ErrInvalidRange = errors.New("check-out must be after check-in")

// DateOnly strips the time-of-day, keeping the calendar date in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// AddDays returns the calendar date n days after t.
func AddDays(t time.Time, n int) time.Time {
	return DateOnly(t).AddDate(0, 0, n)
}

// DateRange is a half-open stay interval [CheckIn, CheckOut) at day granularity.
type DateRange struct {
	CheckIn  time.Time `json:"checkIn"`
	CheckOut time.Time `json:"checkOut"`
}

// NewDateRange strips both ends to dates and validates them.
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: DateOnly(checkIn), CheckOut: DateOnly(checkOut)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if !DateOnly(dr.CheckOut).After(DateOnly(dr.CheckIn)) {
		return ErrInvalidRange
	}
	return nil
}

// Nights is the number of chargeable nights; the checkout night is excluded.
func (dr DateRange) Nights() int {
	return int(DateOnly(dr.CheckOut).Sub(DateOnly(dr.CheckIn)).Hours() / 24)
}

// Overlaps reports whether two stays share at least one night.
// A checkout on the same date as another check-in does not overlap.
func (dr DateRange) Overlaps(other DateRange) bool {
	return DateOnly(dr.CheckIn).Before(DateOnly(other.CheckOut)) &&
		DateOnly(dr.CheckOut).After(DateOnly(other.CheckIn))
}

// ContainsDate reports whether the night of d belongs to the stay.
func (dr DateRange) ContainsDate(d time.Time) bool {
	d = DateOnly(d)
	return !d.Before(DateOnly(dr.CheckIn)) && d.Before(DateOnly(dr.CheckOut))
}

// Dates lists every chargeable night of the stay in order.
func (dr DateRange) Dates() []time.Time {
	n := dr.Nights()
	if n <= 0 {
		return nil
	}
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, AddDays(dr.CheckIn, i))
	}
	return out
}
