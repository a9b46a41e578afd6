package domain

import "time"

// BusinessCalendar is derived from the last completed night audit.
type BusinessCalendar struct {
	LastAuditDate time.Time `json:"lastAuditDate"`
}

// BusinessDay is the earliest date on which new activity may be recorded.
func (c BusinessCalendar) BusinessDay() time.Time {
	return AddDays(c.LastAuditDate, 1)
}

// IsClosed reports whether d is on or before the last audit.
func (c BusinessCalendar) IsClosed(d time.Time) bool {
	return !DateOnly(d).After(DateOnly(c.LastAuditDate))
}

// IsBeforeBusinessDay reports whether d precedes the business day.
func (c BusinessCalendar) IsBeforeBusinessDay(d time.Time) bool {
	return DateOnly(d).Before(c.BusinessDay())
}

// IsOnOrBeforeBusinessDay reports whether d is the business day or earlier.
func (c BusinessCalendar) IsOnOrBeforeBusinessDay(d time.Time) bool {
	return !DateOnly(d).After(c.BusinessDay())
}
