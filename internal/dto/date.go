package dto

import (
	"bytes"
	"fmt"
	"time"

	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
)

// Date is a calendar date accepted as "2006-01-02" or RFC 3339 in JSON bodies.
type Date struct {
	time.Time
}

// NewDate wraps t as a Date with the time-of-day stripped.
func NewDate(t time.Time) Date {
	return Date{Time: domain.DateOnly(t)}
}

func (d *Date) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	if len(b) == 0 || string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.DateOnly, string(b)); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, string(b))
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", string(b))
	}
	d.Time = domain.DateOnly(t)
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}
