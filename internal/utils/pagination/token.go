package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor is the position after the last row of a page of reservations, which are
// ordered by check-in date, creation time and id.
type Cursor struct {
	CheckIn       time.Time
	CreatedAt     time.Time
	ReservationID string
}

// After reports whether a row sorts strictly after the cursor.
func (c Cursor) After(checkIn, createdAt time.Time, reservationID string) bool {
	if !checkIn.Equal(c.CheckIn) {
		return checkIn.After(c.CheckIn)
	}
	if !createdAt.Equal(c.CreatedAt) {
		return createdAt.After(c.CreatedAt)
	}
	return reservationID > c.ReservationID
}

// EncodeToken creates an opaque, URL-safe token from a cursor.
func EncodeToken(c Cursor) string {
	return EncodeMultiFieldToken(c.CheckIn.Format(timeFormat), c.CreatedAt.Format(timeFormat), c.ReservationID)
}

// DecodeToken parses a token created by EncodeToken.
func DecodeToken(token string) (Cursor, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return Cursor{}, err
	}
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (expected 3 fields, got %d)", len(parts))
	}
	checkIn, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (check-in parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	if parts[2] == "" {
		return Cursor{}, fmt.Errorf("invalid pagination token format (empty id)")
	}
	return Cursor{CheckIn: checkIn, CreatedAt: createdAt, ReservationID: parts[2]}, nil
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	return strings.Split(string(decoded), "|"), nil
}
