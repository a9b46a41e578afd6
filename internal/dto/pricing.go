package dto

// QuoteRequest prices a stay for a room.
type QuoteRequest struct {
	RoomID   string `json:"roomID" binding:"required"`
	CheckIn  Date   `json:"checkIn"`
	CheckOut Date   `json:"checkOut"`
}

// AvailabilityRequest asks whether a room is free for a stay.
type AvailabilityRequest struct {
	RoomID               string `json:"roomID" binding:"required"`
	CheckIn              Date   `json:"checkIn"`
	CheckOut             Date   `json:"checkOut"`
	ExcludeReservationID string `json:"excludeReservationID"`
}

// AvailabilityResponse answers an AvailabilityRequest.
type AvailabilityResponse struct {
	Available                bool   `json:"available"`
	ConflictingReservationID string `json:"conflictingReservationID,omitempty"`
	ConflictCheckIn          *Date  `json:"conflictCheckIn,omitempty"`
	ConflictCheckOut         *Date  `json:"conflictCheckOut,omitempty"`
}

// BusinessDayResponse exposes the business-day boundary.
type BusinessDayResponse struct {
	LastAuditDate Date `json:"lastAuditDate"`
	BusinessDay   Date `json:"businessDay"`
}
