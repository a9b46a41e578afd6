package domain

import "time"

// ActivityAction names an audited front-desk action.
type ActivityAction string

const (
	ActionReservationCreate     ActivityAction = "RESERVATION_CREATE"
	ActionReservationUpdate     ActivityAction = "RESERVATION_UPDATE"
	ActionReservationReschedule ActivityAction = "RESERVATION_RESCHEDULE"
	ActionReservationCancel     ActivityAction = "RESERVATION_CANCEL"
	ActionCheckIn               ActivityAction = "CHECK_IN"
	ActionCheckOut              ActivityAction = "CHECK_OUT"
	ActionNoShow                ActivityAction = "NO_SHOW"
	ActionFolioOpen             ActivityAction = "FOLIO_OPEN"
	ActionFolioChargePosted     ActivityAction = "FOLIO_CHARGE_POSTED"
	ActionFolioPaymentPosted    ActivityAction = "FOLIO_PAYMENT_POSTED"
	ActionFolioRefundPosted     ActivityAction = "FOLIO_REFUND_POSTED"
	ActionFolioAdjustmentPosted ActivityAction = "FOLIO_ADJUSTMENT_POSTED"
	ActionFolioRoomChargesMoved ActivityAction = "FOLIO_ROOM_CHARGES_REWRITTEN"
	ActionFolioClosed           ActivityAction = "FOLIO_CLOSED"
	ActionFolioStatusChanged    ActivityAction = "FOLIO_STATUS_CHANGED"
)

// ActivityEvent is a fire-and-forget audit record.
type ActivityEvent struct {
	EventID    string         `json:"eventID"`
	Actor      string         `json:"actor"`
	Action     ActivityAction `json:"action"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityID"`
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}
