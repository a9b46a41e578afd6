package domain

import "github.com/shopspring/decimal"

// RoomStatus is the housekeeping/occupancy state of a room.
type RoomStatus string

const (
	RoomVacant      RoomStatus = "VACANT"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomCleaning    RoomStatus = "CLEANING"
	RoomMaintenance RoomStatus = "MAINTENANCE"
)

// Room is a sellable unit of inventory.
type Room struct {
	RoomID        string          `json:"roomID"`
	Number        string          `json:"number"`
	RoomTypeCode  string          `json:"roomTypeCode"`
	Floor         int             `json:"floor"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Status        RoomStatus      `json:"status"`
	NeedsCleaning bool            `json:"needsCleaning"`
	AuditFields
}
