package models

import "github.com/shopspring/decimal"

// Room is the rooms table row.
type Room struct {
	RoomID        string          `db:"room_id"`
	Number        string          `db:"room_number"`
	RoomTypeCode  string          `db:"room_type_code"`
	Floor         int             `db:"floor"`
	BasePrice     decimal.Decimal `db:"base_price"`
	Status        string          `db:"status"`
	NeedsCleaning bool            `db:"needs_cleaning"`
	AuditFields
}
