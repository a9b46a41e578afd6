package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Folio is the folios table row.
type Folio struct {
	FolioID       string          `db:"folio_id"`
	ReservationID string          `db:"reservation_id"`
	GuestName     string          `db:"guest_name"`
	RoomID        string          `db:"room_id"`
	RoomNumber    string          `db:"room_number"`
	CreditLimit   decimal.Decimal `db:"credit_limit"`
	Status        string          `db:"status"`
	Balance       decimal.Decimal `db:"balance"`
	OpenedAt      time.Time       `db:"opened_at"`
	ClosedAt      sql.NullTime    `db:"closed_at"`
	ClosedBy      string          `db:"closed_by"`
	AuditFields
}

// FolioTransaction is the folio_transactions table row. Seq keeps posting order.
type FolioTransaction struct {
	TransactionID string          `db:"transaction_id"`
	FolioID       string          `db:"folio_id"`
	Seq           int             `db:"seq"`
	PostedAt      time.Time       `db:"posted_at"`
	BusinessDate  time.Time       `db:"business_date"`
	Type          string          `db:"txn_type"`
	Category      string          `db:"category"`
	Description   string          `db:"description"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	PostedBy      string          `db:"posted_by"`
	Tax           *TaxBreakdown   `db:"tax"` // jsonb
	PaymentMethod string          `db:"payment_method"`
	Reference     string          `db:"reference"`
	StayDate      sql.NullTime    `db:"stay_date"`
}

// TaxBreakdown is the jsonb document stored in folio_transactions.tax.
type TaxBreakdown struct {
	Quantity             int             `json:"quantity"`
	UnitGross            decimal.Decimal `json:"unit_gross"`
	Gross                decimal.Decimal `json:"gross"`
	Net                  decimal.Decimal `json:"net"`
	ServiceCharge        decimal.Decimal `json:"service_charge"`
	VAT                  decimal.Decimal `json:"vat"`
	ServiceChargePercent decimal.Decimal `json:"service_charge_percent"`
	VATPercent           decimal.Decimal `json:"vat_percent"`
}
