package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceEpsilon is the tolerance for treating a folio as settled.
var BalanceEpsilon = decimal.NewFromFloat(0.01)

// FolioStatus is the state of a folio.
type FolioStatus string

const (
	FolioOpen      FolioStatus = "OPEN"
	FolioClosed    FolioStatus = "CLOSED"
	FolioSuspended FolioStatus = "SUSPENDED"
)

// FolioTransactionType distinguishes postings on the ledger.
type FolioTransactionType string

const (
	TxnCharge     FolioTransactionType = "CHARGE"
	TxnPayment    FolioTransactionType = "PAYMENT"
	TxnRefund     FolioTransactionType = "REFUND"
	TxnAdjustment FolioTransactionType = "ADJUSTMENT"
)

// ChargeCategory groups charges for reporting and tax lookup.
type ChargeCategory string

const (
	CategoryRoom          ChargeCategory = "ROOM"
	CategoryFoodBeverage  ChargeCategory = "FOOD_BEVERAGE"
	CategoryMinibar       ChargeCategory = "MINIBAR"
	CategoryLaundry       ChargeCategory = "LAUNDRY"
	CategorySpa           ChargeCategory = "SPA"
	CategoryTelephone     ChargeCategory = "TELEPHONE"
	CategoryNoShow        ChargeCategory = "NO_SHOW"
	CategoryCancellation  ChargeCategory = "CANCELLATION"
	CategoryMiscellaneous ChargeCategory = "MISC"
	CategoryPayment       ChargeCategory = "PAYMENT"
	CategoryDeposit       ChargeCategory = "DEPOSIT"
	CategoryRefund        ChargeCategory = "REFUND"
	CategoryAdjustment    ChargeCategory = "ADJUSTMENT"
)

// PaymentMethod is how a guest settles a balance.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "CASH"
	PaymentCard         PaymentMethod = "CARD"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentOnline       PaymentMethod = "ONLINE"
	PaymentVoucher      PaymentMethod = "VOUCHER"
	PaymentCityLedger   PaymentMethod = "CITY_LEDGER"
)

// IsKnown reports whether m is a supported method.
func (m PaymentMethod) IsKnown() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentBankTransfer, PaymentOnline, PaymentVoucher, PaymentCityLedger:
		return true
	default:
		return false
	}
}

// RequiresReference reports whether a posting with m must carry a reference number.
func (m PaymentMethod) RequiresReference() bool {
	switch m {
	case PaymentCard, PaymentBankTransfer, PaymentOnline, PaymentVoucher:
		return true
	case PaymentCash, PaymentCityLedger:
		return false
	default:
		return false
	}
}

// FolioTransaction is one append-only posting on a folio.
type FolioTransaction struct {
	TransactionID string               `json:"transactionID"`
	FolioID       string               `json:"folioID"`
	PostedAt      time.Time            `json:"postedAt"`
	BusinessDate  time.Time            `json:"businessDate"`
	Type          FolioTransactionType `json:"type"`
	Category      ChargeCategory       `json:"category"`
	Description   string               `json:"description"`
	Debit         decimal.Decimal      `json:"debit"`
	Credit        decimal.Decimal      `json:"credit"`
	BalanceAfter  decimal.Decimal      `json:"balanceAfter"`
	PostedBy      string               `json:"postedBy"`
	Tax           *TaxBreakdown        `json:"tax,omitempty"`
	PaymentMethod PaymentMethod        `json:"paymentMethod,omitempty"`
	Reference     string               `json:"reference,omitempty"`
	StayDate      *time.Time           `json:"stayDate,omitempty"` // Night covered by a room charge
}

// Net is the signed effect of the posting on the balance.
func (t FolioTransaction) Net() decimal.Decimal {
	return t.Debit.Sub(t.Credit)
}

// IsRoomCharge reports whether the posting is a nightly room charge.
func (t FolioTransaction) IsRoomCharge() bool {
	return t.Type == TxnCharge && t.Category == CategoryRoom
}

// Folio is the financial account of one stay.
type Folio struct {
	FolioID       string             `json:"folioID"`
	ReservationID string             `json:"reservationID"`
	GuestName     string             `json:"guestName"`
	RoomID        string             `json:"roomID"`
	RoomNumber    string             `json:"roomNumber"`
	CreditLimit   decimal.Decimal    `json:"creditLimit"`
	Status        FolioStatus        `json:"status"`
	Balance       decimal.Decimal    `json:"balance"` // Derived; always equals Σdebit − Σcredit
	Transactions  []FolioTransaction `json:"transactions"`
	OpenedAt      time.Time          `json:"openedAt"`
	ClosedAt      *time.Time         `json:"closedAt,omitempty"`
	ClosedBy      string             `json:"closedBy,omitempty"`
	AuditFields
}

// IsSettled reports whether the balance is within BalanceEpsilon of zero.
func (f *Folio) IsSettled() bool {
	return f.Balance.Abs().LessThanOrEqual(BalanceEpsilon)
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (f *Folio) Clone() *Folio {
	if f == nil {
		return nil
	}
	c := *f
	c.Transactions = make([]FolioTransaction, len(f.Transactions))
	copy(c.Transactions, f.Transactions)
	for i := range c.Transactions {
		if t := f.Transactions[i].Tax; t != nil {
			tb := *t
			c.Transactions[i].Tax = &tb
		}
		if d := f.Transactions[i].StayDate; d != nil {
			sd := *d
			c.Transactions[i].StayDate = &sd
		}
	}
	if f.ClosedAt != nil {
		ca := *f.ClosedAt
		c.ClosedAt = &ca
	}
	return &c
}
