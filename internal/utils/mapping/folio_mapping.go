package mapping

import (
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/SscSPs/hotel_frontdesk/internal/models"
)

// ToModelFolio converts the folio header; transactions are mapped separately.
func ToModelFolio(d domain.Folio) models.Folio {
	return models.Folio{
		FolioID:       d.FolioID,
		ReservationID: d.ReservationID,
		GuestName:     d.GuestName,
		RoomID:        d.RoomID,
		RoomNumber:    d.RoomNumber,
		CreditLimit:   d.CreditLimit,
		Status:        string(d.Status),
		Balance:       d.Balance,
		OpenedAt:      d.OpenedAt,
		ClosedAt:      toNullTime(d.ClosedAt),
		ClosedBy:      d.ClosedBy,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainFolio builds a folio from its header row and ordered transaction rows.
func ToDomainFolio(m models.Folio, txns []models.FolioTransaction) domain.Folio {
	out := domain.Folio{
		FolioID:       m.FolioID,
		ReservationID: m.ReservationID,
		GuestName:     m.GuestName,
		RoomID:        m.RoomID,
		RoomNumber:    m.RoomNumber,
		CreditLimit:   m.CreditLimit,
		Status:        domain.FolioStatus(m.Status),
		Balance:       m.Balance,
		OpenedAt:      m.OpenedAt,
		ClosedAt:      fromNullTime(m.ClosedAt),
		ClosedBy:      m.ClosedBy,
		Transactions:  make([]domain.FolioTransaction, 0, len(txns)),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	for _, t := range txns {
		out.Transactions = append(out.Transactions, ToDomainFolioTransaction(t))
	}
	return out
}

// ToModelFolioTransaction converts a posting; seq is its position in the folio log.
func ToModelFolioTransaction(d domain.FolioTransaction, seq int) models.FolioTransaction {
	m := models.FolioTransaction{
		TransactionID: d.TransactionID,
		FolioID:       d.FolioID,
		Seq:           seq,
		PostedAt:      d.PostedAt,
		BusinessDate:  domain.DateOnly(d.BusinessDate),
		Type:          string(d.Type),
		Category:      string(d.Category),
		Description:   d.Description,
		Debit:         d.Debit,
		Credit:        d.Credit,
		BalanceAfter:  d.BalanceAfter,
		PostedBy:      d.PostedBy,
		PaymentMethod: string(d.PaymentMethod),
		Reference:     d.Reference,
		StayDate:      toNullTime(d.StayDate),
	}
	if d.Tax != nil {
		m.Tax = &models.TaxBreakdown{
			Quantity:             d.Tax.Quantity,
			UnitGross:            d.Tax.UnitGross,
			Gross:                d.Tax.Gross,
			Net:                  d.Tax.Net,
			ServiceCharge:        d.Tax.ServiceCharge,
			VAT:                  d.Tax.VAT,
			ServiceChargePercent: d.Tax.ServiceChargePercent,
			VATPercent:           d.Tax.VATPercent,
		}
	}
	return m
}

// ToDomainFolioTransaction converts a model FolioTransaction to a domain FolioTransaction
func ToDomainFolioTransaction(m models.FolioTransaction) domain.FolioTransaction {
	d := domain.FolioTransaction{
		TransactionID: m.TransactionID,
		FolioID:       m.FolioID,
		PostedAt:      m.PostedAt,
		BusinessDate:  domain.DateOnly(m.BusinessDate),
		Type:          domain.FolioTransactionType(m.Type),
		Category:      domain.ChargeCategory(m.Category),
		Description:   m.Description,
		Debit:         m.Debit,
		Credit:        m.Credit,
		BalanceAfter:  m.BalanceAfter,
		PostedBy:      m.PostedBy,
		PaymentMethod: domain.PaymentMethod(m.PaymentMethod),
		Reference:     m.Reference,
		StayDate:      fromNullDate(m.StayDate),
	}
	if m.Tax != nil {
		d.Tax = &domain.TaxBreakdown{
			Quantity:             m.Tax.Quantity,
			UnitGross:            m.Tax.UnitGross,
			Gross:                m.Tax.Gross,
			Net:                  m.Tax.Net,
			ServiceCharge:        m.Tax.ServiceCharge,
			VAT:                  m.Tax.VAT,
			ServiceChargePercent: m.Tax.ServiceChargePercent,
			VATPercent:           m.Tax.VATPercent,
		}
	}
	return d
}
