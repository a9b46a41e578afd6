package accounting

import (
	"github.com/SscSPs/hotel_frontdesk/internal/apperrors"
	"github.com/SscSPs/hotel_frontdesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CalculateSignedAmount returns the effect of a posting on the folio balance.
// Charges and refunds sit on the debit side, payments on the credit side; adjustments
// may carry either.
func CalculateSignedAmount(txn domain.FolioTransaction) decimal.Decimal {
	return txn.Debit.Sub(txn.Credit)
}

// SumBalance derives the balance from the whole log: Σdebit − Σcredit.
func SumBalance(txns []domain.FolioTransaction) decimal.Decimal {
	balance := decimal.Zero
	for _, txn := range txns {
		balance = balance.Add(CalculateSignedAmount(txn))
	}
	return balance
}

// Totals returns Σdebit and Σcredit over the log.
func Totals(txns []domain.FolioTransaction) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, txn := range txns {
		debits = debits.Add(txn.Debit)
		credits = credits.Add(txn.Credit)
	}
	return debits, credits
}

// ReplayBalances rewrites every BalanceAfter from the running sum of the log, in order,
// and returns the final balance. The input slice is not modified.
func ReplayBalances(txns []domain.FolioTransaction) ([]domain.FolioTransaction, decimal.Decimal) {
	out := make([]domain.FolioTransaction, len(txns))
	running := decimal.Zero
	for i, txn := range txns {
		running = running.Add(CalculateSignedAmount(txn))
		txn.BalanceAfter = running
		out[i] = txn
	}
	return out, running
}

// VerifyRunningBalances checks each stored BalanceAfter against the recomputed running
// sum and reports the first mismatch. It never corrects anything.
func VerifyRunningBalances(folioID string, txns []domain.FolioTransaction) error {
	running := decimal.Zero
	for _, txn := range txns {
		running = running.Add(CalculateSignedAmount(txn))
		if !txn.BalanceAfter.Equal(running) {
			return &apperrors.InvariantError{
				FolioID:       folioID,
				TransactionID: txn.TransactionID,
				Stored:        txn.BalanceAfter.StringFixed(2),
				Expected:      running.StringFixed(2),
			}
		}
	}
	return nil
}

// ApplyPercent returns amount adjusted by percent (e.g. +20 → ×1.20), unrounded.
func ApplyPercent(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(hundred.Add(percent)).Div(hundred)
}

// TaxInclusiveBreakdown decomposes a tax-included unit price × quantity.
//
//	net     = gross / (1 + service/100 + vat/100)
//	service = net × service/100
//	vat     = gross − net − service
//
// Net and service are rounded to cents; VAT is reconstructed so the parts sum to gross.
func TaxInclusiveBreakdown(unitGross decimal.Decimal, quantity int, servicePercent, vatPercent decimal.Decimal) domain.TaxBreakdown {
	if quantity <= 0 {
		quantity = 1
	}
	gross := unitGross.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	divisor := hundred.Add(servicePercent).Add(vatPercent)
	net := decimal.Zero
	if !divisor.IsZero() {
		net = gross.Mul(hundred).DivRound(divisor, 8).Round(2)
	}
	service := net.Mul(servicePercent).Div(hundred).Round(2)
	vat := gross.Sub(net).Sub(service)
	return domain.TaxBreakdown{
		Quantity:             quantity,
		UnitGross:            unitGross,
		Gross:                gross,
		Net:                  net,
		ServiceCharge:        service,
		VAT:                  vat,
		ServiceChargePercent: servicePercent,
		VATPercent:           vatPercent,
	}
}

// EvenSplit divides total into n cent-rounded parts that sum exactly to total;
// the rounding remainder lands on the last part.
func EvenSplit(total decimal.Decimal, n int) []decimal.Decimal {
	if n <= 0 {
		return nil
	}
	parts := make([]decimal.Decimal, n)
	share := total.DivRound(decimal.NewFromInt(int64(n)), 2)
	allocated := decimal.Zero
	for i := 0; i < n-1; i++ {
		parts[i] = share
		allocated = allocated.Add(share)
	}
	parts[n-1] = total.Sub(allocated)
	return parts
}
