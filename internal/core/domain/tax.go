package domain

import "github.com/shopspring/decimal"

// Default rates used when settings leave a category unset.
var (
	DefaultVATPercent           = decimal.NewFromInt(18)
	DefaultServiceChargePercent = decimal.NewFromInt(10)
)

// TaxRate associates a charge category with its service-charge and VAT percentages.
type TaxRate struct {
	Category             ChargeCategory  `json:"category"`
	ServiceChargePercent decimal.Decimal `json:"serviceChargePercent"`
	VATPercent           decimal.Decimal `json:"vatPercent"`
}

// TaxBreakdown splits a tax-inclusive gross into net, service charge and VAT.
// Net + ServiceCharge + VAT always equals Gross exactly.
type TaxBreakdown struct {
	Quantity             int             `json:"quantity"`
	UnitGross            decimal.Decimal `json:"unitGross"`
	Gross                decimal.Decimal `json:"gross"`
	Net                  decimal.Decimal `json:"net"`
	ServiceCharge        decimal.Decimal `json:"serviceCharge"`
	VAT                  decimal.Decimal `json:"vat"`
	ServiceChargePercent decimal.Decimal `json:"serviceChargePercent"`
	VATPercent           decimal.Decimal `json:"vatPercent"`
}
