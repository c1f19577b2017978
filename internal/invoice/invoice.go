// Package invoice turns a priced quote into invoice lines with VAT.
package invoice

import (
	"fmt"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

// VAT rates in percent.
const (
	TransportVatRate  = 10.0
	DefaultFeeVatRate = 20.0
)

// Extras are the quote items billed on their own lines.
type Extras struct {
	OptionalFees []model.AppliedFee       `json:"optional_fees"`
	Promotions   []model.AppliedPromotion `json:"promotions"`
}

// BuildInvoiceLines splits finalPrice into a transport line, one line per
// optional fee and one negative line per promotion. Without non-taxable fees
// the lines add up to finalPrice before VAT.
func BuildInvoiceLines(finalPrice float64, origin, destination string, extras Extras) []model.InvoiceLine {
	transport := CalculateTransportAmount(finalPrice, extras)

	lines := make([]model.InvoiceLine, 0, 1+len(extras.OptionalFees)+len(extras.Promotions))
	lines = append(lines, newLine(model.InvoiceLineTransport, transportLabel(origin, destination), "", transport, TransportVatRate, 0))

	order := 1
	for _, fee := range extras.OptionalFees {
		lines = append(lines, newLine(model.InvoiceLineOptionalFee, fee.Name, "", fee.Amount, feeVatRate(fee), order))
		order++
	}
	for _, promo := range extras.Promotions {
		lines = append(lines, newLine(
			model.InvoiceLinePromotion,
			fmt.Sprintf("Promotion %s", promo.Code),
			"Discount applied to the transport",
			-promo.DiscountAmount,
			TransportVatRate,
			order,
		))
		order++
	}
	return lines
}

// CalculateTransportAmount recovers the transport base from the final price:
// taxable fees are subtracted first, then discounts are added back.
// Non-taxable fees stay in the transport base.
func CalculateTransportAmount(finalPrice float64, extras Extras) float64 {
	amount := finalPrice
	for _, fee := range extras.OptionalFees {
		if !fee.IsTaxable {
			continue
		}
		amount -= fee.Amount
	}
	for _, promo := range extras.Promotions {
		amount += promo.DiscountAmount
	}
	return money.Round2(amount)
}

// CalculateInvoiceTotals sums the lines, rounding each total to cents.
func CalculateInvoiceTotals(lines []model.InvoiceLine) model.InvoiceTotals {
	var excl, vat float64
	for _, l := range lines {
		excl += l.TotalExclVat
		vat += l.TotalVat
	}
	excl = money.Round2(excl)
	vat = money.Round2(vat)
	return model.InvoiceTotals{
		TotalExclVat: excl,
		TotalVat:     vat,
		TotalInclVat: money.Round2(excl + vat),
	}
}

func newLine(kind model.InvoiceLineType, label, description string, amount, vatRate float64, order int) model.InvoiceLine {
	return model.InvoiceLine{
		LineType:         kind,
		Label:            label,
		Description:      description,
		Quantity:         1,
		UnitPriceExclVat: amount,
		VatRate:          vatRate,
		TotalExclVat:     amount,
		TotalVat:         money.Round2(amount * vatRate / 100),
		SortOrder:        order,
	}
}

func feeVatRate(fee model.AppliedFee) float64 {
	if !fee.IsTaxable {
		return 0
	}
	if fee.VatRate != nil {
		return *fee.VatRate
	}
	return DefaultFeeVatRate
}

func transportLabel(origin, destination string) string {
	switch {
	case origin != "" && destination != "":
		return fmt.Sprintf("Transport: %s → %s", origin, destination)
	case origin != "":
		return fmt.Sprintf("Transport from %s", origin)
	default:
		return "Transport"
	}
}
