package model

type InvoiceLineType string

const (
	InvoiceLineTransport   InvoiceLineType = "SERVICE"
	InvoiceLineOptionalFee InvoiceLineType = "OPTIONAL_FEE"
	InvoiceLinePromotion   InvoiceLineType = "PROMOTION_ADJUSTMENT"
)

type InvoiceLine struct {
	LineType         InvoiceLineType `json:"line_type"`
	Label            string          `json:"label"`
	Description      string          `json:"description,omitempty"`
	Quantity         float64         `json:"quantity"`
	UnitPriceExclVat float64         `json:"unit_price_excl_vat"`
	VatRate          float64         `json:"vat_rate"`
	TotalExclVat     float64         `json:"total_excl_vat"`
	TotalVat         float64         `json:"total_vat"`
	SortOrder        int             `json:"sort_order"`
}

type InvoiceTotals struct {
	TotalExclVat float64 `json:"total_excl_vat"`
	TotalVat     float64 `json:"total_vat"`
	TotalInclVat float64 `json:"total_incl_vat"`
}
