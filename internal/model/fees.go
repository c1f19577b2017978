package model

import "github.com/google/uuid"

type OptionalFee struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	Name           string         `gorm:"type:varchar(255);not null" json:"name"`
	AmountType     AdjustmentType `gorm:"type:varchar(16);not null" json:"amount_type"`
	Amount         float64        `gorm:"not null" json:"amount"`
	IsTaxable      bool           `gorm:"not null;default:true" json:"is_taxable"`
	VatRate        *float64       `json:"vat_rate"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
}

func (OptionalFee) TableName() string {
	return "optional_fees"
}

type Promotion struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	OrganizationID uuid.UUID      `gorm:"type:uuid;not null;index" json:"organization_id"`
	Code           string         `gorm:"type:varchar(64);not null" json:"code"`
	Description    string         `gorm:"type:text" json:"description"`
	DiscountType   AdjustmentType `gorm:"type:varchar(16);not null" json:"discount_type"`
	Value          float64        `gorm:"not null" json:"value"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
}

func (Promotion) TableName() string {
	return "promotions"
}

// AppliedFee is an optional fee as priced on a quote.
type AppliedFee struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Amount    float64  `json:"amount"`
	IsTaxable bool     `json:"is_taxable"`
	VatRate   *float64 `json:"vat_rate,omitempty"`
}

// AppliedPromotion is a promotion as priced on a quote. DiscountAmount is positive.
type AppliedPromotion struct {
	ID             string  `json:"id"`
	Code           string  `json:"code"`
	DiscountAmount float64 `json:"discount_amount"`
}
