package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"vtc-pricing-service/internal/model"
)

type SettingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Load assembles everything the pricing core needs for one organization. An
// organization without a saved rate table gets the default settings.
func (r *SettingsRepository) Load(ctx context.Context, orgID uuid.UUID) (*model.OrganizationSettings, error) {
	db := r.db.WithContext(ctx)
	settings := &model.OrganizationSettings{RSERules: map[string]model.RSERules{}}

	var pricing model.OrganizationPricingSettings
	err := db.Where("organization_id = ?", orgID).First(&pricing).Error
	switch {
	case err == nil:
		settings.Pricing = pricing
	case errors.Is(err, gorm.ErrRecordNotFound):
		settings.Pricing = model.DefaultPricingSettings(orgID)
	default:
		return nil, err
	}

	if err := db.Where("organization_id = ? AND is_active", orgID).
		Order("priority DESC").
		Find(&settings.Zones).Error; err != nil {
		return nil, err
	}

	var ruleSets []model.RSERuleSet
	if err := db.Where("organization_id = ?", orgID).Find(&ruleSets).Error; err != nil {
		return nil, err
	}
	for _, rs := range ruleSets {
		settings.RSERules[rs.LicenseCategory] = rs.Rules()
	}

	if err := db.Where("organization_id = ? AND is_active", orgID).
		Order("priority DESC").
		Find(&settings.SeasonalMultipliers).Error; err != nil {
		return nil, err
	}
	if err := db.Where("organization_id = ? AND is_active", orgID).
		Order("priority DESC").
		Find(&settings.AdvancedRates).Error; err != nil {
		return nil, err
	}
	if err := db.Where("organization_id = ?", orgID).Find(&settings.VehicleCategories).Error; err != nil {
		return nil, err
	}
	if err := db.Where("organization_id = ? AND is_active", orgID).Find(&settings.OptionalFees).Error; err != nil {
		return nil, err
	}
	if err := db.Where("organization_id = ? AND is_active", orgID).Find(&settings.Promotions).Error; err != nil {
		return nil, err
	}
	if err := db.Where("organization_id = ?", orgID).Find(&settings.TemporalVectors).Error; err != nil {
		return nil, err
	}

	return settings, nil
}

// SavePricingSettings upserts the organization rate table.
func (r *SettingsRepository) SavePricingSettings(ctx context.Context, settings *model.OrganizationPricingSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}
