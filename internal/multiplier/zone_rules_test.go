package multiplier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtc-pricing-service/internal/model"
)

func TestApplyZoneMultiplier(t *testing.T) {
	seg := model.SegmentationResult{WeightedMultiplier: 1.05, ZonesTraversed: []string{"CDG"}}

	res := ApplyZoneMultiplier(200, seg)
	assert.Equal(t, 210.0, res.AdjustedPrice)
	require.NotNil(t, res.AppliedRule)
	assert.Equal(t, model.RuleZoneMultiplier, res.AppliedRule.Type)

	res = ApplyZoneMultiplier(200, model.SegmentationResult{WeightedMultiplier: 1.0})
	assert.Equal(t, 200.0, res.AdjustedPrice)
	assert.Nil(t, res.AppliedRule)
}

func TestApplyZoneSurcharges(t *testing.T) {
	res := ApplyZoneSurcharges(100, model.SegmentationResult{TotalSurcharges: 23, ZonesTraversed: []string{"A", "B"}})
	assert.Equal(t, 123.0, res.AdjustedPrice)
	require.NotNil(t, res.AppliedRule)
	assert.Equal(t, 23.0, *res.AppliedRule.Amount)

	res = ApplyZoneSurcharges(100, model.SegmentationResult{})
	assert.Nil(t, res.AppliedRule)
}

func TestApplyVehicleCategoryMultiplier(t *testing.T) {
	res := ApplyVehicleCategoryMultiplier(100, &model.VehicleCategory{Name: "Van", PriceMultiplier: 1.3})
	assert.Equal(t, 130.0, res.AdjustedPrice)

	res = ApplyVehicleCategoryMultiplier(100, nil)
	assert.Equal(t, 100.0, res.AdjustedPrice)
	assert.Nil(t, res.AppliedRule)
}
