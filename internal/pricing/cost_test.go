package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

var testParams = model.CostParameters{
	FuelConsumptionL100km: 8.5,
	FuelPricePerLiter:     1.8,
	FuelType:              model.FuelTypeDiesel,
	TollCostPerKm:         0.12,
	WearCostPerKm:         0.08,
	DriverHourlyCost:      25,
}

func TestComputeCost(t *testing.T) {
	c, err := ComputeCost(30, 40, testParams)
	require.NoError(t, err)

	assert.Equal(t, 4.59, c.Fuel.Amount)
	assert.Equal(t, 3.6, c.Tolls.Amount)
	assert.Equal(t, 2.4, c.Wear.Amount)
	assert.Equal(t, 16.67, c.Driver.Amount)
	assert.Equal(t, 27.26, c.Total)
}

func TestComputeCostTotalIsRoundedSumOfComponents(t *testing.T) {
	for _, tc := range []struct{ km, min float64 }{
		{0, 0}, {1.234, 7.7}, {12.345, 33.3}, {487.9, 301.1}, {0.01, 0.5},
	} {
		c, err := ComputeCost(tc.km, tc.min, testParams)
		require.NoError(t, err)
		sum := c.Fuel.Amount + c.Tolls.Amount + c.Wear.Amount + c.Driver.Amount + c.Parking.Amount
		assert.Equal(t, money.Round2(sum), c.Total)
	}
}

func TestComputeCostZero(t *testing.T) {
	c, err := ComputeCost(0, 0, testParams)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Total)
}

func TestComputeCostRejectsInvalidInput(t *testing.T) {
	for name, in := range map[string][2]float64{
		"negative distance": {-1, 10},
		"negative duration": {10, -1},
		"nan distance":      {math.NaN(), 10},
		"inf duration":      {10, math.Inf(1)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ComputeCost(in[0], in[1], testParams)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestAggregateCosts(t *testing.T) {
	a, err := ComputeCost(10, 15, testParams)
	require.NoError(t, err)
	b, err := ComputeCost(30, 40, testParams)
	require.NoError(t, err)

	total := AggregateCosts(a, b)
	assert.Equal(t, 40.0, total.Fuel.DistanceKm)
	assert.Equal(t, money.Round2(a.Total+b.Total), total.Total)
	assert.Equal(t, 25.0, total.Driver.HourlyRate)
}
