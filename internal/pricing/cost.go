package pricing

import (
	"fmt"
	"math"

	"vtc-pricing-service/internal/model"
	"vtc-pricing-service/internal/money"
)

// ComputeCost returns the internal cost of driving distanceKm in durationMinutes.
// Each component is rounded to cents when computed and the total is the rounded
// sum of the rounded components.
func ComputeCost(distanceKm, durationMinutes float64, params model.CostParameters) (model.CostBreakdown, error) {
	if err := checkNonNegative("distance", distanceKm); err != nil {
		return model.CostBreakdown{}, err
	}
	if err := checkNonNegative("duration", durationMinutes); err != nil {
		return model.CostBreakdown{}, err
	}

	fuel := model.FuelCost{
		Amount:            money.Round2(distanceKm * (params.FuelConsumptionL100km / 100) * params.FuelPricePerLiter),
		DistanceKm:        distanceKm,
		ConsumptionL100km: params.FuelConsumptionL100km,
		PricePerLiter:     params.FuelPricePerLiter,
		FuelType:          params.FuelType,
	}
	tolls := model.TollCost{
		Amount:     money.Round2(distanceKm * params.TollCostPerKm),
		DistanceKm: distanceKm,
		RatePerKm:  params.TollCostPerKm,
	}
	wear := model.WearCost{
		Amount:     money.Round2(distanceKm * params.WearCostPerKm),
		DistanceKm: distanceKm,
		RatePerKm:  params.WearCostPerKm,
	}
	driver := model.DriverCost{
		Amount:          money.Round2((durationMinutes / 60) * params.DriverHourlyCost),
		DurationMinutes: durationMinutes,
		HourlyRate:      params.DriverHourlyCost,
	}
	parking := model.ParkingCost{
		Amount:      money.Round2(params.ParkingCost),
		Description: params.ParkingDescription,
	}

	return model.CostBreakdown{
		Fuel:    fuel,
		Tolls:   tolls,
		Wear:    wear,
		Driver:  driver,
		Parking: parking,
		Total:   money.Round2(fuel.Amount + tolls.Amount + wear.Amount + driver.Amount + parking.Amount),
	}, nil
}

// AggregateCosts sums several breakdowns into one. Rates are carried over
// from the first breakdown.
func AggregateCosts(items ...model.CostBreakdown) model.CostBreakdown {
	var out model.CostBreakdown
	for i, c := range items {
		if i == 0 {
			out.Fuel.ConsumptionL100km = c.Fuel.ConsumptionL100km
			out.Fuel.PricePerLiter = c.Fuel.PricePerLiter
			out.Fuel.FuelType = c.Fuel.FuelType
			out.Tolls.RatePerKm = c.Tolls.RatePerKm
			out.Wear.RatePerKm = c.Wear.RatePerKm
			out.Driver.HourlyRate = c.Driver.HourlyRate
			out.Parking.Description = c.Parking.Description
		}
		out.Fuel.Amount += c.Fuel.Amount
		out.Fuel.DistanceKm += c.Fuel.DistanceKm
		out.Tolls.Amount += c.Tolls.Amount
		out.Tolls.DistanceKm += c.Tolls.DistanceKm
		out.Wear.Amount += c.Wear.Amount
		out.Wear.DistanceKm += c.Wear.DistanceKm
		out.Driver.Amount += c.Driver.Amount
		out.Driver.DurationMinutes += c.Driver.DurationMinutes
		out.Parking.Amount += c.Parking.Amount
	}

	out.Fuel.Amount = money.Round2(out.Fuel.Amount)
	out.Fuel.DistanceKm = money.Round2(out.Fuel.DistanceKm)
	out.Tolls.Amount = money.Round2(out.Tolls.Amount)
	out.Tolls.DistanceKm = money.Round2(out.Tolls.DistanceKm)
	out.Wear.Amount = money.Round2(out.Wear.Amount)
	out.Wear.DistanceKm = money.Round2(out.Wear.DistanceKm)
	out.Driver.Amount = money.Round2(out.Driver.Amount)
	out.Driver.DurationMinutes = money.Round2(out.Driver.DurationMinutes)
	out.Parking.Amount = money.Round2(out.Parking.Amount)
	out.Total = money.Round2(out.Fuel.Amount + out.Tolls.Amount + out.Wear.Amount + out.Driver.Amount + out.Parking.Amount)
	return out
}

func checkNonNegative(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("compute cost: %s is not a finite number: %w", name, ErrInvalidInput)
	}
	if v < 0 {
		return fmt.Errorf("compute cost: negative %s %.2f: %w", name, v, ErrInvalidInput)
	}
	return nil
}
