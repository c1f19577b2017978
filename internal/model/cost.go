package model

type FuelType string

const (
	FuelTypeDiesel   FuelType = "DIESEL"
	FuelTypeGasoline FuelType = "GASOLINE"
	FuelTypeLPG      FuelType = "LPG"
)

// CostParameters are the per-organization operating costs used by the cost model.
type CostParameters struct {
	FuelConsumptionL100km float64  `json:"fuel_consumption_l_100km"`
	FuelPricePerLiter     float64  `json:"fuel_price_per_liter"`
	FuelType              FuelType `json:"fuel_type"`
	TollCostPerKm         float64  `json:"toll_cost_per_km"`
	WearCostPerKm         float64  `json:"wear_cost_per_km"`
	DriverHourlyCost      float64  `json:"driver_hourly_cost"`
	ParkingCost           float64  `json:"parking_cost"`
	ParkingDescription    string   `json:"parking_description,omitempty"`
}

type FuelCost struct {
	Amount            float64  `json:"amount"`
	DistanceKm        float64  `json:"distance_km"`
	ConsumptionL100km float64  `json:"consumption_l_100km"`
	PricePerLiter     float64  `json:"price_per_liter"`
	FuelType          FuelType `json:"fuel_type"`
}

type TollCost struct {
	Amount     float64 `json:"amount"`
	DistanceKm float64 `json:"distance_km"`
	RatePerKm  float64 `json:"rate_per_km"`
}

type WearCost struct {
	Amount     float64 `json:"amount"`
	DistanceKm float64 `json:"distance_km"`
	RatePerKm  float64 `json:"rate_per_km"`
}

type DriverCost struct {
	Amount          float64 `json:"amount"`
	DurationMinutes float64 `json:"duration_minutes"`
	HourlyRate      float64 `json:"hourly_rate"`
}

type ParkingCost struct {
	Amount      float64 `json:"amount"`
	Description string  `json:"description,omitempty"`
}

// CostBreakdown is the internal cost of one segment or of a whole trip.
// Total always equals the cent-rounded sum of the five components.
type CostBreakdown struct {
	Fuel    FuelCost    `json:"fuel"`
	Tolls   TollCost    `json:"tolls"`
	Wear    WearCost    `json:"wear"`
	Driver  DriverCost  `json:"driver"`
	Parking ParkingCost `json:"parking"`
	Total   float64     `json:"total"`
}
