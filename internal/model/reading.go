package model

// DailyReading is one day of metered energy for a household, in kWh.
type DailyReading struct {
	HouseholdID    int64   `json:"household_id"`
	Day            int     `json:"day"`
	ProductionKWh  float64 `json:"production_kwh"`
	ConsumptionKWh float64 `json:"consumption_kwh"`
}
