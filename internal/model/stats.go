package model

// Stats is the derived statistics record for a household's billing period.
// It is recomputed on every request and never persisted.
type Stats struct {
	ProductionDaily  []float64 `json:"production_daily"`
	ConsumptionDaily []float64 `json:"consumption_daily"`

	ProductionTotal  float64 `json:"production_total"`
	ConsumptionTotal float64 `json:"consumption_total"`
	Storage          float64 `json:"storage"`

	AvgDailyProduction  float64 `json:"avg_daily_production"`
	AvgDailyConsumption float64 `json:"avg_daily_consumption"`

	DailyRatio   []float64 `json:"daily_ratio"`
	MonthlyRatio float64   `json:"monthly_ratio"`

	MedianProduction  float64 `json:"median_production"`
	MedianConsumption float64 `json:"median_consumption"`
	ProductionStd     float64 `json:"production_std"`
	ConsumptionStd    float64 `json:"consumption_std"`

	NormalDistributionProduction  []float64 `json:"normal_distribution_production"`
	NormalDistributionConsumption []float64 `json:"normal_distribution_consumption"`

	UsedPercentage   float64 `json:"used_percentage"`
	StoredPercentage float64 `json:"stored_percentage"`

	// Regression of consumption on production.
	RegressionValid bool    `json:"regression_valid"`
	Slope           float64 `json:"slope"`
	Intercept       float64 `json:"intercept"`
	RValue          float64 `json:"r_value"`
	PValue          float64 `json:"p_value"`
	StdErr          float64 `json:"std_err"`
	InterceptStdErr float64 `json:"intercept_stderr"`
	Correlation     float64 `json:"correlation"`
}

// Days returns the 1-based day numbers for the series.
func (s *Stats) Days() []float64 {
	days := make([]float64, len(s.ProductionDaily))
	for i := range days {
		days[i] = float64(i + 1)
	}
	return days
}
