// Package energy computes the descriptive statistics shown on a household
// dashboard from its daily production and consumption series.
package energy

import (
	"errors"
	"math"
	"sort"

	"github.com/dukerupert/energydash/internal/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	ErrEmptySeries    = errors.New("energy: empty series")
	ErrLengthMismatch = errors.New("energy: production and consumption lengths differ")
)

// Compute derives the full statistics record for a pair of daily series.
// The input slices are copied; callers may reuse them.
func Compute(production, consumption []float64) (*model.Stats, error) {
	if len(production) == 0 || len(consumption) == 0 {
		return nil, ErrEmptySeries
	}
	if len(production) != len(consumption) {
		return nil, ErrLengthMismatch
	}

	s := &model.Stats{
		ProductionDaily:  append([]float64(nil), production...),
		ConsumptionDaily: append([]float64(nil), consumption...),
	}

	s.ProductionTotal = floats.Sum(production)
	s.ConsumptionTotal = floats.Sum(consumption)
	s.Storage = math.Max(s.ProductionTotal-s.ConsumptionTotal, 0)

	s.AvgDailyProduction, s.ProductionStd = stat.PopMeanStdDev(production, nil)
	s.AvgDailyConsumption, s.ConsumptionStd = stat.PopMeanStdDev(consumption, nil)

	s.DailyRatio = DailyRatio(production, consumption)
	if s.ProductionTotal > 0 {
		s.MonthlyRatio = s.ConsumptionTotal / s.ProductionTotal
		s.UsedPercentage = s.ConsumptionTotal / s.ProductionTotal * 100
		s.StoredPercentage = s.Storage / s.ProductionTotal * 100
	}

	s.MedianProduction = Median(production)
	s.MedianConsumption = Median(consumption)

	s.NormalDistributionProduction = NormalDensities(production, s.AvgDailyProduction, s.ProductionStd)
	s.NormalDistributionConsumption = NormalDensities(consumption, s.AvgDailyConsumption, s.ConsumptionStd)

	if reg, ok := Regress(production, consumption); ok {
		s.RegressionValid = true
		s.Slope = reg.Slope
		s.Intercept = reg.Intercept
		s.RValue = reg.R
		s.PValue = reg.P
		s.StdErr = reg.StdErr
		s.InterceptStdErr = reg.InterceptStdErr
		s.Correlation = reg.R
	}

	return s, nil
}

// DailyRatio returns consumption/production per day, 0 where production is
// not positive.
func DailyRatio(production, consumption []float64) []float64 {
	ratios := make([]float64, len(production))
	for i, p := range production {
		if p > 0 {
			ratios[i] = consumption[i] / p
		}
	}
	return ratios
}

// Median returns the middle value of x, averaging the two middle values when
// len(x) is even. x is not modified.
func Median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// NormalDensities evaluates the normal pdf with the given mean and standard
// deviation at each point of x. A zero deviation yields all zeros.
func NormalDensities(x []float64, mean, std float64) []float64 {
	out := make([]float64, len(x))
	if std <= 0 || math.IsNaN(std) {
		return out
	}
	dist := distuv.Normal{Mu: mean, Sigma: std}
	for i, v := range x {
		out[i] = dist.Prob(v)
	}
	return out
}
