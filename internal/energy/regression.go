package energy

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Regression is an ordinary least squares fit of y on x.
type Regression struct {
	Slope           float64
	Intercept       float64
	R               float64
	P               float64 // two-sided, H0: slope == 0
	StdErr          float64
	InterceptStdErr float64
}

// Regress fits y = Intercept + Slope*x. It reports false when the fit is
// undefined: fewer than three points or a constant x.
func Regress(x, y []float64) (Regression, bool) {
	n := len(x)
	if n < 3 || n != len(y) {
		return Regression{}, false
	}

	xMean, xVar := stat.PopMeanVariance(x, nil)
	_, yVar := stat.PopMeanVariance(y, nil)
	if xVar == 0 {
		return Regression{}, false
	}

	var reg Regression
	reg.Intercept, reg.Slope = stat.LinearRegression(x, y, nil, false)

	if yVar > 0 {
		reg.R = stat.Correlation(x, y, nil)
		reg.R = math.Max(-1, math.Min(1, reg.R))
	}

	df := float64(n - 2)
	if math.Abs(reg.R) >= 1 {
		return reg, true
	}

	t := reg.R * math.Sqrt(df/((1-reg.R)*(1+reg.R)))
	studentT := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	reg.P = 2 * studentT.Survival(math.Abs(t))

	reg.StdErr = math.Sqrt((1 - reg.R*reg.R) * yVar / xVar / df)
	reg.InterceptStdErr = reg.StdErr * math.Sqrt(xVar+xMean*xMean)
	return reg, true
}
