package analysis

import (
	"math"

	"primegaps/domain/gaps"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// FitLine fits y = intercept + slope*x by ordinary least squares and attaches
// R², the slope standard error and a two-sided p-value from Student's t.
// Returns a null fit (p-value 1) when fewer than three points are given.
func FitLine(x, y []float64) gaps.TrendFit {
	if len(x) != len(y) || len(x) < 3 {
		return gaps.TrendFit{PValue: 1, SampleSize: len(x)}
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)
	r2 := stat.RSquared(x, y, nil, intercept, slope)

	n := float64(len(x))
	meanX := stat.Mean(x, nil)

	sxx := 0.0
	sse := 0.0
	for i := range x {
		dx := x[i] - meanX
		sxx += dx * dx
		resid := y[i] - (intercept + slope*x[i])
		sse += resid * resid
	}
	if sxx == 0 {
		return gaps.TrendFit{Intercept: intercept, PValue: 1, SampleSize: len(x)}
	}

	df := n - 2
	stdErr := math.Sqrt(sse / df / sxx)

	pValue := 1.0
	if stdErr > 0 {
		t := slope / stdErr
		tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		pValue = 2 * tDist.CDF(-math.Abs(t))
	} else if slope != 0 {
		// Perfect fit with nonzero slope: maximally significant.
		pValue = 0
	}

	return gaps.TrendFit{
		Slope:       slope,
		Intercept:   intercept,
		R2:          r2,
		SlopeStdErr: stdErr,
		PValue:      pValue,
		SampleSize:  len(x),
	}
}
