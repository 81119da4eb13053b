package progression

import (
	"math"
	"sort"

	"primegaps/domain/gaps"
	"primegaps/internal/analysis"
	"primegaps/internal/primes"

	"github.com/montanaflynn/stats"
)

// Analyzer sweeps residue classes a mod q and regresses gap growth in each
type Analyzer struct {
	MaxModulus int
	Limit      int
}

// NewAnalyzer creates a progression analyzer for q in 3..maxModulus over
// primes <= limit
func NewAnalyzer(maxModulus, limit int) *Analyzer {
	return &Analyzer{MaxModulus: maxModulus, Limit: limit}
}

// Run fits a slope for every viable (a, q) pair and aggregates per modulus.
// allPrimes must be the sieve output for the analyzer's limit.
func (a *Analyzer) Run(allPrimes []int64) gaps.ProgressionSummary {
	allPrimes = capAtLimit(allPrimes, a.Limit)
	summary := gaps.ProgressionSummary{}
	slopesByQ := make(map[int][]float64)

	for q := 3; q <= a.MaxModulus; q++ {
		for residue := 1; residue < q; residue++ {
			// Residues sharing a factor with q contain at most one prime.
			if primes.GCD(residue, q) != 1 {
				continue
			}
			slope, ok := a.fitProgression(allPrimes, residue, q)
			if !ok {
				continue
			}
			summary.Slopes = append(summary.Slopes, slope)
			slopesByQ[q] = append(slopesByQ[q], slope.Beta)

			if slope.Beta > 0 {
				summary.PositiveCount++
			} else if slope.Beta < 0 {
				summary.NegativeCount++
			}
		}
	}

	summary.Total = len(summary.Slopes)
	if summary.Total > 0 {
		summary.PositivePct = 100 * float64(summary.PositiveCount) / float64(summary.Total)
		summary.NegativePct = 100 * float64(summary.NegativeCount) / float64(summary.Total)
	}
	summary.Aggregates = aggregateByModulus(slopesByQ)
	return summary
}

// fitProgression regresses gap size against ln(p) for one residue class.
// Requires at least MinProgressionPoints supporting gaps.
func (a *Analyzer) fitProgression(allPrimes []int64, residue, q int) (gaps.ProgressionSlope, bool) {
	seq := primes.InProgression(allPrimes, residue, q)
	gapValues := primes.Gaps(seq)
	if len(gapValues) < gaps.MinProgressionPoints {
		return gaps.ProgressionSlope{}, false
	}

	x := make([]float64, len(gapValues))
	y := make([]float64, len(gapValues))
	for i, g := range gapValues {
		x[i] = math.Log(float64(seq[i]))
		y[i] = float64(g)
	}

	fit := analysis.FitLine(x, y)
	return gaps.ProgressionSlope{
		Residue:   residue,
		Modulus:   q,
		Beta:      fit.Slope,
		Intercept: fit.Intercept,
		R2:        fit.R2,
		PValue:    fit.PValue,
		Samples:   fit.SampleSize,
	}, true
}

// capAtLimit truncates a sorted prime list at the analyzer's limit
func capAtLimit(sorted []int64, limit int) []int64 {
	if limit <= 0 {
		return sorted
	}
	cut := sort.Search(len(sorted), func(i int) bool { return sorted[i] > int64(limit) })
	return sorted[:cut]
}

// aggregateByModulus reports mean/std of beta per q, excluding any modulus
// with fewer than MinSlopesPerModulus slopes.
func aggregateByModulus(slopesByQ map[int][]float64) []gaps.QAggregate {
	moduli := make([]int, 0, len(slopesByQ))
	for q := range slopesByQ {
		moduli = append(moduli, q)
	}
	sort.Ints(moduli)

	var aggregates []gaps.QAggregate
	for _, q := range moduli {
		betas := slopesByQ[q]
		if len(betas) < gaps.MinSlopesPerModulus {
			continue
		}
		mean, _ := stats.Mean(betas)
		std, _ := stats.StandardDeviationSample(betas)
		aggregates = append(aggregates, gaps.QAggregate{
			Modulus:  q,
			MeanBeta: mean,
			StdBeta:  std,
			Count:    len(betas),
		})
	}
	return aggregates
}
