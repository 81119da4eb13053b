package rmt

import (
	"math"
	"math/rand"
	"sort"

	"primegaps/domain/gaps"
	"primegaps/internal/analysis"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"
)

// Simulator draws Gaussian Unitary Ensemble matrices and measures their
// eigenvalue spacing statistics as a null model for gap growth.
type Simulator struct {
	Sizes  []int
	Trials int
	rng    *rand.Rand
}

// NewSimulator creates a simulator over the given matrix sizes. The seed
// makes runs reproducible.
func NewSimulator(sizes []int, trials int, seed int64) *Simulator {
	return &Simulator{
		Sizes:  sizes,
		Trials: trials,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Run simulates every configured size and derives the slope expected under
// randomness as the mean of the per-size spacing drifts.
func (s *Simulator) Run() gaps.RMTResult {
	result := gaps.RMTResult{}
	slopes := make([]float64, 0, len(s.Sizes))

	for _, n := range s.Sizes {
		spacing := s.simulateSize(n)
		result.Sizes = append(result.Sizes, spacing)
		slopes = append(slopes, spacing.SlopeVsIndex)
	}

	if len(slopes) > 0 {
		mean, _ := stats.Mean(slopes)
		result.NullSlope = mean
	} else {
		result.NullSlope = gaps.GUENullSlope
	}
	return result
}

// simulateSize pools unfolded nearest-neighbour spacings over the trials for
// one matrix size and regresses spacing against spectrum position.
func (s *Simulator) simulateSize(n int) gaps.SpacingStats {
	var pooled []float64
	var posX, spacingY []float64

	for trial := 0; trial < s.Trials; trial++ {
		eigs := s.sampleEigenvalues(n)
		spacings := bulkSpacings(eigs)
		if len(spacings) == 0 {
			continue
		}

		mean, _ := stats.Mean(spacings)
		if mean <= 0 {
			continue
		}
		for i, d := range spacings {
			unfolded := d / mean
			pooled = append(pooled, unfolded)
			posX = append(posX, float64(i)/float64(len(spacings)))
			spacingY = append(spacingY, unfolded)
		}
	}

	result := gaps.SpacingStats{MatrixSize: n, Trials: s.Trials}
	if len(pooled) == 0 {
		return result
	}

	meanSpacing, _ := stats.Mean(pooled)
	variance, _ := stats.SampleVariance(pooled)
	result.MeanSpacing = meanSpacing
	result.SpacingVariance = variance
	result.SlopeVsIndex = analysis.FitLine(posX, spacingY).Slope
	return result
}

// sampleEigenvalues draws one GUE matrix H = A + iB (A symmetric, B
// antisymmetric, Gaussian entries) and returns its eigenvalues sorted
// ascending. gonum has no complex Hermitian eigensolver, so H is embedded as
// the real symmetric 2n x 2n block matrix [[A, -B], [B, A]], whose spectrum
// is that of H with every eigenvalue doubled.
func (s *Simulator) sampleEigenvalues(n int) []float64 {
	a := make([][]float64, n)
	b := make([][]float64, n)
	for i := range a {
		a[i] = make([]float64, n)
		b[i] = make([]float64, n)
	}

	offDiagSigma := 1 / math.Sqrt2
	for i := 0; i < n; i++ {
		a[i][i] = s.rng.NormFloat64()
		for j := i + 1; j < n; j++ {
			re := s.rng.NormFloat64() * offDiagSigma
			im := s.rng.NormFloat64() * offDiagSigma
			a[i][j], a[j][i] = re, re
			b[i][j], b[j][i] = im, -im
		}
	}

	dim := 2 * n
	data := make([]float64, dim*dim)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*dim+j] = a[i][j]
			data[i*dim+n+j] = -b[i][j]
			data[(n+i)*dim+j] = b[i][j]
			data[(n+i)*dim+n+j] = a[i][j]
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(mat.NewSymDense(dim, data), false); !ok {
		return nil
	}
	vals := es.Values(nil)
	sort.Float64s(vals)

	// Deduplicate the doubled spectrum: adjacent sorted values pair up.
	out := make([]float64, 0, n)
	for i := 0; i+1 < len(vals); i += 2 {
		out = append(out, (vals[i]+vals[i+1])/2)
	}
	return out
}

// bulkSpacings returns consecutive differences over the central half of the
// spectrum, where spacing statistics are free of semicircle edge effects.
func bulkSpacings(eigs []float64) []float64 {
	if len(eigs) < 4 {
		return nil
	}
	lo := len(eigs) / 4
	hi := len(eigs) - len(eigs)/4
	bulk := eigs[lo:hi]

	out := make([]float64, 0, len(bulk)-1)
	for i := 0; i+1 < len(bulk); i++ {
		out = append(out, bulk[i+1]-bulk[i])
	}
	return out
}
