package gaps

import (
	"fmt"
	"math"
)

// ============================================================================
// STABLE PRIMITIVES (Canonical, never change)
// ============================================================================

// GapRecord is one record-setting prime gap with its normalized value.
// INVARIANTS:
// - Prime > 0 and strictly increasing across a sequence of records
// - R = Gap / ln²(Prime), 0 when Prime <= 1
// - Immutable once computed
type GapRecord struct {
	Index int     `json:"n"`
	Prime int64   `json:"p_n"`
	Gap   int64   `json:"g_n"`
	R     float64 `json:"r_n"`
}

// Rebound is a transition where the normalized gap increases (Delta > 0).
// Detected, never mutated.
type Rebound struct {
	Index int     `json:"idx"`
	P     int64   `json:"p_n"`
	PNext int64   `json:"p_next"`
	R     float64 `json:"r_n"`
	RNext float64 `json:"r_next"`
	Delta float64 `json:"delta"`
}

// ReboundStats aggregates all rebound events detected in one R sequence
type ReboundStats struct {
	Rebounds      []Rebound `json:"rebounds"`
	Transitions   int       `json:"transitions"`
	Count         int       `json:"count"`
	Percentage    float64   `json:"percentage"` // share of transitions that rebound
	MeanAmplitude float64   `json:"mean_amplitude"`
	MaxAmplitude  float64   `json:"max_amplitude"`
}

// TrendFit is a least-squares linear fit with significance
type TrendFit struct {
	Slope       float64 `json:"slope"`
	Intercept   float64 `json:"intercept"`
	R2          float64 `json:"r_squared"`
	SlopeStdErr float64 `json:"slope_std_err"`
	PValue      float64 `json:"p_value"`
	SampleSize  int     `json:"sample_size"`
}

// ProgressionSlope is the fitted gap-growth slope for one residue class.
// One per (a,q) pair with at least MinProgressionPoints supporting gaps.
type ProgressionSlope struct {
	Residue   int     `json:"a"`
	Modulus   int     `json:"q"`
	Beta      float64 `json:"beta"`
	Intercept float64 `json:"intercept"`
	R2        float64 `json:"r_squared"`
	PValue    float64 `json:"p_value"`
	Samples   int     `json:"samples"`
}

// Key returns the canonical "a mod q" label for the progression
func (s ProgressionSlope) Key() string {
	return fmt.Sprintf("%d mod %d", s.Residue, s.Modulus)
}

// QAggregate summarizes slopes across residues for one modulus q.
// Only reported when Count >= MinSlopesPerModulus.
type QAggregate struct {
	Modulus  int     `json:"q"`
	MeanBeta float64 `json:"mean_beta"`
	StdBeta  float64 `json:"std_beta"`
	Count    int     `json:"count"`
}

// ProgressionSummary is the full output of the progression sweep
type ProgressionSummary struct {
	Slopes        []ProgressionSlope `json:"slopes"`
	Aggregates    []QAggregate       `json:"aggregates"`
	Total         int                `json:"total"`
	PositiveCount int                `json:"positive_count"`
	NegativeCount int                `json:"negative_count"`
	PositivePct   float64            `json:"positive_pct"`
	NegativePct   float64            `json:"negative_pct"`
}

// MeanBetaForQ returns the aggregate mean slope for a modulus, or NaN when
// the modulus did not clear the minimum-sample rule.
func (p ProgressionSummary) MeanBetaForQ(q int) float64 {
	for _, agg := range p.Aggregates {
		if agg.Modulus == q {
			return agg.MeanBeta
		}
	}
	return math.NaN()
}

// SpacingStats captures eigenvalue spacing statistics for one matrix size
type SpacingStats struct {
	MatrixSize      int     `json:"size"`
	Trials          int     `json:"trials"`
	MeanSpacing     float64 `json:"mean_spacing"`     // unfolded, ~1 by construction
	SpacingVariance float64 `json:"spacing_variance"` // of unfolded spacings
	SlopeVsIndex    float64 `json:"slope"`            // spacing drift across the spectrum
}

// RMTResult is the random-matrix null model: per-size spacing statistics
// and the slope expected under randomness.
type RMTResult struct {
	Sizes     []SpacingStats `json:"sizes"`
	NullSlope float64        `json:"null_slope"`
}

// GUENullSlope is the reference slope under the Gaussian Unitary Ensemble,
// used only when no simulator output is available.
const GUENullSlope = -0.05

// Minimum-sample rules shared by the analyzers
const (
	MinProgressionPoints = 3 // gaps required to fit one progression
	MinSlopesPerModulus  = 3 // slopes required to aggregate one q
)
