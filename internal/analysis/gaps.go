package analysis

import (
	"math"

	"primegaps/domain/gaps"

	"github.com/montanaflynn/stats"
)

// NormalizeGap computes R = gap / ln²(p). Returns 0 for p <= 1, where the
// normalization is undefined.
func NormalizeGap(gap int64, p float64) float64 {
	if p <= 1 {
		return 0
	}
	logP := math.Log(p)
	return float64(gap) / (logP * logP)
}

// BuildRecords pairs record gaps with their starting primes and computes the
// normalized value for each. The two sequences are aligned to the shorter
// length; extra terms on either side are ignored.
func BuildRecords(starts, recordGaps []int64) []gaps.GapRecord {
	n := len(starts)
	if len(recordGaps) < n {
		n = len(recordGaps)
	}

	records := make([]gaps.GapRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, gaps.GapRecord{
			Index: i,
			Prime: starts[i],
			Gap:   recordGaps[i],
			R:     NormalizeGap(recordGaps[i], float64(starts[i])),
		})
	}
	return records
}

// FitGlobalTrend regresses R_n against the record index n
func FitGlobalTrend(records []gaps.GapRecord) gaps.TrendFit {
	x := make([]float64, len(records))
	y := make([]float64, len(records))
	for i, rec := range records {
		x[i] = float64(rec.Index)
		y[i] = rec.R
	}
	return FitLine(x, y)
}

// DetectRebounds scans consecutive R values and records every transition
// where the normalized gap increases (delta > 0), with amplitude statistics.
func DetectRebounds(records []gaps.GapRecord) gaps.ReboundStats {
	result := gaps.ReboundStats{}
	if len(records) < 2 {
		return result
	}

	result.Transitions = len(records) - 1
	deltas := []float64{}
	for i := 0; i < len(records)-1; i++ {
		delta := records[i+1].R - records[i].R
		if delta <= 0 {
			continue
		}
		result.Rebounds = append(result.Rebounds, gaps.Rebound{
			Index: records[i].Index,
			P:     records[i].Prime,
			PNext: records[i+1].Prime,
			R:     records[i].R,
			RNext: records[i+1].R,
			Delta: delta,
		})
		deltas = append(deltas, delta)
	}

	result.Count = len(result.Rebounds)
	result.Percentage = 100 * float64(result.Count) / float64(result.Transitions)

	if len(deltas) > 0 {
		mean, _ := stats.Mean(deltas)
		max, _ := stats.Max(deltas)
		result.MeanAmplitude = mean
		result.MaxAmplitude = max
	}
	return result
}
