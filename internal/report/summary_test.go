package report

import (
	"os"
	"strings"
	"testing"

	"primegaps/domain/core"
	"primegaps/domain/gaps"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() Summary {
	return Summary{
		Stamp:       core.RunStamp("20260101_120000"),
		RunID:       core.NewRunID(),
		RecordCount: 15,
		Trend:       gaps.TrendFit{Slope: -0.0123, SlopeStdErr: 0.004, R2: 0.41, PValue: 0.012, SampleSize: 15},
		Rebounds: gaps.ReboundStats{
			Count: 4, Transitions: 14, Percentage: 28.6,
			MeanAmplitude: 0.05, MaxAmplitude: 0.11,
		},
		Progressions: gaps.ProgressionSummary{
			Total: 120, PositiveCount: 80, NegativeCount: 40,
			PositivePct: 66.7, NegativePct: 33.3,
		},
		RMT: gaps.RMTResult{
			Sizes:     []gaps.SpacingStats{{MatrixSize: 10, MeanSpacing: 1.0, SpacingVariance: 0.3}},
			NullSlope: -0.04,
		},
		Files: []string{"data/raw/record_gaps_20260101_120000.csv"},
	}
}

func TestMarkdownSections(t *testing.T) {
	md := sampleSummary().Markdown()

	assert.Contains(t, md, "# Analysis Summary - 20260101_120000")
	assert.Contains(t, md, "## Record Gaps")
	assert.Contains(t, md, "## Rebounds")
	assert.Contains(t, md, "## Arithmetic Progressions")
	assert.Contains(t, md, "## RMT Null Model")
	assert.Contains(t, md, "## Files Generated")
	assert.Contains(t, md, "Global slope: -0.012300")
	assert.Contains(t, md, "β > 0: 80 (66.7%)")
}

func TestWriteAndLatest(t *testing.T) {
	dir := t.TempDir()

	older := sampleSummary()
	older.Stamp = core.RunStamp("20250101_000000")
	_, err := Write(dir, older)
	require.NoError(t, err)

	newer := sampleSummary()
	path, err := Write(dir, newer)
	require.NoError(t, err)

	latest, err := Latest(dir)
	require.NoError(t, err)
	assert.Equal(t, path, latest)

	content, err := os.ReadFile(latest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# Analysis Summary"))
}

func TestLatestMissing(t *testing.T) {
	_, err := Latest(t.TempDir())
	assert.Error(t, err)

	_, err = Latest("/nonexistent/dir")
	assert.Error(t, err)
}

func TestRenderHTML(t *testing.T) {
	html := string(RenderHTML([]byte(sampleSummary().Markdown())))
	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<h2")
	assert.Contains(t, html, "Rebounds")
}
