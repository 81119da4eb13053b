package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"primegaps/adapters/oeis"
	"primegaps/internal"
	"primegaps/internal/config"
	"primegaps/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider serves the built-in tables without touching the network
type stubProvider struct {
	sequences map[int][]int64
}

func (s *stubProvider) Fetch(ctx context.Context, seqID int) ([]int64, error) {
	if seq, ok := s.sequences[seqID]; ok {
		return seq, nil
	}
	return nil, errors.NotFound("sequence")
}

func fallbackProvider() *stubProvider {
	return &stubProvider{sequences: map[int][]int64{
		oeis.SeqRecordGaps:     oeis.FallbackSequence(oeis.SeqRecordGaps, 0),
		oeis.SeqStartingPrimes: oeis.FallbackSequence(oeis.SeqStartingPrimes, 0),
	}}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Paths: config.PathConfig{
			DataDir:    filepath.Join(dir, "data"),
			FiguresDir: filepath.Join(dir, "figures"),
			SummaryDir: dir,
		},
		Fetch: config.FetchConfig{
			BaseURL:  "http://127.0.0.1:1",
			Timeout:  time.Second,
			MaxTerms: 200,
		},
		Analysis: config.AnalysisConfig{SieveLimit: 2000, MaxModulus: 10},
		RMT:      config.RMTConfig{MatrixSizes: []int{8}, Trials: 2, Seed: 42},
	}
}

func TestPipelineEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	pipeline := NewPipeline(cfg, fallbackProvider(), internal.NewLogger(internal.LogLevelError))

	result, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	// The two fallback tables align to the 15 starting primes.
	assert.Len(t, result.Records, 15)
	assert.Equal(t, 15, result.Trend.SampleSize)
	assert.Equal(t, 14, result.Rebounds.Transitions)
	assert.Positive(t, result.Prog.Total)
	require.Len(t, result.RMT.Sizes, 1)

	// Every stage left its artifact on disk.
	require.Len(t, result.Files, 6)
	for _, file := range result.Files {
		assert.FileExists(t, file)
	}
}

func TestPipelineRejectsNonIncreasingStarts(t *testing.T) {
	cfg := testConfig(t)
	provider := fallbackProvider()
	provider.sequences[oeis.SeqStartingPrimes] = []int64{2, 3, 3, 7}

	pipeline := NewPipeline(cfg, provider, internal.NewLogger(internal.LogLevelError))
	_, err := pipeline.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestRegenerateFiguresWithoutData(t *testing.T) {
	cfg := testConfig(t)
	pipeline := NewPipeline(cfg, fallbackProvider(), internal.NewLogger(internal.LogLevelError))

	_, err := pipeline.RegenerateFigures()
	require.Error(t, err)
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))
}

func TestRegenerateFiguresFromLatestRun(t *testing.T) {
	cfg := testConfig(t)
	pipeline := NewPipeline(cfg, fallbackProvider(), internal.NewLogger(internal.LogLevelError))

	_, err := pipeline.Run(context.Background())
	require.NoError(t, err)

	path, err := pipeline.RegenerateFigures()
	require.NoError(t, err)
	assert.FileExists(t, path)
}
