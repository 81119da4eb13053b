package app

import (
	"context"
	"time"

	"primegaps/adapters/csvstore"
	"primegaps/adapters/figures"
	"primegaps/adapters/oeis"
	"primegaps/domain/core"
	"primegaps/domain/gaps"
	"primegaps/internal"
	"primegaps/internal/analysis"
	"primegaps/internal/config"
	"primegaps/internal/errors"
	"primegaps/internal/primes"
	"primegaps/internal/progression"
	"primegaps/internal/report"
	"primegaps/internal/rmt"
	"primegaps/ports"

	"golang.org/x/sync/errgroup"
)

// Pipeline wires the analysis stages in order: fetch, gap analysis, rebound
// detection, progression sweep, RMT simulation, figures, summary. Each stage
// consumes immutable inputs and writes its own artifact before the next runs.
type Pipeline struct {
	cfg      *config.Config
	provider ports.SequenceProvider
	store    *csvstore.Store
	renderer *figures.Renderer
	log      *internal.Logger
}

// RunResult collects everything a caller needs to report on one run
type RunResult struct {
	RunID    core.RunID
	Stamp    core.RunStamp
	Records  []gaps.GapRecord
	Trend    gaps.TrendFit
	Rebounds gaps.ReboundStats
	Prog     gaps.ProgressionSummary
	RMT      gaps.RMTResult
	Files    []string
	Elapsed  time.Duration
}

// NewPipeline creates the full analysis pipeline
func NewPipeline(cfg *config.Config, provider ports.SequenceProvider, log *internal.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		provider: provider,
		store:    csvstore.NewStore(cfg.Paths.RawDir(), cfg.Paths.ProcessedDir()),
		renderer: figures.NewRenderer(cfg.Paths.FiguresDir),
		log:      log,
	}
}

// Run executes the complete analysis end to end
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	start := time.Now()
	result := &RunResult{
		RunID: core.NewRunID(),
		Stamp: core.NewRunStamp(start),
	}

	if err := p.store.EnsureDirs(); err != nil {
		return nil, err
	}

	p.log.Info("fetching record gap sequences")
	recordGaps, starts, err := p.fetchSequences(ctx)
	if err != nil {
		return nil, err
	}
	if !primes.IsStrictlyIncreasing(starts) {
		return nil, errors.InvalidInput("starting primes are not strictly increasing")
	}

	p.log.Info("analyzing record gaps (%d gaps, %d starting primes)", len(recordGaps), len(starts))
	result.Records = analysis.BuildRecords(starts, recordGaps)
	result.Trend = analysis.FitGlobalTrend(result.Records)
	if path, err := p.store.WriteRecords(result.Stamp, result.Records); err != nil {
		return nil, err
	} else {
		result.Files = append(result.Files, path)
	}

	p.log.Info("detecting rebounds")
	result.Rebounds = analysis.DetectRebounds(result.Records)
	if path, err := p.store.WriteRebounds(result.Stamp, result.Rebounds.Rebounds); err != nil {
		return nil, err
	} else {
		result.Files = append(result.Files, path)
	}

	p.log.Info("sieving primes up to %d", p.cfg.Analysis.SieveLimit)
	sieved := primes.Sieve(p.cfg.Analysis.SieveLimit)
	p.log.Info("analyzing progressions for q up to %d over %d primes", p.cfg.Analysis.MaxModulus, len(sieved))
	analyzer := progression.NewAnalyzer(p.cfg.Analysis.MaxModulus, p.cfg.Analysis.SieveLimit)
	result.Prog = analyzer.Run(sieved)
	if path, err := p.store.WriteSlopes(result.Stamp, result.Prog.Slopes); err != nil {
		return nil, err
	} else {
		result.Files = append(result.Files, path)
	}

	p.log.Info("running RMT simulations for sizes %v", p.cfg.RMT.MatrixSizes)
	simulator := rmt.NewSimulator(p.cfg.RMT.MatrixSizes, p.cfg.RMT.Trials, p.cfg.RMT.Seed)
	result.RMT = simulator.Run()
	if path, err := p.store.WriteRMT(result.Stamp, result.RMT); err != nil {
		return nil, err
	} else {
		result.Files = append(result.Files, path)
	}

	p.log.Info("rendering figures")
	figPath, err := p.renderer.Render(result.Stamp, figures.Input{
		Rebounds:  result.Rebounds.Rebounds,
		Slopes:    result.Prog.Slopes,
		NullSlope: result.RMT.NullSlope,
	})
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, figPath)

	summaryPath, err := report.Write(p.cfg.Paths.SummaryDir, report.Summary{
		Stamp:        result.Stamp,
		RunID:        result.RunID,
		RecordCount:  len(result.Records),
		Trend:        result.Trend,
		Rebounds:     result.Rebounds,
		Progressions: result.Prog,
		RMT:          result.RMT,
		Files:        result.Files,
	})
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, summaryPath)

	result.Elapsed = time.Since(start)
	p.log.Info("analysis completed in %.1fs", result.Elapsed.Seconds())
	return result, nil
}

// fetchSequences retrieves the two study sequences. The provider handles
// fallback substitution, so an error here means even the fallback failed.
func (p *Pipeline) fetchSequences(ctx context.Context) (recordGaps, starts []int64, err error) {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recordGaps, err = p.provider.Fetch(ctx, oeis.SeqRecordGaps)
		return err
	})
	g.Go(func() error {
		var err error
		starts, err = p.provider.Fetch(ctx, oeis.SeqStartingPrimes)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return recordGaps, starts, nil
}

// RegenerateFigures rebuilds the figure workbook from the most recent
// processed CSVs without rerunning the analysis. Missing rebound or slope
// files abort with a NOT_FOUND error; a missing RMT file degrades to the
// GUE reference constant.
func (p *Pipeline) RegenerateFigures() (string, error) {
	reboundsPath, err := p.store.LatestPath(csvstore.KindRebounds)
	if err != nil {
		return "", err
	}
	slopesPath, err := p.store.LatestPath(csvstore.KindProgressionSlopes)
	if err != nil {
		return "", err
	}

	rebounds, err := csvstore.ReadRebounds(reboundsPath)
	if err != nil {
		return "", err
	}
	slopes, err := csvstore.ReadSlopes(slopesPath)
	if err != nil {
		return "", err
	}

	nullSlope := gaps.GUENullSlope
	if rmtPath, err := p.store.LatestPath(csvstore.KindRMT); err == nil {
		if rmtResult, err := csvstore.ReadRMT(rmtPath); err == nil {
			nullSlope = rmtResult.NullSlope
		}
	} else {
		p.log.Warn("no RMT output found, using GUE reference slope %.2f", nullSlope)
	}

	p.log.Info("regenerating figures from %s and %s", reboundsPath, slopesPath)
	return p.renderer.Render(core.NewRunStamp(time.Now()), figures.Input{
		Rebounds:  rebounds,
		Slopes:    slopes,
		NullSlope: nullSlope,
	})
}
