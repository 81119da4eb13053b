package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"primegaps/domain/core"
	"primegaps/domain/gaps"
	"primegaps/internal/errors"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// SummaryPrefix is the filename prefix for generated summaries
const SummaryPrefix = "analysis_summary"

// Summary holds everything the markdown report needs from a run
type Summary struct {
	Stamp        core.RunStamp
	RunID        core.RunID
	RecordCount  int
	Trend        gaps.TrendFit
	Rebounds     gaps.ReboundStats
	Progressions gaps.ProgressionSummary
	RMT          gaps.RMTResult
	Files        []string
}

// Markdown renders the run summary in the report layout used for publication
func (s Summary) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Analysis Summary - %s\n\n", s.Stamp)
	fmt.Fprintf(&b, "Run ID: %s\n\n", s.RunID)

	b.WriteString("## Record Gaps\n")
	fmt.Fprintf(&b, "- Total: %d\n", s.RecordCount)
	fmt.Fprintf(&b, "- Global slope: %.6f ± %.6f\n", s.Trend.Slope, s.Trend.SlopeStdErr)
	fmt.Fprintf(&b, "- R²: %.4f\n", s.Trend.R2)
	fmt.Fprintf(&b, "- p-value: %.2e\n\n", s.Trend.PValue)

	b.WriteString("## Rebounds\n")
	fmt.Fprintf(&b, "- Count: %d\n", s.Rebounds.Count)
	fmt.Fprintf(&b, "- Percentage: %.1f%%\n", s.Rebounds.Percentage)
	fmt.Fprintf(&b, "- Mean amplitude: %.6f\n", s.Rebounds.MeanAmplitude)
	fmt.Fprintf(&b, "- Largest: %.6f\n\n", s.Rebounds.MaxAmplitude)

	b.WriteString("## Arithmetic Progressions\n")
	fmt.Fprintf(&b, "- Total: %d\n", s.Progressions.Total)
	fmt.Fprintf(&b, "- β > 0: %d (%.1f%%)\n", s.Progressions.PositiveCount, s.Progressions.PositivePct)
	fmt.Fprintf(&b, "- β < 0: %d (%.1f%%)\n\n", s.Progressions.NegativeCount, s.Progressions.NegativePct)

	b.WriteString("## RMT Null Model\n")
	fmt.Fprintf(&b, "- Expected slope under randomness: %.6f\n", s.RMT.NullSlope)
	for _, sz := range s.RMT.Sizes {
		fmt.Fprintf(&b, "- n=%d: mean spacing %.4f, variance %.4f\n",
			sz.MatrixSize, sz.MeanSpacing, sz.SpacingVariance)
	}
	b.WriteString("\n")

	if len(s.Files) > 0 {
		b.WriteString("## Files Generated\n")
		for i, file := range s.Files {
			fmt.Fprintf(&b, "%d. %s\n", i+1, file)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Write persists the summary as analysis_summary_<stamp>.md under dir
func Write(dir string, s Summary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.StoreWrite(dir, err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.md", SummaryPrefix, s.Stamp))
	if err := os.WriteFile(path, []byte(s.Markdown()), 0o644); err != nil {
		return "", errors.StoreWrite(path, err)
	}
	return path, nil
}

// Latest returns the newest summary file in dir
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NotFound("analysis summary")
		}
		return "", errors.Wrap(err, "failed to list summary directory")
	}

	latest := ""
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, SummaryPrefix+"_") || !strings.HasSuffix(name, ".md") {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	if latest == "" {
		return "", errors.NotFound("analysis summary")
	}
	return filepath.Join(dir, latest), nil
}

// RenderHTML converts summary markdown to a standalone HTML fragment
func RenderHTML(md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.ToHTML(md, p, renderer)
}
