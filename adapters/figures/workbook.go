package figures

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"primegaps/domain/core"
	"primegaps/domain/gaps"
	"primegaps/internal/analysis"
	"primegaps/internal/errors"

	"github.com/montanaflynn/stats"
	"github.com/xuri/excelize/v2"
)

// WorkbookName is the filename prefix for generated figure workbooks
const WorkbookName = "prime_gap_figures"

// ComparisonModuli are the q values shown in the empirical-vs-RMT bars
var ComparisonModuli = []int{4, 8, 12, 16, 20, 29}

const histogramBins = 10

// Input bundles the analyzer outputs the figures are rendered from.
// Rendering is pure: nothing here is recomputed beyond binning and the
// figure-5 overlay fit.
type Input struct {
	Rebounds  []gaps.Rebound
	Slopes    []gaps.ProgressionSlope
	NullSlope float64
}

// Renderer writes all figures into a single workbook, one data sheet with an
// embedded chart per figure.
type Renderer struct {
	dir string
}

// NewRenderer creates a renderer writing into dir
func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// Render produces the figure workbook for one run and returns its path
func (r *Renderer) Render(stamp core.RunStamp, input Input) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", errors.FigureRender("workbook", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := r.figureEvolution(f, input.Rebounds); err != nil {
		return "", err
	}
	if err := r.figureAmplitudes(f, input.Rebounds); err != nil {
		return "", err
	}
	if err := r.figureScaling(f, input.Slopes); err != nil {
		return "", err
	}
	if err := r.figureRMTComparison(f, input.Slopes, input.NullSlope); err != nil {
		return "", err
	}
	if err := r.figureCombined(f, input.Slopes); err != nil {
		return "", err
	}

	// The default sheet was renamed by the first figure; make it active.
	if idx, err := f.GetSheetIndex("Figure1"); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	path := filepath.Join(r.dir, fmt.Sprintf("%s_%s.xlsx", WorkbookName, stamp))
	if err := f.SaveAs(path); err != nil {
		return "", errors.FigureRender("workbook", err)
	}
	return path, nil
}

// figureEvolution plots R_n against record index with the post-rebound value
// overlaid, the workbook analogue of the evolution scatter.
func (r *Renderer) figureEvolution(f *excelize.File, rebounds []gaps.Rebound) error {
	const sheet = "Figure1"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return errors.FigureRender(sheet, err)
	}

	if err := setRow(f, sheet, 1, "idx", "R_n", "R_next"); err != nil {
		return err
	}
	for i, rb := range rebounds {
		if err := setRow(f, sheet, i+2, rb.Index, rb.R, rb.RNext); err != nil {
			return err
		}
	}

	last := len(rebounds) + 1
	chart := &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{
			{
				Name:       "R_n",
				Categories: seriesRef(sheet, "A", last),
				Values:     seriesRef(sheet, "B", last),
			},
			{
				Name:       "R after rebound",
				Categories: seriesRef(sheet, "A", last),
				Values:     seriesRef(sheet, "C", last),
			},
		},
		Title: []excelize.RichTextRun{{Text: "Evolution of normalized record gaps"}},
	}
	return addChart(f, sheet, "E2", chart)
}

// figureAmplitudes renders the rebound amplitude histogram
func (r *Renderer) figureAmplitudes(f *excelize.File, rebounds []gaps.Rebound) error {
	const sheet = "Figure2"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.FigureRender(sheet, err)
	}

	deltas := make([]float64, 0, len(rebounds))
	for _, rb := range rebounds {
		deltas = append(deltas, rb.Delta)
	}
	labels, counts := binValues(deltas, histogramBins)

	if err := setRow(f, sheet, 1, "bin", "count"); err != nil {
		return err
	}
	for i := range labels {
		if err := setRow(f, sheet, i+2, labels[i], counts[i]); err != nil {
			return err
		}
	}

	last := len(labels) + 1
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{{
			Name:       "rebound amplitude",
			Categories: seriesRef(sheet, "A", last),
			Values:     seriesRef(sheet, "B", last),
		}},
		Title: []excelize.RichTextRun{{Text: "Distribution of rebound amplitudes"}},
	}
	return addChart(f, sheet, "D2", chart)
}

// figureScaling renders mean slope per modulus with its spread, only for
// moduli clearing the minimum-sample rule.
func (r *Renderer) figureScaling(f *excelize.File, slopes []gaps.ProgressionSlope) error {
	const sheet = "Figure3"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.FigureRender(sheet, err)
	}

	type qRow struct {
		q    int
		mean float64
		std  float64
	}
	var rows []qRow
	for q, betas := range groupByModulus(slopes) {
		if len(betas) < gaps.MinSlopesPerModulus {
			continue
		}
		mean, _ := stats.Mean(betas)
		std, _ := stats.StandardDeviationSample(betas)
		rows = append(rows, qRow{q: q, mean: mean, std: std})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].q < rows[j].q })

	if err := setRow(f, sheet, 1, "q", "mean_beta", "std_beta"); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row.q, row.mean, row.std); err != nil {
			return err
		}
	}

	last := len(rows) + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       "mean β",
				Categories: seriesRef(sheet, "A", last),
				Values:     seriesRef(sheet, "B", last),
			},
			{
				Name:       "std β",
				Categories: seriesRef(sheet, "A", last),
				Values:     seriesRef(sheet, "C", last),
			},
		},
		Title: []excelize.RichTextRun{{Text: "Scaling of β with modulus q"}},
	}
	return addChart(f, sheet, "E2", chart)
}

// figureRMTComparison renders empirical mean slopes against the simulator's
// null slope for the fixed comparison moduli.
func (r *Renderer) figureRMTComparison(f *excelize.File, slopes []gaps.ProgressionSlope, nullSlope float64) error {
	const sheet = "Figure4"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.FigureRender(sheet, err)
	}

	byQ := groupByModulus(slopes)
	if err := setRow(f, sheet, 1, "q", "empirical", "rmt_null"); err != nil {
		return err
	}
	for i, q := range ComparisonModuli {
		var empirical interface{}
		if betas, ok := byQ[q]; ok && len(betas) > 0 {
			mean, _ := stats.Mean(betas)
			empirical = mean
		}
		if err := setRow(f, sheet, i+2, q, empirical, nullSlope); err != nil {
			return err
		}
	}

	last := len(ComparisonModuli) + 1
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       "Empirical",
				Categories: seriesRef(sheet, "A", last),
				Values:     seriesRef(sheet, "B", last),
			},
			{
				Name:       "RMT (GUE)",
				Categories: seriesRef(sheet, "A", last),
				Values:     seriesRef(sheet, "C", last),
			},
		},
		Title: []excelize.RichTextRun{{Text: "Empirical vs. RMT predictions"}},
	}
	return addChart(f, sheet, "E2", chart)
}

// figureCombined renders mean β against log10(q) with a fitted trend line,
// the only place the renderer fits anything.
func (r *Renderer) figureCombined(f *excelize.File, slopes []gaps.ProgressionSlope) error {
	const sheet = "Figure5"
	if _, err := f.NewSheet(sheet); err != nil {
		return errors.FigureRender(sheet, err)
	}

	type point struct {
		logQ float64
		mean float64
	}
	var points []point
	for q, betas := range groupByModulus(slopes) {
		if len(betas) < 2 {
			continue
		}
		mean, _ := stats.Mean(betas)
		// Discard degenerate fits before the overlay regression.
		if mean <= -0.5 || mean >= 1.5 {
			continue
		}
		points = append(points, point{logQ: math.Log10(float64(q)), mean: mean})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].logQ < points[j].logQ })

	x := make([]float64, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.logQ
		y[i] = p.mean
	}
	fit := analysis.FitLine(x, y)

	if err := setRow(f, sheet, 1, "log10_q", "mean_beta", "fitted"); err != nil {
		return err
	}
	for i, p := range points {
		fitted := fit.Intercept + fit.Slope*p.logQ
		if err := setRow(f, sheet, i+2, p.logQ, p.mean, fitted); err != nil {
			return err
		}
	}

	last := len(points) + 1
	chart := &excelize.Chart{
		Type: excelize.Scatter,
		Series: []excelize.ChartSeries{
			{
				Name:       "mean β",
				Categories: seriesRef(sheet, "A", last),
				Values:     seriesRef(sheet, "B", last),
			},
			{
				Name:       fmt.Sprintf("β = %.3f + %.3f·log10(q)", fit.Intercept, fit.Slope),
				Categories: seriesRef(sheet, "A", last),
				Values:     seriesRef(sheet, "C", last),
			},
		},
		Title: []excelize.RichTextRun{{Text: "Combined scaling of β"}},
	}
	return addChart(f, sheet, "E2", chart)
}

func groupByModulus(slopes []gaps.ProgressionSlope) map[int][]float64 {
	byQ := make(map[int][]float64)
	for _, sl := range slopes {
		byQ[sl.Modulus] = append(byQ[sl.Modulus], sl.Beta)
	}
	return byQ
}

// binValues splits values into equal-width bins and returns label/count pairs
func binValues(values []float64, bins int) ([]string, []int) {
	if len(values) == 0 || bins < 1 {
		return nil, nil
	}
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)
	if min == max {
		return []string{fmt.Sprintf("%.4f", min)}, []int{len(values)}
	}

	width := (max - min) / float64(bins)
	labels := make([]string, bins)
	counts := make([]int, bins)
	for i := 0; i < bins; i++ {
		lo := min + float64(i)*width
		labels[i] = fmt.Sprintf("%.4f - %.4f", lo, lo+width)
	}
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}
	return labels, counts
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.FigureRender(sheet, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.FigureRender(sheet, err)
	}
	return nil
}

func addChart(f *excelize.File, sheet, cell string, chart *excelize.Chart) error {
	if err := f.AddChart(sheet, cell, chart); err != nil {
		return errors.FigureRender(sheet, err)
	}
	return nil
}

func seriesRef(sheet, col string, lastRow int) string {
	if lastRow < 2 {
		lastRow = 2
	}
	return fmt.Sprintf("'%s'!$%s$2:$%s$%d", sheet, col, col, lastRow)
}

// LatestWorkbook returns the newest figure workbook in dir
func LatestWorkbook(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NotFound("figure workbook")
		}
		return "", errors.Wrap(err, "failed to list figures directory")
	}

	var names []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, WorkbookName+"_") || !strings.HasSuffix(name, ".xlsx") {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", errors.NotFound("figure workbook")
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}
