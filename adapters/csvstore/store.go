package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"primegaps/domain/core"
	"primegaps/domain/gaps"
	"primegaps/internal/errors"
)

// Artifact kinds, doubling as filename prefixes
const (
	KindRecordGaps        = "record_gaps"
	KindRebounds          = "rebounds"
	KindProgressionSlopes = "progression_slopes"
	KindRMT               = "rmt"
)

// Store persists run artifacts as timestamped CSV files: raw stage outputs
// under rawDir, derived outputs under processedDir. Files are written once
// per run and never rewritten.
type Store struct {
	rawDir       string
	processedDir string
}

// NewStore creates a store over the two artifact directories
func NewStore(rawDir, processedDir string) *Store {
	return &Store{rawDir: rawDir, processedDir: processedDir}
}

// EnsureDirs creates the artifact directories if missing
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.rawDir, s.processedDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.StoreWrite(dir, err)
		}
	}
	return nil
}

// WriteRecords writes the record-gap table under the raw directory
func (s *Store) WriteRecords(stamp core.RunStamp, records []gaps.GapRecord) (string, error) {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{"n", "p_n", "g_n", "R_n"})
	for _, rec := range records {
		rows = append(rows, []string{
			strconv.Itoa(rec.Index),
			strconv.FormatInt(rec.Prime, 10),
			strconv.FormatInt(rec.Gap, 10),
			formatFloat(rec.R),
		})
	}
	return s.writeCSV(s.rawDir, KindRecordGaps, stamp, rows)
}

// WriteRebounds writes detected rebound events under the processed directory
func (s *Store) WriteRebounds(stamp core.RunStamp, rebounds []gaps.Rebound) (string, error) {
	rows := make([][]string, 0, len(rebounds)+1)
	rows = append(rows, []string{"idx", "p_n", "p_next", "R_n", "R_next", "delta"})
	for _, rb := range rebounds {
		rows = append(rows, []string{
			strconv.Itoa(rb.Index),
			strconv.FormatInt(rb.P, 10),
			strconv.FormatInt(rb.PNext, 10),
			formatFloat(rb.R),
			formatFloat(rb.RNext),
			formatFloat(rb.Delta),
		})
	}
	return s.writeCSV(s.processedDir, KindRebounds, stamp, rows)
}

// WriteSlopes writes per-progression slopes under the processed directory
func (s *Store) WriteSlopes(stamp core.RunStamp, slopes []gaps.ProgressionSlope) (string, error) {
	rows := make([][]string, 0, len(slopes)+1)
	rows = append(rows, []string{"a", "q", "beta", "intercept", "r_squared", "p_value", "samples"})
	for _, sl := range slopes {
		rows = append(rows, []string{
			strconv.Itoa(sl.Residue),
			strconv.Itoa(sl.Modulus),
			formatFloat(sl.Beta),
			formatFloat(sl.Intercept),
			formatFloat(sl.R2),
			formatFloat(sl.PValue),
			strconv.Itoa(sl.Samples),
		})
	}
	return s.writeCSV(s.processedDir, KindProgressionSlopes, stamp, rows)
}

// WriteRMT writes per-size spacing statistics under the processed directory.
// The null slope is repeated on every row so the file stands alone.
func (s *Store) WriteRMT(stamp core.RunStamp, result gaps.RMTResult) (string, error) {
	rows := make([][]string, 0, len(result.Sizes)+1)
	rows = append(rows, []string{"size", "trials", "mean_spacing", "spacing_variance", "slope", "null_slope"})
	for _, sz := range result.Sizes {
		rows = append(rows, []string{
			strconv.Itoa(sz.MatrixSize),
			strconv.Itoa(sz.Trials),
			formatFloat(sz.MeanSpacing),
			formatFloat(sz.SpacingVariance),
			formatFloat(sz.SlopeVsIndex),
			formatFloat(result.NullSlope),
		})
	}
	return s.writeCSV(s.processedDir, KindRMT, stamp, rows)
}

// LatestPath returns the newest timestamped file of the given kind. Run
// stamps sort lexicographically, so the last name wins.
func (s *Store) LatestPath(kind string) (string, error) {
	dir := s.processedDir
	if kind == KindRecordGaps {
		dir = s.rawDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.NotFound(fmt.Sprintf("%s data", kind))
		}
		return "", errors.StoreRead(dir, err)
	}

	var names []string
	prefix := kind + "_"
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".csv") {
			continue
		}
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", errors.NotFound(fmt.Sprintf("%s data", kind))
	}

	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1]), nil
}

func (s *Store) writeCSV(dir, kind string, stamp core.RunStamp, rows [][]string) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.csv", kind, stamp))

	f, err := os.Create(path)
	if err != nil {
		return "", errors.StoreWrite(path, err)
	}
	defer f.Close()

	if err := writeRows(f, rows); err != nil {
		return "", errors.StoreWrite(path, err)
	}
	return path, nil
}

// writeRows emits CSV rows and reports any buffered write error, including
// one surfacing only on the final flush.
func writeRows(out io.Writer, rows [][]string) error {
	w := csv.NewWriter(out)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
