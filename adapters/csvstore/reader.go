package csvstore

import (
	"encoding/csv"
	"os"
	"strconv"

	"primegaps/domain/gaps"
	"primegaps/internal/errors"
)

// ReadRebounds parses a rebounds CSV back into domain events. Rows with
// malformed numeric fields are skipped individually.
func ReadRebounds(path string) ([]gaps.Rebound, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}

	var rebounds []gaps.Rebound
	for _, row := range dataRows(rows) {
		if len(row) < 6 {
			continue
		}
		idx, err1 := strconv.Atoi(row[0])
		p, err2 := strconv.ParseInt(row[1], 10, 64)
		pNext, err3 := strconv.ParseInt(row[2], 10, 64)
		r, err4 := strconv.ParseFloat(row[3], 64)
		rNext, err5 := strconv.ParseFloat(row[4], 64)
		delta, err6 := strconv.ParseFloat(row[5], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || err6 != nil {
			continue
		}
		rebounds = append(rebounds, gaps.Rebound{
			Index: idx, P: p, PNext: pNext, R: r, RNext: rNext, Delta: delta,
		})
	}
	return rebounds, nil
}

// ReadSlopes parses a progression-slopes CSV back into domain values
func ReadSlopes(path string) ([]gaps.ProgressionSlope, error) {
	rows, err := readAll(path)
	if err != nil {
		return nil, err
	}

	var slopes []gaps.ProgressionSlope
	for _, row := range dataRows(rows) {
		if len(row) < 7 {
			continue
		}
		a, err1 := strconv.Atoi(row[0])
		q, err2 := strconv.Atoi(row[1])
		beta, err3 := strconv.ParseFloat(row[2], 64)
		intercept, err4 := strconv.ParseFloat(row[3], 64)
		r2, err5 := strconv.ParseFloat(row[4], 64)
		pValue, err6 := strconv.ParseFloat(row[5], 64)
		samples, err7 := strconv.Atoi(row[6])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || err6 != nil || err7 != nil {
			continue
		}
		slopes = append(slopes, gaps.ProgressionSlope{
			Residue: a, Modulus: q, Beta: beta, Intercept: intercept,
			R2: r2, PValue: pValue, Samples: samples,
		})
	}
	return slopes, nil
}

// ReadRMT parses an RMT statistics CSV back into the simulator result shape
func ReadRMT(path string) (gaps.RMTResult, error) {
	rows, err := readAll(path)
	if err != nil {
		return gaps.RMTResult{}, err
	}

	result := gaps.RMTResult{NullSlope: gaps.GUENullSlope}
	for _, row := range dataRows(rows) {
		if len(row) < 6 {
			continue
		}
		size, err1 := strconv.Atoi(row[0])
		trials, err2 := strconv.Atoi(row[1])
		meanSpacing, err3 := strconv.ParseFloat(row[2], 64)
		variance, err4 := strconv.ParseFloat(row[3], 64)
		slope, err5 := strconv.ParseFloat(row[4], 64)
		nullSlope, err6 := strconv.ParseFloat(row[5], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil || err5 != nil || err6 != nil {
			continue
		}
		result.Sizes = append(result.Sizes, gaps.SpacingStats{
			MatrixSize:      size,
			Trials:          trials,
			MeanSpacing:     meanSpacing,
			SpacingVariance: variance,
			SlopeVsIndex:    slope,
		})
		result.NullSlope = nullSlope
	}
	return result, nil
}

func readAll(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.StoreRead(path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.StoreRead(path, err)
	}
	return rows, nil
}

// dataRows strips the header row when present
func dataRows(rows [][]string) [][]string {
	if len(rows) == 0 {
		return nil
	}
	if _, err := strconv.ParseFloat(rows[0][0], 64); err != nil {
		return rows[1:]
	}
	return rows
}
