package oeis

// Archive identifiers for the two sequences the study needs
const (
	SeqRecordGaps     = 5250 // A005250: record prime gaps
	SeqStartingPrimes = 101  // A000101: primes starting each record gap
)

// Built-in data substituted when the archive is unreachable
var fallbackTables = map[int][]int64{
	SeqRecordGaps: {
		1, 2, 4, 6, 8, 14, 18, 20, 22, 34,
		36, 44, 52, 72, 86, 96, 112, 114, 118, 132,
	},
	SeqStartingPrimes: {
		2, 3, 7, 23, 89, 113, 523, 887, 1129, 1327,
		9551, 15683, 19609, 31397, 155921,
	},
}

// FallbackSequence returns the built-in table for a sequence capped at
// maxTerms, or nil for unknown identifiers.
func FallbackSequence(seqID, maxTerms int) []int64 {
	table, ok := fallbackTables[seqID]
	if !ok {
		return nil
	}
	if maxTerms > 0 && len(table) > maxTerms {
		table = table[:maxTerms]
	}
	out := make([]int64, len(table))
	copy(out, table)
	return out
}
