package ports

import (
	"context"
)

// SequenceProvider fetches a numeric sequence by its archive identifier.
// Implementations must cap the result at their configured term limit and
// fall back to built-in data rather than failing on transport errors.
type SequenceProvider interface {
	Fetch(ctx context.Context, seqID int) ([]int64, error)
}
