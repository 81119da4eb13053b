package core

import (
	"testing"
	"time"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

func TestRunStampRoundTrip(t *testing.T) {
	at := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	stamp := NewRunStamp(at)

	if stamp.String() != "20260102_150405" {
		t.Errorf("unexpected stamp: %s", stamp)
	}

	parsed, err := stamp.Time()
	if err != nil {
		t.Fatalf("failed to parse stamp: %v", err)
	}
	if !parsed.Equal(at) {
		t.Errorf("expected %v, got %v", at, parsed)
	}
}

// TestRunStampOrdering verifies stamps sort lexicographically by time,
// which the latest-file lookup relies on.
func TestRunStampOrdering(t *testing.T) {
	earlier := NewRunStamp(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC))
	later := NewRunStamp(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	if string(earlier) >= string(later) {
		t.Errorf("expected %s < %s", earlier, later)
	}
}
