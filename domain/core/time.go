package core

import (
	"time"
)

// Timestamp represents a point in time with timezone awareness
type Timestamp time.Time

// NewTimestamp creates a new timestamp from time.Time
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp(t)
}

// Now returns the current timestamp
func Now() Timestamp {
	return Timestamp(time.Now())
}

// Time returns the underlying time.Time
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// IsZero checks if the timestamp is zero
func (t Timestamp) IsZero() bool {
	return time.Time(t).IsZero()
}

// RunStampLayout is the filename-safe layout stamped onto every artifact
// produced by a run.
const RunStampLayout = "20060102_150405"

// RunStamp is the filename-safe timestamp shared by all artifacts of a run
type RunStamp string

// NewRunStamp derives a run stamp from a point in time
func NewRunStamp(t time.Time) RunStamp {
	return RunStamp(t.Format(RunStampLayout))
}

func (s RunStamp) String() string { return string(s) }

// Time parses the stamp back into a time.Time
func (s RunStamp) Time() (time.Time, error) {
	return time.Parse(RunStampLayout, string(s))
}
