package audit

import "math"

// Score is a confidence percentage derived from a report. The zero value is
// Unavailable: no recognizable confidence phrase was found in the report text.
type Score struct {
	Percent float64
	Known   bool
}

// Unavailable is the sentinel for a report without an extractable confidence.
var Unavailable = Score{}

func NewScore(percent float64) Score {
	return Score{Percent: percent, Known: true}
}

// Rounded returns the percent rounded to the nearest integer for display.
func (s Score) Rounded() int {
	return int(math.Round(s.Percent))
}

// Clamped bounds the percent to [0,100]. Extraction propagates out-of-range
// values as-is; presentation clamps.
func (s Score) Clamped() float64 {
	if s.Percent < 0 {
		return 0
	}
	if s.Percent > 100 {
		return 100
	}
	return s.Percent
}
