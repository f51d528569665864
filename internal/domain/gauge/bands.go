package gauge

// Band maps a percent range to a color and descriptive label. The table is
// contiguous and exhaustive over [0,100] and ordered from highest floor down,
// so lookup takes the first band whose floor the percent meets.
type Band struct {
	Name  string
	Label string
	Color string
	Floor int
}

var bands = []Band{
	{Name: "high", Label: "High confidence", Color: "42", Floor: 80},
	{Name: "moderate", Label: "Moderate confidence", Color: "220", Floor: 50},
	{Name: "low", Label: "Low confidence", Color: "208", Floor: 25},
	{Name: "critical", Label: "Critical risk", Color: "196", Floor: 0},
}

// Unknown is the band for reports without an extractable confidence score. It
// is deliberately neutral: an unavailable score is not a low score.
var Unknown = Band{
	Name:  "unknown",
	Label: "Confidence score unavailable",
	Color: "245",
	Floor: 0,
}

// Reset is the presentation used for the forced zero at the start of a
// request and for the error state. It makes no claim about confidence, so it
// carries no label and a dim color rather than the critical band's.
var Reset = Band{
	Name:  "reset",
	Color: "240",
	Floor: 0,
}

// BandFor returns the band for a percent, clamping out-of-range input.
func BandFor(percent float64) Band {
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	for _, b := range bands {
		if percent >= float64(b.Floor) {
			return b
		}
	}
	return bands[len(bands)-1]
}
