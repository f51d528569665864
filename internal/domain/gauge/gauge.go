// Package gauge computes the visual state of the confidence indicator: the
// filled-arc offset of a circular dial, the displayed percent, and the
// color/label band. It is pure mapping code; animation is driven by the TUI.
package gauge

import (
	"math"

	"github.com/audittrail/trailgauge/internal/domain/audit"
)

// DialRadius is the radius of the dial the presentation layer draws. The
// circumference must stay consistent with it or arc offsets come out wrong.
const DialRadius = 54.0

// Circumference of the dial arc.
var Circumference = 2 * math.Pi * DialRadius

// VisualState is the fully derived presentation of a confidence score.
type VisualState struct {
	DisplayedPercent int
	ArcOffset        float64
	Band             Band
	Known            bool
}

// ArcOffset maps a percent to the dash offset of the filled arc. The mapping
// is monotonically decreasing: a fuller gauge has a smaller offset. Input is
// clamped to [0,100].
func ArcOffset(percent float64) float64 {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return Circumference - (percent/100)*Circumference
}

// Render derives the VisualState for a score. Unavailable scores render at
// zero fill with the neutral band; they are never presented as a numeric 0%.
func Render(score audit.Score) VisualState {
	if !score.Known {
		return VisualState{
			DisplayedPercent: 0,
			ArcOffset:        ArcOffset(0),
			Band:             Unknown,
			Known:            false,
		}
	}
	p := score.Clamped()
	return VisualState{
		DisplayedPercent: int(math.Round(p)),
		ArcOffset:        ArcOffset(p),
		Band:             BandFor(p),
		Known:            true,
	}
}

// Zero is the forced reset issued at the start of each new request and the
// error-state presentation. It is not a score of 0: no band label is shown.
func Zero() VisualState {
	return VisualState{
		DisplayedPercent: 0,
		ArcOffset:        ArcOffset(0),
		Band:             Reset,
		Known:            false,
	}
}
