// Package extract derives a confidence score from raw report text using an
// ordered pattern list: most specific phrasing first, first match wins.
package extract

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/audittrail/trailgauge/internal/domain/audit"
)

// DefaultPatterns is the recognized phrasing, in decreasing priority. Each
// expression must capture exactly one numeral group. The block form covers the
// backend's "[ Confidence Score ]" section where the percent sits on its own
// line; the final generic form is the fallback for free-form phrasing.
var DefaultPatterns = []string{
	`(?i)Average Confidence:\s*(\d+(?:\.\d+)?)\s*%`,
	`(?i)Combined Consensus Confidence:\s*(\d+(?:\.\d+)?)\s*%`,
	`(?i)Consensus Confidence:\s*(\d+(?:\.\d+)?)\s*%`,
	`(?i)Consensus:\s*(\d+(?:\.\d+)?)\s*%`,
	`(?is)\[\s*Confidence Score\s*\]\s*(\d+(?:\.\d+)?)\s*%`,
	`(?i)Confidence[^%\n]*?(\d+(?:\.\d+)?)\s*%`,
}

type Extractor struct {
	patterns []*regexp.Regexp
}

// New compiles an ordered pattern list. Every expression needs a single
// capture group for the numeral.
func New(exprs []string) (*Extractor, error) {
	if len(exprs) == 0 {
		exprs = DefaultPatterns
	}
	patterns := make([]*regexp.Regexp, 0, len(exprs))
	for _, expr := range exprs {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid confidence pattern %q: %w", expr, err)
		}
		if re.NumSubexp() != 1 {
			return nil, fmt.Errorf("confidence pattern %q must have exactly one capture group", expr)
		}
		patterns = append(patterns, re)
	}
	return &Extractor{patterns: patterns}, nil
}

// Default returns an extractor over DefaultPatterns.
func Default() *Extractor {
	e, err := New(nil)
	if err != nil {
		panic(err)
	}
	return e
}

// Extract applies the pattern list in order and returns the first captured
// numeral as a score. No scoring or voting across matches: the first pattern
// that matches decides. Out-of-range values are propagated as-is; the renderer
// clamps. If nothing matches, the result is Unavailable.
func (e *Extractor) Extract(reportText string) audit.Score {
	for _, re := range e.patterns {
		m := re.FindStringSubmatch(reportText)
		if len(m) != 2 {
			continue
		}
		val, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		return audit.NewScore(val)
	}
	return audit.Unavailable
}
