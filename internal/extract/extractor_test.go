package extract_test

import (
	"testing"

	"github.com/audittrail/trailgauge/internal/extract"
)

func TestExtract_LabeledPhrases(t *testing.T) {
	e := extract.Default()

	cases := []struct {
		name string
		text string
		want float64
	}{
		{"average", "Summary...\nAverage Confidence: 73%\n", 73},
		{"combined consensus", "Combined Consensus Confidence: 40%", 40},
		{"consensus confidence", "Consensus Confidence: 55%", 55},
		{"bare consensus", "Consensus: 81%", 81},
		{"block form", "[ Confidence Score ]\n92%\n\n[ Analysis Logic ]", 92},
		{"generic", "Overall confidence is about 66% for this answer.", 66},
		{"fractional", "Average Confidence: 72.6%", 72.6},
		{"case insensitive", "AVERAGE CONFIDENCE: 12%", 12},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score := e.Extract(tc.text)
			if !score.Known {
				t.Fatalf("Expected a score from %q", tc.text)
			}
			if score.Percent != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, score.Percent)
			}
		})
	}
}

func TestExtract_FirstPatternWins(t *testing.T) {
	e := extract.Default()

	// The more specific labeled phrase beats the generic one regardless of
	// position in the text.
	text := "Confidence: 90% overall.\nCombined Consensus Confidence: 40%\n"
	score := e.Extract(text)
	if !score.Known || score.Percent != 40 {
		t.Errorf("Expected the specific pattern to win with 40, got %+v", score)
	}
}

func TestExtract_NoMatchIsUnavailable(t *testing.T) {
	e := extract.Default()

	score := e.Extract("The report has no numbers worth mentioning.")
	if score.Known {
		t.Errorf("Expected unavailable, got %v", score.Percent)
	}
}

func TestExtract_OutOfRangePropagates(t *testing.T) {
	e := extract.Default()

	score := e.Extract("Average Confidence: 105%")
	if !score.Known || score.Percent != 105 {
		t.Errorf("Out-of-range values propagate as-is, got %+v", score)
	}
}

func TestExtract_FractionalRoundsForDisplay(t *testing.T) {
	e := extract.Default()

	score := e.Extract("Average Confidence: 72.6%")
	if score.Rounded() != 73 {
		t.Errorf("Expected display rounding to 73, got %d", score.Rounded())
	}
}

func TestNew_RejectsBadPatterns(t *testing.T) {
	if _, err := extract.New([]string{"("}); err == nil {
		t.Error("Expected error for invalid regexp")
	}
	if _, err := extract.New([]string{`no capture group %`}); err == nil {
		t.Error("Expected error for missing capture group")
	}
	if _, err := extract.New([]string{`(\d+) and (\d+)`}); err == nil {
		t.Error("Expected error for two capture groups")
	}
}

func TestNew_CustomPatternOrder(t *testing.T) {
	e, err := extract.New([]string{
		`(?i)Trust Level:\s*(\d+)%`,
		`(?i)Confidence[^%\n]*?(\d+)\s*%`,
	})
	if err != nil {
		t.Fatal(err)
	}

	score := e.Extract("Confidence: 20%. Trust Level: 80%")
	if !score.Known || score.Percent != 80 {
		t.Errorf("Expected custom first pattern to win with 80, got %+v", score)
	}
}
