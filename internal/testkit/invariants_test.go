package testkit

import (
	"strings"
	"testing"

	"sniff/internal/detect"
	"sniff/internal/style"
)

func TestCheckResultInvariantsAcceptsClassifierOutput(t *testing.T) {
	inputs := [][]string{
		nil,
		{"", "   ", "plain"},
		{"\tfoo", "\tbar", "\t\tbaz", "", "   noindent-mixed \t x", "qux"},
		{"  a", "    b", "  c"},
		{"\t  a", "\t\t  b", "\tc"},
	}
	for _, lines := range inputs {
		if err := CheckResultInvariants(detect.Classify(lines)); err != nil {
			t.Errorf("%q: %v", lines, err)
		}
	}
}

func TestCheckResultInvariantsRejectsBrokenResults(t *testing.T) {
	good := detect.Classify([]string{"\ta", "\t\tb"})

	tests := []struct {
		name   string
		mutate func(*detect.Result)
		want   string
	}{
		{"tally mismatch", func(r *detect.Result) { r.UsableLines++ }, "tally covers"},
		{"score too high", func(r *detect.Result) { r.Scores = detect.Scores{style.Tabs: 9}; r.MaxScore = 9 }, "outside"},
		{"wrong choice", func(r *detect.Result) { r.Style = style.Spaces2 }, "first contender"},
		{"not found", func(r *detect.Result) { r.Found = false }, "not marked found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := good
			r.Scores = make(detect.Scores, len(good.Scores))
			for k, v := range good.Scores {
				r.Scores[k] = v
			}
			tt.mutate(&r)
			err := CheckResultInvariants(r)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
