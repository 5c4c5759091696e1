package fuzztests

import (
	"bytes"
	"strings"
	"testing"

	"sniff/internal/detect"
	"sniff/internal/source"
	"sniff/internal/testkit"
)

const maxFuzzInput = 1 << 16

func FuzzClassify(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		lines, _, err := source.ReadLines(bytes.NewReader(input), source.DefaultMaxLines)
		if err != nil {
			t.Fatalf("ReadLines: %v", err)
		}

		res := detect.Classify(lines)
		if err := testkit.CheckResultInvariants(res); err != nil {
			t.Fatalf("invariant violated: %v", err)
		}
		again := detect.Classify(lines)
		if again.Style != res.Style || again.MaxScore != res.MaxScore {
			t.Fatalf("classification not deterministic: %s/%d then %s/%d",
				res.Style, res.MaxScore, again.Style, again.MaxScore)
		}
	})
}

func FuzzReadLines(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = input[:maxFuzzInput]
		}
		lines, flags, err := source.ReadLines(bytes.NewReader(input), 0)
		if err != nil {
			t.Fatalf("ReadLines: %v", err)
		}
		if flags.Has(source.FileTruncated) {
			t.Fatal("unlimited read reported truncation")
		}
		for i, line := range lines {
			if strings.Contains(line, "\n") {
				t.Fatalf("line %d contains a newline: %q", i, line)
			}
		}
	})
}
