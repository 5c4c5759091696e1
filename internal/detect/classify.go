package detect

import "sniff/internal/style"

// Result is the outcome of one classification together with the data that
// produced it.
type Result struct {
	Style style.Kind
	// Found is false when no usable indentation was seen.
	Found             bool
	UsableLines       int
	Tally             map[string]int
	Scores            Scores
	MaxScore          int
	Contenders        []style.Kind
	ThresholdPermille int
}

// Classify runs the pipeline with the default policy.
func Classify(lines []string) Result {
	return DefaultPolicy().Classify(lines)
}

// Classify runs Preprocess, Tally, Score and Select over lines.
func (p Policy) Classify(lines []string) Result {
	p = p.effective()

	usable := Preprocess(lines)
	tally := Tally(usable)
	scores := Score(tally)
	sel := p.Select(scores)

	return Result{
		Style:             sel.Style,
		Found:             sel.Style.Valid(),
		UsableLines:       len(usable),
		Tally:             tally,
		Scores:            scores,
		MaxScore:          sel.MaxScore,
		Contenders:        sel.Contenders,
		ThresholdPermille: p.ThresholdPermille,
	}
}

// Settings maps the detected style through table. It reports false when the
// style is undetermined; callers should then leave their settings alone.
func (r Result) Settings(table style.Table) (style.Settings, bool) {
	if !r.Found {
		return style.Settings{}, false
	}
	return table.Lookup(r.Style)
}

// Cutoff returns the minimum score a contender needed, rounded up.
func (r Result) Cutoff() int {
	if r.MaxScore == 0 {
		return 0
	}
	n := r.MaxScore * r.ThresholdPermille
	return (n + 999) / 1000
}
