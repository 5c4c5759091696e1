// Package testkit holds invariant checks shared by tests and fuzz targets.
package testkit

import (
	"fmt"

	"sniff/internal/detect"
	"sniff/internal/style"
)

// CheckResultInvariants verifies that a classification is internally
// consistent:
//  1. the tally accounts for exactly the usable lines
//  2. no style scores above the number of usable lines
//  3. every contender clears the cutoff and is listed once
//  4. the chosen style is the first contender, or None when there are none
func CheckResultInvariants(res detect.Result) error {
	total := 0
	for run, n := range res.Tally {
		if n <= 0 {
			return fmt.Errorf("tally entry %q has non-positive count %d", run, n)
		}
		total += n
	}
	if total != res.UsableLines {
		return fmt.Errorf("tally covers %d lines, usable lines %d", total, res.UsableLines)
	}

	best := 0
	for k, v := range res.Scores {
		if !k.Valid() {
			return fmt.Errorf("score recorded for invalid style %d", k)
		}
		if v <= 0 || v > res.UsableLines {
			return fmt.Errorf("score %s=%d outside 1..%d", k, v, res.UsableLines)
		}
		best = max(best, v)
	}
	if best != res.MaxScore {
		return fmt.Errorf("max score %d, recorded %d", best, res.MaxScore)
	}

	seen := make(map[style.Kind]bool, len(res.Contenders))
	for _, k := range res.Contenders {
		if seen[k] {
			return fmt.Errorf("contender %s listed twice", k)
		}
		seen[k] = true
		if res.Scores[k] < res.Cutoff() {
			return fmt.Errorf("contender %s scored %d below cutoff %d", k, res.Scores[k], res.Cutoff())
		}
	}

	switch {
	case len(res.Contenders) == 0:
		if res.Found || res.Style != style.None {
			return fmt.Errorf("no contenders but style %s", res.Style)
		}
	case res.Style != res.Contenders[0]:
		return fmt.Errorf("chose %s, first contender is %s", res.Style, res.Contenders[0])
	case !res.Found:
		return fmt.Errorf("style %s chosen but not marked found", res.Style)
	}
	return nil
}
