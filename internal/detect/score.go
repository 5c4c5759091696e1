package detect

import "sniff/internal/style"

// Scores maps a style to the number of usable lines consistent with it.
// Styles that matched nothing are absent.
type Scores map[style.Kind]int

// Score adds each run's count to every style that accepts the run. A single
// run usually feeds several styles.
func Score(tally map[string]int) Scores {
	scores := make(Scores)
	for run, count := range tally {
		if count <= 0 {
			continue
		}
		for _, k := range style.All() {
			if k.Matches(run) {
				scores[k] += count
			}
		}
	}
	return scores
}

// Max returns the highest score, or 0 for an empty table.
func (s Scores) Max() int {
	best := 0
	for _, v := range s {
		if v > best {
			best = v
		}
	}
	return best
}
