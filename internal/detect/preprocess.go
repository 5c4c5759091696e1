package detect

import (
	"regexp"
	"strings"
)

var (
	// blockComment is a heuristic; it knows nothing about nesting or string
	// literals.
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)

	blankLine      = regexp.MustCompile(`^\s*$`)
	spaceBeforeTab = regexp.MustCompile(`\t* +\t`)
	unindented     = regexp.MustCompile(`^[^ \t]`)

	leadingRun = regexp.MustCompile(`^[ \t]*`)
)

// Preprocess removes block comments and returns the lines that can say
// something about indentation, in their original order.
func Preprocess(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	text := blockComment.ReplaceAllString(strings.Join(lines, "\n"), "")

	out := make([]string, 0, len(lines))
	for _, line := range strings.Split(text, "\n") {
		if !usable(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func usable(line string) bool {
	switch {
	case blankLine.MatchString(line):
		return false
	case spaceBeforeTab.MatchString(line):
		return false
	case unindented.MatchString(line):
		return false
	}
	return true
}

// Tally counts lines per literal leading-whitespace run.
func Tally(lines []string) map[string]int {
	counts := make(map[string]int)
	for _, line := range lines {
		counts[leadingRun.FindString(line)]++
	}
	return counts
}
