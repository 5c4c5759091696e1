package detect

import (
	"reflect"
	"strings"
	"testing"

	"sniff/internal/style"
)

func repeat(line string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = line
	}
	return out
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  style.Kind
	}{
		{
			name:  "empty input",
			lines: nil,
			want:  style.None,
		},
		{
			name:  "blank and unindented only",
			lines: []string{"", "   ", "\t", "foo", "bar baz"},
			want:  style.None,
		},
		{
			name:  "tabs",
			lines: []string{"func x() {", "\tfoo", "\t\tbar", "}"},
			want:  style.Tabs,
		},
		{
			name:  "two spaces",
			lines: []string{"  foo", "    bar", "  baz"},
			want:  style.Spaces2,
		},
		{
			name: "two-space runs dominate four-space runs",
			lines: concat(
				repeat("  a", 5),
				repeat("      b", 3),
				repeat("    c", 2),
			),
			want: style.Spaces2,
		},
		{
			name:  "four spaces",
			lines: concat(repeat("    a", 5), repeat("        b", 3)),
			want:  style.Spaces4,
		},
		{
			name:  "eight spaces",
			lines: concat(repeat("        a", 4), repeat("                b", 2)),
			want:  style.Spaces8,
		},
		{
			name:  "emacs tab and two spaces",
			lines: []string{"  a", "\tb", "\t  c", "\t\td", "\t\t  e"},
			want:  style.Emacs24,
		},
		{
			name:  "emacs tab and four spaces",
			lines: []string{"    a", "\tb", "\t    c", "\t\t    d"},
			want:  style.Emacs48,
		},
		{
			name:  "emacs tab and up to three two-space units",
			lines: []string{"  a", "    b", "      c", "\td", "\t  e", "\t      f"},
			want:  style.Emacs28,
		},
		{
			name:  "form feed is not indentation",
			lines: []string{"\fint x;", "\fint y;", "plain"},
			want:  style.None,
		},
		{
			name:  "vertical tab and carriage return are not indentation",
			lines: []string{"\vint x;", "\rint y;"},
			want:  style.None,
		},
		{
			name:  "odd spaces match nothing",
			lines: []string{"   a", "     b"},
			want:  style.None,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.lines)
			if got.Style != tt.want {
				t.Fatalf("Classify() = %v (scores %v, contenders %v), want %v",
					got.Style, got.Scores, got.Contenders, tt.want)
			}
			if got.Found != tt.want.Valid() {
				t.Fatalf("Found = %v for style %v", got.Found, got.Style)
			}
		})
	}
}

func TestClassifyWorkedExample(t *testing.T) {
	lines := []string{"\tfoo", "\tbar", "\t\tbaz", "", "   noindent-mixed \t x", "qux"}

	usable := Preprocess(lines)
	if want := []string{"\tfoo", "\tbar", "\t\tbaz"}; !reflect.DeepEqual(usable, want) {
		t.Fatalf("Preprocess() = %q, want %q", usable, want)
	}

	tally := Tally(usable)
	if want := map[string]int{"\t": 2, "\t\t": 1}; !reflect.DeepEqual(tally, want) {
		t.Fatalf("Tally() = %v, want %v", tally, want)
	}

	scores := Score(tally)
	wantScores := Scores{style.Tabs: 3, style.Emacs24: 3, style.Emacs28: 3, style.Emacs48: 3}
	if !reflect.DeepEqual(scores, wantScores) {
		t.Fatalf("Score() = %v, want %v", scores, wantScores)
	}

	res := Classify(lines)
	if res.Style != style.Tabs {
		t.Fatalf("Classify() = %v, want tabs", res.Style)
	}
	wantContenders := []style.Kind{style.Tabs, style.Emacs24, style.Emacs48, style.Emacs28}
	if !reflect.DeepEqual(res.Contenders, wantContenders) {
		t.Fatalf("Contenders = %v, want %v", res.Contenders, wantContenders)
	}
	if res.UsableLines != 3 || res.MaxScore != 3 {
		t.Fatalf("UsableLines = %d, MaxScore = %d", res.UsableLines, res.MaxScore)
	}
}

func TestClassifyIgnoresBlockComments(t *testing.T) {
	lines := []string{
		"/*",
		"    licensed under",
		"    the terms of",
		"        whatever",
		" */",
		"int main() {",
		"\treturn 0;",
		"\tif (x) {",
		"\t\ty();",
		"\t}",
		"}",
	}

	res := Classify(lines)
	if res.Style != style.Tabs {
		t.Fatalf("Classify() = %v, want tabs (tally %v)", res.Style, res.Tally)
	}
	if want := map[string]int{"\t": 3, "\t\t": 1}; !reflect.DeepEqual(res.Tally, want) {
		t.Fatalf("Tally = %v, want %v", res.Tally, want)
	}
}

func TestPreprocessJoinsAroundInlineComment(t *testing.T) {
	lines := []string{"\tx = 1; /* start", "    still comment */ y", "\tz"}
	got := Preprocess(lines)
	want := []string{"\tx = 1;  y", "\tz"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Preprocess() = %q, want %q", got, want)
	}
}

func TestPreprocessRemovesEachCommentSeparately(t *testing.T) {
	lines := []string{"/* a", "    spaced */", "\tcode", "\t\tmore", "/* b */", "  x"}
	got := Preprocess(lines)
	want := []string{"\tcode", "\t\tmore", "  x"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Preprocess() = %q, want %q", got, want)
	}
}

func TestPreprocessDropsSpaceBeforeTab(t *testing.T) {
	lines := []string{"  \tfoo", "\t \tbar", "\tok", "    ok"}
	got := Preprocess(lines)
	want := []string{"\tok", "    ok"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Preprocess() = %q, want %q", got, want)
	}
}

func TestTallyKeepsLiteralRuns(t *testing.T) {
	got := Tally([]string{"  \tx", "\t  x", "\t  y"})
	want := map[string]int{"  \t": 1, "\t  ": 2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tally() = %v, want %v", got, want)
	}
}

func TestThresholdBoundaryPrefersWiderBlocks(t *testing.T) {
	// spaces-8 scores 17 and spaces-4 scores 20: exactly 85%.
	atCutoff := concat(repeat("        a", 17), repeat("    b", 3))
	res := Classify(atCutoff)
	if res.Scores[style.Spaces4] != 20 || res.Scores[style.Spaces8] != 17 {
		t.Fatalf("unexpected scores %v", res.Scores)
	}
	if res.Style != style.Spaces8 {
		t.Fatalf("at cutoff: got %v, want spaces-8", res.Style)
	}
	if res.Cutoff() != 17 {
		t.Fatalf("Cutoff() = %d, want 17", res.Cutoff())
	}

	belowCutoff := concat(repeat("        a", 16), repeat("    b", 4))
	res = Classify(belowCutoff)
	if res.Style != style.Spaces4 {
		t.Fatalf("below cutoff: got %v, want spaces-4", res.Style)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	lines := concat(repeat("\ta", 4), repeat("  b", 4), []string{"/* x", "  y */", "\t\tc"})
	first := Classify(lines)
	second := Classify(lines)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("results differ:\n%+v\n%+v", first, second)
	}
}

func TestScoresNeverExceedUsableLines(t *testing.T) {
	inputs := [][]string{
		{"\ta", "\t\tb", "  c", "    d", "        e"},
		concat(repeat("        x", 10), repeat("\t  y", 5)),
		strings.Split("\tone\n  two\n\t    three\n      four", "\n"),
	}
	for _, lines := range inputs {
		res := Classify(lines)
		for k, v := range res.Scores {
			if v > res.UsableLines {
				t.Fatalf("%v scored %d with only %d usable lines", k, v, res.UsableLines)
			}
		}
	}
}

func TestResultSettings(t *testing.T) {
	res := Classify([]string{"    a", "        b"})
	s, ok := res.Settings(style.Table{style.Spaces4: {IndentWidth: 4, TabWidth: 4, ExpandTabs: true}})
	if !ok || s.TabWidth != 4 {
		t.Fatalf("Settings() = %+v, %v", s, ok)
	}

	none := Classify([]string{"plain"})
	if _, ok := none.Settings(nil); ok {
		t.Fatal("undetermined result must not produce settings")
	}
}
