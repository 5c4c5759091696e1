package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sniff/internal/detect"
	"sniff/internal/driver"
	"sniff/internal/source"
	"sniff/internal/style"
)

type palette struct {
	found *color.Color
	none  *color.Color
	err   *color.Color
	dim   *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		found: color.New(color.FgGreen, color.Bold),
		none:  color.New(color.FgYellow),
		err:   color.New(color.FgRed, color.Bold),
		dim:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.found, p.none, p.err, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// styleColumn fits the longest style name.
const styleColumn = 9

func renderText(w io.Writer, results []driver.FileResult, opts Options) error {
	pal := newPalette(opts.Color)

	paths := make([]string, len(results))
	width := 0
	for i, r := range results {
		paths[i] = source.DisplayPath(r.Path)
		width = max(width, runewidth.StringWidth(paths[i]))
	}

	var b strings.Builder
	for i, r := range results {
		b.WriteString(runewidth.FillRight(paths[i], width))
		b.WriteString("  ")

		switch {
		case r.Err != nil:
			b.WriteString(pal.err.Sprint("error"))
			b.WriteString("  ")
			b.WriteString(r.Err.Error())
		case !r.Result.Found:
			b.WriteString(pal.none.Sprint(runewidth.FillRight(style.None.String(), styleColumn)))
			b.WriteString("  ")
			b.WriteString(pal.dim.Sprint("no usable indentation"))
		default:
			b.WriteString(pal.found.Sprint(runewidth.FillRight(r.Result.Style.String(), styleColumn)))
			if settings, ok := r.Result.Settings(opts.Table); ok {
				b.WriteString("  ")
				b.WriteString(describeSettings(settings))
			}
		}
		b.WriteString("\n")

		if opts.Explain && r.Err == nil {
			writeExplain(&b, r, pal)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func describeSettings(s style.Settings) string {
	mode := "tabs"
	if s.ExpandTabs {
		mode = "spaces"
	}
	return fmt.Sprintf("indent=%d tab=%d %s", s.IndentWidth, s.TabWidth, mode)
}

func writeExplain(b *strings.Builder, r driver.FileResult, pal palette) {
	res := r.Result

	read := strconv.Itoa(r.Lines)
	if r.Flags.Has(source.FileTruncated) {
		read += ", truncated"
	}
	fmt.Fprintf(b, "    usable lines: %d (read %s)\n", res.UsableLines, read)

	if len(res.Tally) > 0 {
		b.WriteString("    tally:")
		for _, run := range sortedRuns(res.Tally) {
			fmt.Fprintf(b, " %s×%d", strconv.Quote(run), res.Tally[run])
		}
		b.WriteString("\n")
	}

	if len(res.Scores) == 0 {
		b.WriteString(pal.dim.Sprint("    scores: none matched"))
		b.WriteString("\n")
		return
	}

	b.WriteString("    scores:")
	for _, k := range style.All() {
		if v, ok := res.Scores[k]; ok {
			fmt.Fprintf(b, " %s=%d", k, v)
		}
	}
	fmt.Fprintf(b, " (max %d, cutoff %d at %s)\n", res.MaxScore, res.Cutoff(), percent(res.ThresholdPermille))

	names := make([]string, len(res.Contenders))
	for i, k := range res.Contenders {
		names[i] = k.String()
	}
	fmt.Fprintf(b, "    contenders: %s\n", strings.Join(names, " > "))
}

// sortedRuns orders tally keys by descending count, then by run.
func sortedRuns(tally map[string]int) []string {
	runs := make([]string, 0, len(tally))
	for run := range tally {
		runs = append(runs, run)
	}
	sort.Slice(runs, func(i, j int) bool {
		if tally[runs[i]] != tally[runs[j]] {
			return tally[runs[i]] > tally[runs[j]]
		}
		return runs[i] < runs[j]
	})
	return runs
}

func percent(permille int) string {
	return strconv.FormatFloat(float64(permille)/10, 'f', 1, 64) + "%"
}

// RenderStyles lists the catalogue in preference order with the settings a
// host would apply.
func RenderStyles(w io.Writer, policy detect.Policy, table style.Table, format Format) error {
	type row struct {
		Rank     int            `json:"rank" msgpack:"rank"`
		Style    string         `json:"style" msgpack:"style"`
		Pattern  string         `json:"pattern" msgpack:"pattern"`
		Settings style.Settings `json:"settings" msgpack:"settings"`
	}

	order := policy.Order
	if len(order) == 0 {
		order = detect.DefaultOrder()
	}
	rows := make([]row, 0, len(order))
	for i, k := range order {
		settings, _ := table.Lookup(k)
		rows = append(rows, row{Rank: i + 1, Style: k.String(), Pattern: k.Pattern(), Settings: settings})
	}

	switch format {
	case FormatJSON:
		return encodeJSON(w, rows)
	case FormatMsgpack:
		return msgpackEncode(w, rows)
	case FormatText, "":
		var b strings.Builder
		for _, r := range rows {
			fmt.Fprintf(&b, "%d  %s  %s  %s\n",
				r.Rank,
				runewidth.FillRight(r.Style, styleColumn),
				runewidth.FillRight(strconv.Quote(r.Pattern), 18),
				describeSettings(r.Settings))
		}
		_, err := io.WriteString(w, b.String())
		return err
	default:
		return fmt.Errorf("styles: unsupported output format %q", format)
	}
}
