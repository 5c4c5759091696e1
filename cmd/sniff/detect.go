package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sniff/internal/config"
	"sniff/internal/detect"
	"sniff/internal/driver"
	"sniff/internal/observ"
	"sniff/internal/report"
	"sniff/internal/style"
	"sniff/internal/trace"
)

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "detect [flags] [path|-]...",
		Short: "Report the indentation style of files",
		Long: `Classify the indentation of each file. Directories are scanned
recursively; "-" reads standard input. Without arguments sniff reads standard
input when it is piped and the current directory otherwise.`,
		RunE: runDetect,
	}
	flags := cmd.Flags()
	flags.String("format", "text", "output format (text|json|msgpack|vim|editorconfig)")
	flags.Bool("explain", false, "show the tally, scores and contenders behind each verdict")
	flags.Int("max-lines", 0, "lines read per file, 0 for unlimited (default from config or 1000)")
	flags.Int("jobs", 0, "files classified in parallel (0 = GOMAXPROCS)")
	flags.Float64("threshold", 0, "contender cutoff as a fraction of the top score (default 0.85)")
	flags.StringSlice("order", nil, "style preference order, comma separated")
	flags.StringSlice("ext", nil, "extensions scanned inside directories (default from config, else all)")
	flags.String("config", "", "path to sniff.toml (default: nearest one above the working directory)")
	flags.String("ui", "auto", "progress UI (auto|on|off)")
	flags.Bool("strict", false, "exit non-zero when any file is undetermined")
	return cmd
}

// detectSettings is everything a run needs once flags and config are merged.
type detectSettings struct {
	driver driver.Options
	render report.Options
	ui     uiMode
	strict bool
}

func runDetect(cmd *cobra.Command, args []string) error {
	tracer, cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	settings, err := resolveDetect(cmd, cfg)
	if err != nil {
		return err
	}
	if settings.render.Color, err = useColor(cmd, os.Stdout); err != nil {
		return err
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
		settings.driver.Timer = timer
	}

	ctx, span := trace.Start(cmd.Context(), trace.ScopeDriver, "detect")

	paths := inputPaths(args, cmd.InOrStdin())
	var results []driver.FileResult
	if settings.ui == uiModeOff {
		results, err = driver.DetectPaths(ctx, paths, settings.driver)
	} else {
		var files []string
		var collected func(string)
		if timer != nil {
			collected = timer.Track("collect")
		}
		files, err = driver.CollectFiles(ctx, paths, settings.driver.Extensions)
		if collected != nil {
			collected(fmt.Sprintf("%d files", len(files)))
		}
		switch {
		case err != nil:
		case len(files) == 0:
			err = errors.New("detect: no files found")
		case shouldUseTUI(settings.ui, len(files)):
			results, err = runDetectWithUI(ctx, "sniff", files, settings.driver)
		default:
			results, err = driver.DetectFiles(ctx, files, settings.driver)
		}
	}
	if err != nil {
		span.Fail(err)
		dumpRing(cmd.ErrOrStderr(), tracer)
		return err
	}

	var done func(string)
	if timer != nil {
		done = timer.Track("render")
	}
	renderErr := report.Render(cmd.OutOrStdout(), results, settings.render)
	if done != nil {
		done(string(settings.render.Format))
	}
	if renderErr != nil {
		span.Fail(renderErr)
		return fmt.Errorf("failed to render results: %w", renderErr)
	}

	sum := summarize(results)
	span.WithExtra("files", fmt.Sprint(len(results))).End(sum.String())

	if !quiet && len(results) > 1 && settings.render.Format == report.FormatText {
		fmt.Fprintln(cmd.ErrOrStderr(), sum.String())
	}
	if timer != nil && !quiet {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if sum.failed > 0 {
		dumpFailures(cmd.ErrOrStderr(), tracer, results)
		return fmt.Errorf("%d of %d inputs could not be read", sum.failed, len(results))
	}
	if settings.strict && sum.undetermined > 0 {
		return fmt.Errorf("%d of %d inputs have no detectable indentation", sum.undetermined, len(results))
	}
	return nil
}

// loadConfig honours --config, falling back to discovery from the working
// directory. No config file is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	cfg, _, err := config.Discover(".")
	return cfg, err
}

// resolveDetect merges flags over the config file over the defaults.
func resolveDetect(cmd *cobra.Command, cfg *config.Config) (detectSettings, error) {
	flags := cmd.Flags()
	var out detectSettings

	policy, err := cfg.Policy()
	if err != nil {
		return out, err
	}
	if flags.Changed("threshold") {
		ratio, _ := flags.GetFloat64("threshold")
		if policy.ThresholdPermille, err = detect.ThresholdFromRatio(ratio); err != nil {
			return out, fmt.Errorf("--threshold: %w", err)
		}
	}
	if flags.Changed("order") {
		names, _ := flags.GetStringSlice("order")
		if policy.Order, err = config.ParseOrder(names); err != nil {
			return out, fmt.Errorf("--order: %w", err)
		}
	}
	if err := policy.Validate(); err != nil {
		return out, err
	}

	maxLines := cfg.MaxLines()
	if flags.Changed("max-lines") {
		maxLines, _ = flags.GetInt("max-lines")
		if maxLines < 0 {
			return out, fmt.Errorf("--max-lines must not be negative, got %d", maxLines)
		}
	}

	exts := cfg.Extensions()
	if flags.Changed("ext") {
		raw, _ := flags.GetStringSlice("ext")
		exts = config.NormalizeExtensions(raw)
	}

	jobs, _ := flags.GetInt("jobs")
	if jobs < 0 {
		return out, fmt.Errorf("--jobs must not be negative, got %d", jobs)
	}

	formatStr, _ := flags.GetString("format")
	format, err := report.ParseFormat(formatStr)
	if err != nil {
		return out, err
	}
	explain, _ := flags.GetBool("explain")

	table, err := cfg.Table()
	if err != nil {
		return out, err
	}

	uiStr, _ := flags.GetString("ui")
	mode, err := readUIMode(uiStr)
	if err != nil {
		return out, err
	}
	// progress only accompanies the human-readable report
	if format != report.FormatText && mode == uiModeAuto {
		mode = uiModeOff
	}

	strict, _ := flags.GetBool("strict")

	out.driver = driver.Options{
		Policy:     policy,
		MaxLines:   maxLines,
		Jobs:       jobs,
		Extensions: exts,
		Stdin:      cmd.InOrStdin(),
	}
	out.render = report.Options{
		Format:  format,
		Explain: explain,
		Table:   table,
	}
	out.ui = mode
	out.strict = strict
	return out, nil
}

// inputPaths defaults to in when it is piped and to the working directory
// otherwise. A reader that is not a file, as set by SetIn, counts as piped.
func inputPaths(args []string, in io.Reader) []string {
	if len(args) > 0 {
		return args
	}
	if f, ok := in.(*os.File); ok && isTerminal(f) {
		return []string{"."}
	}
	return []string{driver.StdinPath}
}

type runSummary struct {
	total        int
	undetermined int
	failed       int
	byStyle      map[style.Kind]int
}

func summarize(results []driver.FileResult) runSummary {
	sum := runSummary{total: len(results), byStyle: make(map[style.Kind]int)}
	for _, r := range results {
		switch {
		case r.Err != nil:
			sum.failed++
		case !r.Result.Found:
			sum.undetermined++
		default:
			sum.byStyle[r.Result.Style]++
		}
	}
	return sum
}

func (s runSummary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d files", s.total)
	for _, k := range style.All() {
		if n := s.byStyle[k]; n > 0 {
			fmt.Fprintf(&b, ", %d %s", n, k)
		}
	}
	if s.undetermined > 0 {
		fmt.Fprintf(&b, ", %d undetermined", s.undetermined)
	}
	if s.failed > 0 {
		fmt.Fprintf(&b, ", %d unreadable", s.failed)
	}
	return b.String()
}
