package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"sniff/internal/detect"
	"sniff/internal/observ"
	"sniff/internal/source"
	"sniff/internal/trace"
)

// Options configures a detection run.
type Options struct {
	Policy detect.Policy
	// MaxLines caps how many lines are read per file; 0 reads everything.
	MaxLines int
	// Jobs bounds the number of files classified concurrently.
	Jobs int
	// Extensions filters files found while walking directories.
	Extensions []string
	// Stdin is read for the "-" path; defaults to os.Stdin.
	Stdin    io.Reader
	Progress ProgressSink
	// Timer, when set, records the collect and classify passes.
	Timer *observ.Timer
}

// FileResult is the verdict for one input.
type FileResult struct {
	Path   string
	Result detect.Result
	// Lines is the number of lines read, after the cap.
	Lines int
	Flags source.FileFlags
	Err   error
}

// DetectPaths collects files from paths and classifies each one.
func DetectPaths(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_, span := trace.Start(ctx, trace.ScopePass, "collect")
	var done func(string)
	if opts.Timer != nil {
		done = opts.Timer.Track("collect")
	}

	files, err := CollectFiles(ctx, paths, opts.Extensions)

	if done != nil {
		done(strconv.Itoa(len(files)) + " files")
	}
	span.WithExtra("files", strconv.Itoa(len(files))).End("")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("detect: no files found")
	}

	return DetectFiles(ctx, files, opts)
}

// DetectFiles classifies already collected files in parallel. Results keep
// the order of files. Unreadable files are reported through FileResult.Err;
// only cancellation aborts the run.
func DetectFiles(ctx context.Context, files []string, opts Options) ([]FileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopePass, "classify")
	var done func(string)
	if opts.Timer != nil {
		done = opts.Timer.Track("classify")
	}

	for _, path := range files {
		emit(opts.Progress, Event{File: path, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine writes only its own index
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(files))))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = detectOne(gctx, path, opts)
			return nil
		})
	}

	err := g.Wait()

	undetermined := 0
	for _, r := range results {
		if r.Err == nil && !r.Result.Found {
			undetermined++
		}
	}
	note := fmt.Sprintf("%d files, %d undetermined", len(files), undetermined)
	if done != nil {
		done(note)
	}
	span.End(note)

	if err != nil {
		return results, err
	}
	return results, nil
}

// DetectReader classifies a single in-memory input such as stdin.
func DetectReader(ctx context.Context, name string, r io.Reader, opts Options) FileResult {
	opts.Stdin = r
	res := detectOne(ctx, StdinPath, opts)
	res.Path = name
	return res
}

func detectOne(ctx context.Context, path string, opts Options) FileResult {
	ctx, span := trace.StartFile(ctx, path)

	emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusWorking})
	file, err := load(path, opts)
	if err != nil {
		span.Fail(err)
		emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusError})
		return FileResult{Path: path, Err: err}
	}

	emit(opts.Progress, Event{File: path, Stage: StageClassify, Status: StatusWorking})
	res := opts.Policy.Classify(file.Lines)

	if trace.FromContext(ctx).Level().ShouldEmit(trace.ScopeStage) {
		trace.Point(ctx, trace.ScopeStage, "scores", res.Style.String(), scoreExtras(res))
	}
	span.Verdict(res.Style.String(), res.UsableLines, len(res.Contenders)).End("")

	emit(opts.Progress, Event{File: path, Stage: StageClassify, Status: StatusDone, Style: res.Style.String()})
	return FileResult{
		Path:   path,
		Result: res,
		Lines:  len(file.Lines),
		Flags:  file.Flags,
	}
}

func load(path string, opts Options) (*source.File, error) {
	if path != StdinPath {
		return source.Load(path, opts.MaxLines)
	}
	in := opts.Stdin
	if in == nil {
		in = os.Stdin
	}
	return source.LoadReader(StdinPath, in, opts.MaxLines)
}

func scoreExtras(res detect.Result) map[string]string {
	extra := make(map[string]string, len(res.Scores))
	for k, v := range res.Scores {
		extra[k.String()] = strconv.Itoa(v)
	}
	return extra
}
