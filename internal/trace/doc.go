// Package trace provides the tracing subsystem of the sniff CLI.
//
// Tracing follows a run through file collection, per-file classification and
// rendering, which helps when a large tree is slow or a verdict looks wrong.
//
// # Usage
//
//	sniff detect --trace=- --trace-level=detail ./src
//
// # Architecture
//
//   - Nop: records nothing when tracing is off
//   - StreamTracer: immediate write to a file or stderr
//   - RingTracer: keeps the last N events, dumped when a run fails
//   - MultiTracer: combines stream and ring
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: ring only, dumped on failure
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file spans
//   - LevelDebug: everything, including per-file score tables
//
// # Context Propagation
//
// The tracer and the innermost recorded span travel in the context, so a
// span opened from a context nests under whatever span the caller opened:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, run := trace.Start(ctx, trace.ScopeDriver, "detect")
//	ctx, file := trace.StartFile(ctx, path)
//	trace.Point(ctx, trace.ScopeStage, "scores", verdict, scores)
//	file.Verdict(verdict, usable, contenders).End("")
//
// Classification results never depend on the tracer; the detect package does
// not import this one.
package trace
