package trace

import (
	"context"
	"time"
)

type tracerKey struct{}

type spanKey struct{}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithTracer attaches t to ctx. A nil t detaches tracing.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// SpanContext is the innermost recorded span of a context. Path is the input
// being classified once a file span is open.
type SpanContext struct {
	SpanID uint64
	Scope  Scope
	Path   string
}

// CurrentSpan returns the innermost recorded span of ctx, or the zero value
// at the root of a run.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx != nil {
		if sc, ok := ctx.Value(spanKey{}).(SpanContext); ok {
			return sc
		}
	}
	return SpanContext{}
}

// Start opens a span under the current span of ctx and returns a context in
// which it is current. A span filtered out by the level leaves ctx unchanged,
// so deeper spans attach to the nearest recorded ancestor.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	parent := CurrentSpan(ctx)
	return open(ctx, begin(FromContext(ctx), scope, name, parent.Path, parent.SpanID))
}

// StartFile opens the span covering the classification of one input.
func StartFile(ctx context.Context, path string) (context.Context, *Span) {
	return open(ctx, begin(FromContext(ctx), ScopeFile, "file", path, CurrentSpan(ctx).SpanID))
}

func open(ctx context.Context, s *Span) (context.Context, *Span) {
	if s.ID() == 0 {
		return ctx, s
	}
	return context.WithValue(ctx, spanKey{}, SpanContext{SpanID: s.id, Scope: s.scope, Path: s.path}), s
}

// Point emits an instant event under the current span of ctx.
func Point(ctx context.Context, scope Scope, name, detail string, extra map[string]string) {
	t := FromContext(ctx)
	if !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	sc := CurrentSpan(ctx)
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: sc.SpanID,
		Name:     name,
		Path:     sc.Path,
		Detail:   detail,
		Extra:    extra,
	})
}
