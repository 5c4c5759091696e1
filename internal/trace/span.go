package trace

import (
	"strconv"
	"sync/atomic"
	"time"
)

var (
	spanIDs  atomic.Uint64
	eventSeq atomic.Uint64
)

func nextSeq() uint64 { return eventSeq.Add(1) }

// Span is an open interval of work. A nil or disabled span accepts every call
// and records nothing.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	path    string
	started time.Time
	extra   map[string]string
}

func begin(t Tracer, scope Scope, name, path string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		path:    path,
		started: time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) live() bool {
	return s != nil && s.id != 0 && s.tracer.Enabled()
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	ev := &Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Path:     s.path,
		Detail:   detail,
	}
	if kind == KindSpanEnd {
		ev.Extra = s.extra
	}
	return ev
}

// End emits the closing event and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	s.tracer.Emit(s.event(KindSpanEnd, now, detail))
	return now.Sub(s.started)
}

// Fail ends the span with err as its detail.
func (s *Span) Fail(err error) time.Duration {
	if err == nil {
		return s.End("")
	}
	return s.End("error: " + err.Error())
}

// WithExtra attaches a key to the closing event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// Verdict records the outcome of classifying the span's input.
func (s *Span) Verdict(style string, usable, contenders int) *Span {
	return s.WithExtra("style", style).
		WithExtra("usable", strconv.Itoa(usable)).
		WithExtra("contenders", strconv.Itoa(contenders))
}

// ID returns the span ID, 0 when the span is not recorded.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
