package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the most recent events in memory so a failed run can
// show what led up to the failure.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	stored uint64 // events ever stored; the next slot is stored % len(events)
	level  Level
}

// NewRingTracer returns a ring holding up to capacity events (4096 if
// capacity is not positive).
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = 4096
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

// Emit stores a copy of ev, overwriting the oldest event once full.
func (t *RingTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	slot := t.stored % uint64(len(t.events))
	t.events[slot] = *ev
	t.events[slot].Seq = nextSeq()
	t.stored++
}

// Snapshot returns the retained events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()

	size := uint64(len(t.events))
	if t.stored <= size {
		return append([]Event(nil), t.events[:t.stored]...)
	}
	start := t.stored % size
	out := make([]Event, 0, size)
	out = append(out, t.events[start:]...)
	return append(out, t.events[:start]...)
}

// Files returns the retained events that concern path, oldest first.
func (t *RingTracer) Files(path string) []Event {
	var out []Event
	for _, ev := range t.Snapshot() {
		if ev.Path == path {
			out = append(out, ev)
		}
	}
	return out
}

// Dump writes the retained events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
