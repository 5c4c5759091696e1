package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		lvl, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", name, err)
		}
		if lvl.String() != strings.ToLower(name) {
			t.Fatalf("round trip %q -> %q", name, lvl.String())
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestStreamTracerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	ctx, span := Start(WithTracer(context.Background(), tr), ScopePass, "classify")
	fileCtx, file := StartFile(ctx, "a.c")
	Point(fileCtx, ScopeStage, "scores", "tabs", nil)
	file.End("")
	span.WithExtra("files", "1").End("ok")

	out := buf.String()
	if !strings.Contains(out, "classify") {
		t.Fatalf("pass span missing from output:\n%s", out)
	}
	if strings.Contains(out, "a.c") {
		t.Fatalf("file scope leaked at phase level:\n%s", out)
	}
	if !strings.Contains(out, "{files=1}") {
		t.Fatalf("extra fields missing:\n%s", out)
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	ctx, _ := StartFile(WithTracer(context.Background(), tr), "src/main.c")
	buf.Reset()
	Point(ctx, ScopeStage, "scores", "tabs", map[string]string{"tabs": "3"})

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid ndjson %q: %v", buf.String(), err)
	}
	if got["name"] != "scores" || got["scope"] != "stage" || got["kind"] != "point" || got["path"] != "src/main.c" {
		t.Fatalf("unexpected event %v", got)
	}
}

func TestRingTracerKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	ctx := WithTracer(context.Background(), ring)
	for _, name := range []string{"a", "b", "c"} {
		Point(ctx, ScopeDriver, name, "", nil)
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", events)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Fatalf("expected two dumped lines, got %q", buf.String())
	}
}

func TestNewBothExposesRing(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if RingOf(tr) == nil {
		t.Fatal("both mode should keep a ring buffer")
	}
	Point(WithTracer(context.Background(), tr), ScopeFile, "file:x", "", nil)
	if !strings.Contains(buf.String(), "file:x") {
		t.Fatalf("stream side did not receive the event: %q", buf.String())
	}
	if len(RingOf(tr).Snapshot()) != 1 {
		t.Fatal("ring side did not receive the event")
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("missing tracer should resolve to Nop")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not propagated through context")
	}
}

func TestStartLinksSpansThroughContext(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx, run := Start(WithTracer(context.Background(), ring), ScopeDriver, "detect")
	passCtx, pass := Start(ctx, ScopePass, "classify")
	fileCtx, file := StartFile(passCtx, "x.py")

	if sc := CurrentSpan(fileCtx); sc.SpanID != file.ID() || sc.Path != "x.py" || sc.Scope != ScopeFile {
		t.Fatalf("file context = %+v", sc)
	}
	// stage scope is above LevelDetail, so nothing nests under it
	stageCtx, stage := Start(fileCtx, ScopeStage, "scores")
	if stage.ID() != 0 || CurrentSpan(stageCtx) != CurrentSpan(fileCtx) {
		t.Fatal("a filtered span must leave the context unchanged")
	}
	stage.End("")

	file.Verdict("spaces-4", 12, 2).End("")
	pass.End("")
	run.End("")

	var end Event
	for _, ev := range ring.Files("x.py") {
		if ev.Kind == KindSpanEnd {
			end = ev
		}
	}
	if end.ParentID != pass.ID() || pass.ID() == run.ID() {
		t.Fatalf("file span parent = %d, want %d", end.ParentID, pass.ID())
	}
	want := map[string]string{"style": "spaces-4", "usable": "12", "contenders": "2"}
	for k, v := range want {
		if end.Extra[k] != v {
			t.Fatalf("verdict extras = %v", end.Extra)
		}
	}
}

func TestDisabledSpansAreInert(t *testing.T) {
	ctx, span := Start(context.Background(), ScopeDriver, "detect")
	if span.ID() != 0 || CurrentSpan(ctx) != (SpanContext{}) {
		t.Fatal("no tracer should yield an unrecorded span")
	}
	if d := span.WithExtra("k", "v").Fail(errors.New("boom")); d != 0 {
		t.Fatalf("disabled span reported duration %v", d)
	}
	var nilSpan *Span
	nilSpan.Verdict("tabs", 1, 1).End("")
}
