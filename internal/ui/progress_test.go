package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"sniff/internal/driver"
)

func TestProgressModelTracksEvents(t *testing.T) {
	events := make(chan driver.Event)
	model := NewProgressModel("sniff", []string{"a.go", "b.py"}, events)
	m := model.(*progressModel)

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m.Update(eventMsg{File: "a.go", Stage: driver.StageRead, Status: driver.StatusWorking})
	if got := m.items[0].label(); got != "reading" {
		t.Fatalf("label = %q, want reading", got)
	}
	m.Update(eventMsg{File: "a.go", Stage: driver.StageClassify, Status: driver.StatusDone, Style: "tabs"})
	m.Update(eventMsg{File: "b.py", Stage: driver.StageRead, Status: driver.StatusError})
	m.Update(eventMsg{File: "unknown", Status: driver.StatusDone})

	if f := m.fraction(); f != 1 {
		t.Fatalf("fraction = %v, want 1", f)
	}

	view := m.View()
	for _, want := range []string{"(2/2)", "tabs", "error", "a.go", "b.py"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}

	if _, cmd := m.Update(doneMsg{}); cmd == nil || !m.done {
		t.Fatal("done message should quit the program")
	}
	if !strings.Contains(m.View(), "done: sniff") {
		t.Fatalf("final view missing done header:\n%s", m.View())
	}
}

func TestProgressFraction(t *testing.T) {
	m := NewProgressModel("x", []string{"a", "b"}, nil).(*progressModel)
	m.applyEvent(driver.Event{File: "a", Stage: driver.StageClassify, Status: driver.StatusWorking})
	if got := m.fraction(); got != 0.3 {
		t.Fatalf("fraction = %v, want 0.3", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"a-very-long-path.go", 10, "a-very-..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.width); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}
