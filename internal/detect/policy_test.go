package detect

import (
	"errors"
	"reflect"
	"testing"

	"sniff/internal/style"
)

func TestDefaultPolicyValidates(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy invalid: %v", err)
	}
	if err := (Policy{}).Validate(); err != nil {
		t.Fatalf("zero policy should fall back to defaults: %v", err)
	}
}

func TestPolicyValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
	}{
		{"threshold above 1000", Policy{ThresholdPermille: 1001}},
		{"negative threshold", Policy{ThresholdPermille: -5}},
		{"short order", Policy{Order: []style.Kind{style.Tabs}}},
		{"duplicate in order", Policy{Order: []style.Kind{
			style.Tabs, style.Tabs, style.Spaces2, style.Spaces4,
			style.Spaces8, style.Emacs24, style.Emacs28,
		}}},
		{"none in order", Policy{Order: []style.Kind{
			style.None, style.Tabs, style.Spaces2, style.Spaces4,
			style.Spaces8, style.Emacs24, style.Emacs28,
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if !errors.Is(err, ErrInvalidPolicy) {
				t.Fatalf("Validate() = %v, want ErrInvalidPolicy", err)
			}
		})
	}
}

func TestThresholdFromRatio(t *testing.T) {
	got, err := ThresholdFromRatio(0.85)
	if err != nil || got != 850 {
		t.Fatalf("ThresholdFromRatio(0.85) = %d, %v", got, err)
	}
	for _, bad := range []float64{0, -0.1, 1.01, 0.0001} {
		if _, err := ThresholdFromRatio(bad); !errors.Is(err, ErrInvalidPolicy) {
			t.Fatalf("ThresholdFromRatio(%v) = %v, want ErrInvalidPolicy", bad, err)
		}
	}
}

func TestSelectEmpty(t *testing.T) {
	sel := DefaultPolicy().Select(Scores{})
	if sel.Style != style.None || sel.Contenders != nil || sel.MaxScore != 0 {
		t.Fatalf("Select(empty) = %+v", sel)
	}
}

func TestSelectOrdersContenders(t *testing.T) {
	scores := Scores{
		style.Spaces2: 20,
		style.Spaces4: 20,
		style.Spaces8: 17,
		style.Emacs28: 3,
	}
	sel := DefaultPolicy().Select(scores)
	want := []style.Kind{style.Spaces8, style.Spaces4, style.Spaces2}
	if !reflect.DeepEqual(sel.Contenders, want) {
		t.Fatalf("Contenders = %v, want %v", sel.Contenders, want)
	}
	if sel.Style != style.Spaces8 || sel.MaxScore != 20 {
		t.Fatalf("Select() = %+v", sel)
	}
}

func TestCustomThreshold(t *testing.T) {
	lines := concat(repeat("        a", 17), repeat("    b", 3))
	strict := Policy{ThresholdPermille: 1000}
	res := strict.Classify(lines)
	if res.Style != style.Spaces4 {
		t.Fatalf("strict threshold: got %v, want spaces-4", res.Style)
	}
	if res.ThresholdPermille != 1000 {
		t.Fatalf("ThresholdPermille = %d", res.ThresholdPermille)
	}
}

func TestCustomOrder(t *testing.T) {
	order := []style.Kind{
		style.Spaces2, style.Spaces4, style.Spaces8, style.Tabs,
		style.Emacs24, style.Emacs48, style.Emacs28,
	}
	p := Policy{Order: order}
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	res := p.Classify([]string{"    a", "        b"})
	if res.Style != style.Spaces2 {
		t.Fatalf("got %v, want spaces-2 with reversed space order", res.Style)
	}
}

func TestSelectIncompleteOrderRanksMissingLast(t *testing.T) {
	p := Policy{Order: []style.Kind{style.Emacs28}}
	sel := p.Select(Scores{style.Tabs: 3, style.Emacs28: 3, style.Emacs24: 3})
	want := []style.Kind{style.Emacs28, style.Tabs, style.Emacs24}
	if !reflect.DeepEqual(sel.Contenders, want) {
		t.Fatalf("Contenders = %v, want %v", sel.Contenders, want)
	}
}
