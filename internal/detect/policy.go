package detect

import (
	"errors"
	"fmt"
	"math"

	"sniff/internal/style"
)

// DefaultThresholdPermille keeps every style scoring at least 85% of the best.
const DefaultThresholdPermille = 850

// ErrInvalidPolicy wraps every Policy validation failure.
var ErrInvalidPolicy = errors.New("invalid detection policy")

// defaultOrder lists the most restrictive styles first: a spaces-8 file also
// scores as spaces-4 and spaces-2, and a tab file also scores as every emacs
// variant.
var defaultOrder = []style.Kind{
	style.Spaces8,
	style.Spaces4,
	style.Spaces2,
	style.Tabs,
	style.Emacs24,
	style.Emacs48,
	style.Emacs28,
}

// DefaultOrder returns a copy of the built-in preference order.
func DefaultOrder() []style.Kind {
	return append([]style.Kind(nil), defaultOrder...)
}

// Policy holds the tunable constants of the selector.
// Zero fields fall back to the defaults.
type Policy struct {
	// ThresholdPermille is the cutoff relative to the best score, in
	// thousandths.
	ThresholdPermille int
	// Order breaks ties between contenders; earlier wins.
	Order []style.Kind
}

// DefaultPolicy returns the built-in threshold and preference order.
func DefaultPolicy() Policy {
	return Policy{
		ThresholdPermille: DefaultThresholdPermille,
		Order:             DefaultOrder(),
	}
}

// ThresholdFromRatio converts a ratio such as 0.85 to permille.
func ThresholdFromRatio(ratio float64) (int, error) {
	if math.IsNaN(ratio) || ratio <= 0 || ratio > 1 {
		return 0, fmt.Errorf("%w: threshold %v outside (0, 1]", ErrInvalidPolicy, ratio)
	}
	permille := int(math.Round(ratio * 1000))
	if permille < 1 {
		return 0, fmt.Errorf("%w: threshold %v rounds to zero", ErrInvalidPolicy, ratio)
	}
	return permille, nil
}

// Validate checks the threshold range and that Order is a permutation of the
// style catalogue.
func (p Policy) Validate() error {
	p = p.effective()
	if p.ThresholdPermille < 1 || p.ThresholdPermille > 1000 {
		return fmt.Errorf("%w: threshold %d outside 1..1000 permille", ErrInvalidPolicy, p.ThresholdPermille)
	}
	if len(p.Order) != style.Count() {
		return fmt.Errorf("%w: order lists %d styles, want %d", ErrInvalidPolicy, len(p.Order), style.Count())
	}
	seen := make(map[style.Kind]struct{}, len(p.Order))
	for _, k := range p.Order {
		if !k.Valid() {
			return fmt.Errorf("%w: order contains %v", ErrInvalidPolicy, k)
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("%w: order lists %v twice", ErrInvalidPolicy, k)
		}
		seen[k] = struct{}{}
	}
	return nil
}

func (p Policy) effective() Policy {
	if p.ThresholdPermille == 0 {
		p.ThresholdPermille = DefaultThresholdPermille
	}
	if len(p.Order) == 0 {
		p.Order = defaultOrder
	}
	return p
}

// Selection is the outcome of the selector.
type Selection struct {
	Style      style.Kind
	MaxScore   int
	Contenders []style.Kind
}

// Select picks the winning style. An empty score table selects None.
func (p Policy) Select(scores Scores) Selection {
	p = p.effective()
	best := scores.Max()
	if best == 0 {
		return Selection{Style: style.None}
	}

	passing := make(map[style.Kind]bool, len(scores))
	for k, v := range scores {
		if qualifies(v, best, p.ThresholdPermille) {
			passing[k] = true
		}
	}

	contenders := make([]style.Kind, 0, len(passing))
	for _, k := range p.Order {
		if passing[k] {
			contenders = append(contenders, k)
			delete(passing, k)
		}
	}
	// Styles missing from a hand-written order rank last, in catalogue order.
	for _, k := range style.All() {
		if passing[k] {
			contenders = append(contenders, k)
		}
	}

	return Selection{
		Style:      contenders[0],
		MaxScore:   best,
		Contenders: contenders,
	}
}

// qualifies compares in integer thousandths so ratios that land exactly on the
// threshold are accepted.
func qualifies(score, best, permille int) bool {
	return int64(score)*1000 >= int64(best)*int64(permille)
}
