package style

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Kind names one recognized indentation convention.
type Kind uint8

const (
	None Kind = iota
	Tabs
	Spaces2
	Spaces4
	Spaces8
	Emacs24
	Emacs28
	Emacs48

	kindCount
)

// ErrUnknownStyle is returned by ParseKind for names outside the catalogue.
var ErrUnknownStyle = errors.New("unknown indentation style")

type entry struct {
	name    string
	pattern *regexp.Regexp
	// Source is kept alongside the compiled pattern for `sniff styles`.
	source   string
	defaults Settings
}

// catalogue is indexed by Kind. Patterns are anchored and only ever see a
// leading run of tabs and spaces.
var catalogue = [kindCount]entry{
	None: {name: "none"},
	Tabs: {
		name:     "tabs",
		source:   `^\t+$`,
		defaults: Settings{IndentWidth: 8, TabWidth: 8, ExpandTabs: false},
	},
	Spaces2: {
		name:     "spaces-2",
		source:   `^(  )+$`,
		defaults: Settings{IndentWidth: 2, TabWidth: 8, ExpandTabs: true},
	},
	Spaces4: {
		name:     "spaces-4",
		source:   `^(    )+$`,
		defaults: Settings{IndentWidth: 4, TabWidth: 8, ExpandTabs: true},
	},
	Spaces8: {
		name:     "spaces-8",
		source:   `^(        )+$`,
		defaults: Settings{IndentWidth: 8, TabWidth: 8, ExpandTabs: true},
	},
	Emacs24: {
		name:     "emacs-2-4",
		source:   `^\t*(  )?$`,
		defaults: Settings{IndentWidth: 2, TabWidth: 4, ExpandTabs: false},
	},
	Emacs28: {
		name:     "emacs-2-8",
		source:   `^\t*(  ){0,3}$`,
		defaults: Settings{IndentWidth: 2, TabWidth: 8, ExpandTabs: false},
	},
	Emacs48: {
		name:     "emacs-4-8",
		source:   `^\t*(    )?$`,
		defaults: Settings{IndentWidth: 4, TabWidth: 8, ExpandTabs: false},
	},
}

func init() {
	for k := Tabs; k < kindCount; k++ {
		catalogue[k].pattern = regexp.MustCompile(catalogue[k].source)
	}
}

// All returns every recognized style in catalogue order. None is excluded.
func All() []Kind {
	out := make([]Kind, 0, kindCount-1)
	for k := Tabs; k < kindCount; k++ {
		out = append(out, k)
	}
	return out
}

// Count is the number of recognized styles, None excluded.
func Count() int { return int(kindCount) - 1 }

// Valid reports whether k names a recognized style.
func (k Kind) Valid() bool {
	return k > None && k < kindCount
}

func (k Kind) String() string {
	if k >= kindCount {
		return "unknown"
	}
	return catalogue[k].name
}

func (k Kind) GoString() string {
	return fmt.Sprintf("style.Kind(%s)", k.String())
}

// Pattern returns the regular expression source used to recognize k.
func (k Kind) Pattern() string {
	if !k.Valid() {
		return ""
	}
	return catalogue[k].source
}

// Matches reports whether the leading-whitespace run is consistent with k.
func (k Kind) Matches(run string) bool {
	if !k.Valid() {
		return false
	}
	return catalogue[k].pattern.MatchString(run)
}

// Defaults returns the settings a host applies when k is detected.
func (k Kind) Defaults() Settings {
	if !k.Valid() {
		return Settings{}
	}
	return catalogue[k].defaults
}

// ParseKind resolves a style name. Matching is case-insensitive and accepts
// underscores in place of dashes.
func ParseKind(name string) (Kind, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for k := Tabs; k < kindCount; k++ {
		if catalogue[k].name == norm {
			return k, nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownStyle, name)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	if string(text) == "none" {
		*k = None
		return nil
	}
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
