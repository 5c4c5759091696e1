package style

import (
	"fmt"
	"strings"
)

// Settings is the configuration action associated with a style.
type Settings struct {
	IndentWidth int  `json:"indent_width" msgpack:"indent_width" toml:"indent_width"`
	TabWidth    int  `json:"tab_width" msgpack:"tab_width" toml:"tab_width"`
	ExpandTabs  bool `json:"expand_tabs" msgpack:"expand_tabs" toml:"expand_tabs"`
}

// Validate rejects non-positive widths.
func (s Settings) Validate() error {
	if s.IndentWidth <= 0 {
		return fmt.Errorf("indent_width must be positive, got %d", s.IndentWidth)
	}
	if s.TabWidth <= 0 {
		return fmt.Errorf("tab_width must be positive, got %d", s.TabWidth)
	}
	return nil
}

// Vim renders the settings as a vim setlocal command.
func (s Settings) Vim() string {
	expand := "noexpandtab"
	if s.ExpandTabs {
		expand = "expandtab"
	}
	return fmt.Sprintf("setlocal %s shiftwidth=%d softtabstop=%d tabstop=%d",
		expand, s.IndentWidth, s.IndentWidth, s.TabWidth)
}

// EditorConfig renders the settings as editorconfig properties, one per line.
func (s Settings) EditorConfig() string {
	var b strings.Builder
	if s.ExpandTabs {
		b.WriteString("indent_style = space\n")
	} else {
		b.WriteString("indent_style = tab\n")
	}
	fmt.Fprintf(&b, "indent_size = %d\n", s.IndentWidth)
	fmt.Fprintf(&b, "tab_width = %d\n", s.TabWidth)
	return b.String()
}

// Table overrides the default settings of selected styles.
// A nil Table is valid and yields the defaults.
type Table map[Kind]Settings

// Lookup returns the settings to apply for k. It reports false for None and
// for unrecognized kinds, in which case the host keeps its current settings.
func (t Table) Lookup(k Kind) (Settings, bool) {
	if !k.Valid() {
		return Settings{}, false
	}
	if s, ok := t[k]; ok {
		return s, true
	}
	return k.Defaults(), true
}
