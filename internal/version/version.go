// Package version holds build metadata for the sniff CLI. The variables can be
// overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorAttrs = []color.Attribute{color.FgYellow, color.Bold}
	minorAttrs = []color.Attribute{color.FgGreen, color.Bold}
	patchAttrs = []color.Attribute{color.FgBlue, color.Bold}
)

// Colorize paints the major, minor and patch components of v. Anything after
// the patch number, such as a pre-release suffix, is left plain. Strings that
// are not dotted triples are returned unchanged.
func Colorize(v string, enabled bool) string {
	if !enabled {
		return v
	}
	parts := strings.SplitN(v, ".", 3)
	if len(parts) != 3 {
		return v
	}
	patch, suffix := parts[2], ""
	if i := strings.IndexAny(patch, "-+"); i >= 0 {
		patch, suffix = patch[:i], patch[i:]
	}
	return paint(majorAttrs, parts[0]) + "." + paint(minorAttrs, parts[1]) + "." + paint(patchAttrs, patch) + suffix
}

func paint(attrs []color.Attribute, s string) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}
