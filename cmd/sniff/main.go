package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sniff/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sniff",
		Short: "Detect the indentation style of source files",
		Long: `sniff reads the leading whitespace of source files and reports which
indentation convention they follow (tabs, 2/4/8 spaces or mixed emacs-style
indents), along with the editor settings that match it.`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	root.AddCommand(newDetectCmd())
	root.AddCommand(newStylesCmd())
	root.AddCommand(newVersionCmd())

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.String("trace", "", "write trace events to file (\"-\" for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file on exit")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
	return root
}

// main runs the root command. Any command error exits with status 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the terminal state of f.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "auto":
		return isTerminal(f) && os.Getenv("NO_COLOR") == "", nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
}
