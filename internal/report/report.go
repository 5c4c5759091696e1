// Package report renders detection results for people, editors and tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"sniff/internal/driver"
	"sniff/internal/source"
	"sniff/internal/style"
)

// Format selects the renderer.
type Format string

const (
	FormatText         Format = "text"
	FormatJSON         Format = "json"
	FormatMsgpack      Format = "msgpack"
	FormatVim          Format = "vim"
	FormatEditorConfig Format = "editorconfig"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatMsgpack, FormatVim, FormatEditorConfig:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (expected text|json|msgpack|vim|editorconfig)", s)
	}
}

// Options configures rendering.
type Options struct {
	Format  Format
	Explain bool
	Color   bool
	// Table overrides the default settings of detected styles.
	Table style.Table
}

// Render writes results to w in the selected format.
func Render(w io.Writer, results []driver.FileResult, opts Options) error {
	switch opts.Format {
	case FormatText, "":
		return renderText(w, results, opts)
	case FormatJSON:
		payload, err := payloads(results, opts)
		if err != nil {
			return err
		}
		return encodeJSON(w, payload)
	case FormatMsgpack:
		payload, err := payloads(results, opts)
		if err != nil {
			return err
		}
		return msgpackEncode(w, payload)
	case FormatVim:
		return renderVim(w, results, opts)
	case FormatEditorConfig:
		return renderEditorConfig(w, results, opts)
	default:
		return fmt.Errorf("unsupported output format %q", opts.Format)
	}
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func msgpackEncode(w io.Writer, v any) error {
	enc := msgpack.NewEncoder(w)
	enc.UseCompactInts(true)
	return enc.Encode(v)
}

func payloads(results []driver.FileResult, opts Options) ([]Payload, error) {
	out := make([]Payload, 0, len(results))
	for _, r := range results {
		p, err := NewPayload(r, opts.Table, opts.Explain)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", r.Path, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// renderVim prints one setlocal command per determined file. A single input
// gets the bare command so an editor can execute the output directly.
func renderVim(w io.Writer, results []driver.FileResult, opts Options) error {
	single := len(results) == 1
	for _, r := range results {
		settings, ok := r.Result.Settings(opts.Table)
		if r.Err != nil || !ok {
			continue
		}
		var err error
		if single {
			_, err = fmt.Fprintln(w, settings.Vim())
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\n", source.DisplayPath(r.Path), settings.Vim())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// renderEditorConfig prints one section per determined file.
func renderEditorConfig(w io.Writer, results []driver.FileResult, opts Options) error {
	first := true
	for _, r := range results {
		settings, ok := r.Result.Settings(opts.Table)
		if r.Err != nil || !ok || r.Path == driver.StdinPath {
			continue
		}
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		first = false
		if _, err := fmt.Fprintf(w, "[%s]\n%s", source.DisplayPath(r.Path), settings.EditorConfig()); err != nil {
			return err
		}
	}
	return nil
}
