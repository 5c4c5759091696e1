package source

import (
	"os"
	"path/filepath"
	"strings"
)

// trimCR drops the carriage return of a CRLF line ending and reports whether
// one was present. A lone \r inside the line is left alone.
func trimCR(line string) (string, bool) {
	if strings.HasSuffix(line, "\r") {
		return line[:len(line)-1], true
	}
	return line, false
}

// NormalizePath cleans p and renders it with forward slashes so output is
// stable across platforms.
func NormalizePath(p string) string {
	if p == "" || p == "-" {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath renders target relative to baseDir. Targets outside baseDir
// fall back to their normalized absolute path.
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return NormalizePath(absTarget), nil
	}
	return NormalizePath(rel), nil
}

// DisplayPath renders path relative to the working directory when it lives
// below it, and unchanged otherwise.
func DisplayPath(path string) string {
	if path == "" || path == "-" {
		return path
	}
	wd, err := os.Getwd()
	if err != nil {
		return NormalizePath(path)
	}
	rel, err := RelativePath(path, wd)
	if err != nil {
		return NormalizePath(path)
	}
	return rel
}
