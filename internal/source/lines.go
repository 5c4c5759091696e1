package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadLines splits r into lines, dropping a leading UTF-8 byte order mark and
// CRLF line endings. Reading stops after maxLines lines; maxLines <= 0 reads
// everything.
func ReadLines(r io.Reader, maxLines int) ([]string, FileFlags, error) {
	br := bufio.NewReader(r)

	var flags FileFlags
	if head, err := br.Peek(len(utf8BOM)); err == nil && string(head) == string(utf8BOM) {
		flags |= FileHadBOM
	}
	// The UTF8BOM decoder strips the mark and replaces invalid UTF-8 with
	// U+FFFD, which the classifier treats like any other non-blank byte.
	br = bufio.NewReader(transform.NewReader(br, unicode.UTF8BOM.NewDecoder()))

	lines := make([]string, 0, 64)
	for {
		if maxLines > 0 && len(lines) >= maxLines {
			if _, err := br.Peek(1); err == nil {
				flags |= FileTruncated
			}
			break
		}
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			if line[len(line)-1] == '\n' {
				line = line[:len(line)-1]
			}
			var hadCR bool
			line, hadCR = trimCR(line)
			if hadCR {
				flags |= FileNormalizedCRLF
			}
			lines = append(lines, line)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, flags, err
		}
	}
	return lines, flags, nil
}

// Load reads up to maxLines lines of the file at path.
func Load(path string, maxLines int) (*File, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines, flags, err := ReadLines(f, maxLines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &File{Path: NormalizePath(path), Lines: lines, Flags: flags}, nil
}

// LoadReader is Load for stdin and other in-memory inputs.
func LoadReader(name string, r io.Reader, maxLines int) (*File, error) {
	lines, flags, err := ReadLines(r, maxLines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &File{Path: name, Lines: lines, Flags: flags | FileVirtual}, nil
}
