package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const maxSeedBytes = 64 << 10

var inlineSeeds = []string{
	"",
	"\tfoo\n\tbar\n\t\tbaz\n\n   noindent-mixed \t x\nqux\n",
	"/* comment\n    block */\n\tcode\n",
	"def f():\n  if x:\n    return 1\n",
	"\xef\xbb\xbf\r\n\t\r\n  x\r\n",
	"\t  a\n\t\t  b\n\t\t\t\n",
	"        deep\n    shallow\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addSourceSeeds(f)
}

// addSourceSeeds feeds the repository's own Go sources, which are tab
// indented with space-aligned comments.
func addSourceSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "internal")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || !strings.HasSuffix(path, ".go") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil || len(data) > maxSeedBytes {
			return nil
		}
		f.Add(data)
		return nil
	})
}
