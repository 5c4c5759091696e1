package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// StdinPath names standard input among the paths passed to the driver.
const StdinPath = "-"

// CollectFiles expands paths into the sorted, de-duplicated list of files to
// classify. Directories are walked recursively, skipping hidden directories;
// inside them only files whose extension is listed in exts are kept (all
// files when exts is empty). Files named explicitly are always kept.
func CollectFiles(ctx context.Context, paths []string, exts []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	wanted := func(path string) bool {
		if len(allowed) == 0 {
			return true
		}
		_, ok := allowed[strings.ToLower(filepath.Ext(path))]
		return ok
	}

	hasStdin := false
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p == StdinPath {
			hasStdin = true
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			addFile(filepath.Clean(p))
			continue
		}

		root := filepath.Clean(p)
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if wanted(path) {
				addFile(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	if hasStdin {
		// stdin always sorts first
		files = append([]string{StdinPath}, files...)
	}
	return files, nil
}
