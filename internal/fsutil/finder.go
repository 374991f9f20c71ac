// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindFilesByExtension walks all given paths and returns a flat list of the
// files carrying one of the wanted extensions, in walk order with duplicates
// removed. A path that does not exist is skipped rather than treated as an
// error, so optional manifest directories may be configured unconditionally.
func FindFilesByExtension(paths []string, exts ...string) ([]string, error) {
	if len(exts) == 0 {
		panic("fsutil: at least one extension is required")
	}
	wanted := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		wanted[ext] = struct{}{}
	}

	var files []string
	seen := make(map[string]struct{})

	add := func(p string) {
		if _, ok := wanted[filepath.Ext(p)]; !ok {
			return
		}
		if _, wasSeen := seen[p]; wasSeen {
			return
		}
		files = append(files, p)
		seen[p] = struct{}{}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			err := filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else {
			add(path)
		}
	}
	return files, nil
}
