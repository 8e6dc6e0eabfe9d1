package source

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
)

// Discover returns the importable files at path. A file is returned as is
// (its extension must name a format); a directory is walked and every
// .csv/.jsonl file inside is returned in lexical order.
func Discover(path string) ([]DiscoveredFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		format, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		return []DiscoveredFile{{Path: path, Format: format}}, nil
	}

	var files []DiscoveredFile
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		format, err := FormatFromPath(p)
		if errors.Is(err, ErrUnsupportedFormat) {
			return nil
		}
		files = append(files, DiscoveredFile{Path: p, Format: format})
		return nil
	})

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, err
}
