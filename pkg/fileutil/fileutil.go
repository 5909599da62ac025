// Package fileutil provides file system utility functions.
package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// matchKey is the form two file names are compared in: NFC-normalised
// (macOS hands out decomposed names) and Unicode case-folded.
func matchKey(name string) string {
	return cases.Fold().String(norm.NFC.String(name))
}

// FindFileCaseInsensitive searches dir for filename ignoring case and
// returns the actual path. Asset names such as "Symbol 100001.png" are
// often shipped with different casing, so lookups never depend on it.
// Names are compared with matchKey, so composed and decomposed spellings
// of the same name also match.
//
// A missing file yields an error wrapping fs.ErrNotExist.
func FindFileCaseInsensitive(dir, filename string) (string, error) {
	searchName := matchKey(filename)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matchKey(entry.Name()) == searchName {
			return filepath.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("%w: %s (searched in %s)", fs.ErrNotExist, filename, dir)
}

// FindFileCaseInsensitiveFS is FindFileCaseInsensitive for an fs.FS
// (embed.FS, os.DirFS, fstest.MapFS). Returned paths use forward slashes.
func FindFileCaseInsensitiveFS(fsys fs.FS, dir, filename string) (string, error) {
	searchName := matchKey(filename)

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matchKey(entry.Name()) == searchName {
			if dir == "." || dir == "" {
				return entry.Name(), nil
			}
			return dir + "/" + entry.Name(), nil
		}
	}

	return "", fmt.Errorf("%w: %s (searched in %s)", fs.ErrNotExist, filename, dir)
}
