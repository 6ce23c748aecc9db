// Package loader discovers source files and loads them as syntax trees.
package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Scanner finds lintable files under a set of roots.
type Scanner struct {
	include []string
	exclude []string
}

// NewScanner creates a scanner. A file is selected when its path relative
// to the scanned root matches an include pattern and no exclude pattern.
// Excluded directories are not descended into.
func NewScanner(include, exclude []string) *Scanner {
	return &Scanner{include: include, exclude: exclude}
}

// ScanPaths expands each path into the files it selects. Paths naming a
// file are returned as given, without pattern checks. The result is sorted
// and free of duplicates.
func (s *Scanner) ScanPaths(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			files = append(files, filepath.Clean(p))
			continue
		}
		found, err := s.ScanDir(p)
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	slices.Sort(files)
	return slices.Compact(files), nil
}

// ScanDir walks dir and returns the selected files. Hidden files and
// directories are skipped.
func (s *Scanner) ScanDir(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && s.excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}
		if s.Selects(rel) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}
	return files, nil
}

// Selects reports whether a relative path passes the include and exclude
// patterns.
func (s *Scanner) Selects(rel string) bool {
	rel = filepath.ToSlash(rel)
	if s.excluded(rel) {
		return false
	}
	return slices.ContainsFunc(s.include, func(p string) bool { return Match(p, rel) })
}

func (s *Scanner) excluded(rel string) bool {
	return slices.ContainsFunc(s.exclude, func(p string) bool {
		return Match(p, rel) || Match(strings.TrimSuffix(p, "/**"), rel)
	})
}
