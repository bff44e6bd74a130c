package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hatc/internal/diag"
	"hatc/internal/source"
)

// SourceExt is the recognized source file extension.
const SourceExt = ".hat"

// SourceFile is one discovered source file together with its derived
// module path (directory segments plus the file stem).
type SourceFile struct {
	File source.FileID
	Path []string
}

// Discover walks root, loads every .hat file into fset and derives module
// paths. Files are visited in sorted path order so module IDs are stable
// across runs. A missing root is fatal; unreadable files are reported and
// skipped.
func Discover(root string, fset *source.FileSet, reporter diag.Reporter) ([]SourceFile, bool) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		diag.ReportError(reporter, diag.SourceNotFound, source.Span{},
			fmt.Sprintf("source root %q does not exist or is not a directory", root)).
			Emit()
		return nil, false
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				diag.ReportError(reporter, diag.UnreadableFile, source.Span{},
					fmt.Sprintf("cannot read directory %q: %v", path, err)).
					Emit()
				return fs.SkipDir
			}
			diag.ReportError(reporter, diag.UnreadableFile, source.Span{},
				fmt.Sprintf("cannot stat %q: %v", path, err)).
				Emit()
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), SourceExt) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if walkErr != nil {
		diag.ReportError(reporter, diag.UnreadableFile, source.Span{},
			fmt.Sprintf("walking %q: %v", root, walkErr)).
			Emit()
		return nil, false
	}
	sort.Strings(paths)

	var out []SourceFile
	for _, path := range paths {
		modPath, err := ModulePath(root, path)
		if err != nil {
			diag.ReportError(reporter, diag.UnreadableFile, source.Span{},
				fmt.Sprintf("%s: %v", path, err)).
				Emit()
			continue
		}
		id, err := fset.Load(path)
		if err != nil {
			diag.ReportError(reporter, diag.UnreadableFile, source.Span{},
				fmt.Sprintf("cannot read %q: %v", path, err)).
				Emit()
			continue
		}
		out = append(out, SourceFile{File: id, Path: modPath})
	}
	return out, true
}

// ModulePath derives the module path of a source file relative to root:
// directory segments followed by the file stem, each a valid identifier.
func ModulePath(root, path string) ([]string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return nil, fmt.Errorf("not under source root: %w", err)
	}
	rel = strings.TrimSuffix(filepath.ToSlash(rel), SourceExt)
	segs := strings.Split(rel, "/")
	for _, seg := range segs {
		if !IsValidSegment(seg) {
			return nil, fmt.Errorf("%q is not a valid module path segment", seg)
		}
	}
	return segs, nil
}

// IsValidSegment reports whether s is a legal module path segment: a
// letter followed by letters and digits.
func IsValidSegment(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		letter := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		digit := r >= '0' && r <= '9'
		if i == 0 && !letter {
			return false
		}
		if !letter && !digit {
			return false
		}
	}
	return true
}
