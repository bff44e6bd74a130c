package driver

import (
	"path/filepath"
	"strings"

	"hatc/internal/ast"
	"hatc/internal/diag"
	"hatc/internal/parser"
	"hatc/internal/project"
	"hatc/internal/source"
)

// ParseResult holds the syntax tree of a single file.
type ParseResult struct {
	FileSet *source.FileSet
	Module  *ast.Module
	Bag     *diag.Bag
}

// Parse parses one file in isolation. The module path is the file stem.
func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fset := source.NewFileSet()
	fileID, err := fset.Load(path)
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), project.SourceExt)
	bag := diag.NewBag(maxDiagnostics)
	m := parser.ParseModule(fset, fileID, []string{stem}, parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	return &ParseResult{FileSet: fset, Module: m, Bag: bag}, nil
}
