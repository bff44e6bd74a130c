package driver

import (
	"hatc/internal/diag"
	"hatc/internal/lexer"
	"hatc/internal/source"
	"hatc/internal/token"
)

// TokenizeResult holds the token stream of a single file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file to EOF.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fset := source.NewFileSet()
	fileID, err := fset.Load(path)
	if err != nil {
		return nil, err
	}
	file := fset.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return &TokenizeResult{
		FileSet: fset,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
