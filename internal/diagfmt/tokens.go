package diagfmt

import (
	"fmt"
	"io"

	"hatc/internal/source"
	"hatc/internal/token"
)

// WriteTokens dumps a token stream one token per line with its position.
func WriteTokens(w io.Writer, fset *source.FileSet, tokens []token.Token, opts Options) {
	for _, tok := range tokens {
		start, _ := fset.Resolve(tok.Span)
		kind := tok.Kind.String()
		if opts.Color {
			kind = infoColor.Sprint(kind)
		}
		if tok.Text != "" && tok.Kind != token.EOF {
			fmt.Fprintf(w, "%4d:%-3d %-12s %q\n", start.Line, start.Col, kind, tok.Text)
		} else {
			fmt.Fprintf(w, "%4d:%-3d %s\n", start.Line, start.Col, kind)
		}
	}
}
