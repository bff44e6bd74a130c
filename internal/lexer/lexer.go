package lexer

import (
	"hatc/internal/diag"
	"hatc/internal/source"
	"hatc/internal/token"
)

// Options configure lexing for one file.
type Options struct {
	Reporter diag.Reporter
}

// Lexer produces the significant token stream for one Heather file.
// Whitespace (including ',' and ';') and comments never reach callers.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead buffer
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being lexed.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword()
	case isDigit(ch):
		return lx.scanNumber()
	case ch == '-' && isDigit(lx.cursor.PeekAt(1)):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanPunct()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the current offset.
func (lx *Lexer) EmptySpan() source.Span {
	return lx.emptySpan()
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) span(start uint32) source.Span {
	return source.Span{File: lx.file.ID, Start: start, End: lx.cursor.Off}
}

// skipTrivia consumes whitespace, separators and comments.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		ch := lx.cursor.Peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == ',' || ch == ';':
			lx.cursor.Bump()
		case ch == '/' && lx.cursor.PeekAt(1) == '/':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case ch == '/' && lx.cursor.PeekAt(1) == '-':
			lx.skipBlockComment()
		default:
			return
		}
	}
}

// skipBlockComment consumes a '/- ... -/' comment.
func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Off
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '-'
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '-' && lx.cursor.PeekAt(1) == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
	diag.ReportError(lx.opts.Reporter, diag.LexUnterminatedComment,
		lx.span(start), "unterminated block comment").Emit()
}

func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Off
	for !lx.cursor.EOF() && isIdentContinue(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	text := lx.cursor.Slice(start, lx.cursor.Off)
	kind := token.Ident
	if kw, ok := token.LookupKeyword(text); ok {
		kind = kw
	} else if hasUnderscore(text) {
		// identifiers are [A-Za-z][A-Za-z0-9]*; '_' only lives in the
		// metafn kind keywords
		diag.ReportError(lx.opts.Reporter, diag.LexUnknownChar,
			lx.span(start), "'_' is not allowed in identifiers").Emit()
	}
	return token.Token{Kind: kind, Text: text, Span: lx.span(start)}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Off
	if lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
	}
	for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	kind := token.Int
	if lx.cursor.Peek() == '.' && isDigit(lx.cursor.PeekAt(1)) {
		kind = token.Float
		lx.cursor.Bump()
		for !lx.cursor.EOF() && isDigit(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	text := lx.cursor.Slice(start, lx.cursor.Off)
	if kind == token.Int && badIntText(text) {
		diag.ReportError(lx.opts.Reporter, diag.LexBadNumber,
			lx.span(start), "integers must not have leading zeros").Emit()
	}
	return token.Token{Kind: kind, Text: text, Span: lx.span(start)}
}

func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Off
	lx.cursor.Bump() // opening quote
	for !lx.cursor.EOF() && lx.cursor.Peek() != '"' {
		lx.cursor.Bump()
	}
	if lx.cursor.EOF() {
		diag.ReportError(lx.opts.Reporter, diag.LexUnterminatedString,
			lx.span(start), "unterminated string literal").Emit()
	} else {
		lx.cursor.Bump() // closing quote
	}
	return token.Token{
		Kind: token.String,
		Text: lx.cursor.Slice(start, lx.cursor.Off),
		Span: lx.span(start),
	}
}

func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Off
	ch := lx.cursor.Peek()
	lx.cursor.Bump()

	var kind token.Kind
	switch ch {
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ':':
		if lx.cursor.Peek() == ':' {
			lx.cursor.Bump()
			kind = token.ColonColon
		} else {
			kind = token.Colon
		}
	case '=':
		kind = token.Eq
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case '.':
		kind = token.Dot
	case '*':
		kind = token.Star
	case '+':
		kind = token.Plus
	case '!':
		kind = token.Bang
	case '%':
		kind = token.Percent
	case '@':
		kind = token.At
	default:
		diag.ReportError(lx.opts.Reporter, diag.LexUnknownChar,
			lx.span(start), "unknown character "+string(ch)).Emit()
		// skip and continue with whatever follows
		return lx.Next()
	}
	return token.Token{Kind: kind, Text: lx.cursor.Slice(start, lx.cursor.Off), Span: lx.span(start)}
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func hasUnderscore(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			return true
		}
	}
	return false
}

func badIntText(s string) bool {
	if len(s) > 0 && s[0] == '-' {
		s = s[1:]
	}
	return len(s) > 1 && s[0] == '0'
}
