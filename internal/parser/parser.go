// Package parser turns the token stream of one Heather file into an
// unresolved ast.Module. Files are homogeneous: the first definition
// keyword fixes the content kind and any later definition of another
// kind is rejected as mixed content.
package parser

import (
	"fmt"

	"hatc/internal/ast"
	"hatc/internal/diag"
	"hatc/internal/lexer"
	"hatc/internal/source"
	"hatc/internal/token"
)

// Options configure parsing for one file.
type Options struct {
	Reporter  diag.Reporter
	MaxErrors uint
}

// Parser is the per-file parse state.
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	modPath  []string
	errors   uint
	mixed    bool
	lastSpan source.Span
}

// ParseModule parses one file into an unresolved module. modPath is the
// module path derived from the file's location under the project root.
// Returns nil when the module must not be admitted (fatal parse failure
// or mixed content); diagnostics are already reported either way.
func ParseModule(fs *source.FileSet, fileID source.FileID, modPath []string, opts Options) *ast.Module {
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: opts.Reporter})
	p := Parser{
		lx:      lx,
		opts:    opts,
		modPath: modPath,
	}
	m := p.parseModule()
	if p.mixed {
		return nil
	}
	if m != nil && p.errors > 0 {
		return nil
	}
	return m
}

func (p *Parser) parseModule() *ast.Module {
	m := &ast.Module{Path: p.modPath}
	startSpan := p.lx.Peek().Span

	for p.at(token.KwUse) {
		p.parseImports(m)
	}

	for !p.at(token.EOF) {
		if p.enough() || p.mixed {
			break
		}
		p.parseDef(m)
	}

	m.Span = startSpan.Cover(p.lastSpan)
	return m
}

// parseDef dispatches on the leading keyword and enforces content
// homogeneity.
func (p *Parser) parseDef(m *ast.Module) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.KwConst:
		if !p.admitKind(m, ast.ContentConsts, tok.Span) {
			return
		}
		if def := p.parseConstDef(); def != nil {
			m.Consts = append(m.Consts, def)
		}
	case token.KwType, token.KwEnum:
		if !p.admitKind(m, ast.ContentTypes, tok.Span) {
			return
		}
		if def := p.parseTypeDef(); def != nil {
			m.Types = append(m.Types, def)
		}
	case token.KwFn, token.KwModifier, token.KwMetafn, token.KwMain:
		if !p.admitKind(m, ast.ContentGroups, tok.Span) {
			return
		}
		if def := p.parseGroupDef(); def != nil {
			m.Groups = append(m.Groups, def)
		}
	default:
		p.errorf(tok.Span, "expected a definition keyword, found %s", tok.Kind)
		p.resyncTop()
	}
}

// admitKind records the file's content kind on first use and reports
// MixedFileContent when a definition of another kind appears. Mixing
// stops the whole parse: the cursor stays on the offending keyword and
// parseModule bails out, so the mixing is reported exactly once.
func (p *Parser) admitKind(m *ast.Module, kind ast.ContentKind, span source.Span) bool {
	if m.Kind == ast.ContentUnknown {
		m.Kind = kind
		return true
	}
	if m.Kind != kind {
		diag.ReportError(p.opts.Reporter, diag.MixedFileContent, span,
			fmt.Sprintf("file already holds %s, %s definitions cannot be mixed in", m.Kind, kind)).
			InModule(m.PathString()).
			Emit()
		p.mixed = true
		return false
	}
	return true
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	got := p.lx.Peek().Kind
	for _, k := range kinds {
		if got == k {
			return true
		}
	}
	return false
}

func (p *Parser) bump() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

// expect consumes a token of the wanted kind or reports a parse error.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	tok := p.lx.Peek()
	if tok.Kind != k {
		p.errorf(tok.Span, "expected %s, found %s", k, tok.Kind)
		return tok, false
	}
	return p.bump(), true
}

func (p *Parser) errorf(span source.Span, format string, args ...any) {
	p.errors++
	diag.ReportError(p.opts.Reporter, diag.ParseError, span,
		fmt.Sprintf(format, args...)).Emit()
}

func (p *Parser) enough() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

// resyncTop skips tokens until the next plausible top-level definition.
func (p *Parser) resyncTop() {
	depth := 0
	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF:
			return
		case token.LBrace:
			depth++
		case token.RBrace:
			if depth > 0 {
				depth--
			}
		case token.KwConst, token.KwType, token.KwEnum,
			token.KwFn, token.KwModifier, token.KwMetafn, token.KwMain:
			if depth == 0 {
				return
			}
		}
		p.bump()
	}
}

// sugarByte folds a sugar marker token into the raw marker byte.
func sugarByte(k token.Kind) byte {
	switch k {
	case token.Plus:
		return '+'
	case token.Bang:
		return '!'
	case token.Percent:
		return '%'
	case token.At:
		return '@'
	}
	return 0
}

// parseName parses an optionally sugar-prefixed identifier.
func (p *Parser) parseName() (ast.Name, bool) {
	var sugar byte
	start := p.lx.Peek().Span
	if p.lx.Peek().Kind.IsSugar() {
		sugar = sugarByte(p.bump().Kind)
	}
	tok, ok := p.expect(token.Ident)
	if !ok {
		return ast.Name{}, false
	}
	return ast.Name{Sugar: sugar, Text: tok.Text, Span: start.Cover(tok.Span)}, true
}

// parsePlainName parses an identifier that must not carry a sugar marker.
func (p *Parser) parsePlainName() (ast.Name, bool) {
	tok, ok := p.expect(token.Ident)
	if !ok {
		return ast.Name{}, false
	}
	return ast.Name{Text: tok.Text, Span: tok.Span}, true
}

// parseTypeRef parses a type reference (a possibly sugared type name).
func (p *Parser) parseTypeRef() (ast.TypeRef, bool) {
	name, ok := p.parseName()
	if !ok {
		return ast.TypeRef{}, false
	}
	return ast.TypeRef{Name: name, Span: name.Span}, true
}

// parseModifiers parses an optional `<name(=expr)? ...>` group.
func (p *Parser) parseModifiers() []ast.Modifier {
	if !p.at(token.Lt) {
		return nil
	}
	p.bump()
	var mods []ast.Modifier
	for !p.at(token.Gt) && !p.at(token.EOF) {
		name, ok := p.parsePlainName()
		if !ok {
			p.skipUntil(token.Gt)
			return mods
		}
		mod := ast.Modifier{Name: name, Span: name.Span}
		if p.at(token.Eq) {
			p.bump()
			if v, ok := p.parseExpr(); ok {
				mod.Value = v
				mod.Span = mod.Span.Cover(v.ExprSpan())
			}
		}
		mods = append(mods, mod)
	}
	if _, ok := p.expect(token.Gt); !ok {
		p.skipUntil(token.Gt)
	}
	return mods
}

func (p *Parser) skipUntil(k token.Kind) {
	for !p.at(k) && !p.at(token.EOF) {
		p.bump()
	}
	if p.at(k) {
		p.bump()
	}
}
