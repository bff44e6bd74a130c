package parser

import (
	"hatc/internal/ast"
	"hatc/internal/token"
)

var importCategories = map[token.Kind]ast.ImportCategory{
	token.KwConst:    ast.ImportConst,
	token.KwType:     ast.ImportType,
	token.KwFn:       ast.ImportFn,
	token.KwModifier: ast.ImportModifier,
	token.KwMetafn:   ast.ImportMetaFn,
}

// parseImports parses one `use ( cat: entry ... )` block and appends the
// expanded imports to the module.
func (p *Parser) parseImports(m *ast.Module) {
	p.bump() // 'use'
	if _, ok := p.expect(token.LParen); !ok {
		p.resyncTop()
		return
	}

	for !p.at(token.RParen) && !p.at(token.EOF) {
		tok := p.lx.Peek()
		cat, ok := importCategories[tok.Kind]
		if !ok {
			p.errorf(tok.Span, "expected an import category (const, type, fn, modifier, metafn), found %s", tok.Kind)
			p.skipUntil(token.RParen)
			return
		}
		p.bump()
		if _, ok := p.expect(token.Colon); !ok {
			p.skipUntil(token.RParen)
			return
		}
		// entries run until the next category keyword or ')'
		for {
			next := p.lx.Peek().Kind
			if _, isCat := importCategories[next]; isCat || next == token.RParen || next == token.EOF {
				break
			}
			p.parseImportEntry(m, cat)
		}
	}
	p.expect(token.RParen)
}

// parseImportEntry parses `seg(.seg)*.name` or `seg(.seg)*.[n1 n2 ...]`,
// expanding grouped names to one Import each.
func (p *Parser) parseImportEntry(m *ast.Module, cat ast.ImportCategory) {
	start := p.lx.Peek().Span

	var segs []ast.Name
	for {
		if p.at(token.LBracket) {
			// grouped names: everything before '[' is the path
			p.bump()
			path := namesToPath(segs)
			for !p.at(token.RBracket) && !p.at(token.EOF) {
				name, ok := p.parseName()
				if !ok {
					p.skipUntil(token.RBracket)
					return
				}
				m.Imports = append(m.Imports, ast.Import{
					Category: cat,
					Path:     path,
					Name:     name,
					Span:     start.Cover(name.Span),
				})
			}
			p.expect(token.RBracket)
			return
		}
		name, ok := p.parseName()
		if !ok {
			p.resyncImportEntry()
			return
		}
		segs = append(segs, name)
		if !p.at(token.Dot) {
			break
		}
		p.bump()
	}

	// single entry: the last segment is the imported name
	last := segs[len(segs)-1]
	path := namesToPath(segs[:len(segs)-1])
	for _, seg := range segs[:len(segs)-1] {
		if seg.Sugar != 0 {
			p.errorf(seg.Span, "backend sugar is not allowed on import path segments")
		}
	}
	m.Imports = append(m.Imports, ast.Import{
		Category: cat,
		Path:     path,
		Name:     last,
		Span:     start.Cover(last.Span),
	})
}

func namesToPath(segs []ast.Name) []string {
	if len(segs) == 0 {
		return nil
	}
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = s.Text
	}
	return out
}

// resyncImportEntry skips to the next entry boundary inside a use block.
func (p *Parser) resyncImportEntry() {
	for {
		switch p.lx.Peek().Kind {
		case token.EOF, token.RParen:
			return
		case token.KwConst, token.KwType, token.KwFn, token.KwModifier, token.KwMetafn:
			return
		case token.Ident:
			return
		}
		p.bump()
	}
}
