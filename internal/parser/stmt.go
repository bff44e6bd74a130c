package parser

import (
	"hatc/internal/ast"
	"hatc/internal/token"
)

// parseBlock parses `{ stmt* }`.
func (p *Parser) parseBlock() ([]ast.Stmt, bool) {
	if _, ok := p.expect(token.LBrace); !ok {
		p.resyncTop()
		return nil, false
	}
	return p.parseStmtsUntilRBrace(nil)
}

func (p *Parser) parseStmtsUntilRBrace(stmts []ast.Stmt) ([]ast.Stmt, bool) {
	if stmts == nil {
		stmts = []ast.Stmt{}
	}
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		s, ok := p.parseStmt()
		if !ok {
			p.skipUntil(token.RBrace)
			return stmts, false
		}
		stmts = append(stmts, s)
	}
	_, ok := p.expect(token.RBrace)
	return stmts, ok
}

// parseStmt parses one statement.
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	tok := p.lx.Peek()

	if tok.Kind == token.ColonColon {
		start := p.bump().Span
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		return &ast.ReturnStmt{Value: value, Span: start.Cover(value.ExprSpan())}, true
	}

	if tok.Kind == token.Ident {
		name := ast.Name{Text: tok.Text, Span: tok.Span}
		p.bump()
		return p.parseStmtFromName(name)
	}

	if tok.Kind.IsSugar() {
		marker := sugarByte(tok.Kind)
		start := p.bump().Span
		next := p.lx.Peek()
		if next.Kind == token.Ident {
			name := ast.Name{Sugar: marker, Text: next.Text, Span: start.Cover(next.Span)}
			p.bump()
			return p.parseStmtFromName(name)
		}
		// sugared literal in statement position
		if next.Kind == token.Int || next.Kind == token.Float ||
			next.Kind == token.String || next.Kind == token.KwTrue || next.Kind == token.KwFalse {
			e, ok := p.parseCastSuffix(p.parseLiteral(marker, start))
			if !ok {
				return nil, false
			}
			return &ast.ExprStmt{X: e}, true
		}
		p.errorf(next.Span, "expected identifier or literal after backend marker, found %s", next.Kind)
		return nil, false
	}

	e, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.ExprStmt{X: e}, true
}

// parseStmtFromName continues a statement whose leading name is consumed:
// declare, declare-assign, assign (single/struct/enum) or expression.
func (p *Parser) parseStmtFromName(name ast.Name) (ast.Stmt, bool) {
	switch p.lx.Peek().Kind {
	case token.Lt:
		mods := p.parseModifiers()
		return p.parseDeclareTail(name, mods)

	case token.Colon:
		return p.parseDeclareTail(name, nil)

	case token.Eq:
		p.bump()
		value, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		return &ast.AssignStmt{
			Target: []ast.Name{name},
			Value:  value,
			Span:   name.Span.Cover(value.ExprSpan()),
		}, true

	case token.Dot:
		p.bump()
		if p.at(token.LBrace) {
			return p.parseDataAssign(name)
		}
		seg, ok := p.parseName()
		if !ok {
			return nil, false
		}
		parts, ok := p.parseMemberChain(seg)
		if !ok {
			return nil, false
		}
		parts = append([]ast.Name{name}, parts...)
		if p.at(token.Eq) {
			p.bump()
			value, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			return &ast.AssignStmt{
				Target: parts,
				Value:  value,
				Span:   name.Span.Cover(value.ExprSpan()),
			}, true
		}
		e, ok := p.parseCastSuffix(&ast.MemberExpr{
			Parts: parts,
			Span:  name.Span.Cover(parts[len(parts)-1].Span),
		})
		if !ok {
			return nil, false
		}
		return &ast.ExprStmt{X: e}, true

	default:
		e, ok := p.parseExprFromName(name)
		if !ok {
			return nil, false
		}
		e, ok = p.parseCastSuffix(e)
		if !ok {
			return nil, false
		}
		return p.continueStmt(e)
	}
}

// parseDeclareTail parses `: type (= expr)?` after the declared name.
func (p *Parser) parseDeclareTail(name ast.Name, mods []ast.Modifier) (ast.Stmt, bool) {
	if _, ok := p.expect(token.Colon); !ok {
		return nil, false
	}
	ty, ok := p.parseTypeRef()
	if !ok {
		return nil, false
	}
	if !p.at(token.Eq) {
		return &ast.DeclareStmt{
			Name:      name,
			Modifiers: mods,
			Type:      ty,
			Span:      name.Span.Cover(ty.Span),
		}, true
	}
	p.bump()
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.DeclareAssignStmt{
		Name:      name,
		Modifiers: mods,
		Type:      ty,
		Value:     value,
		Span:      name.Span.Cover(value.ExprSpan()),
	}, true
}

// parseDataAssign parses the `.{ ... }` struct/enum assign forms with the
// target name and '.' consumed and '{' pending.
func (p *Parser) parseDataAssign(target ast.Name) (ast.Stmt, bool) {
	p.bump() // '{'

	first, ok := p.parseName()
	if !ok {
		p.skipUntil(token.RBrace)
		return nil, false
	}

	switch p.lx.Peek().Kind {
	case token.Eq:
		// struct form: target.{ m1=e1 m2=e2 ... }
		members, ok := p.parseMemberInits(first)
		if !ok {
			return nil, false
		}
		return &ast.StructAssignStmt{
			Target:  target,
			Members: members,
			Span:    target.Span.Cover(p.lastSpan),
		}, true

	case token.LBrace:
		// enum struct-variant form: target.{ variant{ m1=e1 ... } }
		p.bump()
		var members []ast.MemberInit
		if !p.at(token.RBrace) {
			mname, ok := p.parseName()
			if !ok {
				p.skipUntil(token.RBrace)
				p.skipUntil(token.RBrace)
				return nil, false
			}
			members, ok = p.parseMemberInits(mname)
			if !ok {
				p.skipUntil(token.RBrace)
				return nil, false
			}
		} else {
			p.bump()
			members = []ast.MemberInit{}
		}
		if _, ok := p.expect(token.RBrace); !ok {
			return nil, false
		}
		return &ast.EnumAssignStmt{
			Target:  target,
			Variant: first,
			Members: members,
			Span:    target.Span.Cover(p.lastSpan),
		}, true

	case token.RBrace:
		// enum kind-member form: target.{ variant }
		p.bump()
		return &ast.EnumAssignStmt{
			Target:  target,
			Variant: first,
			Span:    target.Span.Cover(p.lastSpan),
		}, true

	default:
		p.errorf(p.lx.Peek().Span, "expected '=', '{' or '}' in data assign, found %s", p.lx.Peek().Kind)
		p.skipUntil(token.RBrace)
		return nil, false
	}
}

// parseMemberInits parses `m1=e1 m2=e2 ... }` with the first member name
// consumed; it consumes the closing brace.
func (p *Parser) parseMemberInits(first ast.Name) ([]ast.MemberInit, bool) {
	var members []ast.MemberInit
	name := first
	for {
		if _, ok := p.expect(token.Eq); !ok {
			p.skipUntil(token.RBrace)
			return nil, false
		}
		value, ok := p.parseExpr()
		if !ok {
			p.skipUntil(token.RBrace)
			return nil, false
		}
		members = append(members, ast.MemberInit{
			Name:  name,
			Value: value,
			Span:  name.Span.Cover(value.ExprSpan()),
		})
		if p.at(token.RBrace) {
			p.bump()
			return members, true
		}
		name, ok = p.parseName()
		if !ok {
			p.skipUntil(token.RBrace)
			return nil, false
		}
	}
}

// continueStmt folds an already-parsed expression into a statement:
// `target = expr` when an assignment follows, a bare expression otherwise.
func (p *Parser) continueStmt(e ast.Expr) (ast.Stmt, bool) {
	if !p.at(token.Eq) {
		return &ast.ExprStmt{X: e}, true
	}

	var target []ast.Name
	switch t := e.(type) {
	case *ast.IdentExpr:
		target = []ast.Name{t.Name}
	case *ast.MemberExpr:
		target = t.Parts
	default:
		p.errorf(p.lx.Peek().Span, "left side of '=' must be a name or member chain")
		return nil, false
	}
	p.bump()
	value, ok := p.parseExpr()
	if !ok {
		return nil, false
	}
	return &ast.AssignStmt{
		Target: target,
		Value:  value,
		Span:   target[0].Span.Cover(value.ExprSpan()),
	}, true
}
