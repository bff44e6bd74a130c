package parser

import (
	"hatc/internal/ast"
	"hatc/internal/source"
	"hatc/internal/token"
)

// parseExpr parses one expression, including cast postfixes.
func (p *Parser) parseExpr() (ast.Expr, bool) {
	e, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	return p.parseCastSuffix(e)
}

// parseCastSuffix folds `expr * type` chains left to right.
func (p *Parser) parseCastSuffix(e ast.Expr) (ast.Expr, bool) {
	for p.at(token.Star) {
		p.bump()
		ty, ok := p.parseTypeRef()
		if !ok {
			return nil, false
		}
		mods := p.parseModifiers()
		e = &ast.CastExpr{
			Value:     e,
			To:        ty,
			Modifiers: mods,
			Span:      e.ExprSpan().Cover(ty.Span),
		}
	}
	return e, true
}

func (p *Parser) parsePrimary() (ast.Expr, bool) {
	tok := p.lx.Peek()
	switch {
	case tok.Kind == token.Int, tok.Kind == token.Float,
		tok.Kind == token.String, tok.Kind == token.KwTrue, tok.Kind == token.KwFalse:
		return p.parseLiteral(0, tok.Span), true

	case tok.Kind.IsSugar():
		marker := sugarByte(tok.Kind)
		start := tok.Span
		p.bump()
		next := p.lx.Peek()
		switch {
		case next.Kind == token.Int, next.Kind == token.Float,
			next.Kind == token.String, next.Kind == token.KwTrue, next.Kind == token.KwFalse:
			return p.parseLiteral(marker, start), true
		case next.Kind == token.Ident:
			name := ast.Name{Sugar: marker, Text: next.Text, Span: start.Cover(next.Span)}
			p.bump()
			return p.parseExprFromName(name)
		default:
			p.errorf(next.Span, "expected identifier or literal after backend marker, found %s", next.Kind)
			return nil, false
		}

	case tok.Kind == token.Ident:
		name := ast.Name{Text: tok.Text, Span: tok.Span}
		p.bump()
		return p.parseExprFromName(name)

	default:
		p.errorf(tok.Span, "expected expression, found %s", tok.Kind)
		return nil, false
	}
}

func (p *Parser) parseLiteral(sugar byte, start source.Span) *ast.LiteralExpr {
	tok := p.bump()
	var kind ast.LitKind
	switch tok.Kind {
	case token.Int:
		kind = ast.LitInt
	case token.Float:
		kind = ast.LitFloat
	case token.String:
		kind = ast.LitString
	case token.KwTrue, token.KwFalse:
		kind = ast.LitBool
	}
	return &ast.LiteralExpr{
		Kind:  kind,
		Sugar: sugar,
		Text:  tok.Text,
		Span:  start.Cover(tok.Span),
	}
}

// parseExprFromName continues an expression whose leading name is already
// consumed: a call (plain or meta), a member access chain, or a bare
// identifier reference.
func (p *Parser) parseExprFromName(name ast.Name) (ast.Expr, bool) {
	switch {
	case p.at(token.LParen):
		return p.parseCallLike(name)
	case p.at(token.Dot):
		parts, ok := p.parseMemberChain(name)
		if !ok {
			return nil, false
		}
		return &ast.MemberExpr{
			Parts: parts,
			Span:  name.Span.Cover(parts[len(parts)-1].Span),
		}, true
	default:
		return &ast.IdentExpr{Name: name}, true
	}
}

// parseMemberChain collects `name(.name)+` with the leading name consumed.
func (p *Parser) parseMemberChain(first ast.Name) ([]ast.Name, bool) {
	parts := []ast.Name{first}
	for p.at(token.Dot) {
		p.bump()
		seg, ok := p.parseName()
		if !ok {
			return nil, false
		}
		parts = append(parts, seg)
	}
	return parts, true
}

// parseCallLike parses everything after `name(`: a plain call, an option
// meta-call (options in the parens), a body meta-call (trailing block of
// statements) or an option-body meta-call (trailing block of options).
func (p *Parser) parseCallLike(name ast.Name) (ast.Expr, bool) {
	p.bump() // '('

	var args []ast.Expr
	var options []ast.OptionBody
	for !p.at(token.RParen) && !p.at(token.EOF) {
		e, ok := p.parseExpr()
		if !ok {
			p.skipUntil(token.RParen)
			return nil, false
		}
		if p.at(token.Colon) {
			opt, ok := p.parseOptionArm(e)
			if !ok {
				p.skipUntil(token.RParen)
				return nil, false
			}
			options = append(options, opt)
		} else {
			args = append(args, e)
		}
	}
	if _, ok := p.expect(token.RParen); !ok {
		return nil, false
	}
	if len(options) > 0 && len(args) > 0 {
		p.errorf(name.Span, "call %q mixes plain arguments and options", name.Text)
		return nil, false
	}
	mods := p.parseModifiers()
	span := name.Span.Cover(p.lastSpan)

	if len(options) > 0 {
		return &ast.OptnCallExpr{
			Name:      name,
			Options:   options,
			Modifiers: mods,
			Span:      span,
		}, true
	}

	if !p.at(token.LBrace) {
		return &ast.CallExpr{
			Callee:    name,
			Args:      args,
			Modifiers: mods,
			Span:      span,
		}, true
	}

	// trailing block: body meta-call or option-body meta-call
	body, blockOpts, ok := p.parseCallBlock()
	if !ok {
		return nil, false
	}
	span = name.Span.Cover(p.lastSpan)
	if blockOpts != nil {
		return &ast.OptBdnCallExpr{
			Name:      name,
			Args:      args,
			Options:   blockOpts,
			Modifiers: mods,
			Span:      span,
		}, true
	}
	return &ast.BdnCallExpr{
		Name:      name,
		Args:      args,
		Body:      body,
		Modifiers: mods,
		Span:      span,
	}, true
}

// parseOptionArm parses `opt : body-or-expr` with opt already consumed.
func (p *Parser) parseOptionArm(opt ast.Expr) (ast.OptionBody, bool) {
	p.bump() // ':'
	var body []ast.Stmt
	if p.at(token.LBrace) {
		stmts, ok := p.parseBlock()
		if !ok {
			return ast.OptionBody{}, false
		}
		body = stmts
	} else {
		e, ok := p.parseExpr()
		if !ok {
			return ast.OptionBody{}, false
		}
		body = []ast.Stmt{&ast.ExprStmt{X: e}}
	}
	return ast.OptionBody{
		Opt:  opt,
		Body: body,
		Span: opt.ExprSpan().Cover(p.lastSpan),
	}, true
}

// parseCallBlock parses the `{ ... }` after a call. It decides between a
// statement body (bdn) and option arms (optbdn) by whether the first
// element is followed by ':'. A leading `name : ...` therefore always
// reads as an option arm, matching the original grammar's ordered choice.
func (p *Parser) parseCallBlock() (body []ast.Stmt, options []ast.OptionBody, ok bool) {
	p.bump() // '{'
	if p.at(token.RBrace) {
		p.bump()
		return []ast.Stmt{}, nil, true
	}

	// statements that cannot start an option arm settle the question early
	if p.atAny(token.ColonColon) {
		body, ok = p.parseStmtsUntilRBrace(nil)
		return body, nil, ok
	}

	first, exprOK := p.parseExpr()
	if !exprOK {
		p.skipUntil(token.RBrace)
		return nil, nil, false
	}

	if p.at(token.Colon) {
		// option-body form
		arm, armOK := p.parseOptionArm(first)
		if !armOK {
			p.skipUntil(token.RBrace)
			return nil, nil, false
		}
		options = []ast.OptionBody{arm}
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			opt, exprOK := p.parseExpr()
			if !exprOK {
				p.skipUntil(token.RBrace)
				return nil, nil, false
			}
			arm, armOK := p.parseOptionArm(opt)
			if !armOK {
				p.skipUntil(token.RBrace)
				return nil, nil, false
			}
			options = append(options, arm)
		}
		_, ok = p.expect(token.RBrace)
		return nil, options, ok
	}

	// statement body form: fold the consumed expression into a statement
	stmt, contOK := p.continueStmt(first)
	if !contOK {
		p.skipUntil(token.RBrace)
		return nil, nil, false
	}
	body, ok = p.parseStmtsUntilRBrace([]ast.Stmt{stmt})
	return body, nil, ok
}
