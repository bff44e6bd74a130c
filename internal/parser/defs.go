package parser

import (
	"hatc/internal/ast"
	"hatc/internal/token"
)

// parseConstDef parses `const name : type = expr`.
func (p *Parser) parseConstDef() *ast.ConstDef {
	start := p.bump().Span // 'const'
	name, ok := p.parseName()
	if !ok {
		p.resyncTop()
		return nil
	}
	mods := p.parseModifiers()
	if _, ok := p.expect(token.Colon); !ok {
		p.resyncTop()
		return nil
	}
	ty, ok := p.parseTypeRef()
	if !ok {
		p.resyncTop()
		return nil
	}
	if _, ok := p.expect(token.Eq); !ok {
		p.resyncTop()
		return nil
	}
	value, ok := p.parseExpr()
	if !ok {
		p.resyncTop()
		return nil
	}
	return &ast.ConstDef{
		Name:      name,
		Type:      ty,
		Modifiers: mods,
		Value:     value,
		Span:      start.Cover(value.ExprSpan()),
	}
}

// parseTypeDef parses `type name : prim`, `type name { m:type ... }` or
// `enum name { ... }`.
func (p *Parser) parseTypeDef() *ast.TypeDef {
	kw := p.bump() // 'type' or 'enum'
	name, ok := p.parseName()
	if !ok {
		p.resyncTop()
		return nil
	}
	mods := p.parseModifiers()

	if kw.Kind == token.KwEnum {
		members, ok := p.parseEnumBody()
		if !ok {
			return nil
		}
		return &ast.TypeDef{
			Kind:      ast.TypeDefEnum,
			Name:      name,
			EnumMems:  members,
			Modifiers: mods,
			Span:      kw.Span.Cover(p.lastSpan),
		}
	}

	switch {
	case p.at(token.Colon):
		p.bump()
		prim, ok := p.parseName()
		if !ok {
			p.resyncTop()
			return nil
		}
		return &ast.TypeDef{
			Kind:      ast.TypeDefPrimitive,
			Name:      name,
			Prim:      prim,
			Modifiers: mods,
			Span:      kw.Span.Cover(prim.Span),
		}
	case p.at(token.LBrace):
		members, ok := p.parseStructBody()
		if !ok {
			return nil
		}
		return &ast.TypeDef{
			Kind:      ast.TypeDefStruct,
			Name:      name,
			Members:   members,
			Modifiers: mods,
			Span:      kw.Span.Cover(p.lastSpan),
		}
	default:
		p.errorf(p.lx.Peek().Span, "expected ':' or '{' after type name, found %s", p.lx.Peek().Kind)
		p.resyncTop()
		return nil
	}
}

// parseStructBody parses `{ name:type ... }`.
func (p *Parser) parseStructBody() ([]ast.StructMember, bool) {
	if _, ok := p.expect(token.LBrace); !ok {
		p.resyncTop()
		return nil, false
	}
	var members []ast.StructMember
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		name, ok := p.parseName()
		if !ok {
			p.skipUntil(token.RBrace)
			return members, false
		}
		if _, ok := p.expect(token.Colon); !ok {
			p.skipUntil(token.RBrace)
			return members, false
		}
		ty, ok := p.parseTypeRef()
		if !ok {
			p.skipUntil(token.RBrace)
			return members, false
		}
		members = append(members, ast.StructMember{
			Name: name,
			Type: ty,
			Span: name.Span.Cover(ty.Span),
		})
	}
	_, ok := p.expect(token.RBrace)
	return members, ok
}

// parseEnumBody parses `{ Member ... m{f:type ...} ... }`.
func (p *Parser) parseEnumBody() ([]ast.EnumMember, bool) {
	if _, ok := p.expect(token.LBrace); !ok {
		p.resyncTop()
		return nil, false
	}
	var members []ast.EnumMember
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		name, ok := p.parseName()
		if !ok {
			p.skipUntil(token.RBrace)
			return members, false
		}
		mem := ast.EnumMember{Name: name, Span: name.Span}
		if p.at(token.LBrace) {
			fields, ok := p.parseStructBody()
			if !ok {
				return members, false
			}
			if fields == nil {
				fields = []ast.StructMember{}
			}
			mem.Members = fields
			mem.Span = name.Span.Cover(p.lastSpan)
		}
		members = append(members, mem)
	}
	_, ok := p.expect(token.RBrace)
	return members, ok
}

// parseGroupDef parses one fn/modifier/metafn definition (or the `main`
// entry block, which desugars to a parameterless fn named "main").
func (p *Parser) parseGroupDef() *ast.GroupDef {
	switch p.lx.Peek().Kind {
	case token.KwFn:
		if fn := p.parseFnDef(); fn != nil {
			return &ast.GroupDef{Kind: ast.GroupFn, Fn: fn, Span: fn.Span}
		}
	case token.KwMain:
		if fn := p.parseMain(); fn != nil {
			return &ast.GroupDef{Kind: ast.GroupFn, Fn: fn, Span: fn.Span}
		}
	case token.KwModifier:
		if def := p.parseModifierDef(); def != nil {
			return &ast.GroupDef{Kind: ast.GroupModifier, Modifier: def, Span: def.Span}
		}
	case token.KwMetafn:
		if def := p.parseMetaFnDef(); def != nil {
			return &ast.GroupDef{Kind: ast.GroupMetaFn, MetaFn: def, Span: def.Span}
		}
	}
	return nil
}

func (p *Parser) parseFnDef() *ast.FnDef {
	start := p.bump().Span // 'fn'
	name, ok := p.parseName()
	if !ok {
		p.resyncTop()
		return nil
	}
	params, ok := p.parseParams()
	if !ok {
		p.resyncTop()
		return nil
	}

	var ret *ast.TypeRef
	if p.at(token.Ident) || p.lx.Peek().Kind.IsSugar() {
		ty, ok := p.parseTypeRef()
		if !ok {
			p.resyncTop()
			return nil
		}
		ret = &ty
	}
	mods := p.parseModifiers()
	body, ok := p.parseBlock()
	if !ok {
		return nil
	}
	return &ast.FnDef{
		Name:      name,
		Params:    params,
		Ret:       ret,
		Modifiers: mods,
		Body:      body,
		Span:      start.Cover(p.lastSpan),
	}
}

func (p *Parser) parseMain() *ast.FnDef {
	kw := p.bump() // 'main'
	body, ok := p.parseBlock()
	if !ok {
		return nil
	}
	return &ast.FnDef{
		Name: ast.Name{Text: "main", Span: kw.Span},
		Body: body,
		Span: kw.Span.Cover(p.lastSpan),
	}
}

func (p *Parser) parseModifierDef() *ast.ModifierDef {
	start := p.bump().Span // 'modifier'
	name, ok := p.parseName()
	if !ok {
		p.resyncTop()
		return nil
	}
	params, ok := p.parseParams()
	if !ok {
		p.resyncTop()
		return nil
	}
	mods := p.parseModifiers()
	body, ok := p.parseBlock()
	if !ok {
		return nil
	}
	return &ast.ModifierDef{
		Name:      name,
		Params:    params,
		Modifiers: mods,
		Body:      body,
		Span:      start.Cover(p.lastSpan),
	}
}

var metaKinds = map[token.Kind]ast.MetaKind{
	token.KwFnT:     ast.MetaFnT,
	token.KwOptnT:   ast.MetaOptnT,
	token.KwBdnT:    ast.MetaBdnT,
	token.KwOptBdnT: ast.MetaOptBdnT,
}

func (p *Parser) parseMetaFnDef() *ast.MetaFnDef {
	start := p.bump().Span // 'metafn'
	name, ok := p.parseName()
	if !ok {
		p.resyncTop()
		return nil
	}
	params, ok := p.parseParams()
	if !ok {
		p.resyncTop()
		return nil
	}
	kindTok := p.lx.Peek()
	kind, ok := metaKinds[kindTok.Kind]
	if !ok {
		p.errorf(kindTok.Span, "expected a meta-function kind (fn_t, optn_t, bdn_t, optbdn_t), found %s", kindTok.Kind)
		p.resyncTop()
		return nil
	}
	p.bump()
	mods := p.parseModifiers()
	body, ok := p.parseBlock()
	if !ok {
		return nil
	}
	return &ast.MetaFnDef{
		Name:      name,
		Params:    params,
		Kind:      kind,
		Modifiers: mods,
		Body:      body,
		Span:      start.Cover(p.lastSpan),
	}
}

// parseParams parses `( name:type ... )`.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	if _, ok := p.expect(token.LParen); !ok {
		return nil, false
	}
	var params []ast.Param
	for !p.at(token.RParen) && !p.at(token.EOF) {
		name, ok := p.parseName()
		if !ok {
			p.skipUntil(token.RParen)
			return params, false
		}
		if _, ok := p.expect(token.Colon); !ok {
			p.skipUntil(token.RParen)
			return params, false
		}
		ty, ok := p.parseTypeRef()
		if !ok {
			p.skipUntil(token.RParen)
			return params, false
		}
		params = append(params, ast.Param{
			Name: name,
			Type: ty,
			Span: name.Span.Cover(ty.Span),
		})
	}
	_, ok := p.expect(token.RParen)
	return params, ok
}
