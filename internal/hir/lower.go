package hir

import (
	"fmt"

	"hatc/internal/ast"
	"hatc/internal/diag"
	"hatc/internal/source"
)

// Lowerer converts unresolved ast modules into HIR. It owns the
// project-wide expression ID counter so IDs stay unique across modules;
// lowering is otherwise a pure function of its input.
type Lowerer struct {
	reporter diag.Reporter
	nextExpr ExprID

	// per-module state
	modPath string
	errors  int
}

func NewLowerer(reporter diag.Reporter) *Lowerer {
	return &Lowerer{
		reporter: reporter,
		nextExpr: NoExprID + 1,
	}
}

// LowerModule lowers one parsed module. ok is false when lowering
// reported errors; such modules must not be admitted into the project.
func (lw *Lowerer) LowerModule(m *ast.Module, id ModuleID, file source.FileID) (*Module, bool) {
	lw.modPath = m.PathString()
	lw.errors = 0
	startExpr := lw.nextExpr

	out := &Module{
		ID:      id,
		Path:    Path(m.Path),
		File:    file,
		Imports: lw.lowerImports(m.Imports),
		Span:    m.Span,
	}

	switch m.Kind {
	case ast.ContentConsts:
		out.Content.Kind = ContentConsts
		for _, c := range m.Consts {
			out.Content.Consts = append(out.Content.Consts, lw.lowerConst(c))
		}
	case ast.ContentTypes:
		out.Content.Kind = ContentTypes
		for _, t := range m.Types {
			out.Content.Types = append(out.Content.Types, lw.lowerTypeDef(t))
		}
	case ast.ContentGroups:
		out.Content.Kind = ContentGroups
		for _, g := range m.Groups {
			out.Content.Groups = append(out.Content.Groups, lw.lowerGroup(g))
		}
	}

	out.ExprCount = uint32(lw.nextExpr - startExpr)
	return out, lw.errors == 0
}

// symbol maps an ast name (sugar marker included) to an HIR symbol.
func (lw *Lowerer) symbol(n ast.Name) Symbol {
	backend, ok := BackendFromSugar(n.Sugar)
	if !ok {
		lw.report(diag.BadSugarPlacement, n.Span, n.Text,
			fmt.Sprintf("unknown backend marker %q", string(n.Sugar)))
	}
	return Symbol{Name: n.Text, Backend: backend, Span: n.Span}
}

// plainSymbol maps a name in a position where backend sugar is undefined
// (parameter names, member init names).
func (lw *Lowerer) plainSymbol(n ast.Name) Symbol {
	if n.Sugar != 0 {
		lw.report(diag.BadSugarPlacement, n.Span, n.Text,
			fmt.Sprintf("backend marker %q is not allowed here", string(n.Sugar)))
	}
	return Symbol{Name: n.Text, Backend: CPU, Span: n.Span}
}

func (lw *Lowerer) typeName(t ast.TypeRef) TypeName {
	return TypeName{Name: lw.symbol(t.Name)}
}

func (lw *Lowerer) report(code diag.Code, span source.Span, symbol, msg string) {
	lw.errors++
	diag.ReportError(lw.reporter, code, span, msg).
		InModule(lw.modPath).
		ForSymbol(symbol).
		Emit()
}

func (lw *Lowerer) lowerImports(imports []ast.Import) Imports {
	var out Imports
	for _, imp := range imports {
		sym := ImportSymbol{
			Name: lw.symbol(imp.Name),
			Path: Path(imp.Path),
			Span: imp.Span,
		}
		switch imp.Category {
		case ast.ImportConst:
			out.Consts = append(out.Consts, sym)
		case ast.ImportType:
			out.Types = append(out.Types, sym)
		case ast.ImportFn:
			out.Fns = append(out.Fns, sym)
		case ast.ImportModifier:
			out.Modifiers = append(out.Modifiers, sym)
		case ast.ImportMetaFn:
			out.MetaFns = append(out.MetaFns, sym)
		}
	}
	return out
}

func (lw *Lowerer) lowerConst(c *ast.ConstDef) *ConstDef {
	return &ConstDef{
		Name:      lw.symbol(c.Name),
		Type:      lw.typeName(c.Type),
		Modifiers: lw.lowerModifiers(c.Modifiers),
		Value:     lw.lowerExpr(c.Value),
		Span:      c.Span,
	}
}

func (lw *Lowerer) lowerTypeDef(t *ast.TypeDef) *TypeDef {
	out := &TypeDef{
		Name:      lw.symbol(t.Name),
		Modifiers: lw.lowerModifiers(t.Modifiers),
		Span:      t.Span,
	}
	switch t.Kind {
	case ast.TypeDefPrimitive:
		out.Kind = TypeDefPrimitive
		prim, ok := LookupPrimitive(t.Prim.Text)
		if !ok {
			lw.report(diag.ParseError, t.Prim.Span, t.Prim.Text,
				fmt.Sprintf("%q is not a primitive type", t.Prim.Text))
		}
		out.Prim = prim
	case ast.TypeDefStruct:
		out.Kind = TypeDefStruct
		out.Struct = lw.lowerStructBody(out.Name, t.Members, nil)
	case ast.TypeDefEnum:
		out.Kind = TypeDefEnum
		for _, mem := range t.EnumMems {
			em := EnumMember{Name: lw.symbol(mem.Name)}
			if mem.IsStruct() {
				em.Struct = lw.lowerStructBody(em.Name, mem.Members, nil)
			}
			out.Enum = append(out.Enum, em)
		}
	}
	return out
}

func (lw *Lowerer) lowerStructBody(name Symbol, members []ast.StructMember, mods []Modifier) *StructDef {
	out := &StructDef{Name: name, Modifiers: mods}
	for _, m := range members {
		out.Members = append(out.Members, StructMember{
			Name: lw.symbol(m.Name),
			Type: lw.typeName(m.Type),
		})
	}
	return out
}

func (lw *Lowerer) lowerGroup(g *ast.GroupDef) *GroupDef {
	switch g.Kind {
	case ast.GroupFn:
		return &GroupDef{Kind: GroupFn, Fn: lw.lowerFn(g.Fn)}
	case ast.GroupModifier:
		return &GroupDef{Kind: GroupModifier, Modifier: lw.lowerModifierDef(g.Modifier)}
	case ast.GroupMetaFn:
		return &GroupDef{Kind: GroupMetaFn, MetaFn: lw.lowerMetaFn(g.MetaFn)}
	}
	return nil
}

func (lw *Lowerer) lowerFn(f *ast.FnDef) *FnDef {
	out := &FnDef{
		Name:      lw.symbol(f.Name),
		Params:    lw.lowerParams(f.Params),
		Modifiers: lw.lowerModifiers(f.Modifiers),
		Body:      lw.lowerBlock(f.Body),
		Span:      f.Span,
	}
	if f.Ret != nil {
		ret := lw.typeName(*f.Ret)
		out.Ret = &ret
	}
	return out
}

func (lw *Lowerer) lowerModifierDef(d *ast.ModifierDef) *ModifierDef {
	if len(d.Params) > 2 {
		lw.report(diag.InvalidModifierArity, d.Span, d.Name.Text,
			fmt.Sprintf("modifier %q declares %d parameters, at most two are allowed",
				d.Name.Text, len(d.Params)))
	}
	return &ModifierDef{
		Name:      lw.symbol(d.Name),
		Params:    lw.lowerParams(d.Params),
		Modifiers: lw.lowerModifiers(d.Modifiers),
		Body:      lw.lowerBlock(d.Body),
		Span:      d.Span,
	}
}

func (lw *Lowerer) lowerMetaFn(d *ast.MetaFnDef) *MetaFnDef {
	return &MetaFnDef{
		Name:      lw.symbol(d.Name),
		Params:    lw.lowerParams(d.Params),
		Kind:      MetaKind(d.Kind),
		Modifiers: lw.lowerModifiers(d.Modifiers),
		Body:      lw.lowerBlock(d.Body),
		Span:      d.Span,
	}
}

func (lw *Lowerer) lowerParams(params []ast.Param) []Param {
	out := make([]Param, 0, len(params))
	for _, p := range params {
		out = append(out, Param{
			Name: lw.plainSymbol(p.Name),
			Type: lw.typeName(p.Type),
		})
	}
	return out
}

func (lw *Lowerer) lowerModifiers(mods []ast.Modifier) []Modifier {
	if len(mods) == 0 {
		return nil
	}
	out := make([]Modifier, 0, len(mods))
	for _, m := range mods {
		mod := Modifier{Name: lw.plainSymbol(m.Name)}
		if m.Value != nil {
			mod.Value = lw.lowerExpr(m.Value)
		}
		out = append(out, mod)
	}
	return out
}
