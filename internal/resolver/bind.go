package resolver

import (
	"fmt"

	"hatc/internal/diag"
	"hatc/internal/hir"
	"hatc/internal/source"
)

// Builtin modifiers understood by the planner; they bind to nothing.
var builtinModifiers = map[string]bool{
	"staged": true,
	"strict": true,
}

// ResolvedImport records where one import entry landed. Callable imports
// may bind several definitions, one per backend kind.
type ResolvedImport struct {
	Kind DefKind
	Sym  hir.Symbol
	Defs []DefID
}

type binder struct {
	table    *Table
	mod      *hir.Module
	reporter diag.Reporter
	bindings map[hir.ExprID]DefID
	errors   int

	consts    map[string]DefID
	types     map[string]DefID
	callables map[DefKind]map[string]map[hir.BackendKind]DefID

	imports []ResolvedImport
	scopes  []map[string]DefID
}

// Bind resolves every reference of one collected module against the
// table: imports first, then each expression and statement. Locals are
// appended to the table as the walk encounters them. The returned
// bindings map expression IDs to definitions; ok is false when any
// reference failed to bind.
func Bind(mod *hir.Module, table *Table, reporter diag.Reporter) (map[hir.ExprID]DefID, []ResolvedImport, bool) {
	b := &binder{
		table:    table,
		mod:      mod,
		reporter: reporter,
		bindings: make(map[hir.ExprID]DefID),
		consts:   make(map[string]DefID),
		types:    make(map[string]DefID),
		callables: map[DefKind]map[string]map[hir.BackendKind]DefID{
			DefFn:       make(map[string]map[hir.BackendKind]DefID),
			DefModifier: make(map[string]map[hir.BackendKind]DefID),
			DefMetaFn:   make(map[string]map[hir.BackendKind]DefID),
		},
	}
	b.buildEnv()
	b.bindContent()
	return b.bindings, b.imports, b.errors == 0
}

func (b *binder) report(code diag.Code, span source.Span, symbol, msg string) {
	b.errors++
	diag.ReportError(b.reporter, code, span, msg).
		InModule(b.mod.Path.String()).
		ForSymbol(symbol).
		Emit()
}

// --- environment -----------------------------------------------------

func (b *binder) buildEnv() {
	// Own definitions are visible without imports.
	for _, id := range b.ownDefs() {
		d := b.table.Get(id)
		switch d.Kind {
		case DefConst:
			b.consts[d.Sym.Name] = id
		case DefType:
			b.types[d.Sym.Name] = id
		default:
			b.putCallable(d.Kind, d.Sym.Name, d.Sym.Backend, id)
		}
	}

	b.resolveImports(DefConst, b.mod.Imports.Consts)
	b.resolveImports(DefType, b.mod.Imports.Types)
	b.resolveImports(DefFn, b.mod.Imports.Fns)
	b.resolveImports(DefModifier, b.mod.Imports.Modifiers)
	b.resolveImports(DefMetaFn, b.mod.Imports.MetaFns)
}

func (b *binder) ownDefs() []DefID {
	var out []DefID
	for i, d := range b.table.Defs() {
		if d.Module == b.mod.ID {
			out = append(out, DefID(i+1))
		}
	}
	return out
}

func (b *binder) putCallable(kind DefKind, name string, backend hir.BackendKind, id DefID) bool {
	byBackend := b.callables[kind][name]
	if byBackend == nil {
		byBackend = make(map[hir.BackendKind]DefID)
		b.callables[kind][name] = byBackend
	}
	if _, taken := byBackend[backend]; taken {
		return false
	}
	byBackend[backend] = id
	return true
}

// resolveImports binds one import category. Constant and type names bind
// a single definition; callable names bind every backend variant of the
// name, and two candidates on the same backend make the import
// ambiguous.
func (b *binder) resolveImports(kind DefKind, imports []hir.ImportSymbol) {
	for _, imp := range imports {
		var cands []DefID
		if imp.Path.IsRoot() {
			cands = b.table.Lookup(kind, imp.Name.Name)
		} else {
			cands = b.table.LookupIn(kind, imp.Name.Name, imp.Path)
		}
		if len(cands) == 0 {
			b.report(diag.UnresolvedImport, imp.Span, imp.Name.Name,
				fmt.Sprintf("import %s does not resolve to any %s definition", imp, kind))
			continue
		}

		resolved := ResolvedImport{Kind: kind, Sym: imp.Name}
		switch kind {
		case DefConst, DefType:
			if len(cands) > 1 {
				b.reportAmbiguous(imp, kind, cands)
				continue
			}
			dst := b.consts
			if kind == DefType {
				dst = b.types
			}
			if _, taken := dst[imp.Name.Name]; taken {
				b.report(diag.AmbiguousImport, imp.Span, imp.Name.Name,
					fmt.Sprintf("%s %s is already visible in this module", kind, imp.Name.Name))
				continue
			}
			dst[imp.Name.Name] = cands[0]
			resolved.Defs = cands
		default:
			perBackend := make(map[hir.BackendKind][]DefID)
			for _, id := range cands {
				d := b.table.Get(id)
				perBackend[d.Sym.Backend] = append(perBackend[d.Sym.Backend], id)
			}
			ambiguous := false
			for backend, ids := range perBackend {
				if len(ids) > 1 {
					b.reportAmbiguous(imp, kind, ids)
					ambiguous = true
					break
				}
				if !b.putCallable(kind, imp.Name.Name, backend, ids[0]) {
					b.report(diag.AmbiguousImport, imp.Span, imp.Name.Name,
						fmt.Sprintf("%s %s is already visible in this module",
							kind, hir.Symbol{Name: imp.Name.Name, Backend: backend}))
					ambiguous = true
					break
				}
				resolved.Defs = append(resolved.Defs, ids[0])
			}
			if ambiguous {
				continue
			}
		}
		b.imports = append(b.imports, resolved)
	}
}

func (b *binder) reportAmbiguous(imp hir.ImportSymbol, kind DefKind, cands []DefID) {
	builder := diag.ReportError(b.reporter, diag.AmbiguousImport, imp.Span,
		fmt.Sprintf("import %s matches %d %s definitions", imp, len(cands), kind)).
		InModule(b.mod.Path.String()).
		ForSymbol(imp.Name.Name)
	for _, id := range cands {
		d := b.table.Get(id)
		builder.WithNote(d.Sym.Span, fmt.Sprintf("candidate in module %s", d.Path))
	}
	b.errors++
	builder.Emit()
}

// --- scopes ----------------------------------------------------------

func (b *binder) pushScope() { b.scopes = append(b.scopes, make(map[string]DefID)) }
func (b *binder) popScope()  { b.scopes = b.scopes[:len(b.scopes)-1] }

func (b *binder) declare(id DefID, name string) {
	b.scopes[len(b.scopes)-1][name] = id
}

func (b *binder) lookupLocal(name string) (DefID, bool) {
	for i := len(b.scopes) - 1; i >= 0; i-- {
		if id, ok := b.scopes[i][name]; ok {
			return id, true
		}
	}
	return NoDefID, false
}

func (b *binder) newLocal(sym hir.Symbol, ty hir.TypeName) DefID {
	id := b.table.add(Def{
		Kind:      DefLocal,
		Module:    b.mod.ID,
		Path:      b.mod.Path,
		Sym:       sym,
		LocalType: ty,
	})
	b.declare(id, sym.Name)
	return id
}

// --- content ---------------------------------------------------------

func (b *binder) bindContent() {
	switch b.mod.Content.Kind {
	case hir.ContentConsts:
		for _, c := range b.mod.Content.Consts {
			b.bindTypeName(c.Type)
			b.bindModifiers(c.Modifiers)
			b.bindExpr(c.Value)
		}
	case hir.ContentTypes:
		for _, t := range b.mod.Content.Types {
			b.bindModifiers(t.Modifiers)
			switch t.Kind {
			case hir.TypeDefStruct:
				b.bindStructMembers(t.Struct)
			case hir.TypeDefEnum:
				for _, v := range t.Enum {
					if v.Struct != nil {
						b.bindStructMembers(v.Struct)
					}
				}
			}
		}
	case hir.ContentGroups:
		for _, g := range b.mod.Content.Groups {
			switch g.Kind {
			case hir.GroupFn:
				b.bindCallable(g.Fn.Params, g.Fn.Ret, g.Fn.Modifiers, g.Fn.Body)
			case hir.GroupModifier:
				b.bindCallable(g.Modifier.Params, nil, g.Modifier.Modifiers, g.Modifier.Body)
			case hir.GroupMetaFn:
				b.bindCallable(g.MetaFn.Params, nil, g.MetaFn.Modifiers, g.MetaFn.Body)
			}
		}
	}
}

func (b *binder) bindStructMembers(s *hir.StructDef) {
	for _, m := range s.Members {
		b.bindTypeName(m.Type)
	}
}

func (b *binder) bindCallable(params []hir.Param, ret *hir.TypeName, mods []hir.Modifier, body hir.Block) {
	b.pushScope()
	defer b.popScope()
	for _, p := range params {
		b.bindTypeName(p.Type)
		b.newLocal(p.Name, p.Type)
	}
	if ret != nil {
		b.bindTypeName(*ret)
	}
	b.bindModifiers(mods)
	b.bindBlock(body)
}

func (b *binder) bindTypeName(t hir.TypeName) {
	if _, prim := hir.LookupPrimitive(t.Name.Name); prim {
		return
	}
	if _, ok := b.types[t.Name.Name]; ok {
		return
	}
	b.report(diag.UnknownSymbol, t.Name.Span, t.Name.Name,
		fmt.Sprintf("type %s is not defined or imported here", t.Name))
}

func (b *binder) bindModifiers(mods []hir.Modifier) {
	for _, m := range mods {
		if !builtinModifiers[m.Name.Name] {
			if _, ok := b.callables[DefModifier][m.Name.Name][m.Name.Backend]; !ok {
				b.report(diag.UnknownSymbol, m.Name.Span, m.Name.Name,
					fmt.Sprintf("modifier %s is not defined or imported here", m.Name))
			}
		}
		if m.Value != nil {
			b.bindExpr(m.Value)
		}
	}
}

// --- statements ------------------------------------------------------

func (b *binder) bindBlock(block hir.Block) {
	b.pushScope()
	defer b.popScope()
	for i := range block {
		b.bindStmt(&block[i])
	}
}

func (b *binder) bindStmt(s *hir.Stmt) {
	switch d := s.Data.(type) {
	case hir.DeclareData:
		b.bindTypeName(d.Type)
		b.bindModifiers(d.Modifiers)
		b.newLocal(d.Name, d.Type)
	case hir.DeclareAssignData:
		b.bindExpr(d.Value)
		b.bindTypeName(d.Type)
		b.bindModifiers(d.Modifiers)
		b.newLocal(d.Name, d.Type)
	case hir.AssignData:
		b.bindAssign(d)
	case hir.ExprStmtData:
		b.bindExpr(d.X)
	case hir.ReturnData:
		b.bindExpr(d.Value)
	}
}

func (b *binder) bindAssign(d hir.AssignData) {
	b.bindModifiers(d.Modifiers)
	head := d.Target.Head()
	local, ok := b.lookupLocal(head.Name)
	if !ok {
		b.report(diag.UnknownSymbol, head.Span, head.Name,
			fmt.Sprintf("cannot assign to undeclared name %s", head))
		b.bindExpr(d.Value)
		return
	}
	ty := b.table.Get(local).LocalType

	switch d.Assign {
	case hir.AssignSingle:
		if len(d.Target.Parts) > 1 {
			b.walkMembers(ty, d.Target.Parts[1:])
		}
		b.bindExpr(d.Value)
	case hir.AssignStruct:
		if td := b.namedType(ty); td != nil && td.Kind == hir.TypeDefStruct {
			b.checkMemberInits(td.Struct, d.Members)
		} else {
			for _, m := range d.Members {
				b.bindExpr(m.Value)
			}
		}
	case hir.AssignEnum:
		td := b.namedType(ty)
		if td == nil || td.Kind != hir.TypeDefEnum {
			for _, m := range d.Members {
				b.bindExpr(m.Value)
			}
			return
		}
		variant := td.Variant(d.Variant.Name)
		if variant == nil {
			b.report(diag.UnknownSymbol, d.Variant.Span, d.Variant.Name,
				fmt.Sprintf("enum %s has no member %s", td.Name, d.Variant))
			return
		}
		if variant.Struct != nil {
			b.checkMemberInits(variant.Struct, d.Members)
		} else if len(d.Members) > 0 {
			b.report(diag.UnknownSymbol, d.Variant.Span, d.Variant.Name,
				fmt.Sprintf("enum member %s carries no data", d.Variant))
		}
	}
}

func (b *binder) checkMemberInits(s *hir.StructDef, inits []hir.MemberInit) {
	for _, m := range inits {
		if s.Member(m.Name.Name) == nil {
			b.report(diag.UnknownSymbol, m.Name.Span, m.Name.Name,
				fmt.Sprintf("%s has no member %s", s.Name, m.Name.Name))
		}
		b.bindExpr(m.Value)
	}
}

// namedType resolves a type reference to its definition; nil for
// primitives and unresolved names (the declaration already reported
// those).
func (b *binder) namedType(t hir.TypeName) *hir.TypeDef {
	if id, ok := b.types[t.Name.Name]; ok {
		return b.table.Get(id).Type
	}
	return nil
}

// --- expressions -----------------------------------------------------

func (b *binder) bindExpr(e *hir.Expr) {
	if e == nil {
		return
	}
	switch d := e.Data.(type) {
	case hir.IdentData:
		if id, ok := b.lookupLocal(d.Sym.Name); ok {
			b.bindings[e.ID] = id
			return
		}
		if id, ok := b.consts[d.Sym.Name]; ok {
			b.bindings[e.ID] = id
			return
		}
		b.report(diag.UnknownSymbol, d.Sym.Span, d.Sym.Name,
			fmt.Sprintf("%s is not defined or imported here", d.Sym))
	case hir.LiteralData:
		// nothing to bind
	case hir.CallData:
		if id, ok := b.callables[DefFn][d.Callee.Name][d.Callee.Backend]; ok {
			b.bindings[e.ID] = id
		} else {
			b.report(diag.UnknownSymbol, d.Callee.Span, d.Callee.Name,
				fmt.Sprintf("fn %s is not defined or imported here", d.Callee))
		}
		for _, a := range d.Args {
			b.bindExpr(a)
		}
		b.bindModifiers(d.Modifiers)
	case hir.MetaCallData:
		if id, ok := b.callables[DefMetaFn][d.Name.Name][d.Name.Backend]; ok {
			b.bindings[e.ID] = id
		} else {
			b.report(diag.UnknownSymbol, d.Name.Span, d.Name.Name,
				fmt.Sprintf("metafn %s is not defined or imported here", d.Name))
		}
		for _, a := range d.Args {
			b.bindExpr(a)
		}
		// Option labels are opaque to the front end: the meta-function
		// decides what they mean, so they are not bound here.
		for _, opt := range d.Options {
			b.bindBlock(opt.Body)
		}
		b.bindBlock(d.Body)
		b.bindModifiers(d.Modifiers)
	case hir.CastData:
		b.bindExpr(d.Value)
		b.bindTypeName(d.To)
		b.bindModifiers(d.Modifiers)
	case hir.MemberData:
		b.bindMember(e, d)
	}
}

// bindMember resolves a dotted chain left to right. The head is a local
// or a type name; the remaining segments walk struct members and enum
// variants, and the first segment that does not exist is the one
// reported.
func (b *binder) bindMember(e *hir.Expr, d hir.MemberData) {
	head := d.Path.Head()
	rest := d.Path.Parts[1:]

	if id, ok := b.lookupLocal(head.Name); ok {
		b.bindings[e.ID] = id
		b.walkMembers(b.table.Get(id).LocalType, rest)
		return
	}
	if id, ok := b.types[head.Name]; ok {
		b.bindings[e.ID] = id
		b.walkTypeMembers(b.table.Get(id).Type, rest)
		return
	}
	if id, ok := b.consts[head.Name]; ok {
		b.bindings[e.ID] = id
		b.walkMembers(b.table.Get(id).Const.Type, rest)
		return
	}
	b.report(diag.UnknownSymbol, head.Span, head.Name,
		fmt.Sprintf("%s is not defined or imported here", head))
}

func (b *binder) walkMembers(start hir.TypeName, parts []hir.Symbol) {
	if len(parts) == 0 {
		return
	}
	if _, prim := hir.LookupPrimitive(start.Name.Name); prim {
		b.report(diag.UnknownSymbol, parts[0].Span, parts[0].Name,
			fmt.Sprintf("%s has no member %s", start, parts[0].Name))
		return
	}
	td := b.namedType(start)
	if td == nil {
		// unresolved base type was reported where it was declared
		return
	}
	b.walkTypeMembers(td, parts)
}

func (b *binder) walkTypeMembers(td *hir.TypeDef, parts []hir.Symbol) {
	var inStruct *hir.StructDef
	for i, seg := range parts {
		switch {
		case inStruct != nil:
			m := inStruct.Member(seg.Name)
			if m == nil {
				b.report(diag.UnknownSymbol, seg.Span, seg.Name,
					fmt.Sprintf("%s has no member %s", inStruct.Name, seg.Name))
				return
			}
			inStruct = nil
			if i+1 < len(parts) {
				b.walkMembers(m.Type, parts[i+1:])
			}
			return
		case td.Kind == hir.TypeDefStruct:
			inStruct = td.Struct
			// fall through to the struct branch on this same segment
			m := inStruct.Member(seg.Name)
			if m == nil {
				b.report(diag.UnknownSymbol, seg.Span, seg.Name,
					fmt.Sprintf("%s has no member %s", td.Name, seg.Name))
				return
			}
			inStruct = nil
			if i+1 < len(parts) {
				b.walkMembers(m.Type, parts[i+1:])
			}
			return
		case td.Kind == hir.TypeDefEnum:
			v := td.Variant(seg.Name)
			if v == nil {
				b.report(diag.UnknownSymbol, seg.Span, seg.Name,
					fmt.Sprintf("enum %s has no member %s", td.Name, seg.Name))
				return
			}
			if v.Struct == nil {
				if i+1 < len(parts) {
					b.report(diag.UnknownSymbol, parts[i+1].Span, parts[i+1].Name,
						fmt.Sprintf("enum member %s carries no data", seg.Name))
				}
				return
			}
			inStruct = v.Struct
		default: // primitive type definition
			b.report(diag.UnknownSymbol, seg.Span, seg.Name,
				fmt.Sprintf("%s has no member %s", td.Name, seg.Name))
			return
		}
	}
}
