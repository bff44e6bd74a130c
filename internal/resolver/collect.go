package resolver

import (
	"fmt"

	"hatc/internal/diag"
	"hatc/internal/hir"
)

// ModuleSymbols is the phase 1 output for one module: its top-level
// definitions, not yet merged into the shared table. Collect runs per
// module with no shared state, so modules can be collected concurrently.
type ModuleSymbols struct {
	Module *hir.Module
	Defs   []Def
	Failed bool
}

// Collect gathers the definitions of one module and reports duplicate
// names. Two definitions collide when kind, name and backend all match;
// callables with distinct backend kinds coexist.
func Collect(mod *hir.Module, reporter diag.Reporter) *ModuleSymbols {
	ms := &ModuleSymbols{Module: mod}
	seen := make(map[string]hir.Symbol)

	addDef := func(d Def) {
		d.Module = mod.ID
		d.Path = mod.Path
		key := fmt.Sprintf("%d/%s/%d", d.Kind, d.Sym.Name, d.Sym.Backend)
		if prev, dup := seen[key]; dup {
			ms.Failed = true
			diag.ReportError(reporter, diag.DuplicateDefinition, d.Sym.Span,
				fmt.Sprintf("%s %s is defined more than once", d.Kind, d.Sym)).
				InModule(mod.Path.String()).
				ForSymbol(d.Sym.Name).
				WithNote(prev.Span, "previous definition here").
				Emit()
			return
		}
		seen[key] = d.Sym
		ms.Defs = append(ms.Defs, d)
	}

	switch mod.Content.Kind {
	case hir.ContentConsts:
		for _, c := range mod.Content.Consts {
			addDef(Def{Kind: DefConst, Sym: c.Name, Const: c})
		}
	case hir.ContentTypes:
		for _, t := range mod.Content.Types {
			addDef(Def{Kind: DefType, Sym: t.Name, Type: t})
		}
	case hir.ContentGroups:
		for _, g := range mod.Content.Groups {
			switch g.Kind {
			case hir.GroupFn:
				addDef(Def{Kind: DefFn, Sym: g.Fn.Name, Fn: g.Fn})
			case hir.GroupModifier:
				addDef(Def{Kind: DefModifier, Sym: g.Modifier.Name, Modifier: g.Modifier})
			case hir.GroupMetaFn:
				addDef(Def{Kind: DefMetaFn, Sym: g.MetaFn.Name, MetaFn: g.MetaFn})
			}
		}
	}
	return ms
}

// Merge folds collected modules into the table in input order. Constant
// and type names must be unique across the whole project; a second
// module defining an already-taken name is a duplicate. Callable names
// may repeat across modules (and backends); ambiguity is decided at the
// import site.
func (t *Table) Merge(ms *ModuleSymbols, reporter diag.Reporter) bool {
	ok := !ms.Failed
	for _, d := range ms.Defs {
		if d.Kind == DefConst || d.Kind == DefType {
			if prior := t.Lookup(d.Kind, d.Sym.Name); len(prior) > 0 {
				prev := t.Get(prior[0])
				ok = false
				diag.ReportError(reporter, diag.DuplicateDefinition, d.Sym.Span,
					fmt.Sprintf("%s %s is already defined in module %s",
						d.Kind, d.Sym, prev.Path)).
					InModule(ms.Module.Path.String()).
					ForSymbol(d.Sym.Name).
					WithNote(prev.Sym.Span, "previous definition here").
					Emit()
				continue
			}
		}
		t.add(d)
	}
	return ok
}
