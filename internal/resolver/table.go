package resolver

import (
	"fmt"

	"fortio.org/safecast"

	"hatc/internal/hir"
	"hatc/internal/source"
)

// Def is one definition in the arena: a top-level declaration from some
// module, or a body-scoped local added during binding.
type Def struct {
	ID     DefID
	Kind   DefKind
	Module hir.ModuleID
	Path   hir.Path
	Sym    hir.Symbol

	Const    *hir.ConstDef
	Type     *hir.TypeDef
	Fn       *hir.FnDef
	Modifier *hir.ModifierDef
	MetaFn   *hir.MetaFnDef
	// Local declarations keep their declared type for member resolution.
	LocalType hir.TypeName
}

// nameKey indexes definitions by kind and interned bare name; backend
// variants of one callable name share a bucket.
type nameKey struct {
	Kind DefKind
	Name source.StringID
}

// Table is the append-only definition arena plus its name index. Entries
// are never removed; binding only appends locals.
type Table struct {
	defs    []Def
	byName  map[nameKey][]DefID
	strings *source.Interner
}

// NewTable builds an empty table with an optional capacity hint.
func NewTable(capacity uint32) *Table {
	if capacity == 0 {
		capacity = 64
	}
	return &Table{
		defs:    make([]Def, 1, capacity+1), // index 0 reserved for NoDefID
		byName:  make(map[nameKey][]DefID),
		strings: source.NewInterner(),
	}
}

// add appends a definition and indexes it by name. Locals are not
// indexed; they are visible only through binder scopes.
func (t *Table) add(d Def) DefID {
	value, err := safecast.Conv[uint32](len(t.defs))
	if err != nil {
		panic(fmt.Errorf("definition arena overflow: %w", err))
	}
	id := DefID(value)
	d.ID = id
	t.defs = append(t.defs, d)
	if d.Kind != DefLocal {
		key := nameKey{Kind: d.Kind, Name: t.strings.Intern(d.Sym.Name)}
		t.byName[key] = append(t.byName[key], id)
	}
	return id
}

// Get returns the definition pointer, nil for invalid IDs.
func (t *Table) Get(id DefID) *Def {
	if !id.IsValid() || int(id) >= len(t.defs) {
		return nil
	}
	return &t.defs[id]
}

// Len reports the number of stored definitions excluding the sentinel.
func (t *Table) Len() int { return len(t.defs) - 1 }

// Defs exposes the arena storage without the sentinel.
func (t *Table) Defs() []Def {
	if len(t.defs) <= 1 {
		return nil
	}
	return t.defs[1:]
}

// Lookup returns every definition of the given kind and name, across all
// modules and backend variants.
func (t *Table) Lookup(kind DefKind, name string) []DefID {
	return t.byName[nameKey{Kind: kind, Name: t.strings.Intern(name)}]
}

// LookupIn narrows Lookup to definitions from the module at path.
func (t *Table) LookupIn(kind DefKind, name string, path hir.Path) []DefID {
	var out []DefID
	for _, id := range t.Lookup(kind, name) {
		if t.defs[id].Path.Equal(path) {
			out = append(out, id)
		}
	}
	return out
}
