// Package snapshot serializes a resolved project into a stable binary
// form. The encoding is deterministic: the same project always produces
// the same bytes, so snapshots can be diffed and cached by content hash.
package snapshot

import (
	"sort"

	"github.com/vmihailenco/msgpack/v5"

	"hatc/internal/planner"
	"hatc/internal/resolver"
)

// FormatVersion is bumped on any incompatible layout change.
const FormatVersion = 1

// Project is the wire form of a mapped project. Every list is sorted:
// modules by path, definitions by ID, bindings and schedule by
// expression ID. Maps never appear in the encoding.
type Project struct {
	Version  int         `msgpack:"version"`
	Modules  []Module    `msgpack:"modules"`
	Defs     []Def       `msgpack:"defs"`
	Bindings []Binding   `msgpack:"bindings"`
	Schedule []Scheduled `msgpack:"schedule"`
}

// Module is the wire form of one resolved module.
type Module struct {
	Path      string   `msgpack:"path"`
	Content   string   `msgpack:"content"`
	State     string   `msgpack:"state"`
	ExprCount uint32   `msgpack:"expr_count"`
	Imports   []Import `msgpack:"imports"`
}

// Import is one resolved import entry.
type Import struct {
	Kind string   `msgpack:"kind"`
	Name string   `msgpack:"name"`
	Defs []uint32 `msgpack:"defs"`
}

// Def is the wire form of one definition.
type Def struct {
	ID      uint32 `msgpack:"id"`
	Kind    string `msgpack:"kind"`
	Module  string `msgpack:"module"`
	Name    string `msgpack:"name"`
	Backend string `msgpack:"backend"`
}

// Binding ties an expression to the definition it resolved to.
type Binding struct {
	Expr uint32 `msgpack:"expr"`
	Def  uint32 `msgpack:"def"`
}

// Scheduled records the planned mode of one expression.
type Scheduled struct {
	Expr uint32 `msgpack:"expr"`
	Mode string `msgpack:"mode"`
}

// Build flattens a mapped project (and optional schedule) into the wire
// form.
func Build(mapped *resolver.MappedProject, sched *planner.Schedule) *Project {
	out := &Project{Version: FormatVersion}

	for _, mm := range mapped.Modules {
		m := Module{
			Path:      mm.Module.Path.String(),
			Content:   mm.Module.Content.Kind.String(),
			State:     mm.State.String(),
			ExprCount: mm.Module.ExprCount,
		}
		for _, imp := range mm.Imports {
			wire := Import{Kind: imp.Kind.String(), Name: imp.Sym.String()}
			for _, id := range imp.Defs {
				wire.Defs = append(wire.Defs, uint32(id))
			}
			sort.Slice(wire.Defs, func(i, j int) bool { return wire.Defs[i] < wire.Defs[j] })
			m.Imports = append(m.Imports, wire)
		}
		out.Modules = append(out.Modules, m)
	}

	for _, d := range mapped.Table.Defs() {
		out.Defs = append(out.Defs, Def{
			ID:      uint32(d.ID),
			Kind:    d.Kind.String(),
			Module:  d.Path.String(),
			Name:    d.Sym.Name,
			Backend: d.Sym.Backend.String(),
		})
	}

	for expr, def := range mapped.Bindings {
		out.Bindings = append(out.Bindings, Binding{Expr: uint32(expr), Def: uint32(def)})
	}
	sort.Slice(out.Bindings, func(i, j int) bool { return out.Bindings[i].Expr < out.Bindings[j].Expr })

	if sched != nil {
		for expr, mode := range sched.Modes {
			out.Schedule = append(out.Schedule, Scheduled{Expr: uint32(expr), Mode: mode.String()})
		}
		sort.Slice(out.Schedule, func(i, j int) bool { return out.Schedule[i].Expr < out.Schedule[j].Expr })
	}
	return out
}

// Encode serializes a mapped project deterministically.
func Encode(mapped *resolver.MappedProject, sched *planner.Schedule) ([]byte, error) {
	return msgpack.Marshal(Build(mapped, sched))
}

// Decode parses bytes produced by Encode.
func Decode(data []byte) (*Project, error) {
	var p Project
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
