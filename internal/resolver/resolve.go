package resolver

import (
	"sort"

	"hatc/internal/diag"
	"hatc/internal/hir"
)

// MappedModule is one module after resolution, with its state and the
// imports that bound.
type MappedModule struct {
	Module  *hir.Module
	State   ModuleState
	Imports []ResolvedImport
}

// MappedProject is the resolver output: modules in path order, the
// shared definition table and the project-wide reference bindings.
type MappedProject struct {
	Modules  []*MappedModule
	Table    *Table
	Bindings map[hir.ExprID]DefID
}

// Module returns the mapped module at path, nil if absent.
func (p *MappedProject) Module(path string) *MappedModule {
	for _, m := range p.Modules {
		if m.Module.Path.String() == path {
			return m
		}
	}
	return nil
}

// Failed reports whether any module failed resolution.
func (p *MappedProject) Failed() bool {
	for _, m := range p.Modules {
		if m.State == ModuleFailed {
			return true
		}
	}
	return false
}

// Resolve runs both phases over the given modules: collect and merge
// every module's definitions first, then bind each module's references.
// Diagnostics accumulate per module; one failing module does not stop
// the others.
func Resolve(modules []*hir.Module, reporter diag.Reporter) *MappedProject {
	ordered := make([]*hir.Module, len(modules))
	copy(ordered, modules)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Path.String() < ordered[j].Path.String()
	})

	collected := make([]*ModuleSymbols, len(ordered))
	for i, mod := range ordered {
		collected[i] = Collect(mod, reporter)
	}
	return ResolveCollected(collected, reporter)
}

// ResolveCollected merges already-collected modules (in the given order)
// and runs phase 2. Callers that collect concurrently hand the results
// here; Merge and Bind themselves stay single-threaded.
func ResolveCollected(collected []*ModuleSymbols, reporter diag.Reporter) *MappedProject {
	table := NewTable(0)
	out := &MappedProject{
		Table:    table,
		Bindings: make(map[hir.ExprID]DefID),
	}

	for _, ms := range collected {
		mm := &MappedModule{Module: ms.Module, State: ModuleCollected}
		if !table.Merge(ms, reporter) {
			mm.State = ModuleFailed
		}
		out.Modules = append(out.Modules, mm)
	}

	for _, mm := range out.Modules {
		if mm.State == ModuleFailed {
			continue
		}
		bindings, imports, ok := Bind(mm.Module, table, reporter)
		mm.Imports = imports
		for id, def := range bindings {
			out.Bindings[id] = def
		}
		if ok {
			mm.State = ModuleBound
		} else {
			mm.State = ModuleFailed
		}
	}
	return out
}
