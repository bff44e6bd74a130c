package planner

import (
	"sort"
	"strings"
	"testing"

	"hatc/internal/diag"
	"hatc/internal/hir"
	"hatc/internal/parser"
	"hatc/internal/resolver"
	"hatc/internal/source"
)

func planSources(t *testing.T, files map[string]string) (*resolver.MappedProject, *Schedule, *diag.Bag, bool) {
	t.Helper()
	fset := source.NewFileSet()
	bag := diag.NewBag(128)
	rep := diag.BagReporter{Bag: bag}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	lw := hir.NewLowerer(rep)
	var mods []*hir.Module
	for i, name := range names {
		id := fset.AddVirtual(name+".hat", []byte(files[name]))
		astMod := parser.ParseModule(fset, id, strings.Split(name, "/"), parser.Options{Reporter: rep})
		if astMod == nil {
			t.Fatalf("module %s failed to parse: %v", name, bag.Items())
		}
		mod, ok := lw.LowerModule(astMod, hir.ModuleID(i+1), id)
		if !ok {
			t.Fatalf("module %s failed to lower: %v", name, bag.Items())
		}
		mods = append(mods, mod)
	}
	mapped := resolver.Resolve(mods, rep)
	if bag.HasErrors() {
		t.Fatalf("resolution failed: %v", bag.Items())
	}
	sched, ok := Plan(mapped, rep)
	return mapped, sched, bag, ok
}

func TestPlanQpuSelfStages(t *testing.T) {
	mapped, sched, bag, ok := planSources(t, map[string]string{
		"app": `
fn mix() u32 {
	a : u32 = 1
	b : u32 = @3 * u32
	:: a
}
`,
	})
	if !ok || bag.HasErrors() {
		t.Fatalf("plan failed: %v", bag.Items())
	}
	body := mapped.Module("app").Module.Content.Groups[0].Fn.Body

	classical := body[0].Data.(hir.DeclareAssignData).Value
	if sched.Mode(classical.ID) != ModeStrict {
		t.Fatalf("classical literal planned %v, want strict", sched.Mode(classical.ID))
	}

	cast := body[1].Data.(hir.DeclareAssignData).Value
	qpuLit := cast.Data.(hir.CastData).Value
	if sched.Mode(qpuLit.ID) != ModeStaged {
		t.Fatalf("qpu literal planned %v, want staged", sched.Mode(qpuLit.ID))
	}
	// the cast back to a CPU type is itself strict
	if sched.Mode(cast.ID) != ModeStrict {
		t.Fatalf("cast planned %v, want strict", sched.Mode(cast.ID))
	}
}

func TestPlanStagedModifierPropagates(t *testing.T) {
	mapped, sched, bag, ok := planSources(t, map[string]string{
		"app": `
fn warm(x:u32) u32 <staged> {
	y : u32 = x
	:: y
}
`,
	})
	if !ok || bag.HasErrors() {
		t.Fatalf("plan failed: %v", bag.Items())
	}
	body := mapped.Module("app").Module.Content.Groups[0].Fn.Body
	val := body[0].Data.(hir.DeclareAssignData).Value
	if sched.Mode(val.ID) != ModeStaged {
		t.Fatalf("body expr planned %v, want staged", sched.Mode(val.ID))
	}
	ret := body[1].Data.(hir.ReturnData).Value
	if sched.Mode(ret.ID) != ModeStaged {
		t.Fatalf("return expr planned %v, want staged", sched.Mode(ret.ID))
	}
}

func TestPlanStrictQpuRejected(t *testing.T) {
	_, _, bag, ok := planSources(t, map[string]string{
		"app": `
fn bad() u32 {
	q <strict> : u32 = @7 * u32
	:: q
}
`,
	})
	if ok {
		t.Fatalf("expected planning to fail")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.IllegalStrictQpu {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected IllegalStrictQpu, got %v", bag.Items())
	}
}

func TestPlanQpuInModifierArgumentRejected(t *testing.T) {
	_, _, bag, ok := planSources(t, map[string]string{
		"app": `
modifier shots(n:u32) {
	:: n
}
fn bad() u32 {
	x <shots=@4> : u32 = 1
	:: x
}
`,
	})
	if ok {
		t.Fatalf("expected planning to fail")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.IllegalStrictQpu {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected IllegalStrictQpu, got %v", bag.Items())
	}
}
