package snapshot

import (
	"bytes"
	"sort"
	"strings"
	"testing"

	"hatc/internal/diag"
	"hatc/internal/hir"
	"hatc/internal/parser"
	"hatc/internal/planner"
	"hatc/internal/resolver"
	"hatc/internal/source"
)

func buildProject(t *testing.T, files map[string]string) (*resolver.MappedProject, *planner.Schedule) {
	t.Helper()
	fset := source.NewFileSet()
	bag := diag.NewBag(64)
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
	sched, _ := planner.Plan(mapped, rep)
	if bag.HasErrors() {
		t.Fatalf("pipeline errors: %v", bag.Items())
	}
	return mapped, sched
}

var snapshotInput = map[string]string{
	"geometry": `const pi : f64 = 3.1415`,
	"app": `
use (
	const: geometry.pi
)
fn area(r:f64) f64 {
	:: pi
}
`,
}

func TestEncodeDeterministic(t *testing.T) {
	mapped, sched := buildProject(t, snapshotInput)

	first, err := Encode(mapped, sched)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := Encode(mapped, sched)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("encoding is not deterministic")
	}

	// a fresh pipeline run over the same sources must also match
	mapped2, sched2 := buildProject(t, snapshotInput)
	third, err := Encode(mapped2, sched2)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(first, third) {
		t.Fatalf("encoding differs across pipeline runs")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	mapped, sched := buildProject(t, snapshotInput)
	data, err := Encode(mapped, sched)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Version != FormatVersion {
		t.Fatalf("version = %d, want %d", got.Version, FormatVersion)
	}
	if len(got.Modules) != 2 || got.Modules[0].Path != "app" || got.Modules[1].Path != "geometry" {
		t.Fatalf("modules = %+v", got.Modules)
	}
	if len(got.Bindings) == 0 {
		t.Fatalf("expected bindings in snapshot")
	}
	for i := 1; i < len(got.Bindings); i++ {
		if got.Bindings[i-1].Expr >= got.Bindings[i].Expr {
			t.Fatalf("bindings not sorted by expression ID")
		}
	}
}
