package resolver

import (
	"sort"
	"strings"
	"testing"

	"hatc/internal/diag"
	"hatc/internal/hir"
	"hatc/internal/parser"
	"hatc/internal/source"
)

// resolveSources parses, lowers and resolves a set of virtual modules
// keyed by module path ("a/b" nests).
func resolveSources(t *testing.T, files map[string]string) (*MappedProject, *diag.Bag) {
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
		path := strings.Split(name, "/")
		astMod := parser.ParseModule(fset, id, path, parser.Options{Reporter: rep})
		if astMod == nil {
			t.Fatalf("module %s failed to parse: %v", name, bag.Items())
		}
		mod, ok := lw.LowerModule(astMod, hir.ModuleID(i+1), id)
		if !ok {
			t.Fatalf("module %s failed to lower: %v", name, bag.Items())
		}
		mods = append(mods, mod)
	}
	return Resolve(mods, rep), bag
}

func codes(bag *diag.Bag) []diag.Code {
	var out []diag.Code
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestResolveCrossModuleConst(t *testing.T) {
	mapped, bag := resolveSources(t, map[string]string{
		"geometry": `const pi : f64 = 3.1415`,
		"app": `
use (
	const: geometry.pi
)
fn area(r:f64) f64 {
	:: pi
}
`,
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	app := mapped.Module("app")
	if app == nil || app.State != ModuleBound {
		t.Fatalf("app not bound: %+v", app)
	}
	if len(app.Imports) != 1 || app.Imports[0].Kind != DefConst {
		t.Fatalf("imports = %+v", app.Imports)
	}
	def := mapped.Table.Get(app.Imports[0].Defs[0])
	if def.Kind != DefConst || def.Sym.Name != "pi" {
		t.Fatalf("import bound to %+v", def)
	}

	// the `pi` reference in the body must bind to the same definition
	ret := app.Module.Content.Groups[0].Fn.Body[0].Data.(hir.ReturnData)
	got, ok := mapped.Bindings[ret.Value.ID]
	if !ok || got != def.ID {
		t.Fatalf("pi bound to %v, want %v", got, def.ID)
	}
}

func TestResolveDuplicateInModule(t *testing.T) {
	_, bag := resolveSources(t, map[string]string{
		"vals": `
const x : u32 = 1
const x : u32 = 2
`,
	})
	if got := codes(bag); len(got) != 1 || got[0] != diag.DuplicateDefinition {
		t.Fatalf("codes = %v, want one DuplicateDefinition", got)
	}
}

func TestResolveDuplicateTypeAcrossModules(t *testing.T) {
	mapped, bag := resolveSources(t, map[string]string{
		"alpha": `type pixel { x:u32 }`,
		"beta":  `type pixel { y:u32 }`,
	})
	if got := codes(bag); len(got) != 1 || got[0] != diag.DuplicateDefinition {
		t.Fatalf("codes = %v, want one DuplicateDefinition", got)
	}
	if mapped.Module("beta").State != ModuleFailed {
		t.Fatalf("beta should fail, got %v", mapped.Module("beta").State)
	}
	if mapped.Module("alpha").State != ModuleBound {
		t.Fatalf("alpha should stay bound, got %v", mapped.Module("alpha").State)
	}
}

func TestResolveBackendOverloadedFns(t *testing.T) {
	mapped, bag := resolveSources(t, map[string]string{
		"cpuops": `
fn conv(x:u32) u32 {
	:: x
}
`,
		"gpuops": `
fn +conv(x:u32) +u32 {
	:: x
}
`,
		"app": `
use (
	fn: conv
)
fn run(x:u32) +u32 {
	a : u32 = conv(x)
	b : +u32 = +conv(x)
	:: b
}
`,
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	app := mapped.Module("app")
	if len(app.Imports) != 1 || len(app.Imports[0].Defs) != 2 {
		t.Fatalf("imports = %+v, want one entry binding two backends", app.Imports)
	}

	body := app.Module.Content.Groups[0].Fn.Body
	cpuCall := body[0].Data.(hir.DeclareAssignData).Value
	gpuCall := body[1].Data.(hir.DeclareAssignData).Value
	cpuDef := mapped.Table.Get(mapped.Bindings[cpuCall.ID])
	gpuDef := mapped.Table.Get(mapped.Bindings[gpuCall.ID])
	if cpuDef.Sym.Backend != hir.CPU || gpuDef.Sym.Backend != hir.GPU {
		t.Fatalf("calls bound to %v and %v", cpuDef.Sym, gpuDef.Sym)
	}
	if cpuDef.Path.String() != "cpuops" || gpuDef.Path.String() != "gpuops" {
		t.Fatalf("calls bound into %s and %s", cpuDef.Path, gpuDef.Path)
	}
}

func TestResolveAmbiguousImport(t *testing.T) {
	_, bag := resolveSources(t, map[string]string{
		"east": `
fn conv(x:u32) u32 {
	:: x
}
`,
		"west": `
fn conv(x:u32) u32 {
	:: x
}
`,
		"app": `
use (
	fn: conv
)
fn run(x:u32) u32 {
	:: conv(x)
}
`,
	})
	found := false
	for _, c := range codes(bag) {
		if c == diag.AmbiguousImport {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected AmbiguousImport, got %v", bag.Items())
	}
}

func TestResolveUnresolvedImport(t *testing.T) {
	mapped, bag := resolveSources(t, map[string]string{
		"app": `
use (
	const: math.tau
)
fn run() u32 {
	:: 1
}
`,
	})
	if got := codes(bag); len(got) != 1 || got[0] != diag.UnresolvedImport {
		t.Fatalf("codes = %v, want one UnresolvedImport", got)
	}
	if mapped.Module("app").State != ModuleFailed {
		t.Fatalf("app should fail, got %v", mapped.Module("app").State)
	}
}

func TestResolveUnknownSymbolInBody(t *testing.T) {
	_, bag := resolveSources(t, map[string]string{
		"app": `
fn run() u32 {
	:: missing
}
`,
	})
	if got := codes(bag); len(got) != 1 || got[0] != diag.UnknownSymbol {
		t.Fatalf("codes = %v, want one UnknownSymbol", got)
	}
	if bag.Items()[0].Symbol != "missing" {
		t.Fatalf("symbol = %q, want %q", bag.Items()[0].Symbol, "missing")
	}
}

func TestResolveMemberChain(t *testing.T) {
	shapes := `
enum color {
	dark
	rgb { r:u32 g:u32 b:u32 }
}
`
	okApp := `
use (
	type: shapes.color
)
fn red(c:color) u32 {
	:: c.rgb.r
}
`
	mapped, bag := resolveSources(t, map[string]string{
		"shapes": shapes,
		"app":    okApp,
	})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if mapped.Module("app").State != ModuleBound {
		t.Fatalf("app state = %v", mapped.Module("app").State)
	}

	_, bag = resolveSources(t, map[string]string{
		"shapes": shapes,
		"app": `
use (
	type: shapes.color
)
fn red(c:color) u32 {
	:: c.rgb.z
}
`,
	})
	if got := codes(bag); len(got) != 1 || got[0] != diag.UnknownSymbol {
		t.Fatalf("codes = %v, want one UnknownSymbol", got)
	}
	if bag.Items()[0].Symbol != "z" {
		t.Fatalf("failing segment = %q, want %q", bag.Items()[0].Symbol, "z")
	}
}

func TestResolveModulesSortedByPath(t *testing.T) {
	mapped, _ := resolveSources(t, map[string]string{
		"zeta":  `const z : u32 = 1`,
		"alpha": `const a : u32 = 2`,
		"mid":   `const m : u32 = 3`,
	})
	var got []string
	for _, m := range mapped.Modules {
		got = append(got, m.Module.Path.String())
	}
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("module order = %v, want %v", got, want)
		}
	}
}
