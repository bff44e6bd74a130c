package parser

import (
	"testing"

	"hatc/internal/ast"
	"hatc/internal/diag"
	"hatc/internal/source"
)

func parseSnippet(t *testing.T, src string) (*ast.Module, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.hat", []byte(src))
	bag := diag.NewBag(32)
	m := ParseModule(fs, id, []string{"test"}, Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	return m, bag
}

func mustParse(t *testing.T, src string) *ast.Module {
	t.Helper()
	m, bag := parseSnippet(t, src)
	if bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	if m == nil {
		t.Fatalf("expected a module")
	}
	return m
}

func TestParseConstsFile(t *testing.T) {
	m := mustParse(t, `
		use (
			type: core.types.u32
		)
		const answer : u32 = 42
		const label : str = "hat"
		const qseed : @u32 = @7
	`)
	if m.Kind != ast.ContentConsts {
		t.Fatalf("expected consts content, got %v", m.Kind)
	}
	if len(m.Consts) != 3 {
		t.Fatalf("expected 3 consts, got %d", len(m.Consts))
	}
	if m.Consts[0].Name.Text != "answer" || m.Consts[0].Type.Name.Text != "u32" {
		t.Fatalf("bad first const: %+v", m.Consts[0])
	}
	if m.Consts[2].Type.Name.Sugar != '@' {
		t.Fatalf("sugar lost on const type: %+v", m.Consts[2].Type)
	}
	lit, ok := m.Consts[2].Value.(*ast.LiteralExpr)
	if !ok || lit.Sugar != '@' || lit.Text != "7" {
		t.Fatalf("bad sugared literal: %+v", m.Consts[2].Value)
	}
}

func TestParseImports(t *testing.T) {
	m := mustParse(t, `
		use (
			const: math.pi
			fn: math.core.[add sub]
			type: color
		)
		const zero : u32 = 0
	`)
	if len(m.Imports) != 4 {
		t.Fatalf("expected 4 imports, got %d", len(m.Imports))
	}
	first := m.Imports[0]
	if first.Category != ast.ImportConst || first.Name.Text != "pi" ||
		len(first.Path) != 1 || first.Path[0] != "math" {
		t.Fatalf("bad import: %+v", first)
	}
	grouped := m.Imports[1]
	if grouped.Category != ast.ImportFn || grouped.Name.Text != "add" ||
		len(grouped.Path) != 2 || grouped.Path[1] != "core" {
		t.Fatalf("bad grouped import: %+v", grouped)
	}
	rootScoped := m.Imports[3]
	if rootScoped.Name.Text != "color" || len(rootScoped.Path) != 0 {
		t.Fatalf("root-level import must have an empty path: %+v", rootScoped)
	}
}

func TestParseTypesFile(t *testing.T) {
	m := mustParse(t, `
		type qbit : u32
		type point { x: f64 y: f64 }
		enum color {
			rgb{r:u8 g:u8 b:u8}
			hex{value:u32}
			NONE
		}
	`)
	if m.Kind != ast.ContentTypes {
		t.Fatalf("expected types content, got %v", m.Kind)
	}
	if len(m.Types) != 3 {
		t.Fatalf("expected 3 type defs, got %d", len(m.Types))
	}
	if m.Types[0].Kind != ast.TypeDefPrimitive || m.Types[0].Prim.Text != "u32" {
		t.Fatalf("bad primitive alias: %+v", m.Types[0])
	}
	if m.Types[1].Kind != ast.TypeDefStruct || len(m.Types[1].Members) != 2 {
		t.Fatalf("bad struct def: %+v", m.Types[1])
	}
	enum := m.Types[2]
	if enum.Kind != ast.TypeDefEnum || len(enum.EnumMems) != 3 {
		t.Fatalf("bad enum def: %+v", enum)
	}
	if !enum.EnumMems[0].IsStruct() || len(enum.EnumMems[0].Members) != 3 {
		t.Fatalf("rgb must be a struct variant: %+v", enum.EnumMems[0])
	}
	if enum.EnumMems[2].IsStruct() || enum.EnumMems[2].Name.Text != "NONE" {
		t.Fatalf("NONE must be a kind member: %+v", enum.EnumMems[2])
	}
}

func TestParseGroupsFile(t *testing.T) {
	m := mustParse(t, `
		fn add(a: u32 b: u32) u32 {
			:: sum(a b)
		}
		modifier shots(n: u32) {
			:: n
		}
		metafn select(x: u32) optn_t {
			:: x
		}
		main {
			v : u32 = add(1 2)
			print(v)
		}
	`)
	if m.Kind != ast.ContentGroups {
		t.Fatalf("expected groups content, got %v", m.Kind)
	}
	if len(m.Groups) != 4 {
		t.Fatalf("expected 4 group defs, got %d", len(m.Groups))
	}
	fn := m.Groups[0].Fn
	if fn == nil || fn.Name.Text != "add" || len(fn.Params) != 2 || fn.Ret == nil || fn.Ret.Name.Text != "u32" {
		t.Fatalf("bad fn def: %+v", fn)
	}
	if m.Groups[1].Kind != ast.GroupModifier || m.Groups[1].Modifier.Name.Text != "shots" {
		t.Fatalf("bad modifier def: %+v", m.Groups[1])
	}
	meta := m.Groups[2].MetaFn
	if meta == nil || meta.Kind != ast.MetaOptnT {
		t.Fatalf("bad metafn def: %+v", meta)
	}
	mainFn := m.Groups[3].Fn
	if mainFn == nil || mainFn.Name.Text != "main" || len(mainFn.Params) != 0 {
		t.Fatalf("bad main: %+v", mainFn)
	}
	if len(mainFn.Body) != 2 {
		t.Fatalf("expected 2 statements in main, got %d", len(mainFn.Body))
	}
	if _, ok := mainFn.Body[0].(*ast.DeclareAssignStmt); !ok {
		t.Fatalf("first statement must be declare-assign: %T", mainFn.Body[0])
	}
}

func TestParseMetaCalls(t *testing.T) {
	m := mustParse(t, `
		main {
			pick(x: 1 y: 2)
			each(xs){ print(1) }
			route(v){ a: { print(1) } b: { print(2) } }
		}
	`)
	body := m.Groups[0].Fn.Body
	if len(body) != 3 {
		t.Fatalf("expected 3 statements, got %d", len(body))
	}
	if _, ok := body[0].(*ast.ExprStmt).X.(*ast.OptnCallExpr); !ok {
		t.Fatalf("first must be option call: %T", body[0].(*ast.ExprStmt).X)
	}
	bdn, ok := body[1].(*ast.ExprStmt).X.(*ast.BdnCallExpr)
	if !ok || len(bdn.Args) != 1 || len(bdn.Body) != 1 {
		t.Fatalf("second must be body call: %+v", body[1])
	}
	optbdn, ok := body[2].(*ast.ExprStmt).X.(*ast.OptBdnCallExpr)
	if !ok || len(optbdn.Options) != 2 {
		t.Fatalf("third must be option-body call: %+v", body[2])
	}
}

func TestParseCastAndMemberAccess(t *testing.T) {
	m := mustParse(t, `
		main {
			v : u64 = count * u64
			c = color.rgb.r
			q : @u32 = measure(reg) * @u32
		}
	`)
	body := m.Groups[0].Fn.Body
	da := body[0].(*ast.DeclareAssignStmt)
	cast, ok := da.Value.(*ast.CastExpr)
	if !ok || cast.To.Name.Text != "u64" {
		t.Fatalf("bad cast: %+v", da.Value)
	}
	assign := body[1].(*ast.AssignStmt)
	member, ok := assign.Value.(*ast.MemberExpr)
	if !ok || len(member.Parts) != 3 || member.Parts[2].Text != "r" {
		t.Fatalf("bad member chain: %+v", assign.Value)
	}
	qd := body[2].(*ast.DeclareAssignStmt)
	qcast, ok := qd.Value.(*ast.CastExpr)
	if !ok || qcast.To.Name.Sugar != '@' {
		t.Fatalf("bad quantum cast: %+v", qd.Value)
	}
	if _, ok := qcast.Value.(*ast.CallExpr); !ok {
		t.Fatalf("cast value must be a call: %+v", qcast.Value)
	}
}

func TestParseStructAndEnumAssign(t *testing.T) {
	m := mustParse(t, `
		main {
			p.{ x = 1.0 y = 2.0 }
			c.{ rgb{ r = 255 g = 0 b = 0 } }
			s.{ ON }
		}
	`)
	body := m.Groups[0].Fn.Body
	sa, ok := body[0].(*ast.StructAssignStmt)
	if !ok || len(sa.Members) != 2 || sa.Members[1].Name.Text != "y" {
		t.Fatalf("bad struct assign: %+v", body[0])
	}
	ea, ok := body[1].(*ast.EnumAssignStmt)
	if !ok || ea.Variant.Text != "rgb" || len(ea.Members) != 3 {
		t.Fatalf("bad enum struct assign: %+v", body[1])
	}
	ka, ok := body[2].(*ast.EnumAssignStmt)
	if !ok || ka.Variant.Text != "ON" || ka.Members != nil {
		t.Fatalf("bad enum kind assign: %+v", body[2])
	}
}

func TestParseMixedContentRejected(t *testing.T) {
	m, bag := parseSnippet(t, `
		const answer : u32 = 42
		type point { x: f64 }
	`)
	if m != nil {
		t.Fatalf("mixed module must not be admitted")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.MixedFileContent {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected MixedFileContent, got %+v", bag.Items())
	}
}

// Mixing must stop the parse at the first offending definition: one
// diagnostic, no module, and termination even with more definitions of
// the wrong kind after it.
func TestParseMixedContentStopsAtFirstOffender(t *testing.T) {
	m, bag := parseSnippet(t, `
		const a : u32 = 1
		type t : u32
		type u : u32
	`)
	if m != nil {
		t.Fatalf("mixed module must not be admitted")
	}
	count := 0
	for _, d := range bag.Items() {
		if d.Code == diag.MixedFileContent {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one MixedFileContent, got %d: %+v", count, bag.Items())
	}
}

func TestParseErrorCarriesPosition(t *testing.T) {
	m, bag := parseSnippet(t, `const answer u32 = 42`)
	if m != nil {
		t.Fatalf("broken module must not be admitted")
	}
	if bag.Len() == 0 {
		t.Fatalf("expected a parse error")
	}
	d := bag.Items()[0]
	if d.Code != diag.ParseError {
		t.Fatalf("expected ParseError, got %v", d.Code)
	}
	if d.Primary.Start == 0 && d.Primary.End == 0 {
		t.Fatalf("parse error must carry a position")
	}
}

func TestParseModifiers(t *testing.T) {
	m := mustParse(t, `
		fn run(q: qubit) <staged shots=1000> {
			:: measure(q)
		}
	`)
	fn := m.Groups[0].Fn
	if len(fn.Modifiers) != 2 {
		t.Fatalf("expected 2 modifiers, got %+v", fn.Modifiers)
	}
	if fn.Modifiers[0].Name.Text != "staged" || fn.Modifiers[0].Value != nil {
		t.Fatalf("bad no-arg modifier: %+v", fn.Modifiers[0])
	}
	if fn.Modifiers[1].Name.Text != "shots" || fn.Modifiers[1].Value == nil {
		t.Fatalf("bad valued modifier: %+v", fn.Modifiers[1])
	}
}
