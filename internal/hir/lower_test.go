package hir

import (
	"testing"

	"hatc/internal/diag"
	"hatc/internal/parser"
	"hatc/internal/source"
)

func lowerSource(t *testing.T, src string) (*Module, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.hat", []byte(src))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}
	m := parser.ParseModule(fs, id, []string{"test"}, parser.Options{Reporter: rep})
	if m == nil {
		t.Fatalf("parse failed: %v", bag.Items())
	}
	lw := NewLowerer(rep)
	mod, _ := lw.LowerModule(m, 1, id)
	return mod, bag
}

func TestLowerConsts(t *testing.T) {
	mod, bag := lowerSource(t, `
const limit : u32 = 42
const ratio : f64 = -2.5
const label : str = "hat"
const gate : qubit = @3
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if mod.Content.Kind != ContentConsts {
		t.Fatalf("content kind = %v, want consts", mod.Content.Kind)
	}
	consts := mod.Content.Consts
	if len(consts) != 4 {
		t.Fatalf("got %d consts, want 4", len(consts))
	}

	lit := consts[0].Value.Data.(LiteralData).Lit
	if lit.Kind != LitInt || lit.Int != 42 || lit.Backend != CPU {
		t.Fatalf("limit lowered to %+v", lit)
	}
	lit = consts[1].Value.Data.(LiteralData).Lit
	if lit.Kind != LitFloat || lit.Float != -2.5 {
		t.Fatalf("ratio lowered to %+v", lit)
	}
	lit = consts[2].Value.Data.(LiteralData).Lit
	if lit.Kind != LitString || lit.Str != "hat" {
		t.Fatalf("label lowered to %+v", lit)
	}
	lit = consts[3].Value.Data.(LiteralData).Lit
	if lit.Kind != LitInt || lit.Int != 3 || lit.Backend != QPU {
		t.Fatalf("gate lowered to %+v", lit)
	}
}

func TestLowerSugarOnNames(t *testing.T) {
	mod, bag := lowerSource(t, `
fn run(x:u32) +u32 {
	y : +u32 = +scale(x)
	:: y
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	fn := mod.Content.Groups[0].Fn
	if fn.Ret == nil || fn.Ret.Name.Backend != GPU {
		t.Fatalf("return type backend = %+v, want GPU", fn.Ret)
	}
	da := fn.Body[0].Data.(DeclareAssignData)
	if da.Type.Name.Backend != GPU {
		t.Fatalf("declared type backend = %v, want GPU", da.Type.Name.Backend)
	}
	call := da.Value.Data.(CallData)
	if call.Callee.Backend != GPU {
		t.Fatalf("callee backend = %v, want GPU", call.Callee.Backend)
	}
	if da.Value.Backend() != GPU {
		t.Fatalf("effective backend = %v, want GPU", da.Value.Backend())
	}
}

func TestLowerExprIDsUniqueAcrossModules(t *testing.T) {
	fs := source.NewFileSet()
	a := fs.AddVirtual("a.hat", []byte("const x : u32 = 1"))
	b := fs.AddVirtual("b.hat", []byte("const y : u32 = 2"))
	bag := diag.NewBag(64)
	rep := diag.BagReporter{Bag: bag}

	ma := parser.ParseModule(fs, a, []string{"a"}, parser.Options{Reporter: rep})
	mb := parser.ParseModule(fs, b, []string{"b"}, parser.Options{Reporter: rep})
	if ma == nil || mb == nil {
		t.Fatalf("parse failed: %v", bag.Items())
	}

	lw := NewLowerer(rep)
	ha, _ := lw.LowerModule(ma, 1, a)
	hb, _ := lw.LowerModule(mb, 2, b)

	ia := ha.Content.Consts[0].Value.ID
	ib := hb.Content.Consts[0].Value.ID
	if ia == NoExprID || ib == NoExprID {
		t.Fatalf("expression without ID: %d, %d", ia, ib)
	}
	if ia == ib {
		t.Fatalf("duplicate expression ID %d across modules", ia)
	}
	if ha.ExprCount != 1 || hb.ExprCount != 1 {
		t.Fatalf("expr counts = %d, %d, want 1, 1", ha.ExprCount, hb.ExprCount)
	}
}

func TestLowerMetaCalls(t *testing.T) {
	mod, bag := lowerSource(t, `
fn pick(c:bool) u32 {
	r : u32
	cond(c:{ r = 1 } otherwise:{ r = 0 })
	measure(q){ shots = 8 }
	:: r
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	body := mod.Content.Groups[0].Fn.Body

	optn := body[1].Data.(ExprStmtData).X.Data.(MetaCallData)
	if optn.Meta != MetaOptn || len(optn.Options) != 2 {
		t.Fatalf("cond lowered to %v with %d options", optn.Meta, len(optn.Options))
	}
	if optn.Options[0].Opt.Kind != ExprIdent {
		t.Fatalf("option expr kind = %v", optn.Options[0].Opt.Kind)
	}

	bdn := body[2].Data.(ExprStmtData).X.Data.(MetaCallData)
	if bdn.Meta != MetaBdn || len(bdn.Args) != 1 || len(bdn.Body) != 1 {
		t.Fatalf("measure lowered to %v args=%d body=%d", bdn.Meta, len(bdn.Args), len(bdn.Body))
	}
}

func TestLowerCastAndMember(t *testing.T) {
	mod, bag := lowerSource(t, `
fn conv(c:color) f32 {
	v : f32 = c.rgb.r * f32
	:: v
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	da := mod.Content.Groups[0].Fn.Body[0].Data.(DeclareAssignData)
	cast := da.Value.Data.(CastData)
	if cast.To.Name.Name != "f32" {
		t.Fatalf("cast target = %q", cast.To.Name.Name)
	}
	mem := cast.Value.Data.(MemberData)
	if got := mem.Path.String(); got != "c.rgb.r" {
		t.Fatalf("member path = %q", got)
	}
	if cast.Value.ID <= da.Value.ID {
		t.Fatalf("child ID %d not after parent ID %d", cast.Value.ID, da.Value.ID)
	}
}

func TestLowerEnumAndStructAssign(t *testing.T) {
	mod, bag := lowerSource(t, `
fn fill(p:pixel) {
	p.{ x = 1 y = 2 }
	p.{ dark }
	p.{ rgb{ r = 255 } }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	body := mod.Content.Groups[0].Fn.Body

	st := body[0].Data.(AssignData)
	if st.Assign != AssignStruct || len(st.Members) != 2 {
		t.Fatalf("struct assign lowered to %+v", st)
	}
	kind := body[1].Data.(AssignData)
	if kind.Assign != AssignEnum || kind.Variant.Name != "dark" || kind.Members != nil {
		t.Fatalf("enum kind assign lowered to %+v", kind)
	}
	variant := body[2].Data.(AssignData)
	if variant.Assign != AssignEnum || variant.Variant.Name != "rgb" || len(variant.Members) != 1 {
		t.Fatalf("enum struct assign lowered to %+v", variant)
	}
}

func TestLowerModifierArity(t *testing.T) {
	_, bag := lowerSource(t, `
modifier wide(a:u32 b:u32 c:u32) {
	:: a
}
`)
	if !hasCode(bag, diag.InvalidModifierArity) {
		t.Fatalf("expected InvalidModifierArity, got %v", bag.Items())
	}
}

func TestLowerSugarOnParamName(t *testing.T) {
	_, bag := lowerSource(t, `
fn bad(@q:u32) {
	:: q
}
`)
	if !hasCode(bag, diag.BadSugarPlacement) {
		t.Fatalf("expected BadSugarPlacement, got %v", bag.Items())
	}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}
