package diag

import (
	"testing"

	"hatc/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if !b.Add(Diagnostic{Code: ParseError}) || !b.Add(Diagnostic{Code: ParseError}) {
		t.Fatalf("first two adds must succeed")
	}
	if b.Add(Diagnostic{Code: ParseError}) {
		t.Fatalf("third add must hit the limit")
	}
	if b.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", b.Len())
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(8)
	b.Add(Diagnostic{Code: UnknownSymbol, Module: "b", Primary: source.Span{Start: 5}})
	b.Add(Diagnostic{Code: UnknownSymbol, Module: "a", Primary: source.Span{Start: 9}})
	b.Add(Diagnostic{Code: DuplicateDefinition, Module: "a", Primary: source.Span{Start: 1}})
	b.Sort()

	items := b.Items()
	if items[0].Module != "a" || items[0].Code != DuplicateDefinition {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[2].Module != "b" {
		t.Fatalf("unexpected last item: %+v", items[2])
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(8)
	d := Diagnostic{Code: UnknownSymbol, Symbol: "z", Primary: source.Span{Start: 3, End: 4}}
	b.Add(d)
	b.Add(d)
	b.Dedup()
	if b.Len() != 1 {
		t.Fatalf("expected dedup to 1, got %d", b.Len())
	}
}

func TestReportBuilderEmitOnce(t *testing.T) {
	b := NewBag(4)
	rb := ReportError(BagReporter{Bag: b}, UnknownSymbol, source.Span{}, "no such symbol").
		InModule("math.core").
		ForSymbol("z")
	rb.Emit()
	rb.Emit()
	if b.Len() != 1 {
		t.Fatalf("expected a single emission, got %d", b.Len())
	}
	got := b.Items()[0]
	if got.Module != "math.core" || got.Symbol != "z" {
		t.Fatalf("context lost: %+v", got)
	}
}
