package source

import (
	"testing"
)

func TestAddComputesLineIndex(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.hat", []byte("ab\ncd\nef"))

	f := fs.Get(id)
	if len(f.LineIdx) != 2 {
		t.Fatalf("expected 2 newline offsets, got %d", len(f.LineIdx))
	}
	if f.LineIdx[0] != 2 || f.LineIdx[1] != 5 {
		t.Fatalf("unexpected line index: %v", f.LineIdx)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.hat", []byte("ab\ncd\nef"))

	tests := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{1, 1, 2},
		{3, 2, 1},
		{4, 2, 2},
		{6, 3, 1},
		{7, 3, 2},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start.Line != tt.line || start.Col != tt.col {
			t.Fatalf("offset %d: got %d:%d, want %d:%d",
				tt.off, start.Line, start.Col, tt.line, tt.col)
		}
	}
}

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 4, End: 8}
	b := Span{File: 1, Start: 2, End: 6}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 8 {
		t.Fatalf("cover mismatch: %v", c)
	}
	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("cross-file cover must be a no-op, got %v", got)
	}
}

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("color")
	b := in.Intern("color")
	if a != b {
		t.Fatalf("same string interned twice: %d vs %d", a, b)
	}
	if got := in.MustLookup(a); got != "color" {
		t.Fatalf("lookup mismatch: %q", got)
	}
	if in.Intern("") != NoStringID {
		t.Fatalf("empty string must map to NoStringID")
	}
}
