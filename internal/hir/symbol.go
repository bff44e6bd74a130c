package hir

import (
	"strings"

	"hatc/internal/source"
)

// Symbol is a name tagged with a backend kind. Two symbols are equal only
// if both name and backend kind match.
type Symbol struct {
	Name    string
	Backend BackendKind
	Span    source.Span
}

// Equal compares name and backend kind; the span never participates.
func (s Symbol) Equal(other Symbol) bool {
	return s.Name == other.Name && s.Backend == other.Backend
}

// String renders the symbol with its sugar prefix (`@flip`, `+conv`).
func (s Symbol) String() string {
	return s.Backend.Sugar() + s.Name
}

// CompositeSymbol is an ordered, non-empty symbol sequence for dotted
// member access (`color.rgb.r`), outer-to-inner.
type CompositeSymbol struct {
	Parts []Symbol
}

func (c CompositeSymbol) String() string {
	parts := make([]string, len(c.Parts))
	for i, s := range c.Parts {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// Head returns the outermost symbol of the chain.
func (c CompositeSymbol) Head() Symbol {
	return c.Parts[0]
}

// Span covers the whole chain.
func (c CompositeSymbol) Span() source.Span {
	sp := c.Parts[0].Span
	return sp.Cover(c.Parts[len(c.Parts)-1].Span)
}

// ImportSymbol is an imported name together with its defining module
// path. Imports carry no alias: the name is used verbatim at the import
// site.
type ImportSymbol struct {
	Name Symbol
	Path Path
	Span source.Span
}

func (i ImportSymbol) String() string {
	if i.Path.IsRoot() {
		return i.Name.String()
	}
	return i.Path.String() + "." + i.Name.String()
}

// Imports holds the categorized import lists of one module.
type Imports struct {
	Consts    []ImportSymbol
	Types     []ImportSymbol
	Fns       []ImportSymbol
	Modifiers []ImportSymbol
	MetaFns   []ImportSymbol
}
