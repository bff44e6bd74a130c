// Package ast holds the unresolved syntax tree for one Heather file.
// Backend sugar markers are kept as raw bytes here; interpreting them into
// backend kinds happens during HIR lowering. No symbol resolution occurs
// at this level.
package ast

import (
	"hatc/internal/source"
)

// Name is an identifier occurrence, optionally prefixed by a backend sugar
// marker ('+', '!', '%', '@'; 0 means no marker).
type Name struct {
	Sugar byte
	Text  string
	Span  source.Span
}

// ContentKind classifies a file's homogeneous top-level content.
type ContentKind uint8

const (
	ContentUnknown ContentKind = iota
	ContentConsts
	ContentTypes
	ContentGroups
)

func (k ContentKind) String() string {
	switch k {
	case ContentConsts:
		return "constants"
	case ContentTypes:
		return "types"
	case ContentGroups:
		return "groups"
	default:
		return "unknown"
	}
}

// ImportCategory distinguishes the categorized import lists.
type ImportCategory uint8

const (
	ImportConst ImportCategory = iota
	ImportType
	ImportFn
	ImportModifier
	ImportMetaFn
)

func (c ImportCategory) String() string {
	switch c {
	case ImportConst:
		return "const"
	case ImportType:
		return "type"
	case ImportFn:
		return "fn"
	case ImportModifier:
		return "modifier"
	case ImportMetaFn:
		return "metafn"
	default:
		return "unknown"
	}
}

// Import is one imported name together with its defining module path.
// Grouped imports (`a.b.[x y]`) are expanded to one Import per name
// by the parser. There is no aliasing form in the grammar.
type Import struct {
	Category ImportCategory
	Path     []string // module path segments, may be empty (project root)
	Name     Name
	Span     source.Span
}

// Module is the parsed but unresolved representation of one source file.
type Module struct {
	Path    []string // module path derived from the file location
	Kind    ContentKind
	Imports []Import

	// Exactly one of the following is populated, per Kind.
	Consts []*ConstDef
	Types  []*TypeDef
	Groups []*GroupDef

	Span source.Span
}

// PathString renders the module path in dotted form.
func (m *Module) PathString() string {
	out := ""
	for i, seg := range m.Path {
		if i > 0 {
			out += "."
		}
		out += seg
	}
	return out
}
