package hir

import (
	"hatc/internal/source"
)

// ContentKind classifies a module's homogeneous content.
type ContentKind uint8

const (
	ContentConsts ContentKind = iota
	ContentTypes
	ContentGroups
)

func (k ContentKind) String() string {
	switch k {
	case ContentConsts:
		return "consts"
	case ContentTypes:
		return "types"
	case ContentGroups:
		return "groups"
	}
	return "unknown"
}

// Content holds a module's top-level definitions. Exactly one list is
// populated, per Kind; files never mix definition kinds.
type Content struct {
	Kind   ContentKind
	Consts []*ConstDef
	Types  []*TypeDef
	Groups []*GroupDef
}

// Module is one HIR module (corresponding to one source file).
type Module struct {
	ID      ModuleID
	Path    Path
	File    source.FileID
	Imports Imports
	Content Content
	Span    source.Span

	// ExprCount is the number of expression IDs handed out while
	// lowering this module; IDs are project-unique (see Lowerer).
	ExprCount uint32
}

// FindType returns the type definition with the given name, nil if the
// module holds no such type.
func (m *Module) FindType(name string) *TypeDef {
	if m.Content.Kind != ContentTypes {
		return nil
	}
	for _, t := range m.Content.Types {
		if t.Name.Name == name {
			return t
		}
	}
	return nil
}

// FindGroup returns the group definition matching name and kind, nil if
// absent.
func (m *Module) FindGroup(name string, kind GroupKind) *GroupDef {
	if m.Content.Kind != ContentGroups {
		return nil
	}
	for _, g := range m.Content.Groups {
		if g.Kind == kind && g.DefName().Name == name {
			return g
		}
	}
	return nil
}
