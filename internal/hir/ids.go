package hir

import (
	"strings"
)

// ModuleID identifies a module inside a project.
type ModuleID uint32

// ExprID identifies one expression node inside a project. IDs are
// assigned densely during lowering; resolver bindings and scheduling
// annotations key on them instead of node pointers.
type ExprID uint32

// NoExprID marks the absence of an expression reference.
const NoExprID ExprID = 0

// IsValid reports whether the ID refers to a lowered expression.
func (id ExprID) IsValid() bool { return id != NoExprID }

// Path is the ordered segment sequence locating a module. The empty path
// is the project root namespace.
type Path []string

func (p Path) String() string {
	return strings.Join(p, ".")
}

func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Equal compares two paths segment by segment.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}
