package hir

import (
	"hatc/internal/source"
)

// Block is an ordered statement sequence; execution order is program
// order, no reordering.
type Block []Stmt

// StmtKind enumerates HIR statement kinds.
type StmtKind uint8

const (
	// StmtDeclare declares a typed name without a value.
	StmtDeclare StmtKind = iota
	// StmtAssign assigns to an existing name (single/struct/enum forms).
	StmtAssign
	// StmtDeclareAssign declares and initializes in one statement.
	StmtDeclareAssign
	// StmtExpr is a bare expression in statement position.
	StmtExpr
	// StmtReturn is `:: expr`.
	StmtReturn
)

func (k StmtKind) String() string {
	switch k {
	case StmtDeclare:
		return "Declare"
	case StmtAssign:
		return "Assign"
	case StmtDeclareAssign:
		return "DeclareAssign"
	case StmtExpr:
		return "Expr"
	case StmtReturn:
		return "Return"
	}
	return "Unknown"
}

// Stmt is one HIR statement.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

// StmtData is the interface for statement payloads.
type StmtData interface {
	stmtData()
}

// DeclareData holds data for StmtDeclare.
type DeclareData struct {
	Name      Symbol
	Type      TypeName
	Modifiers []Modifier
}

// AssignKind discriminates assignment forms.
type AssignKind uint8

const (
	// AssignSingle is `target = expr`.
	AssignSingle AssignKind = iota
	// AssignStruct is `target.{ m1=e1 m2=e2 }`.
	AssignStruct
	// AssignEnum is `target.{ variant }` or `target.{ variant{...} }`.
	AssignEnum
)

// MemberInit is one `member = expr` of a struct/enum assign.
type MemberInit struct {
	Name  Symbol
	Value *Expr
}

// AssignData holds data for StmtAssign.
type AssignData struct {
	Assign    AssignKind
	Target    CompositeSymbol
	Value     *Expr        // AssignSingle
	Members   []MemberInit // AssignStruct, AssignEnum struct variants
	Variant   Symbol       // AssignEnum
	Modifiers []Modifier
}

// DeclareAssignData holds data for StmtDeclareAssign.
type DeclareAssignData struct {
	Name      Symbol
	Type      TypeName
	Modifiers []Modifier
	Value     *Expr
}

// ExprStmtData holds data for StmtExpr.
type ExprStmtData struct {
	X *Expr
}

// ReturnData holds data for StmtReturn.
type ReturnData struct {
	Value *Expr
}

func (DeclareData) stmtData()       {}
func (AssignData) stmtData()        {}
func (DeclareAssignData) stmtData() {}
func (ExprStmtData) stmtData()      {}
func (ReturnData) stmtData()        {}
