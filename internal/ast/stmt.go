package ast

import (
	"hatc/internal/source"
)

// Stmt is the unresolved statement interface. Execution order inside a
// body is program order.
type Stmt interface {
	StmtSpan() source.Span
	stmtNode()
}

// DeclareStmt is `name <mods>? : type`.
type DeclareStmt struct {
	Name      Name
	Modifiers []Modifier
	Type      TypeRef
	Span      source.Span
}

// DeclareAssignStmt is `name <mods>? : type = expr`.
type DeclareAssignStmt struct {
	Name      Name
	Modifiers []Modifier
	Type      TypeRef
	Value     Expr
	Span      source.Span
}

// AssignStmt is the single assign form `target = expr`. Target may be a
// dotted member chain.
type AssignStmt struct {
	Target    []Name
	Value     Expr
	Modifiers []Modifier
	Span      source.Span
}

// MemberInit is one `member = expr` inside a struct assign.
type MemberInit struct {
	Name  Name
	Value Expr
	Span  source.Span
}

// StructAssignStmt is the struct assign form `target.{ m1=e1 m2=e2 }`.
type StructAssignStmt struct {
	Target  Name
	Members []MemberInit
	Span    source.Span
}

// EnumAssignStmt is the enum assign form `target.{ variant }` or
// `target.{ variant{ m1=e1 ... } }`.
type EnumAssignStmt struct {
	Target  Name
	Variant Name
	Members []MemberInit // nil for bare kind members
	Span    source.Span
}

// ExprStmt is a bare expression in statement position.
type ExprStmt struct {
	X Expr
}

// ReturnStmt is `:: expr`.
type ReturnStmt struct {
	Value Expr
	Span  source.Span
}

func (s *DeclareStmt) StmtSpan() source.Span       { return s.Span }
func (s *DeclareAssignStmt) StmtSpan() source.Span { return s.Span }
func (s *AssignStmt) StmtSpan() source.Span        { return s.Span }
func (s *StructAssignStmt) StmtSpan() source.Span  { return s.Span }
func (s *EnumAssignStmt) StmtSpan() source.Span    { return s.Span }
func (s *ExprStmt) StmtSpan() source.Span          { return s.X.ExprSpan() }
func (s *ReturnStmt) StmtSpan() source.Span        { return s.Span }

func (*DeclareStmt) stmtNode()       {}
func (*DeclareAssignStmt) stmtNode() {}
func (*AssignStmt) stmtNode()        {}
func (*StructAssignStmt) stmtNode()  {}
func (*EnumAssignStmt) stmtNode()    {}
func (*ExprStmt) stmtNode()          {}
func (*ReturnStmt) stmtNode()        {}
