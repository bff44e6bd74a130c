package ast

import (
	"hatc/internal/source"
)

// Expr is the unresolved expression interface.
type Expr interface {
	ExprSpan() source.Span
	exprNode()
}

// LitKind classifies literal expressions.
type LitKind uint8

const (
	LitBool LitKind = iota
	LitInt
	LitFloat
	LitString
)

// IdentExpr is a bare identifier reference.
type IdentExpr struct {
	Name Name
}

// MemberExpr is a dotted access chain (`color.rgb.r`), outer-to-inner.
type MemberExpr struct {
	Parts []Name
	Span  source.Span
}

// LiteralExpr keeps the literal's raw text; values are decoded during
// lowering.
type LiteralExpr struct {
	Kind  LitKind
	Sugar byte
	Text  string
	Span  source.Span
}

// CallExpr is `callee(args)<mods>?`.
type CallExpr struct {
	Callee    Name
	Args      []Expr
	Modifiers []Modifier
	Span      source.Span
}

// OptionBody is one `opt : { body }` arm of a meta-call.
type OptionBody struct {
	Opt  Expr
	Body []Stmt
	Span source.Span
}

// OptnCallExpr is an option meta-call: `name(opt:{...} ...)`.
type OptnCallExpr struct {
	Name      Name
	Options   []OptionBody
	Modifiers []Modifier
	Span      source.Span
}

// BdnCallExpr is a body meta-call: `name(args){...}`.
type BdnCallExpr struct {
	Name      Name
	Args      []Expr
	Body      []Stmt
	Modifiers []Modifier
	Span      source.Span
}

// OptBdnCallExpr is an option-body meta-call: `name(args){opt:{...} ...}`.
type OptBdnCallExpr struct {
	Name      Name
	Args      []Expr
	Options   []OptionBody
	Modifiers []Modifier
	Span      source.Span
}

// CastExpr is `value * type`.
type CastExpr struct {
	Value     Expr
	To        TypeRef
	Modifiers []Modifier
	Span      source.Span
}

func (e *IdentExpr) ExprSpan() source.Span      { return e.Name.Span }
func (e *MemberExpr) ExprSpan() source.Span     { return e.Span }
func (e *LiteralExpr) ExprSpan() source.Span    { return e.Span }
func (e *CallExpr) ExprSpan() source.Span       { return e.Span }
func (e *OptnCallExpr) ExprSpan() source.Span   { return e.Span }
func (e *BdnCallExpr) ExprSpan() source.Span    { return e.Span }
func (e *OptBdnCallExpr) ExprSpan() source.Span { return e.Span }
func (e *CastExpr) ExprSpan() source.Span       { return e.Span }

func (*IdentExpr) exprNode()      {}
func (*MemberExpr) exprNode()     {}
func (*LiteralExpr) exprNode()    {}
func (*CallExpr) exprNode()       {}
func (*OptnCallExpr) exprNode()   {}
func (*BdnCallExpr) exprNode()    {}
func (*OptBdnCallExpr) exprNode() {}
func (*CastExpr) exprNode()       {}
