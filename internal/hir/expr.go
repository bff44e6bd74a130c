package hir

import (
	"hatc/internal/source"
)

// LitKind classifies literal values.
type LitKind uint8

const (
	LitBool LitKind = iota
	LitInt
	LitFloat
	LitString
)

// Literal is a backend-tagged literal value. `@3` is Int(3) on QPU.
type Literal struct {
	Kind    LitKind
	Backend BackendKind
	Bool    bool
	Int     int64
	Float   float64
	Str     string
}

// ExprKind enumerates HIR expression kinds.
type ExprKind uint8

const (
	// ExprIdent is a bare symbol reference.
	ExprIdent ExprKind = iota
	// ExprLiteral is a backend-tagged literal.
	ExprLiteral
	// ExprCall is a function call.
	ExprCall
	// ExprMetaCall is an option/body/option-body meta-function call.
	ExprMetaCall
	// ExprCast converts a value to a (possibly other-backend) type.
	ExprCast
	// ExprMember is a dotted data member access chain.
	ExprMember
)

func (k ExprKind) String() string {
	switch k {
	case ExprIdent:
		return "Ident"
	case ExprLiteral:
		return "Literal"
	case ExprCall:
		return "Call"
	case ExprMetaCall:
		return "MetaCall"
	case ExprCast:
		return "Cast"
	case ExprMember:
		return "Member"
	}
	return "Unknown"
}

// Expr is one HIR expression node. Data holds the kind-specific payload.
type Expr struct {
	ID   ExprID
	Kind ExprKind
	Span source.Span
	Data ExprData
}

// ExprData is the interface for expression payloads.
type ExprData interface {
	exprData()
}

// IdentData holds data for ExprIdent.
type IdentData struct {
	Sym Symbol
}

// LiteralData holds data for ExprLiteral.
type LiteralData struct {
	Lit Literal
}

// CallData holds data for ExprCall.
type CallData struct {
	Callee    Symbol
	Args      []*Expr
	Modifiers []Modifier
}

// MetaCallKind distinguishes meta-function call shapes.
type MetaCallKind uint8

const (
	// MetaOptn is an option (case-dispatch) call: `name(opt:{...} ...)`.
	MetaOptn MetaCallKind = iota
	// MetaBdn is a body (block) call: `name(args){...}`.
	MetaBdn
	// MetaOptBdn is an option-body call: `name(args){opt:{...} ...}`.
	MetaOptBdn
)

func (k MetaCallKind) String() string {
	switch k {
	case MetaOptn:
		return "Optn"
	case MetaBdn:
		return "Bdn"
	case MetaOptBdn:
		return "OptBdn"
	}
	return "Unknown"
}

// OptionBody is one `opt:{body}` arm.
type OptionBody struct {
	Opt  *Expr
	Body Block
}

// MetaCallData holds data for ExprMetaCall.
type MetaCallData struct {
	Meta      MetaCallKind
	Name      Symbol
	Args      []*Expr // empty for MetaOptn
	Options   []OptionBody
	Body      Block // MetaBdn only
	Modifiers []Modifier
}

// CastData holds data for ExprCast.
type CastData struct {
	Value     *Expr
	To        TypeName
	Modifiers []Modifier
}

// MemberData holds data for ExprMember.
type MemberData struct {
	Path CompositeSymbol
}

func (IdentData) exprData()    {}
func (LiteralData) exprData()  {}
func (CallData) exprData()     {}
func (MetaCallData) exprData() {}
func (CastData) exprData()     {}
func (MemberData) exprData()   {}

// Modifier is a `<name>` or `<name=value>` annotation.
type Modifier struct {
	Name  Symbol
	Value *Expr // nil for no-arg modifiers
}

// Backend returns the effective backend kind of the expression: the kind
// of its outermost symbol or literal tag.
func (e *Expr) Backend() BackendKind {
	switch d := e.Data.(type) {
	case IdentData:
		return d.Sym.Backend
	case LiteralData:
		return d.Lit.Backend
	case CallData:
		return d.Callee.Backend
	case MetaCallData:
		return d.Name.Backend
	case CastData:
		return d.To.Name.Backend
	case MemberData:
		return d.Path.Head().Backend
	}
	return CPU
}
