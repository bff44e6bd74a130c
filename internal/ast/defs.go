package ast

import (
	"hatc/internal/source"
)

// TypeRef is a reference to a type by name.
type TypeRef struct {
	Name Name
	Span source.Span
}

// Modifier is a `<name>` or `<name=expr>` annotation attached to
// definitions, calls and declarations.
type Modifier struct {
	Name  Name
	Value Expr // nil for no-arg modifiers
	Span  source.Span
}

// ConstDef is `const name : type = expr`, legal only in constants files.
type ConstDef struct {
	Name      Name
	Type      TypeRef
	Modifiers []Modifier
	Value     Expr
	Span      source.Span
}

// TypeDefKind discriminates type definitions.
type TypeDefKind uint8

const (
	TypeDefPrimitive TypeDefKind = iota // type name : prim
	TypeDefStruct                       // type name { m:type ... }
	TypeDefEnum                         // enum name { ... }
)

// TypeDef is one definition in a types file.
type TypeDef struct {
	Kind      TypeDefKind
	Name      Name
	Prim      Name           // TypeDefPrimitive: aliased primitive name
	Members   []StructMember // TypeDefStruct
	EnumMems  []EnumMember   // TypeDefEnum
	Modifiers []Modifier
	Span      source.Span
}

// StructMember is a named, typed member of a struct definition.
type StructMember struct {
	Name Name
	Type TypeRef
	Span source.Span
}

// EnumMember is either a bare kind marker (`ON`) or a struct-shaped
// variant (`rgb{r:u8 g:u8 b:u8}`). Members is nil for kind markers.
type EnumMember struct {
	Name    Name
	Members []StructMember
	Span    source.Span
}

// IsStruct reports whether the member is a struct-shaped variant.
func (m EnumMember) IsStruct() bool {
	return m.Members != nil
}

// GroupKind discriminates definitions in a groups file.
type GroupKind uint8

const (
	GroupFn GroupKind = iota
	GroupModifier
	GroupMetaFn
)

// GroupDef is one definition in a groups file.
type GroupDef struct {
	Kind     GroupKind
	Fn       *FnDef
	Modifier *ModifierDef
	MetaFn   *MetaFnDef
	Span     source.Span
}

// Param is a function/modifier/metafn parameter.
type Param struct {
	Name Name
	Type TypeRef
	Span source.Span
}

// FnDef is `fn name(params) ret? <mods>? { stmts }`. The `main { ... }`
// entry block parses as an FnDef named "main" with no parameters.
type FnDef struct {
	Name      Name
	Params    []Param
	Ret       *TypeRef // nil when the function returns nothing
	Modifiers []Modifier
	Body      []Stmt
	Span      source.Span
}

// ModifierDef is `modifier name(params) { stmts }`. Arity is validated
// during lowering (at most two parameters).
type ModifierDef struct {
	Name      Name
	Params    []Param
	Modifiers []Modifier
	Body      []Stmt
	Span      source.Span
}

// MetaKind is the declared shape of a meta-function.
type MetaKind uint8

const (
	MetaFnT MetaKind = iota
	MetaOptnT
	MetaBdnT
	MetaOptBdnT
)

func (k MetaKind) String() string {
	switch k {
	case MetaFnT:
		return "fn_t"
	case MetaOptnT:
		return "optn_t"
	case MetaBdnT:
		return "bdn_t"
	case MetaOptBdnT:
		return "optbdn_t"
	default:
		return "unknown"
	}
}

// MetaFnDef is `metafn name(params) kind { stmts }`.
type MetaFnDef struct {
	Name      Name
	Params    []Param
	Kind      MetaKind
	Modifiers []Modifier
	Body      []Stmt
	Span      source.Span
}
