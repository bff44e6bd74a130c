package hir

import (
	"hatc/internal/source"
)

// TypeName references a type by symbol; the backend kind on the symbol
// states which target the type lives on.
type TypeName struct {
	Name Symbol
}

func (t TypeName) String() string {
	return t.Name.String()
}

// ConstDef is a constant definition from a constants-only file.
type ConstDef struct {
	Name      Symbol
	Type      TypeName
	Modifiers []Modifier
	Value     *Expr
	Span      source.Span
}

// PrimitiveKind is the closed set of built-in primitive types.
type PrimitiveKind uint8

const (
	PrimBool PrimitiveKind = iota
	PrimU32
	PrimU64
	PrimI32
	PrimI64
	PrimF32
	PrimF64
	PrimStr
)

var primitiveNames = map[string]PrimitiveKind{
	"bool": PrimBool,
	"u32":  PrimU32,
	"u64":  PrimU64,
	"i32":  PrimI32,
	"i64":  PrimI64,
	"f32":  PrimF32,
	"f64":  PrimF64,
	"str":  PrimStr,
}

func (k PrimitiveKind) String() string {
	switch k {
	case PrimBool:
		return "bool"
	case PrimU32:
		return "u32"
	case PrimU64:
		return "u64"
	case PrimI32:
		return "i32"
	case PrimI64:
		return "i64"
	case PrimF32:
		return "f32"
	case PrimF64:
		return "f64"
	case PrimStr:
		return "str"
	}
	return "unknown"
}

// LookupPrimitive resolves a primitive type name.
func LookupPrimitive(name string) (PrimitiveKind, bool) {
	k, ok := primitiveNames[name]
	return k, ok
}

// TypeDefKind discriminates type definitions.
type TypeDefKind uint8

const (
	TypeDefPrimitive TypeDefKind = iota
	TypeDefStruct
	TypeDefEnum
)

func (k TypeDefKind) String() string {
	switch k {
	case TypeDefPrimitive:
		return "primitive"
	case TypeDefStruct:
		return "struct"
	case TypeDefEnum:
		return "enum"
	}
	return "unknown"
}

// StructMember is a named, typed member of a struct.
type StructMember struct {
	Name Symbol
	Type TypeName
}

// StructDef is a struct-shaped type body (used both for standalone struct
// types and for struct-shaped enum variants).
type StructDef struct {
	Name      Symbol
	Members   []StructMember
	Modifiers []Modifier
}

// Member finds a struct member by name, nil if absent.
func (s *StructDef) Member(name string) *StructMember {
	for i := range s.Members {
		if s.Members[i].Name.Name == name {
			return &s.Members[i]
		}
	}
	return nil
}

// EnumMember is either a bare kind marker or a struct-shaped variant
// (Struct is nil for kind markers).
type EnumMember struct {
	Name   Symbol
	Struct *StructDef
}

// TypeDef is one definition from a types-only file.
type TypeDef struct {
	Kind      TypeDefKind
	Name      Symbol
	Prim      PrimitiveKind // TypeDefPrimitive
	Struct    *StructDef    // TypeDefStruct
	Enum      []EnumMember  // TypeDefEnum
	Modifiers []Modifier
	Span      source.Span
}

// Variant finds an enum variant by name, nil if absent.
func (t *TypeDef) Variant(name string) *EnumMember {
	for i := range t.Enum {
		if t.Enum[i].Name.Name == name {
			return &t.Enum[i]
		}
	}
	return nil
}

// Param is a callable parameter.
type Param struct {
	Name      Symbol
	Type      TypeName
	Modifiers []Modifier
}

// FnDef is a function definition from a groups file.
type FnDef struct {
	Name      Symbol
	Params    []Param
	Ret       *TypeName // nil when nothing is returned
	Modifiers []Modifier
	Body      Block
	Span      source.Span
}

// ModifierDef is a modifier definition. Only no-arg and single-arg
// modifier forms exist, so Params holds at most two entries (the modified
// subject plus an optional argument).
type ModifierDef struct {
	Name      Symbol
	Params    []Param
	Modifiers []Modifier
	Body      Block
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
	}
	return "unknown"
}

// MetaFnDef is a meta-function definition from a groups file.
type MetaFnDef struct {
	Name      Symbol
	Params    []Param
	Kind      MetaKind
	Modifiers []Modifier
	Body      Block
	Span      source.Span
}

// GroupKind discriminates group definitions.
type GroupKind uint8

const (
	GroupFn GroupKind = iota
	GroupModifier
	GroupMetaFn
)

// GroupDef is one definition from a groups file.
type GroupDef struct {
	Kind     GroupKind
	Fn       *FnDef
	Modifier *ModifierDef
	MetaFn   *MetaFnDef
}

// Name returns the defined symbol regardless of group kind.
func (g *GroupDef) DefName() Symbol {
	switch g.Kind {
	case GroupFn:
		return g.Fn.Name
	case GroupModifier:
		return g.Modifier.Name
	case GroupMetaFn:
		return g.MetaFn.Name
	}
	return Symbol{}
}
