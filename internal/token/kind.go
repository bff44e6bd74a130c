// Package token defines lexical token kinds for the Heather dialect.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace, ',' and ';' are insignificant and never reach the stream.
//   - Backend sugar markers ('+', '!', '%', '@') are standalone tokens; the
//     HIR lowering decides whether a marker position is legal.
package token

// Kind represents the category of a source token.
type Kind uint8

const (
	EOF Kind = iota
	Ident
	Int
	Float
	String

	// Keywords
	KwUse
	KwConst
	KwType
	KwEnum
	KwFn
	KwModifier
	KwMetafn
	KwMain
	KwTrue
	KwFalse
	KwFnT
	KwOptnT
	KwBdnT
	KwOptBdnT

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Colon
	ColonColon
	Eq
	Lt
	Gt
	Dot
	Star

	// Backend sugar markers
	Plus    // GPU
	Bang    // NPU
	Percent // TPU
	At      // QPU
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Int:
		return "Int"
	case Float:
		return "Float"
	case String:
		return "String"
	case KwUse:
		return "use"
	case KwConst:
		return "const"
	case KwType:
		return "type"
	case KwEnum:
		return "enum"
	case KwFn:
		return "fn"
	case KwModifier:
		return "modifier"
	case KwMetafn:
		return "metafn"
	case KwMain:
		return "main"
	case KwTrue:
		return "true"
	case KwFalse:
		return "false"
	case KwFnT:
		return "fn_t"
	case KwOptnT:
		return "optn_t"
	case KwBdnT:
		return "bdn_t"
	case KwOptBdnT:
		return "optbdn_t"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBrace:
		return "{"
	case RBrace:
		return "}"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	case Colon:
		return ":"
	case ColonColon:
		return "::"
	case Eq:
		return "="
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Dot:
		return "."
	case Star:
		return "*"
	case Plus:
		return "+"
	case Bang:
		return "!"
	case Percent:
		return "%"
	case At:
		return "@"
	}
	return "Unknown"
}

// IsSugar reports whether the kind is a backend sugar marker.
func (k Kind) IsSugar() bool {
	return k == Plus || k == Bang || k == Percent || k == At
}
