package diag

import (
	"fmt"
)

// Code is a stable diagnostic kind tag. Ranges: 1000s I/O, 1100s lexical,
// 2000s syntactic, 3000s resolution, 4000s scheduling.
type Code uint16

const (
	UnknownCode Code = 0

	// I/O
	SourceNotFound Code = 1001
	UnreadableFile Code = 1002

	// Lexical
	LexUnknownChar         Code = 1101
	LexUnterminatedString  Code = 1102
	LexUnterminatedComment Code = 1103
	LexBadNumber           Code = 1104

	// Syntactic
	ParseError           Code = 2001
	MixedFileContent     Code = 2002
	InvalidModifierArity Code = 2003
	BadSugarPlacement    Code = 2004

	// Resolution
	DuplicateDefinition Code = 3001
	UnresolvedImport    Code = 3002
	AmbiguousImport     Code = 3003
	UnknownSymbol       Code = 3004

	// Scheduling
	IllegalStrictQpu Code = 4001
)

func (c Code) String() string {
	switch c {
	case SourceNotFound:
		return "SourceNotFound"
	case UnreadableFile:
		return "UnreadableFile"
	case LexUnknownChar:
		return "LexUnknownChar"
	case LexUnterminatedString:
		return "LexUnterminatedString"
	case LexUnterminatedComment:
		return "LexUnterminatedComment"
	case LexBadNumber:
		return "LexBadNumber"
	case ParseError:
		return "ParseError"
	case MixedFileContent:
		return "MixedFileContent"
	case InvalidModifierArity:
		return "InvalidModifierArity"
	case BadSugarPlacement:
		return "BadSugarPlacement"
	case DuplicateDefinition:
		return "DuplicateDefinition"
	case UnresolvedImport:
		return "UnresolvedImport"
	case AmbiguousImport:
		return "AmbiguousImport"
	case UnknownSymbol:
		return "UnknownSymbol"
	case IllegalStrictQpu:
		return "IllegalStrictQpu"
	}
	return fmt.Sprintf("Code(%d)", uint16(c))
}
