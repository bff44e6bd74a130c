package diag

import (
	"hatc/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one reported problem. Module and Symbol carry enough
// context for a caller to print "<module>: <Code>: <detail>" without
// knowing the output medium.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Module   string // module path ("a.b.c"), empty if not module-scoped
	Symbol   string // offending symbol text, if any
	Notes    []Note
}
