package token

import (
	"hatc/internal/source"
)

// Token is one lexical unit of Heather source text.
type Token struct {
	Kind Kind
	Text string
	Span source.Span
}
