package token

var keywords = map[string]Kind{
	"use":      KwUse,
	"const":    KwConst,
	"type":     KwType,
	"enum":     KwEnum,
	"fn":       KwFn,
	"modifier": KwModifier,
	"metafn":   KwMetafn,
	"main":     KwMain,
	"true":     KwTrue,
	"false":    KwFalse,
	"fn_t":     KwFnT,
	"optn_t":   KwOptnT,
	"bdn_t":    KwBdnT,
	"optbdn_t": KwOptBdnT,
}

// LookupKeyword returns the keyword kind for an identifier, if it is one.
// Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
