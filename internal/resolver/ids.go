package resolver

// DefID indexes into the definition arena. Index 0 is the invalid
// sentinel.
type DefID uint32

// NoDefID is the invalid definition ID.
const NoDefID DefID = 0

// IsValid reports whether the ID refers to an arena slot.
func (id DefID) IsValid() bool { return id != NoDefID }

// DefKind classifies arena entries. Const, Type, Fn, Modifier and MetaFn
// mirror the import categories; Local covers parameters and body-scoped
// declarations.
type DefKind uint8

const (
	DefConst DefKind = iota
	DefType
	DefFn
	DefModifier
	DefMetaFn
	DefLocal
)

func (k DefKind) String() string {
	switch k {
	case DefConst:
		return "const"
	case DefType:
		return "type"
	case DefFn:
		return "fn"
	case DefModifier:
		return "modifier"
	case DefMetaFn:
		return "metafn"
	case DefLocal:
		return "local"
	}
	return "unknown"
}

// ModuleState tracks a module through resolution.
type ModuleState uint8

const (
	// ModuleLowered is the entry state: HIR exists, nothing resolved.
	ModuleLowered ModuleState = iota
	// ModuleCollected means phase 1 ran and the module's definitions are
	// in the table.
	ModuleCollected
	// ModuleBound means phase 2 ran and every reference is bound.
	ModuleBound
	// ModuleFailed means resolution errors were reported; the module is
	// kept for diagnostics but not admitted to planning.
	ModuleFailed
)

func (s ModuleState) String() string {
	switch s {
	case ModuleLowered:
		return "lowered"
	case ModuleCollected:
		return "collected"
	case ModuleBound:
		return "bound"
	case ModuleFailed:
		return "failed"
	}
	return "unknown"
}
