// Package hir holds the High-level Intermediate Representation of the
// Heather dialect: symbol-shaped trees in which every literal, call and
// cast carries an execution backend kind. HIR is produced by lowering the
// unresolved ast and consumed by the resolver.
package hir

// BackendKind identifies the execution target of a symbol, literal or
// expression. It is a closed tag, compared explicitly everywhere; the
// sugar string exists only for diagnostics and round-tripping, never for
// semantic comparison.
type BackendKind uint8

const (
	CPU BackendKind = iota
	GPU
	NPU
	TPU
	// QPU work can only execute in staged (lazy) mode.
	QPU
)

func (k BackendKind) String() string {
	switch k {
	case CPU:
		return "CPU"
	case GPU:
		return "GPU"
	case NPU:
		return "NPU"
	case TPU:
		return "TPU"
	case QPU:
		return "QPU"
	}
	return "Unknown"
}

// Sugar returns the display prefix for the backend kind.
func (k BackendKind) Sugar() string {
	switch k {
	case GPU:
		return "+"
	case NPU:
		return "!"
	case TPU:
		return "%"
	case QPU:
		return "@"
	}
	return ""
}

// StagedOnly reports whether the kind is restricted to staged execution.
func (k BackendKind) StagedOnly() bool {
	return k == QPU
}

// BackendFromSugar maps a raw sugar marker byte to its backend kind.
// A zero byte means no marker, i.e. CPU.
func BackendFromSugar(marker byte) (BackendKind, bool) {
	switch marker {
	case 0:
		return CPU, true
	case '+':
		return GPU, true
	case '!':
		return NPU, true
	case '%':
		return TPU, true
	case '@':
		return QPU, true
	}
	return CPU, false
}
