package resolver

// Resolution describes how one type token should be expanded.
type Resolution struct {
	Token string
	Kind  Kind
	// BitWidth is only set for scalars. Nothing consumes it yet; sizes are
	// computed by the caller if at all.
	BitWidth int
	// Ref is the unquoted type name of a reference.
	Ref string
}

// Kind identifies the expansion behavior of a type token.
type Kind int

const (
	KindUnknown Kind = iota
	KindScalar
	KindStruct
	KindArray
	KindDTL
	KindReference
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindStruct:
		return "struct"
	case KindArray:
		return "array"
	case KindDTL:
		return "dtl"
	case KindReference:
		return "reference"
	default:
		return "unknown"
	}
}
