package resolver

import "strings"

// Composite type tokens.
const (
	TokenStruct = "Struct"
	TokenArray  = "Array"
	TokenDTL    = "DTL"
)

var scalarWidths = map[string]int{
	"Bool":    1,
	"Byte":    8,
	"Word":    16,
	"DWord":   32,
	"LWord":   64,
	"SInt":    8,
	"USInt":   8,
	"Int":     16,
	"UInt":    16,
	"DInt":    32,
	"UDInt":   32,
	"LInt":    64,
	"ULInt":   64,
	"Real":    32,
	"LReal":   64,
	"Char":    8,
	"WChar":   16,
	"String":  16,
	"WString": 16,
}

var composites = map[string]Kind{
	TokenStruct: KindStruct,
	TokenArray:  KindArray,
	TokenDTL:    KindDTL,
}

// DefaultRules returns built-in rules in priority order.
func DefaultRules() []Rule {
	return []Rule{
		&ScalarRule{},
		&CompositeRule{},
		&ReferenceRule{},
	}
}

// BitWidth reports the width of a scalar type name.
func BitWidth(name string) (int, bool) {
	w, ok := scalarWidths[name]
	return w, ok
}

// RefName unwraps a quoted type reference such as "Motor".
func RefName(token string) (string, bool) {
	if len(token) < 3 || !strings.HasPrefix(token, `"`) || !strings.HasSuffix(token, `"`) {
		return "", false
	}
	return token[1 : len(token)-1], true
}

// ScalarRule: exact member of the primitive table.
type ScalarRule struct{}

func (r *ScalarRule) Name() string { return "scalar" }

func (r *ScalarRule) Try(token string) (Resolution, bool) {
	w, ok := scalarWidths[token]
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Token: token, Kind: KindScalar, BitWidth: w}, true
}

// CompositeRule: Struct, Array or DTL.
type CompositeRule struct{}

func (r *CompositeRule) Name() string { return "composite" }

func (r *CompositeRule) Try(token string) (Resolution, bool) {
	k, ok := composites[token]
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Token: token, Kind: k}, true
}

// ReferenceRule: double-quoted name of another UDT.
type ReferenceRule struct{}

func (r *ReferenceRule) Name() string { return "reference" }

func (r *ReferenceRule) Try(token string) (Resolution, bool) {
	name, ok := RefName(token)
	if !ok {
		return Resolution{}, false
	}
	return Resolution{Token: token, Kind: KindReference, Ref: name}, true
}
