package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolver_Resolve(t *testing.T) {
	r := New(DefaultRules()...)

	tests := []struct {
		name     string
		token    string
		wantKind Kind
		wantRef  string
		wantBits int
	}{
		{name: "bool", token: "Bool", wantKind: KindScalar, wantBits: 1},
		{name: "udint", token: "UDInt", wantKind: KindScalar, wantBits: 32},
		{name: "wstring", token: "WString", wantKind: KindScalar, wantBits: 16},
		{name: "struct", token: "Struct", wantKind: KindStruct},
		{name: "array", token: "Array", wantKind: KindArray},
		{name: "dtl", token: "DTL", wantKind: KindDTL},
		{name: "reference", token: `"Motor"`, wantKind: KindReference, wantRef: "Motor"},
		{name: "reference with space", token: `"Conveyor Belt"`, wantKind: KindReference, wantRef: "Conveyor Belt"},
		{name: "case sensitive", token: "bool", wantKind: KindUnknown},
		{name: "empty quotes", token: `""`, wantKind: KindUnknown},
		{name: "unterminated quote", token: `"Motor`, wantKind: KindUnknown},
		{name: "unknown", token: "Weird", wantKind: KindUnknown},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got := r.Resolve(tc.token)
			assert.Equal(t, tc.wantKind, got.Kind)
			assert.Equal(t, tc.token, got.Token)
			assert.Equal(t, tc.wantRef, got.Ref)
			assert.Equal(t, tc.wantBits, got.BitWidth)
		})
	}
}

func TestResolver_RuleOrder(t *testing.T) {
	r := New(&fixedRule{kind: KindDTL}, &ScalarRule{})

	got := r.Resolve("Bool")
	assert.Equal(t, KindDTL, got.Kind, "first matching rule wins")
}

func TestResolver_NoRules(t *testing.T) {
	got := New().Resolve("Int")
	assert.Equal(t, KindUnknown, got.Kind)
}

func TestBitWidth(t *testing.T) {
	w, ok := BitWidth("LReal")
	assert.True(t, ok)
	assert.Equal(t, 64, w)

	_, ok = BitWidth("DTL")
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "reference", KindReference.String())
	assert.Equal(t, "unknown", Kind(42).String())
}

type fixedRule struct {
	kind Kind
}

func (r *fixedRule) Name() string { return "fixed" }

func (r *fixedRule) Try(token string) (Resolution, bool) {
	return Resolution{Token: token, Kind: r.kind}, true
}
