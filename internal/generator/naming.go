package generator

import (
	"strings"
	"unicode"
)

// exportedToken turns a UDT name such as "typ_Conveyor belt" into a Go
// identifier fragment ("TypConveyorBelt").
func exportedToken(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(parts) == 0 {
		return "Udt"
	}

	var b strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		b.WriteRune(unicode.ToUpper(runes[0]))
		if len(runes) > 1 {
			b.WriteString(string(runes[1:]))
		}
	}
	out := b.String()
	if unicode.IsDigit([]rune(out)[0]) {
		out = "Udt" + out
	}
	return out
}
