package parser

import (
	"github.com/seitarof/udt-flat/internal/resolver"
)

// ScanDependencies returns the UDT names referenced by lines, directly or as
// array element type, each mapped to an empty location.
func ScanDependencies(lines []string) map[string]string {
	deps := map[string]string{}
	for _, line := range lines {
		token, ok := matchTypeToken(line)
		if !ok {
			continue
		}
		if token == resolver.TokenArray {
			_, datatype, _, ok := splitDeclaration(line)
			if !ok {
				continue
			}
			arr, err := parseArray(datatype)
			if err != nil {
				continue
			}
			token = arr.elem
		}
		if name, ok := resolver.RefName(token); ok {
			deps[name] = ""
		}
	}
	return deps
}
