package parser

import "strings"

const (
	headerStruct = "STRUCT"
	endStruct    = "END_STRUCT;"
	declSep      = " : "
)

// matchTypeName matches `TYPE "Name"`.
func matchTypeName(line string) (string, bool) {
	_, rest, ok := strings.Cut(line, `TYPE "`)
	if !ok {
		return "", false
	}
	name, _, ok := strings.Cut(rest, `"`)
	return name, ok
}

// matchTitle matches `TITLE = text`.
func matchTitle(line string) (string, bool) {
	_, text, ok := strings.Cut(line, "TITLE = ")
	return text, ok
}

// matchVersion matches `VERSION : text`.
func matchVersion(line string) (string, bool) {
	_, text, ok := strings.Cut(line, "VERSION : ")
	return text, ok
}

// matchInfo matches a `//text` line.
func matchInfo(line string) (string, bool) {
	return strings.CutPrefix(line, "//")
}

func matchHeaderEnd(line string) bool {
	return strings.Contains(line, headerStruct)
}

// matchEndStruct expects a trimmed line.
func matchEndStruct(line string) bool {
	return strings.HasPrefix(line, endStruct)
}

// matchTypeToken extracts the type token of a `name : type` declaration.
// Quoted tokens keep their quotes and may contain spaces.
func matchTypeToken(line string) (string, bool) {
	_, rest, ok := strings.Cut(line, declSep)
	if !ok {
		return "", false
	}
	rest = strings.TrimLeft(rest, " ")
	if strings.HasPrefix(rest, `"`) {
		end := strings.IndexByte(rest[1:], '"')
		if end < 0 {
			return "", false
		}
		return rest[:end+2], true
	}
	if i := strings.IndexAny(rest, ";/[ "); i >= 0 {
		rest = rest[:i]
	}
	return rest, rest != ""
}

// splitDeclaration splits `name {meta} : type := init;   // comment` into
// the cleaned name, the type without initializer, and the comment.
func splitDeclaration(line string) (name, datatype, comment string, ok bool) {
	left, right, ok := strings.Cut(line, declSep)
	if !ok {
		return "", "", "", false
	}
	name = CleanName(left)

	decl := right
	if i := strings.Index(right, "//"); i >= 0 {
		decl = right[:i]
		comment = strings.TrimSpace(right[i+2:])
	}
	decl = strings.TrimSuffix(strings.TrimSpace(decl), ";")
	if d, _, found := strings.Cut(decl, " := "); found {
		decl = d
	}
	return name, strings.TrimSpace(decl), comment, true
}

// CleanName strips the `{ ... }` attribute block TIA Portal appends to
// declared names, e.g. `myVar {LibVersion := '1.0'}` becomes `myVar`.
func CleanName(name string) string {
	if before, _, found := strings.Cut(name, " {"); found {
		name = before
	}
	return strings.TrimSpace(name)
}
