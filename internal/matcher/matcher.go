package matcher

import (
	"path"
	"strings"
)

// DefaultExtensions are the file extensions TIA Portal uses for UDT sources.
var DefaultExtensions = []string{".udt"}

// FileMatcher maps a UDT name to the file that defines it.
type FileMatcher interface {
	// Accept reports whether p may hold a UDT definition.
	Accept(p string) bool
	// Match returns the candidate whose base name equals typeName.
	Match(typeName string, candidates []string) (string, bool)
}

type fileMatcherImpl struct {
	exts map[string]bool
}

// NewFileMatcher returns a matcher for files with one of exts. No exts
// selects DefaultExtensions.
func NewFileMatcher(exts ...string) FileMatcher {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	return &fileMatcherImpl{exts: toExtSet(exts)}
}

func (m *fileMatcherImpl) Accept(p string) bool {
	return m.exts[strings.ToLower(path.Ext(p))]
}

// Match prefers an exact base-name match and falls back to a
// case-insensitive one.
func (m *fileMatcherImpl) Match(typeName string, candidates []string) (string, bool) {
	fallback := ""
	for _, c := range candidates {
		if !m.Accept(c) {
			continue
		}
		base := strings.TrimSuffix(path.Base(c), path.Ext(c))
		if base == typeName {
			return c, true
		}
		if fallback == "" && strings.EqualFold(base, typeName) {
			fallback = c
		}
	}
	return fallback, fallback != ""
}

func toExtSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.TrimSpace(strings.ToLower(e))
		if e == "" {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		set[e] = true
	}
	return set
}
