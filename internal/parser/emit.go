package parser

import (
	"slices"
	"strings"
)

// builder accumulates the output of one top-level parse. Recursive calls for
// referenced UDTs share it.
type builder struct {
	elements []Element
	path     []string
	// active holds the UDT names currently being expanded.
	active []string
}

func (b *builder) push(prefix string) {
	b.path = append(b.path, prefix)
}

func (b *builder) pop() {
	if len(b.path) > 0 {
		b.path = b.path[:len(b.path)-1]
	}
}

// emit stores e with the current path in front of its local name.
func (b *builder) emit(e Element) {
	var sb strings.Builder
	for _, p := range b.path {
		sb.WriteString(p)
	}
	sb.WriteString(e.Name)
	e.Name = sb.String()
	e.Value = ""
	b.elements = append(b.elements, e)
}

func (b *builder) expanding(name string) bool {
	return slices.Contains(b.active, name)
}

func (b *builder) enter(name string) {
	b.active = append(b.active, name)
}

func (b *builder) leave() {
	b.active = b.active[:len(b.active)-1]
}
