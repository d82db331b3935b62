package parser

import (
	"fmt"
	"log"

	"github.com/seitarof/udt-flat/internal/resolver"
	"github.com/seitarof/udt-flat/internal/source"
)

// DefaultMaxDepth bounds the nesting of referenced UDTs.
const DefaultMaxDepth = 64

// Parser flattens UDT export files.
type Parser interface {
	// Parse reads the UDT at path and inlines every referenced UDT, using deps
	// to map referenced type names to their files.
	Parse(path string, deps map[string]string) (*Document, error)
	// Dependencies lists the UDT names referenced by the file at path.
	Dependencies(path string) (map[string]string, error)
}

// Diagnostic describes a declaration that was skipped.
type Diagnostic struct {
	File   string
	Line   string
	Reason string
}

// Reporter receives non-fatal diagnostics.
type Reporter func(Diagnostic)

// Option configures a Parser.
type Option func(*parserImpl)

// WithReporter replaces the default log-based reporter.
func WithReporter(r Reporter) Option {
	return func(p *parserImpl) { p.report = r }
}

// WithResolver replaces the default type resolver.
func WithResolver(r resolver.Resolver) Option {
	return func(p *parserImpl) { p.resolver = r }
}

// WithMaxDepth limits how deep referenced UDTs may nest.
func WithMaxDepth(n int) Option {
	return func(p *parserImpl) {
		if n > 0 {
			p.maxDepth = n
		}
	}
}

type parserImpl struct {
	src      source.Source
	resolver resolver.Resolver
	report   Reporter
	maxDepth int
}

// New returns a parser reading files from src.
func New(src source.Source, opts ...Option) Parser {
	p := &parserImpl{
		src:      src,
		resolver: resolver.New(resolver.DefaultRules()...),
		report:   logDiagnostic,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func logDiagnostic(d Diagnostic) {
	log.Printf("udt-flat: warning: %s: %s: %q", d.File, d.Reason, d.Line)
}

func (p *parserImpl) Parse(path string, deps map[string]string) (*Document, error) {
	b := &builder{}
	doc, err := p.parseFile(b, path, deps, 0)
	if err != nil {
		return nil, err
	}
	doc.Elements = b.elements
	if doc.Elements == nil {
		doc.Elements = []Element{}
	}
	return doc, nil
}

func (p *parserImpl) Dependencies(path string) (map[string]string, error) {
	lines, err := p.src.Lines(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadFile, path, err)
	}
	return ScanDependencies(lines), nil
}

// fileState is the per-file part of the traversal.
type fileState struct {
	path   string
	depth  int
	header bool
	done   bool
	// frames counts Struct blocks opened in this file and not yet closed.
	frames int
}

func (p *parserImpl) parseFile(b *builder, path string, deps map[string]string, depth int) (*Document, error) {
	if depth > p.maxDepth {
		return nil, fmt.Errorf("%w (%d) at %s", ErrMaxDepth, p.maxDepth, path)
	}
	lines, err := p.src.Lines(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadFile, path, err)
	}

	doc := &Document{}
	st := &fileState{path: path, depth: depth, header: true}
	for _, line := range lines {
		if st.done {
			break
		}
		if st.header {
			if err := p.readHeader(b, doc, st, line); err != nil {
				return nil, err
			}
			continue
		}
		if err := p.readBody(b, st, line, deps); err != nil {
			return nil, err
		}
	}
	p.finish(b, st)
	return doc, nil
}

func (p *parserImpl) readHeader(b *builder, doc *Document, st *fileState, line string) error {
	if name, ok := matchTypeName(line); ok {
		doc.Name = name
		if st.depth == 0 {
			b.enter(name)
		}
		return nil
	}
	if text, ok := matchTitle(line); ok {
		doc.Description = text
		return nil
	}
	if text, ok := matchVersion(line); ok {
		doc.Version = text
		return nil
	}
	if text, ok := matchInfo(line); ok {
		doc.Info = text
		return nil
	}
	if matchHeaderEnd(line) {
		st.header = false
		b.push("")
	}
	return nil
}

func (p *parserImpl) readBody(b *builder, st *fileState, line string, deps map[string]string) error {
	if matchEndStruct(line) {
		if st.frames == 0 {
			// End of the document's own STRUCT.
			b.pop()
			st.done = true
			return nil
		}
		st.frames--
		b.pop()
		b.emit(closing())
		return nil
	}

	token, ok := matchTypeToken(line)
	if !ok {
		return nil
	}

	res := p.resolver.Resolve(token)
	switch res.Kind {
	case resolver.KindScalar:
		name, datatype, comment, _ := splitDeclaration(line)
		b.emit(leaf(name, datatype, comment))
	case resolver.KindStruct:
		name, datatype, comment, _ := splitDeclaration(line)
		b.emit(open(name, datatype, comment))
		b.push(name + ".")
		st.frames++
	case resolver.KindArray:
		opened, err := expandArray(b, line)
		if err != nil {
			p.report(Diagnostic{File: st.path, Line: line, Reason: err.Error()})
		}
		if opened {
			st.frames++
		}
	case resolver.KindDTL:
		if err := expandDTL(b, line); err != nil {
			p.report(Diagnostic{File: st.path, Line: line, Reason: err.Error()})
		}
	case resolver.KindReference:
		return p.expandReference(b, st, line, res.Ref, deps)
	default:
		p.report(Diagnostic{File: st.path, Line: line, Reason: fmt.Sprintf("datatype %s not implemented, skipped", token)})
	}
	return nil
}

// expandReference inlines the UDT named ref between an open and a close marker.
func (p *parserImpl) expandReference(b *builder, st *fileState, line, ref string, deps map[string]string) error {
	target := deps[ref]
	if target == "" {
		return &MissingDependencyError{Name: ref, File: st.path}
	}
	if b.expanding(ref) {
		chain := append(append([]string(nil), b.active...), ref)
		return &CircularDependencyError{Chain: chain}
	}

	name, datatype, comment, _ := splitDeclaration(line)
	b.emit(open(name, datatype, comment))
	b.push(name + ".")
	b.enter(ref)
	if _, err := p.parseFile(b, target, deps, st.depth+1); err != nil {
		return err
	}
	b.leave()
	b.pop()
	b.emit(closing())
	return nil
}

// finish closes whatever a truncated file left open so the path stays balanced.
func (p *parserImpl) finish(b *builder, st *fileState) {
	for ; st.frames > 0; st.frames-- {
		p.report(Diagnostic{File: st.path, Reason: "unterminated STRUCT, closed at end of file"})
		b.pop()
		b.emit(closing())
	}
	if !st.header && !st.done {
		b.pop()
	}
}
