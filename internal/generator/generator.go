package generator

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"text/template"

	"golang.org/x/tools/imports"

	"github.com/seitarof/udt-flat/internal/parser"
)

//go:embed templates/*.go.tmpl
var templateFS embed.FS

// Output formats.
const (
	FormatTree = "tree"
	FormatJSON = "json"
	FormatGo   = "go"
)

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatTree, FormatJSON, FormatGo}
}

// Generator renders a parsed UDT.
type Generator interface {
	Generate(cfg Config, doc *parser.Document) error
}

// Config is the minimum config contract required by generator.
type Config interface {
	OutputFilename() string
	OutputFormat() string
	PackageName() string
}

// Formatter formats generated Go code and organizes imports.
type Formatter interface {
	Format(filename string, src []byte) ([]byte, error)
}

// FileWriter writes rendered output.
type FileWriter interface {
	Write(filename string, data []byte) error
}

type generatorImpl struct {
	formatter Formatter
	writer    FileWriter
	tmpl      *template.Template
}

type goimportsFormatter struct{}

type fileWriter struct {
	stdout io.Writer
}

type tagTemplateData struct {
	Package  string
	TypeName string
	Version  string
	VarName  string
	Tags     []parser.Element
}

// New creates a generator.
func New(f Formatter, w FileWriter) Generator {
	tmpl := template.Must(template.New("").ParseFS(templateFS, "templates/*.go.tmpl"))
	return &generatorImpl{formatter: f, writer: w, tmpl: tmpl}
}

// NewGoimportsFormatter creates a formatter backed by goimports.
func NewGoimportsFormatter() Formatter {
	return &goimportsFormatter{}
}

// NewFileWriter creates a writer that writes to a file, or to stdout when
// the filename is empty or "-".
func NewFileWriter() FileWriter {
	return &fileWriter{stdout: os.Stdout}
}

func (g *generatorImpl) Generate(cfg Config, doc *parser.Document) error {
	if doc == nil {
		return fmt.Errorf("no document")
	}

	var (
		out []byte
		err error
	)
	switch cfg.OutputFormat() {
	case FormatTree, "":
		out = renderTree(doc)
	case FormatJSON:
		out, err = renderJSON(doc)
	case FormatGo:
		out, err = g.renderGo(cfg, doc)
	default:
		return fmt.Errorf("unknown format %q (want one of %s)", cfg.OutputFormat(), strings.Join(Formats(), ", "))
	}
	if err != nil {
		return err
	}

	if err := g.writer.Write(cfg.OutputFilename(), out); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func (f *goimportsFormatter) Format(filename string, src []byte) ([]byte, error) {
	return imports.Process(filename, src, nil)
}

func (w *fileWriter) Write(filename string, data []byte) error {
	if filename == "" || filename == "-" {
		_, err := w.stdout.Write(data)
		return err
	}
	return os.WriteFile(filename, data, 0o644)
}

// renderTree prints visible rows indented by nesting depth.
func renderTree(doc *parser.Document) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "TYPE %q", doc.Name)
	if doc.Version != "" {
		fmt.Fprintf(&buf, " VERSION %s", doc.Version)
	}
	buf.WriteByte('\n')
	if doc.Description != "" {
		fmt.Fprintf(&buf, "TITLE %s\n", doc.Description)
	}
	if doc.Info != "" {
		fmt.Fprintf(&buf, "//%s\n", doc.Info)
	}

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	depth := 0
	for _, e := range doc.Elements {
		if e.Action == parser.ActionClose {
			depth = max(depth-1, 0)
			continue
		}
		if !e.Visible {
			continue
		}
		comment := ""
		if e.Comment != "" {
			comment = "// " + e.Comment
		}
		fmt.Fprintf(tw, "%s%s\t%s\t%s\n", strings.Repeat("  ", depth), e.Name, e.Datatype, comment)
		if e.Action == parser.ActionOpen {
			depth++
		}
	}
	_ = tw.Flush()
	return buf.Bytes()
}

func renderJSON(doc *parser.Document) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *generatorImpl) renderGo(cfg Config, doc *parser.Document) ([]byte, error) {
	data := tagTemplateData{
		Package:  cfg.PackageName(),
		TypeName: doc.Name,
		Version:  doc.Version,
		VarName:  exportedToken(doc.Name) + "Tags",
	}
	if data.Package == "" {
		data.Package = "tags"
	}
	for _, e := range doc.Elements {
		if e.Access {
			data.Tags = append(data.Tags, e)
		}
	}

	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "tags.go.tmpl", data); err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	formatted, err := g.formatter.Format(cfg.OutputFilename(), buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format: %w", err)
	}
	return formatted, nil
}
