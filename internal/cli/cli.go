package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/seitarof/udt-flat/internal/generator"
	"github.com/seitarof/udt-flat/internal/matcher"
	"github.com/seitarof/udt-flat/internal/parser"
	"github.com/seitarof/udt-flat/internal/source"
)

// ParseArgs parses command line arguments into Config. Paths are made
// absolute; without --dir the directory of the entry file is searched.
// With --from-db no file is parsed and only --db and the output flags apply.
func ParseArgs(args []string) (*Config, error) {
	cfg := &Config{}
	var dirsRaw, extsRaw string

	fs := pflag.NewFlagSet("udt-flat", pflag.ContinueOnError)
	fs.StringVarP(&dirsRaw, "dir", "d", envOr(EnvDir, ""), "comma-separated directories searched for referenced UDTs")
	fs.StringVar(&extsRaw, "ext", strings.Join(matcher.DefaultExtensions, ","), "comma-separated UDT file extensions")
	fs.StringVarP(&cfg.Format, "format", "f", envOr(EnvFormat, generator.FormatTree), "output format: "+strings.Join(generator.Formats(), ", "))
	fs.StringVarP(&cfg.Output, "output", "o", "", "output file (default stdout)")
	fs.StringVar(&cfg.DBPath, "db", envOr(EnvDB, ""), "SQLite database to store the flattened UDT in")
	fs.StringVar(&cfg.FromDB, "from-db", "", "render the named UDT stored in --db instead of parsing a file")
	fs.StringVar(&cfg.Package, "package", "tags", "package name for --format go")
	fs.IntVar(&cfg.MaxDepth, "max-depth", parser.DefaultMaxDepth, "maximum nesting of referenced UDTs")
	fs.IntVar(&cfg.CacheSize, "cache-size", source.DefaultCacheSize, "number of UDT files kept in memory")
	fs.BoolVarP(&cfg.ShowVersion, "version", "v", false, "show version")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.ShowVersion {
		return cfg, nil
	}

	if !slices.Contains(generator.Formats(), cfg.Format) {
		return nil, fmt.Errorf("--format must be one of %s", strings.Join(generator.Formats(), ", "))
	}
	if cfg.FromDB != "" {
		if cfg.DBPath == "" {
			return nil, fmt.Errorf("--db is required with --from-db")
		}
		if fs.NArg() != 0 {
			return nil, fmt.Errorf("--from-db takes no UDT file, got %d", fs.NArg())
		}
		return cfg, nil
	}

	if fs.NArg() != 1 {
		return nil, fmt.Errorf("exactly one UDT file is required, got %d", fs.NArg())
	}
	if cfg.MaxDepth <= 0 {
		return nil, fmt.Errorf("--max-depth must be positive")
	}

	entry, err := filepath.Abs(fs.Arg(0))
	if err != nil {
		return nil, fmt.Errorf("entry path: %w", err)
	}
	cfg.EntryPath = entry

	for _, dir := range splitCommaList(dirsRaw) {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("search dir %q: %w", dir, err)
		}
		cfg.SearchDirs = append(cfg.SearchDirs, abs)
	}
	if len(cfg.SearchDirs) == 0 {
		cfg.SearchDirs = []string{filepath.Dir(entry)}
	}

	cfg.Extensions = splitCommaList(extsRaw)
	if len(cfg.Extensions) == 0 {
		return nil, fmt.Errorf("--ext is required")
	}
	return cfg, nil
}

func splitCommaList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
