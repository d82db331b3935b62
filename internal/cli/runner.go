package cli

import (
	"context"
	"fmt"

	"github.com/seitarof/udt-flat/internal/generator"
	"github.com/seitarof/udt-flat/internal/locator"
	"github.com/seitarof/udt-flat/internal/parser"
	"github.com/seitarof/udt-flat/internal/store"
)

// Runner orchestrates locator/parser/store/generator layers.
type Runner interface {
	Run(ctx context.Context, cfg *Config) error
}

type runnerImpl struct {
	locator   locator.Locator
	parser    parser.Parser
	store     store.Store
	generator generator.Generator
}

// NewRunner creates a default runner implementation. s may be nil when no
// database is configured.
func NewRunner(
	l locator.Locator,
	p parser.Parser,
	s store.Store,
	g generator.Generator,
) Runner {
	return &runnerImpl{
		locator:   l,
		parser:    p,
		store:     s,
		generator: g,
	}
}

// Run flattens one UDT file, or renders a stored one for --from-db.
func (r *runnerImpl) Run(ctx context.Context, cfg *Config) error {
	if cfg.FromDB != "" {
		return r.render(ctx, cfg)
	}

	deps, err := r.locator.Locate(cfg.EntryPath, cfg.SearchDirs)
	if err != nil {
		return fmt.Errorf("locate dependencies: %w", err)
	}

	doc, err := r.parser.Parse(cfg.EntryPath, deps)
	if err != nil {
		return fmt.Errorf("parse %s: %w", cfg.EntryPath, err)
	}

	if r.store != nil {
		if err := r.store.Save(ctx, doc, cfg.EntryPath); err != nil {
			return fmt.Errorf("store %s: %w", doc.Name, err)
		}
	}

	return r.generator.Generate(cfg, doc)
}

func (r *runnerImpl) render(ctx context.Context, cfg *Config) error {
	if r.store == nil {
		return fmt.Errorf("load %s: no database configured", cfg.FromDB)
	}
	doc, err := r.store.Load(ctx, cfg.FromDB)
	if err != nil {
		return fmt.Errorf("load %s: %w", cfg.FromDB, err)
	}
	return r.generator.Generate(cfg, doc)
}
