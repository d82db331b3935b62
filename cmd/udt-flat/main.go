package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/seitarof/udt-flat/internal/cli"
	"github.com/seitarof/udt-flat/internal/generator"
	"github.com/seitarof/udt-flat/internal/locator"
	"github.com/seitarof/udt-flat/internal/matcher"
	"github.com/seitarof/udt-flat/internal/parser"
	"github.com/seitarof/udt-flat/internal/source"
	"github.com/seitarof/udt-flat/internal/store"
)

var version = "dev"

func main() {
	cli.LoadEnv()
	cfg, err := cli.ParseArgs(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
	if cfg.ShowVersion {
		fmt.Println(version)
		return
	}
	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg *cli.Config) error {
	// ParseArgs returns absolute paths, so the filesystem is rooted at /.
	fs := osfs.New("/")
	src, err := source.New(fs, cfg.CacheSize)
	if err != nil {
		return err
	}
	p := parser.New(src, parser.WithMaxDepth(cfg.MaxDepth))
	l := locator.New(fs, p, matcher.NewFileMatcher(cfg.Extensions...))
	g := generator.New(generator.NewGoimportsFormatter(), generator.NewFileWriter())

	var st store.Store
	if cfg.DBPath != "" {
		db, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		st = db
	}

	return cli.NewRunner(l, p, st, g).Run(context.Background(), cfg)
}
