// Package locator builds the type-name to file map the parser needs by
// scanning UDT files for references and matching them against a directory tree.
package locator

import (
	"fmt"
	"log"
	"maps"
	"os"
	"slices"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/seitarof/udt-flat/internal/matcher"
	"github.com/seitarof/udt-flat/internal/parser"
)

// Locator resolves every UDT reachable from an entry file.
type Locator interface {
	Locate(entry string, dirs []string) (map[string]string, error)
}

type locatorImpl struct {
	fs      billy.Filesystem
	parser  parser.Parser
	matcher matcher.FileMatcher
}

// New returns a locator searching fs.
func New(fs billy.Filesystem, p parser.Parser, m matcher.FileMatcher) Locator {
	return &locatorImpl{fs: fs, parser: p, matcher: m}
}

// Locate scans entry, matches each newly referenced name against the files
// under dirs, then scans the matched files until no new names turn up. Names
// without a file map to "" and fail later in the parser.
func (l *locatorImpl) Locate(entry string, dirs []string) (map[string]string, error) {
	candidates, err := l.candidates(dirs)
	if err != nil {
		return nil, err
	}

	deps := map[string]string{}
	scanned := map[string]bool{}
	queue := []string{entry}
	for len(queue) > 0 {
		file := queue[0]
		queue = queue[1:]
		if scanned[file] {
			continue
		}
		scanned[file] = true

		found, err := l.parser.Dependencies(file)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", file, err)
		}
		for _, name := range slices.Sorted(maps.Keys(found)) {
			if _, seen := deps[name]; seen {
				continue
			}
			path, ok := l.matcher.Match(name, candidates)
			deps[name] = path
			if !ok {
				log.Printf("udt-flat: warning: no source file for %q referenced in %s", name, file)
				continue
			}
			queue = append(queue, path)
		}
	}
	return deps, nil
}

func (l *locatorImpl) candidates(dirs []string) ([]string, error) {
	var out []string
	for _, dir := range dirs {
		err := util.Walk(l.fs, dir, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() || !l.matcher.Accept(p) {
				return nil
			}
			out = append(out, p)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", dir, err)
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
