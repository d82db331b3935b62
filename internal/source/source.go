// Package source reads UDT export files as trimmed, non-blank lines.
package source

import (
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of files kept in memory.
const DefaultCacheSize = 256

// Source returns the lines of a UDT file.
type Source interface {
	// Lines returns the trimmed, non-blank lines of path. The returned slice
	// is shared with the cache and must not be modified.
	Lines(path string) ([]string, error)
}

type cachedSource struct {
	fs    billy.Filesystem
	cache *lru.Cache[string, []string]
}

// New returns a Source reading from fs. size <= 0 selects DefaultCacheSize.
func New(fs billy.Filesystem, size int) (Source, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("line cache: %w", err)
	}
	return &cachedSource{fs: fs, cache: cache}, nil
}

func (s *cachedSource) Lines(path string) ([]string, error) {
	if lines, ok := s.cache.Get(path); ok {
		return lines, nil
	}
	b, err := util.ReadFile(s.fs, path)
	if err != nil {
		return nil, err
	}
	lines := SplitLines(string(b))
	s.cache.Add(path, lines)
	return lines, nil
}

// SplitLines trims every line of content and drops blank ones. A leading
// byte order mark, as written by TIA Portal, is removed.
func SplitLines(content string) []string {
	content = strings.TrimPrefix(content, "\ufeff")
	raw := strings.Split(content, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}
