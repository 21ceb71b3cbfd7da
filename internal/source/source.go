// Package source discovers and loads Tekton resource files.
//
// Inputs are file paths, doublestar glob patterns ("runs/**/*.yaml") or "-"
// for stdin. Files are read and decoded concurrently; the merged result keeps
// the order in which inputs were given so output is deterministic.
package source

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/AbdelazizMoustafa10m/steplens/internal/logging"
	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

// DefaultConcurrency is the number of files decoded in parallel when the
// Loader does not specify one.
const DefaultConcurrency = 4

// Expand resolves patterns into a de-duplicated list of paths in first-seen
// order. Patterns without glob metacharacters are kept verbatim and checked
// when loaded; a glob that matches nothing is an error.
func Expand(patterns []string) ([]string, error) {
	logger := logging.New("source")
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	for _, pattern := range patterns {
		if pattern == Stdin || !hasMeta(pattern) {
			add(pattern)
			continue
		}
		if !doublestar.ValidatePathPattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q matched no files", pattern)
		}
		logger.Debug("expanded pattern", "pattern", pattern, "matches", len(matches))
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func hasMeta(p string) bool {
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// Bundle is the merged content of all loaded inputs.
type Bundle struct {
	tekton.Documents
	// Paths lists the inputs that were loaded, in order.
	Paths []string
}

// TaskRun returns the TaskRun named name.
func (b *Bundle) TaskRun(name string) (tekton.TaskRun, bool) {
	for _, tr := range b.TaskRuns {
		if tr.Metadata.Name == name {
			return tr, true
		}
	}
	return tekton.TaskRun{}, false
}

// Loader reads and decodes resource files.
type Loader struct {
	// Concurrency bounds parallel reads. Zero or negative means DefaultConcurrency.
	Concurrency int
	// Stdin is read for the "-" path. Nil means os.Stdin.
	Stdin io.Reader
}

// Load reads and decodes every path. The first failure cancels the remaining
// work and is returned wrapped with its path.
func (l *Loader) Load(ctx context.Context, paths []string) (*Bundle, error) {
	limit := l.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	logger := logging.New("source")
	results := make([]*tekton.Documents, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := l.read(path)
			if err != nil {
				return err
			}
			docs, err := tekton.Decode(data)
			if err != nil {
				return fmt.Errorf("decoding %s: %w", displayName(path), err)
			}
			logger.Debug("loaded",
				"path", displayName(path),
				"content_type", tekton.ContentType(data),
				"taskruns", len(docs.TaskRuns),
				"tasks", len(docs.Tasks),
			)
			results[i] = docs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := &Bundle{Paths: paths}
	for _, docs := range results {
		b.Append(docs)
	}
	return b, nil
}

func (l *Loader) read(path string) ([]byte, error) {
	if path == Stdin {
		r := l.Stdin
		if r == nil {
			r = os.Stdin
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func displayName(path string) string {
	if path == Stdin {
		return "<stdin>"
	}
	return path
}
