// Package runner ties the frontends, the CFG builder and the dataflow engine
// together: it turns files and directories into report values.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/l3aro/go-valueset/internal/log"
	"github.com/l3aro/go-valueset/internal/scanner"
	"github.com/l3aro/go-valueset/pkg/cache"
	"github.com/l3aro/go-valueset/pkg/cfg"
	"github.com/l3aro/go-valueset/pkg/dfg"
	"github.com/l3aro/go-valueset/pkg/frontend"
	_ "github.com/l3aro/go-valueset/pkg/frontend/golang"
	_ "github.com/l3aro/go-valueset/pkg/frontend/java"
	"github.com/l3aro/go-valueset/pkg/report"
	"github.com/l3aro/go-valueset/pkg/syntax"
)

// ErrMethodNotFound is returned by [Runner.Graph] when no method has the requested name.
var ErrMethodNotFound = errors.New("method not found")

// Options configures a Runner.
type Options struct {
	// Workers bounds how many methods of one file are analyzed at once.
	// Zero means runtime.NumCPU().
	Workers int
	// Cache, when set, short-circuits files whose content was seen before.
	Cache *cache.LRUCache
	// Logger defaults to a logger that discards everything.
	Logger log.Logger
}

// Runner analyzes source files.
type Runner struct {
	workers int
	cache   *cache.LRUCache
	logger  log.Logger
}

// New creates a Runner.
func New(opts Options) *Runner {
	r := &Runner{
		workers: opts.Workers,
		cache:   opts.Cache,
		logger:  opts.Logger,
	}
	if r.workers <= 0 {
		r.workers = runtime.NumCPU()
	}
	if r.logger == nil {
		r.logger = log.Discard()
	}
	return r
}

// AnalyzePath analyzes root, which may be a single file or a directory.
// Directories are walked with the scanner and every supported file is
// analyzed in walk order.
func (r *Runner) AnalyzePath(ctx context.Context, root string) ([]*report.File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		f, err := r.AnalyzeFile(ctx, root)
		if err != nil {
			return nil, err
		}
		return []*report.File{f}, nil
	}

	files, err := scanner.Scan(root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	r.logger.Debug("scanned directory", "root", root, "files", len(files))

	results := make([]*report.File, 0, len(files))
	for _, fi := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		f, err := r.AnalyzeFile(ctx, filepath.Join(root, fi.Path))
		if err != nil {
			return nil, err
		}
		results = append(results, f)
	}

	return results, nil
}

// AnalyzeFile reads path and analyzes it with the frontend registered for
// its extension. Unknown extensions yield an error wrapping
// [frontend.ErrUnsupportedExtension].
func (r *Runner) AnalyzeFile(ctx context.Context, path string) (*report.File, error) {
	lang, ok := frontend.LanguageFor(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", frontend.ErrUnsupportedExtension, filepath.Ext(path))
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return r.AnalyzeSource(ctx, path, lang, src)
}

// AnalyzeSource analyzes src as a file of the given language. path is only
// recorded in the result.
func (r *Runner) AnalyzeSource(ctx context.Context, path string, lang frontend.Language, src []byte) (*report.File, error) {
	var key string
	if r.cache != nil {
		key = cache.Key(lang, src)
		if cached, ok := r.cache.Get(key); ok {
			r.logger.Debug("cache hit", "path", path)
			f := *cached
			f.Path = path
			return &f, nil
		}
	}

	unit, err := translate(ctx, lang, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for _, se := range unit.SyntaxErrors {
		r.logger.Warn("syntax error", "path", path, "at", se)
	}

	methods := make([]report.Method, len(unit.Methods))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for i, m := range unit.Methods {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := AnalyzeMethod(m)
			if err != nil {
				return err
			}
			methods[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f := &report.File{
		Path:         path,
		Language:     lang,
		Methods:      methods,
		SyntaxErrors: unit.SyntaxErrors,
	}
	r.logger.Debug("analyzed file", "path", path, "methods", len(methods))

	if r.cache != nil {
		r.cache.Set(key, f)
	}

	return f, nil
}

// AnalyzeMethod builds the control-flow graph of m and evaluates the
// integer values reaching its exit.
func AnalyzeMethod(m *syntax.MethodDeclaration) (report.Method, error) {
	g := cfg.Build(m)

	res, err := dfg.EvaluateVariables(g)
	if err != nil {
		return report.Method{}, fmt.Errorf("method %s: %w", m.Name(), err)
	}

	return report.NewMethod(m.Name(), g, res), nil
}

// Graph translates path and returns the control-flow graph of the first
// method called name.
func (r *Runner) Graph(ctx context.Context, path, name string) (*cfg.Graph, error) {
	lang, ok := frontend.LanguageFor(path)
	if !ok {
		return nil, fmt.Errorf("%w: %q", frontend.ErrUnsupportedExtension, filepath.Ext(path))
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	unit, err := translate(ctx, lang, src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	for _, m := range unit.Methods {
		if m.Name() == name {
			return cfg.Build(m), nil
		}
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrMethodNotFound, name, path)
}

func translate(ctx context.Context, lang frontend.Language, src []byte) (*frontend.Unit, error) {
	t, err := frontend.New(lang)
	if err != nil {
		return nil, err
	}
	return t.Translate(ctx, src)
}
