package analyzer

import (
	"errors"
	"fmt"
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"

	"github.com/l3aro/go-valueset/pkg/cfg"
	"github.com/l3aro/go-valueset/pkg/dfg"
	"github.com/l3aro/go-valueset/pkg/frontend/golang"
)

// ErrResultMissing is returned when a required analyzer result is missing.
var ErrResultMissing = errors.New("analyzer result missing")

// run reports the exit value sets of every function declaration with a body.
func (r *runOptions) run(p *analysis.Pass) (any, error) {
	in, ok := p.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	if !ok {
		return nil, fmt.Errorf("%s: %s %w", name, inspect.Analyzer.Name, ErrResultMissing)
	}

	for c := range in.Root().Preorder((*ast.FuncDecl)(nil)) {
		fd := c.Node().(*ast.FuncDecl)
		if fd.Body == nil {
			continue
		}

		if err := r.checkFunc(p, fd); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil, nil
}

func (r *runOptions) checkFunc(p *analysis.Pass, fd *ast.FuncDecl) error {
	m, err := golang.TranslateFunc(fd)
	if err != nil {
		return err
	}

	res, err := dfg.EvaluateVariables(cfg.Build(m))
	if err != nil {
		return fmt.Errorf("function %s: %w", m.Name(), err)
	}

	for _, v := range res.Variables() {
		values, ok := res.IntValues(v)
		if !ok || len(values) < r.minValues {
			continue
		}
		p.Reportf(fd.Name.Pos(), "%s may be one of %v at exit of %s", v, values, m.Name())
	}

	return nil
}
