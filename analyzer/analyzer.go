package analyzer

import (
	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
)

const (
	name = "valueset"
	doc  = `valueset reports the integer constants local variables may hold at function exit`
	url  = "https://pkg.go.dev/github.com/l3aro/go-valueset/analyzer"
)

// New creates a new instance of the valueset analyzer.
// It allows for programmatic configuration using [Option]. For command-line
// use, the pre-configured [Analyzer] variable is typically sufficient.
func New(opts ...Option) *analysis.Analyzer {
	r := defaultRunOptions()
	Options(opts).apply(r)

	a := &analysis.Analyzer{
		Name:     name,
		Doc:      doc,
		URL:      url,
		Run:      r.run,
		Requires: []*analysis.Analyzer{inspect.Analyzer},
	}

	registerFlags(&a.Flags, r)

	return a
}

// Analyzer is a pre-configured *[analysis.Analyzer] reporting value sets at function exit.
var Analyzer = New()
