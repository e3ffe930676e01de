// Package testsource builds syntax trees from Go source fragments in tests.
//
// A fragment is wrapped in a function body, parsed with go/parser and
// translated by the Go frontend, so tests can state method bodies as code
// instead of assembling nodes by hand.
package testsource

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"testing"

	"golang.org/x/tools/go/ast/inspector"

	"github.com/l3aro/go-valueset/pkg/frontend/golang"
	"github.com/l3aro/go-valueset/pkg/syntax"
)

// FuncName is the name of the wrapper function.
const FuncName = "f"

// Method parses src as the body of a function named [FuncName] and
// translates it. Identifiers need not be declared: "x = 1" is accepted.
func Method(tb testing.TB, src string) *syntax.MethodDeclaration {
	tb.Helper()

	fn := Parse(tb, src)

	m, err := golang.TranslateFunc(fn)
	if err != nil {
		tb.Fatalf("Failed to translate source %q: %v", src, err)
	}

	return m
}

// Parse parses src as the body of a function named [FuncName].
func Parse(tb testing.TB, src string) *ast.FuncDecl {
	tb.Helper()

	const filename = "test.go"

	fset := token.NewFileSet()

	f, err := parser.ParseFile(fset, filename, wrapSource(src), parser.SkipObjectResolution)
	if err != nil {
		tb.Fatalf("Failed to parse source %q: %v", src, err)
	}

	fn := firstFuncDecl(f)
	if fn == nil {
		tb.Fatal("Can't find function")
	}

	return fn
}

func wrapSource(src string) *bytes.Buffer {
	const (
		header     = "package test\n\nfunc " + FuncName + "() {\n"
		suffix     = "\n}"
		wrapperLen = len(header) + len(suffix)
	)

	var srcFile bytes.Buffer
	srcFile.Grow(wrapperLen + len(src))

	srcFile.WriteString(header)
	srcFile.WriteString(src)
	srcFile.WriteString(suffix)

	return &srcFile
}

func firstFuncDecl(f *ast.File) *ast.FuncDecl {
	root := inspector.New([]*ast.File{f}).Root()
	for c := range root.Preorder((*ast.FuncDecl)(nil)) {
		return c.Node().(*ast.FuncDecl)
	}

	return nil
}
