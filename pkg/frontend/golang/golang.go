// Package golang translates Go function declarations into syntax trees.
//
// Single-value "x = e" and "x := e" are simple assignments, an if statement
// keeps its condition and body (init statements and else branches are
// dropped), identifiers and decimal integer literals are the only modeled
// expressions. Everything else becomes an unknown node.
//
// Only variables of the function's outermost block are modeled. A name
// declared inside an if statement, including one shadowing an outer
// variable, is an unknown node wherever that declaration is in scope.
package golang

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/scanner"
	"go/token"

	"github.com/l3aro/go-valueset/pkg/frontend"
	"github.com/l3aro/go-valueset/pkg/syntax"
)

func init() {
	frontend.Register(frontend.Go, New, ".go")
}

// Translator is the Go frontend. It is stateless and safe for concurrent use.
type Translator struct{}

// New returns a Go translator.
func New() frontend.Translator { return Translator{} }

// Translate parses src as a Go file and translates every function with a body.
func (Translator) Translate(ctx context.Context, src []byte) (*frontend.Unit, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "source.go", src, parser.SkipObjectResolution|parser.AllErrors)

	unit := &frontend.Unit{}
	if err != nil {
		var list scanner.ErrorList
		if !errors.As(err, &list) {
			return nil, fmt.Errorf("parsing Go source: %w", err)
		}
		for _, e := range list {
			unit.SyntaxErrors = append(unit.SyntaxErrors, frontend.SyntaxError{Line: e.Pos.Line, Column: e.Pos.Column})
		}
	}
	if file == nil {
		return unit, nil
	}

	for _, decl := range file.Decls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fd, ok := decl.(*ast.FuncDecl)
		if !ok || fd.Body == nil {
			continue
		}

		m, err := TranslateFunc(fd)
		if err != nil {
			return nil, err
		}
		unit.Methods = append(unit.Methods, m)
	}

	return unit, nil
}

// TranslateFunc translates a single function declaration. A missing body
// yields a method without statements.
func TranslateFunc(fd *ast.FuncDecl) (*syntax.MethodDeclaration, error) {
	var stmts []syntax.Statement
	if fd.Body != nil {
		var err error
		if stmts, err = statements(fd.Body.List, &scope{}); err != nil {
			return nil, fmt.Errorf("function %s: %w", FuncName(fd), err)
		}
	}
	return syntax.NewMethodDeclaration(FuncName(fd), stmts)
}

// FuncName returns "Name" for functions and "Recv.Name" for methods.
func FuncName(fd *ast.FuncDecl) string {
	if fd.Recv == nil || len(fd.Recv.List) != 1 {
		return fd.Name.Name
	}

	typ := fd.Recv.List[0].Type
	for {
		switch t := typ.(type) {
		case *ast.StarExpr:
			typ = t.X
		case *ast.IndexExpr:
			typ = t.X
		case *ast.IndexListExpr:
			typ = t.X
		case *ast.ParenExpr:
			typ = t.X
		case *ast.Ident:
			return t.Name + "." + fd.Name.Name
		default:
			return fd.Name.Name
		}
	}
}

// scope holds the names declared in one block. The function body is the
// root scope and records nothing: its names are the modeled variables.
type scope struct {
	parent *scope
	names  map[string]bool
}

func (s *scope) nested() *scope {
	return &scope{parent: s, names: make(map[string]bool)}
}

func (s *scope) declare(name string) {
	if s.parent == nil || name == "_" {
		return
	}
	s.names[name] = true
}

// hidden reports whether name resolves to a declaration below the root.
func (s *scope) hidden(name string) bool {
	for ; s != nil; s = s.parent {
		if s.names[name] {
			return true
		}
	}
	return false
}

// declareAll records the names a := statement or a var or const declaration
// introduces in sc.
func declareAll(s ast.Stmt, sc *scope) {
	switch s := s.(type) {
	case *ast.AssignStmt:
		if s.Tok != token.DEFINE {
			return
		}
		for _, lhs := range s.Lhs {
			if id, ok := lhs.(*ast.Ident); ok {
				sc.declare(id.Name)
			}
		}

	case *ast.DeclStmt:
		gd, ok := s.Decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR && gd.Tok != token.CONST {
			return
		}
		for _, spec := range gd.Specs {
			if vs, ok := spec.(*ast.ValueSpec); ok {
				for _, id := range vs.Names {
					sc.declare(id.Name)
				}
			}
		}
	}
}

func statements(list []ast.Stmt, sc *scope) ([]syntax.Statement, error) {
	stmts := make([]syntax.Statement, 0, len(list))
	for _, s := range list {
		stmt, err := statement(s, sc)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func statement(s ast.Stmt, sc *scope) (syntax.Statement, error) {
	switch s := s.(type) {
	case *ast.AssignStmt:
		declareAll(s, sc)
		expr, err := assignment(s, sc)
		if err != nil {
			return nil, err
		}
		return syntax.NewExpressionStatement(expr)

	case *ast.ExprStmt:
		return syntax.NewExpressionStatement(expression(s.X, sc))

	case *ast.IfStmt:
		ifScope := sc.nested()
		if s.Init != nil {
			declareAll(s.Init, ifScope)
		}
		then, err := statements(s.Body.List, ifScope.nested())
		if err != nil {
			return nil, err
		}
		return syntax.NewIfStatement(expression(s.Cond, ifScope), then)

	default:
		declareAll(s, sc)
		return &syntax.UnknownStatement{}, nil
	}
}

func assignment(s *ast.AssignStmt, sc *scope) (syntax.Expression, error) {
	if len(s.Lhs) != 1 || len(s.Rhs) != 1 {
		return &syntax.UnknownExpression{}, nil
	}
	if s.Tok != token.ASSIGN && s.Tok != token.DEFINE {
		return &syntax.UnknownExpression{}, nil
	}
	return syntax.NewAssignmentExpression(expression(s.Lhs[0], sc), expression(s.Rhs[0], sc), "=")
}

func expression(e ast.Expr, sc *scope) syntax.Expression {
	switch e := e.(type) {
	case *ast.Ident:
		if e.Name == "_" || sc.hidden(e.Name) {
			break
		}
		if id, err := syntax.NewIdentifierName(e.Name); err == nil {
			return id
		}

	case *ast.BasicLit:
		if e.Kind != token.INT {
			break
		}
		// A leading zero marks a non-decimal literal such as 010 or 0x10.
		if len(e.Value) > 1 && e.Value[0] == '0' {
			break
		}
		if lit, err := syntax.NewLiteralExpression(e.Value); err == nil {
			return lit
		}
	}

	return &syntax.UnknownExpression{}
}
