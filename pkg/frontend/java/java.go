// Package java translates Java method declarations into syntax trees using
// tree-sitter.
package java

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/l3aro/go-valueset/pkg/frontend"
	"github.com/l3aro/go-valueset/pkg/syntax"
)

func init() {
	frontend.Register(frontend.Java, New, ".java")
}

// Translator is the Java frontend. A fresh parser is created per call, so a
// Translator is safe for concurrent use.
type Translator struct{}

// New returns a Java translator.
func New() frontend.Translator { return Translator{} }

// Translate parses src and translates every method declaration it contains,
// including methods of nested and anonymous classes. Malformed regions are
// reported in the unit's syntax errors; methods around them are still translated.
func (Translator) Translate(ctx context.Context, src []byte) (*frontend.Unit, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(java.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing Java source: %w", err)
	}
	defer tree.Close()

	t := &translator{content: src}
	root := tree.RootNode()

	unit := &frontend.Unit{}
	unit.SyntaxErrors = t.syntaxErrors(root, nil)

	if err := t.collectMethods(root, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

type translator struct {
	content []byte
}

func (t *translator) text(n *sitter.Node) string {
	return n.Content(t.content)
}

func (t *translator) syntaxErrors(n *sitter.Node, errs []frontend.SyntaxError) []frontend.SyntaxError {
	if n.Type() == "ERROR" || n.IsMissing() {
		p := n.StartPoint()
		return append(errs, frontend.SyntaxError{Line: int(p.Row) + 1, Column: int(p.Column) + 1})
	}
	if !n.HasError() {
		return errs
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		errs = t.syntaxErrors(n.Child(i), errs)
	}
	return errs
}

func (t *translator) collectMethods(n *sitter.Node, unit *frontend.Unit) error {
	if n.Type() == "method_declaration" {
		m, err := t.method(n)
		if err != nil {
			return err
		}
		if m != nil {
			unit.Methods = append(unit.Methods, m)
		}
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		if err := t.collectMethods(n.NamedChild(i), unit); err != nil {
			return err
		}
	}
	return nil
}

// method returns nil for declarations whose name could not be recovered.
func (t *translator) method(n *sitter.Node) (*syntax.MethodDeclaration, error) {
	name := n.ChildByFieldName("name")
	if name == nil || name.IsMissing() {
		return nil, nil
	}

	var stmts []syntax.Statement
	if body := n.ChildByFieldName("body"); body != nil {
		var err error
		if stmts, err = t.block(body); err != nil {
			return nil, fmt.Errorf("method %s: %w", t.text(name), err)
		}
	}
	return syntax.NewMethodDeclaration(t.text(name), stmts)
}

func (t *translator) block(n *sitter.Node) ([]syntax.Statement, error) {
	stmts := make([]syntax.Statement, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.IsExtra() {
			continue
		}
		stmt, err := t.statement(child)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func (t *translator) statement(n *sitter.Node) (syntax.Statement, error) {
	switch n.Type() {
	case "expression_statement":
		if n.NamedChildCount() == 0 {
			return &syntax.UnknownStatement{}, nil
		}
		expr, err := t.expression(n.NamedChild(0))
		if err != nil {
			return nil, err
		}
		return syntax.NewExpressionStatement(expr)

	case "if_statement":
		return t.ifStatement(n)

	default:
		return &syntax.UnknownStatement{}, nil
	}
}

// ifStatement keeps the condition and the consequence. An else branch is
// not modeled.
func (t *translator) ifStatement(n *sitter.Node) (syntax.Statement, error) {
	var cond syntax.Expression = &syntax.UnknownExpression{}
	if c := n.ChildByFieldName("condition"); c != nil {
		if c.Type() == "parenthesized_expression" && c.NamedChildCount() > 0 {
			c = c.NamedChild(0)
		}
		var err error
		if cond, err = t.expression(c); err != nil {
			return nil, err
		}
	}

	var then []syntax.Statement
	if c := n.ChildByFieldName("consequence"); c != nil {
		var err error
		if c.Type() == "block" {
			then, err = t.block(c)
		} else {
			var stmt syntax.Statement
			if stmt, err = t.statement(c); err == nil {
				then = []syntax.Statement{stmt}
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return syntax.NewIfStatement(cond, then)
}

func (t *translator) expression(n *sitter.Node) (syntax.Expression, error) {
	if n.IsMissing() {
		return &syntax.UnknownExpression{}, nil
	}

	switch n.Type() {
	case "assignment_expression":
		op := n.ChildByFieldName("operator")
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		if op == nil || left == nil || right == nil || t.text(op) != "=" {
			return &syntax.UnknownExpression{}, nil
		}
		l, err := t.expression(left)
		if err != nil {
			return nil, err
		}
		r, err := t.expression(right)
		if err != nil {
			return nil, err
		}
		return syntax.NewAssignmentExpression(l, r, "=")

	case "identifier":
		return syntax.NewIdentifierName(t.text(n))

	case "decimal_integer_literal":
		return syntax.NewLiteralExpression(t.text(n))

	default:
		return &syntax.UnknownExpression{}, nil
	}
}
