// Package syntax defines the language-neutral abstract syntax consumed by the analysis.
// Frontends translate concrete source trees into these nodes; everything downstream
// (operations, control flow, data flow) works only on this representation.
package syntax

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyName is returned when a method or identifier is created without a name.
	ErrEmptyName = errors.New("empty name")
	// ErrEmptyText is returned when a literal is created without text.
	ErrEmptyText = errors.New("empty literal text")
	// ErrNilNode is returned when a required child node is absent.
	ErrNilNode = errors.New("required node is nil")
	// ErrUnsupportedAssignment is returned for assignment operators other than "=".
	ErrUnsupportedAssignment = errors.New("unsupported assignment operator")
)

// Node is implemented by every syntax node.
type Node interface {
	isNode()
}

// Statement marks nodes that can appear in a statement sequence.
type Statement interface {
	Node
	isStatement()
}

// Expression marks nodes that produce a value.
type Expression interface {
	Node
	isExpression()
}

// AssignmentKind classifies assignment operators.
type AssignmentKind int

const (
	SimpleAssignment AssignmentKind = iota // =
)

var assignmentOperators = map[string]AssignmentKind{
	"=": SimpleAssignment,
}

// ParseAssignmentKind maps an operator token to its kind.
func ParseAssignmentKind(op string) (AssignmentKind, error) {
	kind, ok := assignmentOperators[op]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedAssignment, op)
	}
	return kind, nil
}

func (k AssignmentKind) String() string {
	switch k {
	case SimpleAssignment:
		return "="
	default:
		return fmt.Sprintf("AssignmentKind(%d)", int(k))
	}
}

// MethodDeclaration is a named method with its ordered body.
type MethodDeclaration struct {
	name       string
	statements []Statement
}

// NewMethodDeclaration creates a method. A nil body is treated as empty.
func NewMethodDeclaration(name string, statements []Statement) (*MethodDeclaration, error) {
	if name == "" {
		return nil, fmt.Errorf("method declaration: %w", ErrEmptyName)
	}
	return &MethodDeclaration{name: name, statements: statements}, nil
}

func (m *MethodDeclaration) Name() string            { return m.name }
func (m *MethodDeclaration) Statements() []Statement { return m.statements }

// ExpressionStatement is an expression evaluated for its effect.
type ExpressionStatement struct {
	expression Expression
}

func NewExpressionStatement(expr Expression) (*ExpressionStatement, error) {
	if expr == nil {
		return nil, fmt.Errorf("expression statement: %w", ErrNilNode)
	}
	return &ExpressionStatement{expression: expr}, nil
}

func (s *ExpressionStatement) Expression() Expression { return s.expression }

// IfStatement is a conditional without an else branch.
type IfStatement struct {
	condition Expression
	then      []Statement
}

func NewIfStatement(condition Expression, then []Statement) (*IfStatement, error) {
	if condition == nil {
		return nil, fmt.Errorf("if statement condition: %w", ErrNilNode)
	}
	return &IfStatement{condition: condition, then: then}, nil
}

func (s *IfStatement) Condition() Expression { return s.condition }
func (s *IfStatement) Then() []Statement     { return s.then }

// UnknownStatement stands for any statement shape the frontend does not model.
type UnknownStatement struct{}

// AssignmentExpression is "left <op> right".
type AssignmentExpression struct {
	left  Expression
	right Expression
	kind  AssignmentKind
}

// NewAssignmentExpression creates an assignment from an operator token.
func NewAssignmentExpression(left, right Expression, op string) (*AssignmentExpression, error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("assignment operands: %w", ErrNilNode)
	}
	kind, err := ParseAssignmentKind(op)
	if err != nil {
		return nil, err
	}
	return &AssignmentExpression{left: left, right: right, kind: kind}, nil
}

func (a *AssignmentExpression) Left() Expression     { return a.left }
func (a *AssignmentExpression) Right() Expression    { return a.right }
func (a *AssignmentExpression) Kind() AssignmentKind { return a.kind }

// IdentifierName references a variable by name.
type IdentifierName struct {
	name string
}

func NewIdentifierName(name string) (*IdentifierName, error) {
	if name == "" {
		return nil, fmt.Errorf("identifier: %w", ErrEmptyName)
	}
	return &IdentifierName{name: name}, nil
}

func (i *IdentifierName) Name() string { return i.name }

// LiteralExpression keeps the literal's source text.
type LiteralExpression struct {
	text string
}

func NewLiteralExpression(text string) (*LiteralExpression, error) {
	if text == "" {
		return nil, fmt.Errorf("literal: %w", ErrEmptyText)
	}
	return &LiteralExpression{text: text}, nil
}

func (l *LiteralExpression) Text() string { return l.text }

// UnknownExpression stands for any expression shape the frontend does not model.
type UnknownExpression struct{}

func (*MethodDeclaration) isNode()    {}
func (*ExpressionStatement) isNode()  {}
func (*IfStatement) isNode()          {}
func (*UnknownStatement) isNode()     {}
func (*AssignmentExpression) isNode() {}
func (*IdentifierName) isNode()       {}
func (*LiteralExpression) isNode()    {}
func (*UnknownExpression) isNode()    {}

func (*ExpressionStatement) isStatement() {}
func (*IfStatement) isStatement()         {}
func (*UnknownStatement) isStatement()    {}

func (*AssignmentExpression) isExpression() {}
func (*IdentifierName) isExpression()       {}
func (*LiteralExpression) isExpression()    {}
func (*UnknownExpression) isExpression()    {}
