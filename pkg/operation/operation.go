// Package operation flattens syntax nodes into the typed operations that the
// control-flow builder and the data-flow engine consume.
//
// The variant set is closed: every operation is one of [*Assignment],
// [*VariableReference], [*Literal], [*ExpressionStatement], [*If], [*Statement]
// or [*Unknown]. Consumers switch on the concrete type.
package operation

import (
	"github.com/l3aro/go-valueset/pkg/syntax"
)

// Operation is a translated syntax node.
type Operation interface {
	Syntax() syntax.Node
	isOperation()
}

// Expression is an operation that produces a value.
type Expression interface {
	Operation
	isExpression()
}

// StatementOperation is an operation that can appear in a block.
type StatementOperation interface {
	Operation
	isStatement()
}

// Symbol names a variable. Symbols compare by name and can be used as map keys.
type Symbol struct {
	name string
}

// NewSymbol interns an identifier name as a symbol.
func NewSymbol(name string) Symbol { return Symbol{name: name} }

func (s Symbol) Name() string   { return s.name }
func (s Symbol) String() string { return s.name }

// Assignment is "target = source".
type Assignment struct {
	node   *syntax.AssignmentExpression
	target Operation
	source Operation
}

func (a *Assignment) Target() Operation           { return a.target }
func (a *Assignment) Source() Operation           { return a.source }
func (a *Assignment) Kind() syntax.AssignmentKind { return a.node.Kind() }

// VariableReference reads or names a variable.
type VariableReference struct {
	node   *syntax.IdentifierName
	symbol Symbol
}

func (v *VariableReference) Symbol() Symbol { return v.symbol }

// Literal carries the literal's source text; interpretation is left to the analysis.
type Literal struct {
	node *syntax.LiteralExpression
}

func (l *Literal) Text() string { return l.node.Text() }

// ExpressionStatement wraps a single expression. Expression is nil when the
// wrapped node did not translate into an expression.
type ExpressionStatement struct {
	node       *syntax.ExpressionStatement
	expression Expression
}

func (s *ExpressionStatement) Expression() Expression { return s.expression }

// If is a conditional with a "then" branch only.
type If struct {
	node      *syntax.IfStatement
	condition Operation
	then      []StatementOperation
}

func (i *If) Condition() Operation       { return i.condition }
func (i *If) Then() []StatementOperation { return i.then }

// Statement marks a statement with no modeled payload.
type Statement struct {
	node syntax.Statement
}

// Unknown is a node of an unsupported shape.
type Unknown struct {
	node syntax.Node
}

// Create translates a syntax node. It never fails: shapes it does not
// recognise, including nil, become [*Unknown].
func Create(node syntax.Node) Operation {
	switch n := node.(type) {
	case *syntax.AssignmentExpression:
		return &Assignment{node: n, target: Create(n.Left()), source: Create(n.Right())}
	case *syntax.IfStatement:
		return &If{node: n, condition: Create(n.Condition()), then: Statements(n.Then())}
	case *syntax.LiteralExpression:
		return &Literal{node: n}
	case *syntax.IdentifierName:
		return &VariableReference{node: n, symbol: NewSymbol(n.Name())}
	case *syntax.ExpressionStatement:
		expr, _ := Create(n.Expression()).(Expression)
		return &ExpressionStatement{node: n, expression: expr}
	case syntax.Statement:
		return &Statement{node: n}
	default:
		return &Unknown{node: node}
	}
}

// Statements translates a statement sequence, keeping only statement operations.
func Statements(stmts []syntax.Statement) []StatementOperation {
	ops := make([]StatementOperation, 0, len(stmts))
	for _, stmt := range stmts {
		if op, ok := Create(stmt).(StatementOperation); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

func (a *Assignment) Syntax() syntax.Node          { return a.node }
func (v *VariableReference) Syntax() syntax.Node   { return v.node }
func (l *Literal) Syntax() syntax.Node             { return l.node }
func (s *ExpressionStatement) Syntax() syntax.Node { return s.node }
func (i *If) Syntax() syntax.Node                  { return i.node }
func (s *Statement) Syntax() syntax.Node           { return s.node }
func (u *Unknown) Syntax() syntax.Node             { return u.node }

func (*Assignment) isOperation()          {}
func (*VariableReference) isOperation()   {}
func (*Literal) isOperation()             {}
func (*ExpressionStatement) isOperation() {}
func (*If) isOperation()                  {}
func (*Statement) isOperation()           {}
func (*Unknown) isOperation()             {}

func (*Assignment) isExpression()        {}
func (*VariableReference) isExpression() {}
func (*Literal) isExpression()           {}

func (*ExpressionStatement) isStatement() {}
func (*If) isStatement()                  {}
func (*Statement) isStatement()           {}
