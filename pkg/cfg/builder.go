package cfg

import (
	"github.com/l3aro/go-valueset/pkg/operation"
	"github.com/l3aro/go-valueset/pkg/syntax"
)

// Build constructs the control-flow graph of a method.
//
// Statements accumulate into the current block until an if statement closes
// it. The "then" branch is built recursively from the closed block, and the
// closed block itself stays a pending predecessor of the continuation, which
// models the path that skips the branch. Every remaining tail is wired into
// a single exit block.
func Build(m *syntax.MethodDeclaration) *Graph {
	g := NewGraph(m.Name())
	entry := g.NewBlock(KindEntry, nil)

	tails := g.appendStatements(operation.Statements(m.Statements()), []*BasicBlock{entry})

	exit := g.NewBlock(KindExit, nil)
	for _, tail := range tails {
		exit.AddPredecessor(tail)
	}

	return g
}

// appendStatements lays out ops after preds and returns the open tails.
func (g *Graph) appendStatements(ops []operation.StatementOperation, preds []*BasicBlock) []*BasicBlock {
	var pending []operation.Operation

	for _, op := range ops {
		pending = append(pending, op)

		ifOp, ok := op.(*operation.If)
		if !ok {
			continue
		}

		cond := g.closeBlock(pending, preds)
		pending = pending[:0]

		preds = g.appendStatements(ifOp.Then(), []*BasicBlock{cond})
		preds = append(preds, cond)
	}

	return []*BasicBlock{g.closeBlock(pending, preds)}
}

func (g *Graph) closeBlock(ops []operation.Operation, preds []*BasicBlock) *BasicBlock {
	b := g.NewBlock(KindBlock, ops)
	for _, pred := range preds {
		b.AddPredecessor(pred)
	}
	return b
}
