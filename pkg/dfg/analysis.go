package dfg

import (
	"container/list"
	"errors"
	"fmt"
	"strconv"

	"github.com/l3aro/go-valueset/pkg/cfg"
	"github.com/l3aro/go-valueset/pkg/operation"
	"github.com/l3aro/go-valueset/pkg/syntax"
)

var (
	// ErrInvalidGraph is returned when the first block of a graph is not an entry block.
	ErrInvalidGraph = errors.New("invalid control flow graph")
	// ErrExitNotReached is returned when traversal ends without resolving exactly one exit block.
	ErrExitNotReached = errors.New("exit block has not been processed")
	// ErrStalled is returned when queued blocks can never become ready,
	// which only happens for graphs with cycles or unreachable predecessors.
	ErrStalled = errors.New("traversal stalled on blocks with unresolved predecessors")
)

// EvaluateVariables computes the integer value sets reaching the exit of g.
//
// Blocks are visited breadth-first from the entry. A block is resolved once
// every predecessor has an output container: its input is the merge of those
// outputs and its output is the input threaded through its operations. A block
// dequeued before its predecessors are ready goes to the back of the queue.
func EvaluateVariables(g *cfg.Graph) (*Results, error) {
	entry := g.Entry()
	if entry == nil {
		return nil, fmt.Errorf("%w: graph %q has no blocks", ErrInvalidGraph, g.Name())
	}
	if entry.Kind() != cfg.KindEntry {
		return nil, fmt.Errorf("%w: entry block was expected, received kind %s, block ordinal %d",
			ErrInvalidGraph, entry.Kind(), entry.Ordinal())
	}

	outputs := make(map[int]*Container, g.Len())
	var exits []int

	worklist := list.New()
	worklist.PushBack(entry.Ordinal())

	// Number of consecutive dequeues that resolved nothing.
	idle := 0

	for worklist.Len() > 0 {
		block := g.Block(worklist.Remove(worklist.Front()).(int))
		if _, resolved := outputs[block.Ordinal()]; resolved {
			continue
		}

		input, ready, err := mergePredecessors(g, block, outputs)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", block.Ordinal(), err)
		}
		if !ready {
			idle++
			if idle > worklist.Len() {
				return nil, fmt.Errorf("%w: block %d in graph %q", ErrStalled, block.Ordinal(), g.Name())
			}
			worklist.PushBack(block.Ordinal())
			continue
		}
		idle = 0

		outputs[block.Ordinal()] = transferBlock(input, block)
		if block.Kind() == cfg.KindExit {
			exits = append(exits, block.Ordinal())
		}

		for _, succ := range block.Successors() {
			worklist.PushBack(succ)
		}
	}

	if len(exits) != 1 {
		return nil, fmt.Errorf("%w: graph %q resolved %d exit blocks", ErrExitNotReached, g.Name(), len(exits))
	}

	return &Results{container: outputs[exits[0]]}, nil
}

// mergePredecessors builds the input of block. ready is false while any
// predecessor is unresolved.
func mergePredecessors(g *cfg.Graph, block *cfg.BasicBlock, outputs map[int]*Container) (*Container, bool, error) {
	input := EmptyContainer()
	for _, pred := range block.Predecessors() {
		out, ok := outputs[pred]
		if !ok {
			return nil, false, nil
		}
		if err := input.Merge(out); err != nil {
			return nil, false, err
		}
	}
	return input, true, nil
}

func transferBlock(c *Container, block *cfg.BasicBlock) *Container {
	for _, op := range block.Operations() {
		transfer(c, op)
	}
	return c
}

// transfer applies one operation. Only simple assignments to a variable
// have an effect: a literal source kills and redefines the target, a
// variable source copies its current value. Everything else is a no-op.
func transfer(c *Container, op operation.Operation) {
	stmt, ok := op.(*operation.ExpressionStatement)
	if !ok {
		return
	}
	assign, ok := stmt.Expression().(*operation.Assignment)
	if !ok || assign.Kind() != syntax.SimpleAssignment {
		return
	}
	target, ok := assign.Target().(*operation.VariableReference)
	if !ok {
		return
	}

	switch src := assign.Source().(type) {
	case *operation.Literal:
		n, err := strconv.ParseInt(src.Text(), 10, 32)
		if err != nil {
			return
		}
		c.Add(NewVariable(target.Symbol(), NewIntegerValue(int32(n))))
	case *operation.VariableReference:
		// An unset source leaves the target untouched.
		if value := c.Value(src.Symbol()); value != nil {
			c.Add(NewVariable(target.Symbol(), value))
		}
	}
}
