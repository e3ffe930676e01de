// Package cfg builds control-flow graphs of basic blocks from method bodies.
//
// A graph is an arena of blocks addressed by ordinal. Ordinals are assigned in
// creation order, so the entry block is always 0 and, for graphs produced by
// [Build], the exit block carries the highest ordinal. Edges are stored on
// both endpoints as ordinal sets.
package cfg

import (
	"fmt"
	"slices"

	"github.com/l3aro/go-valueset/pkg/operation"
)

//go:generate go tool stringer -type BlockKind -linecomment

// BlockKind tags a basic block.
type BlockKind int

const (
	KindEntry BlockKind = iota // entry
	KindExit                   // exit
	KindBlock                  // block
)

// BasicBlock is a straight-line run of operations.
type BasicBlock struct {
	ordinal      int
	kind         BlockKind
	operations   []operation.Operation
	predecessors []int
	successors   []int
}

func (b *BasicBlock) Ordinal() int    { return b.ordinal }
func (b *BasicBlock) Kind() BlockKind { return b.kind }

// Operations returns the block's operations. The slice must not be modified.
func (b *BasicBlock) Operations() []operation.Operation { return b.operations }

// Predecessors returns the ordinals of the blocks flowing into b.
func (b *BasicBlock) Predecessors() []int { return b.predecessors }

// Successors returns the ordinals of the blocks b flows into.
func (b *BasicBlock) Successors() []int { return b.successors }

// AddPredecessor records pred -> b on both blocks.
func (b *BasicBlock) AddPredecessor(pred *BasicBlock) { link(pred, b) }

// AddSuccessor records b -> succ on both blocks.
func (b *BasicBlock) AddSuccessor(succ *BasicBlock) { link(b, succ) }

func (b *BasicBlock) String() string {
	return fmt.Sprintf("BasicBlock [Ordinal: %d Kind: %s]", b.ordinal, b.kind)
}

func link(from, to *BasicBlock) {
	if !slices.Contains(from.successors, to.ordinal) {
		from.successors = append(from.successors, to.ordinal)
	}
	if !slices.Contains(to.predecessors, from.ordinal) {
		to.predecessors = append(to.predecessors, from.ordinal)
	}
}

// Graph owns the blocks of one method.
type Graph struct {
	name   string
	blocks []*BasicBlock
}

// NewGraph returns an empty graph. Most callers want [Build].
func NewGraph(name string) *Graph {
	return &Graph{name: name}
}

// NewBlock appends a block with the next ordinal. The operations slice is copied.
func (g *Graph) NewBlock(kind BlockKind, ops []operation.Operation) *BasicBlock {
	b := &BasicBlock{
		ordinal:    len(g.blocks),
		kind:       kind,
		operations: slices.Clone(ops),
	}
	g.blocks = append(g.blocks, b)
	return b
}

// Name is the name of the method the graph was built from.
func (g *Graph) Name() string { return g.name }

// Entry returns the block with ordinal 0, or nil for an empty graph.
func (g *Graph) Entry() *BasicBlock {
	if len(g.blocks) == 0 {
		return nil
	}
	return g.blocks[0]
}

// Exit returns the last exit block, or nil if there is none.
func (g *Graph) Exit() *BasicBlock {
	for i := len(g.blocks) - 1; i >= 0; i-- {
		if g.blocks[i].kind == KindExit {
			return g.blocks[i]
		}
	}
	return nil
}

// Block returns the block with the given ordinal, or nil.
func (g *Graph) Block(ordinal int) *BasicBlock {
	if ordinal < 0 || ordinal >= len(g.blocks) {
		return nil
	}
	return g.blocks[ordinal]
}

// Blocks returns all blocks in ordinal order.
func (g *Graph) Blocks() []*BasicBlock { return g.blocks }

// Len returns the number of blocks.
func (g *Graph) Len() int { return len(g.blocks) }
