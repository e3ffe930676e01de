package cfg

import (
	"github.com/l3aro/go-valueset/pkg/operation"
)

// EdgeType represents the type of a CFG edge.
type EdgeType string

const (
	EdgeTypeUnconditional EdgeType = "unconditional" // Straight-line flow or join
	EdgeTypeTrue          EdgeType = "true"          // Into the "then" branch
	EdgeTypeSkip          EdgeType = "skip"          // Around a branch without else
)

// BlockInfo is a serialisable view of a basic block.
type BlockInfo struct {
	Ordinal      int      `json:"ordinal"`      // Position in creation order
	Kind         string   `json:"kind"`         // entry, exit or block
	Operations   []string `json:"operations"`   // Rendered operations
	Predecessors []int    `json:"predecessors"` // Ordinals of incoming blocks
	Successors   []int    `json:"successors"`   // Ordinals of outgoing blocks
}

// EdgeInfo is a serialisable view of a directed edge.
type EdgeInfo struct {
	From     int      `json:"from"`
	To       int      `json:"to"`
	EdgeType EdgeType `json:"edge_type"`
}

// Info is the serialisable view of a whole graph.
type Info struct {
	FunctionName string      `json:"function_name"`
	Blocks       []BlockInfo `json:"blocks"`
	Edges        []EdgeInfo  `json:"edges"`
	EntryBlock   int         `json:"entry_block"`
	ExitBlock    int         `json:"exit_block"`
	JoinPoints   int         `json:"join_points"` // Blocks with more than one predecessor
}

// Describe returns the serialisable view of g.
func (g *Graph) Describe() *Info {
	info := &Info{
		FunctionName: g.name,
		Blocks:       make([]BlockInfo, 0, len(g.blocks)),
		Edges:        make([]EdgeInfo, 0),
		ExitBlock:    -1,
	}

	if exit := g.Exit(); exit != nil {
		info.ExitBlock = exit.ordinal
	}

	for _, b := range g.blocks {
		ops := make([]string, 0, len(b.operations))
		for _, op := range b.operations {
			ops = append(ops, operation.Describe(op))
		}

		info.Blocks = append(info.Blocks, BlockInfo{
			Ordinal:      b.ordinal,
			Kind:         b.kind.String(),
			Operations:   ops,
			Predecessors: append([]int{}, b.predecessors...),
			Successors:   append([]int{}, b.successors...),
		})

		if len(b.predecessors) > 1 {
			info.JoinPoints++
		}

		for _, succ := range b.successors {
			info.Edges = append(info.Edges, EdgeInfo{From: b.ordinal, To: succ, EdgeType: g.edgeType(b, succ)})
		}
	}

	return info
}

// edgeType classifies from -> to. A block ending in an if flows into the
// branch through its first successor; any other successor skips the branch.
func (g *Graph) edgeType(from *BasicBlock, to int) EdgeType {
	if len(from.operations) == 0 {
		return EdgeTypeUnconditional
	}
	if _, ok := from.operations[len(from.operations)-1].(*operation.If); !ok {
		return EdgeTypeUnconditional
	}
	if len(from.successors) > 0 && from.successors[0] == to {
		return EdgeTypeTrue
	}
	return EdgeTypeSkip
}
