package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-valueset/internal/testsource"
)

func TestGraph_Empty(t *testing.T) {
	g := NewGraph("g")

	assert.Equal(t, "g", g.Name())
	assert.Nil(t, g.Entry())
	assert.Nil(t, g.Exit())
	assert.Nil(t, g.Block(0))
	assert.Equal(t, 0, g.Len())
}

func TestBasicBlock_LinkIsSymmetricAndDeduplicated(t *testing.T) {
	g := NewGraph("g")
	a := g.NewBlock(KindEntry, nil)
	b := g.NewBlock(KindBlock, nil)

	a.AddSuccessor(b)
	b.AddPredecessor(a)

	assert.Equal(t, []int{1}, a.Successors())
	assert.Equal(t, []int{0}, b.Predecessors())
	assert.Empty(t, a.Predecessors())
	assert.Empty(t, b.Successors())
	assert.Equal(t, "BasicBlock [Ordinal: 1 Kind: block]", b.String())
}

func TestGraph_Block_OutOfRange(t *testing.T) {
	g := NewGraph("g")
	g.NewBlock(KindEntry, nil)

	assert.NotNil(t, g.Block(0))
	assert.Nil(t, g.Block(-1))
	assert.Nil(t, g.Block(1))
}

func TestGraph_Describe(t *testing.T) {
	g := Build(testsource.Method(t, "x = 1\nif c {\n\tx = 2\n}"))

	info := g.Describe()

	assert.Equal(t, testsource.FuncName, info.FunctionName)
	assert.Equal(t, 0, info.EntryBlock)
	assert.Equal(t, 4, info.ExitBlock)
	assert.Equal(t, 1, info.JoinPoints)

	require.Len(t, info.Blocks, 5)
	assert.Equal(t, "entry", info.Blocks[0].Kind)
	assert.Equal(t, []string{"x = 1;", "if (c) { x = 2; }"}, info.Blocks[1].Operations)
	assert.Equal(t, []string{"x = 2;"}, info.Blocks[2].Operations)
	assert.Equal(t, "exit", info.Blocks[4].Kind)

	assert.Equal(t, []EdgeInfo{
		{From: 0, To: 1, EdgeType: EdgeTypeUnconditional},
		{From: 1, To: 2, EdgeType: EdgeTypeTrue},
		{From: 1, To: 3, EdgeType: EdgeTypeSkip},
		{From: 2, To: 3, EdgeType: EdgeTypeUnconditional},
		{From: 3, To: 4, EdgeType: EdgeTypeUnconditional},
	}, info.Edges)
}

func TestGraph_Describe_NoExit(t *testing.T) {
	g := NewGraph("partial")
	g.NewBlock(KindEntry, nil)

	info := g.Describe()
	assert.Equal(t, -1, info.ExitBlock)
	assert.Empty(t, info.Edges)
}
