package dfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-valueset/internal/testsource"
	"github.com/l3aro/go-valueset/pkg/cfg"
)

func evaluate(t *testing.T, src string) *Results {
	t.Helper()

	res, err := EvaluateVariables(cfg.Build(testsource.Method(t, src)))
	require.NoError(t, err)
	return res
}

func TestEvaluateVariables(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want map[string][]int32
	}{
		{
			name: "empty body",
			src:  ``,
			want: map[string][]int32{},
		},
		{
			name: "kill and define",
			src:  "x = 1\nx = 2",
			want: map[string][]int32{"x": {2}},
		},
		{
			name: "join after if",
			src:  "x = 1\nif c {\n\tx = 2\n}",
			want: map[string][]int32{"x": {1, 2}},
		},
		{
			name: "defined only in branch",
			src:  "if c {\n\tx = 1\n}",
			want: map[string][]int32{"x": {1}},
		},
		{
			name: "kill inside branch",
			src:  "x = 1\nif c {\n\tx = 2\n\tx = 3\n}",
			want: map[string][]int32{"x": {1, 3}},
		},
		{
			name: "redefined after join",
			src:  "x = 1\nif c {\n\tx = 2\n}\nx = 4",
			want: map[string][]int32{"x": {4}},
		},
		{
			name: "nested",
			src:  "x = 1\nif a {\n\tx = 2\n\tif b {\n\t\tx = 3\n\t}\n}",
			want: map[string][]int32{"x": {1, 2, 3}},
		},
		{
			name: "sequential ifs",
			src:  "x = 1\nif a {\n\tx = 2\n}\nif b {\n\tx = 3\n}",
			want: map[string][]int32{"x": {1, 2, 3}},
		},
		{
			name: "copy propagation",
			src:  "x = 1\ny = x",
			want: map[string][]int32{"x": {1}, "y": {1}},
		},
		{
			name: "copy of joined value",
			src:  "x = 1\nif c {\n\tx = 2\n}\ny = x",
			want: map[string][]int32{"x": {1, 2}, "y": {1, 2}},
		},
		{
			name: "copy is a snapshot",
			src:  "x = 1\ny = x\nx = 2",
			want: map[string][]int32{"x": {2}, "y": {1}},
		},
		{
			name: "copy from unset variable",
			src:  "y = 5\ny = x",
			want: map[string][]int32{"y": {5}},
		},
		{
			name: "unknown constructs are ignored",
			src:  "x = 1\nx += 2\nf()\ny, z := 1, 2\nx = -1\nvar w = 3\n_ = w",
			want: map[string][]int32{"x": {1}},
		},
		{
			name: "int32 range",
			src:  "x = 2147483647\ny = 2147483648\nz = 0x10",
			want: map[string][]int32{"x": {2147483647}},
		},
		{
			name: "short variable declaration",
			src:  "x := 7",
			want: map[string][]int32{"x": {7}},
		},
		{
			name: "octal literal",
			src:  "x = 010\ny = 0",
			want: map[string][]int32{"y": {0}},
		},
		{
			name: "shadowed in branch",
			src:  "x := 1\nif c {\n\tx := 2\n\t_ = x\n}",
			want: map[string][]int32{"x": {1}},
		},
		{
			name: "assigned before shadowing",
			src:  "x := 1\nif c {\n\tx = 2\n\tx := 3\n\tx = 4\n\ty = x\n}",
			want: map[string][]int32{"x": {1, 2}},
		},
		{
			name: "inner constant",
			src:  "x := 1\nif c {\n\tconst x = 2\n\ty := x\n\t_ = y\n}\nz = x",
			want: map[string][]int32{"x": {1}, "z": {1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluate(t, tt.src)

			got := make(map[string][]int32)
			for _, name := range res.Variables() {
				values, ok := res.IntValues(name)
				require.True(t, ok, name)
				got[name] = values
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateVariables_Idempotent(t *testing.T) {
	g := cfg.Build(testsource.Method(t, "x = 1\nif c {\n\tx = 2\n\ty = x\n}"))

	first, err := EvaluateVariables(g)
	require.NoError(t, err)
	second, err := EvaluateVariables(g)
	require.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, "{x: [1, 2], y: [2]}", first.String())
}

func TestResults_ValueIsACopy(t *testing.T) {
	res := evaluate(t, "x = 1")

	v := res.Value("x").(*IntegerValue[int32])
	v.AppendValue(99)

	values, ok := res.IntValues("x")
	require.True(t, ok)
	assert.Equal(t, []int32{1}, values)

	assert.Nil(t, res.Value("missing"))
	_, ok = res.IntValues("missing")
	assert.False(t, ok)
}

func TestEvaluateVariables_Errors(t *testing.T) {
	tests := []struct {
		name  string
		build func() *cfg.Graph
		want  error
	}{
		{
			name:  "no blocks",
			build: func() *cfg.Graph { return cfg.NewGraph("g") },
			want:  ErrInvalidGraph,
		},
		{
			name: "first block is not an entry",
			build: func() *cfg.Graph {
				g := cfg.NewGraph("g")
				b := g.NewBlock(cfg.KindBlock, nil)
				b.AddSuccessor(g.NewBlock(cfg.KindExit, nil))
				return g
			},
			want: ErrInvalidGraph,
		},
		{
			name: "no exit",
			build: func() *cfg.Graph {
				g := cfg.NewGraph("g")
				g.NewBlock(cfg.KindEntry, nil).AddSuccessor(g.NewBlock(cfg.KindBlock, nil))
				return g
			},
			want: ErrExitNotReached,
		},
		{
			name: "two exits",
			build: func() *cfg.Graph {
				g := cfg.NewGraph("g")
				entry := g.NewBlock(cfg.KindEntry, nil)
				entry.AddSuccessor(g.NewBlock(cfg.KindExit, nil))
				entry.AddSuccessor(g.NewBlock(cfg.KindExit, nil))
				return g
			},
			want: ErrExitNotReached,
		},
		{
			name: "cycle",
			build: func() *cfg.Graph {
				g := cfg.NewGraph("g")
				entry := g.NewBlock(cfg.KindEntry, nil)
				head := g.NewBlock(cfg.KindBlock, nil)
				body := g.NewBlock(cfg.KindBlock, nil)
				exit := g.NewBlock(cfg.KindExit, nil)
				entry.AddSuccessor(head)
				head.AddSuccessor(body)
				body.AddSuccessor(head)
				body.AddSuccessor(exit)
				return g
			},
			want: ErrStalled,
		},
		{
			name: "unreachable predecessor",
			build: func() *cfg.Graph {
				g := cfg.NewGraph("g")
				entry := g.NewBlock(cfg.KindEntry, nil)
				join := g.NewBlock(cfg.KindBlock, nil)
				orphan := g.NewBlock(cfg.KindBlock, nil)
				entry.AddSuccessor(join)
				orphan.AddSuccessor(join)
				join.AddSuccessor(g.NewBlock(cfg.KindExit, nil))
				return g
			},
			want: ErrStalled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EvaluateVariables(tt.build())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestEvaluateVariables_WaitsForAllPredecessors(t *testing.T) {
	// entry -> a -> b -> join, entry -> join: join is dequeued before b resolves.
	g := cfg.NewGraph("g")
	entry := g.NewBlock(cfg.KindEntry, nil)
	a := g.NewBlock(cfg.KindBlock, nil)
	join := g.NewBlock(cfg.KindBlock, nil)
	b := g.NewBlock(cfg.KindBlock, nil)
	exit := g.NewBlock(cfg.KindExit, nil)

	entry.AddSuccessor(a)
	entry.AddSuccessor(join)
	a.AddSuccessor(b)
	b.AddSuccessor(join)
	join.AddSuccessor(exit)

	res, err := EvaluateVariables(g)
	require.NoError(t, err)
	assert.Empty(t, res.Variables())
}
