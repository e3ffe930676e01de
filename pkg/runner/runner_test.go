package runner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/l3aro/go-valueset/internal/testsource"
	"github.com/l3aro/go-valueset/pkg/cache"
	"github.com/l3aro/go-valueset/pkg/frontend"
	"github.com/l3aro/go-valueset/pkg/report"
)

const javaSource = `class Sample {
    void kill() {
        x = 1;
        x = 2;
    }

    void join() {
        x = 1;
        if (c) {
            x = 2;
        }
    }
}
`

const goSource = `package sample

func f() {
	x := 1
	if c {
		x = 3
	}
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name     string
		file     string
		content  string
		language frontend.Language
		want     []report.Method
	}{
		{
			name:     "java",
			file:     "Sample.java",
			content:  javaSource,
			language: frontend.Java,
			want: []report.Method{
				{Name: "kill", Blocks: 3, Variables: []report.Variable{{Name: "x", Values: []int32{2}}}},
				{Name: "join", Blocks: 5, Variables: []report.Variable{{Name: "x", Values: []int32{1, 2}}}},
			},
		},
		{
			name:     "go",
			file:     "sample.go",
			content:  goSource,
			language: frontend.Go,
			want: []report.Method{
				{Name: "f", Blocks: 5, Variables: []report.Variable{{Name: "x", Values: []int32{1, 3}}}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.file, tt.content)

			f, err := New(Options{}).AnalyzeFile(context.Background(), path)
			require.NoError(t, err)

			assert.Equal(t, path, f.Path)
			assert.Equal(t, tt.language, f.Language)
			assert.Empty(t, f.SyntaxErrors)
			assert.Equal(t, tt.want, f.Methods)
		})
	}
}

func TestAnalyzeFile_Errors(t *testing.T) {
	dir := t.TempDir()
	r := New(Options{})

	_, err := r.AnalyzeFile(context.Background(), writeFile(t, dir, "script.py", "x = 1"))
	assert.ErrorIs(t, err, frontend.ErrUnsupportedExtension)

	_, err = r.AnalyzeFile(context.Background(), filepath.Join(dir, "Missing.java"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAnalyzeSource_SyntaxErrors(t *testing.T) {
	src := []byte("package p\n\nfunc ok() {\n\tx := 1\n}\n\nfunc broken( {\n")

	f, err := New(Options{}).AnalyzeSource(context.Background(), "broken.go", frontend.Go, src)
	require.NoError(t, err)
	assert.NotEmpty(t, f.SyntaxErrors)
}

func TestAnalyzeSource_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).AnalyzeSource(ctx, "sample.go", frontend.Go, []byte(goSource))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeSource_KeepsDeclarationOrder(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("package p\n")
	for i := range 20 {
		fmt.Fprintf(&sb, "\nfunc m%d() {\n\tv := %d\n}\n", i, i)
	}

	f, err := New(Options{Workers: 3}).AnalyzeSource(context.Background(), "many.go", frontend.Go, []byte(sb.String()))
	require.NoError(t, err)
	require.Len(t, f.Methods, 20)

	for i, m := range f.Methods {
		assert.Equal(t, fmt.Sprintf("m%d", i), m.Name)
		assert.Equal(t, []report.Variable{{Name: "v", Values: []int32{int32(i)}}}, m.Variables)
	}
}

func TestAnalyzeSource_Cache(t *testing.T) {
	c := cache.New(cache.Options{MaxEntries: 10})
	r := New(Options{Cache: c})
	ctx := context.Background()

	first, err := r.AnalyzeSource(ctx, "a/sample.go", frontend.Go, []byte(goSource))
	require.NoError(t, err)

	second, err := r.AnalyzeSource(ctx, "b/sample.go", frontend.Go, []byte(goSource))
	require.NoError(t, err)

	assert.Equal(t, "a/sample.go", first.Path)
	assert.Equal(t, "b/sample.go", second.Path)
	assert.Equal(t, first.Methods, second.Methods)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Length)
	assert.EqualValues(t, 1, stats.HitCount)
	assert.EqualValues(t, 1, stats.MissCount)

	// Same text under another language is a different entry.
	_, err = r.AnalyzeSource(ctx, "Sample.java", frontend.Java, []byte(javaSource))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestAnalyzePath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "A.java", javaSource)
	writeFile(t, dir, "b/sample.go", goSource)
	writeFile(t, dir, "README.md", "# sample")
	writeFile(t, dir, "vendor/dep/dep.go", goSource)

	files, err := New(Options{}).AnalyzePath(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, files, 2)

	assert.Equal(t, filepath.Join(dir, "A.java"), files[0].Path)
	assert.Equal(t, filepath.Join(dir, "b", "sample.go"), files[1].Path)

	single, err := New(Options{}).AnalyzePath(context.Background(), filepath.Join(dir, "A.java"))
	require.NoError(t, err)
	require.Len(t, single, 1)
	assert.Len(t, single[0].Methods, 2)

	_, err = New(Options{}).AnalyzePath(context.Background(), filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestGraph(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Sample.java", javaSource)
	r := New(Options{})

	g, err := r.Graph(context.Background(), path, "join")
	require.NoError(t, err)
	assert.Equal(t, "join", g.Name())
	assert.Equal(t, 5, g.Len())

	_, err = r.Graph(context.Background(), path, "absent")
	assert.ErrorIs(t, err, ErrMethodNotFound)

	_, err = r.Graph(context.Background(), "Sample.kt", "join")
	assert.ErrorIs(t, err, frontend.ErrUnsupportedExtension)
}

func TestAnalyzeMethod(t *testing.T) {
	m := testsource.Method(t, `
a := 1
b := a
if cond {
	a = 2
	b = 7
}
`)

	got, err := AnalyzeMethod(m)
	require.NoError(t, err)
	assert.Equal(t, report.Method{
		Name:   testsource.FuncName,
		Blocks: 5,
		Variables: []report.Variable{
			{Name: "a", Values: []int32{1, 2}},
			{Name: "b", Values: []int32{1, 7}},
		},
	}, got)
}
