// Package report holds the serialisable results of an analysis run and
// renders them as text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/l3aro/go-valueset/pkg/cfg"
	"github.com/l3aro/go-valueset/pkg/dfg"
	"github.com/l3aro/go-valueset/pkg/frontend"
)

// Variable is one variable reaching the end of a method with its possible values.
type Variable struct {
	Name   string  `json:"name" msgpack:"name"`
	Values []int32 `json:"values" msgpack:"values"`
}

// Method is the analysis result of one method.
type Method struct {
	Name      string     `json:"name" msgpack:"name"`
	Blocks    int        `json:"blocks" msgpack:"blocks"` // Basic blocks including entry and exit
	Variables []Variable `json:"variables" msgpack:"variables"`
}

// File is the analysis result of one source file.
type File struct {
	Path         string                 `json:"path" msgpack:"path"`
	Language     frontend.Language      `json:"language" msgpack:"language"`
	Methods      []Method               `json:"methods" msgpack:"methods"`
	SyntaxErrors []frontend.SyntaxError `json:"syntax_errors,omitempty" msgpack:"syntax_errors,omitempty"`
}

// NewMethod collects the integer variables of res in name order.
func NewMethod(name string, g *cfg.Graph, res *dfg.Results) Method {
	m := Method{
		Name:      name,
		Blocks:    g.Len(),
		Variables: make([]Variable, 0, len(res.Variables())),
	}

	for _, v := range res.Variables() {
		values, ok := res.IntValues(v)
		if !ok {
			continue
		}
		m.Variables = append(m.Variables, Variable{Name: v, Values: values})
	}

	return m
}

// WriteText prints each method as
//
//	Method: name
//	x: [1, 2]
//
// followed by an empty line. With more than one file, each file's methods
// are preceded by a "File: path" line.
func WriteText(w io.Writer, files ...*File) error {
	for _, f := range files {
		if len(files) > 1 {
			if _, err := fmt.Fprintf(w, "File: %s\n", f.Path); err != nil {
				return err
			}
		}
		for _, m := range f.Methods {
			if err := writeMethod(w, m); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeMethod(w io.Writer, m Method) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Method: %s\n", m.Name)
	for _, v := range m.Variables {
		fmt.Fprintf(&sb, "%s: %s\n", v.Name, FormatValues(v.Values))
	}
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// FormatValues renders values as "[1, 2, 3]".
func FormatValues(values []int32) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatInt(int64(v), 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// WriteJSON prints v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteGraph prints a human-readable listing of a control-flow graph.
func WriteGraph(w io.Writer, info *cfg.Info) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "=== CFG for method: %s ===\n", info.FunctionName)
	fmt.Fprintf(&sb, "Entry Block: %d\n", info.EntryBlock)
	fmt.Fprintf(&sb, "Exit Block: %d\n", info.ExitBlock)
	fmt.Fprintf(&sb, "Join Points: %d\n", info.JoinPoints)

	fmt.Fprintf(&sb, "\nBlocks (%d):\n", len(info.Blocks))
	for _, b := range info.Blocks {
		fmt.Fprintf(&sb, "  %d (%s)\n", b.Ordinal, b.Kind)
		for _, op := range b.Operations {
			fmt.Fprintf(&sb, "    %s\n", op)
		}
	}

	fmt.Fprintf(&sb, "\nEdges (%d):\n", len(info.Edges))
	for _, e := range info.Edges {
		fmt.Fprintf(&sb, "  %d --%s--> %d\n", e.From, e.EdgeType, e.To)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
