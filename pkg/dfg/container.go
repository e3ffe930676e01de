package dfg

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/l3aro/go-valueset/pkg/operation"
)

// Container maps symbols to the variables reaching a program point.
type Container struct {
	vars map[operation.Symbol]*Variable
}

// EmptyContainer returns a container with no entries.
func EmptyContainer() *Container {
	return &Container{vars: make(map[operation.Symbol]*Variable)}
}

// Add inserts v, replacing any entry for the same symbol.
func (c *Container) Add(v *Variable) {
	c.vars[v.symbol] = v
}

// Merge joins every entry of other into c. Entries missing from c are copied
// in, so later merges into c never reach back into other.
func (c *Container) Merge(other *Container) error {
	for sym, v := range other.vars {
		current, ok := c.vars[sym]
		if !ok {
			c.vars[sym] = NewVariable(sym, v.value)
			continue
		}
		if err := current.MergeValue(v.value); err != nil {
			return fmt.Errorf("merging %s: %w", sym, err)
		}
	}
	return nil
}

// Value returns the value recorded for sym, or nil if it was never assigned.
func (c *Container) Value(sym operation.Symbol) Value {
	if v, ok := c.vars[sym]; ok {
		return v.value
	}
	return nil
}

// Len returns the number of recorded variables.
func (c *Container) Len() int { return len(c.vars) }

// Names returns the recorded variable names in ascending order.
func (c *Container) Names() []string {
	names := make([]string, 0, len(c.vars))
	for sym := range maps.Keys(c.vars) {
		names = append(names, sym.Name())
	}
	slices.Sort(names)
	return names
}

func (c *Container) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, name := range c.Names() {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%s: %s", name, c.vars[operation.NewSymbol(name)].value)
	}
	sb.WriteString("}")
	return sb.String()
}
