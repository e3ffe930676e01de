package operation

import (
	"fmt"
	"strings"
)

// Describe renders an operation as compact pseudo-source for CFG listings.
func Describe(op Operation) string {
	switch o := op.(type) {
	case *Assignment:
		return fmt.Sprintf("%s %s %s", Describe(o.target), o.Kind(), Describe(o.source))
	case *VariableReference:
		return o.symbol.name
	case *Literal:
		return o.Text()
	case *ExpressionStatement:
		if o.expression == nil {
			return "<expr>;"
		}
		return Describe(o.expression) + ";"
	case *If:
		parts := make([]string, 0, len(o.then))
		for _, stmt := range o.then {
			parts = append(parts, Describe(stmt))
		}
		return fmt.Sprintf("if (%s) { %s }", Describe(o.condition), strings.Join(parts, " "))
	case *Statement:
		return "<stmt>;"
	default:
		return "<?>"
	}
}
