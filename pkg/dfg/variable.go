package dfg

import (
	"github.com/l3aro/go-valueset/pkg/operation"
)

// Variable pairs a symbol with a value it owns exclusively.
type Variable struct {
	symbol operation.Symbol
	value  Value
}

// NewVariable clones value so that no two variables share storage.
func NewVariable(symbol operation.Symbol, value Value) *Variable {
	return &Variable{symbol: symbol, value: value.Clone()}
}

func (v *Variable) Symbol() operation.Symbol { return v.symbol }
func (v *Variable) Value() Value             { return v.value }

// MergeValue joins value into the variable's own value.
func (v *Variable) MergeValue(value Value) error {
	return v.value.Merge(value)
}
