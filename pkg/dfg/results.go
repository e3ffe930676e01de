package dfg

import (
	"github.com/l3aro/go-valueset/pkg/operation"
)

// Results holds the values reaching the exit block of one method.
type Results struct {
	container *Container
}

// Variables returns the names of variables with a recorded value, in ascending order.
func (r *Results) Variables() []string {
	return r.container.Names()
}

// Value returns a copy of the value reaching the exit for name, or nil if
// the variable was never assigned.
func (r *Results) Value(name string) Value {
	v := r.container.Value(operation.NewSymbol(name))
	if v == nil {
		return nil
	}
	return v.Clone()
}

// IntValues returns the sorted integer set reaching the exit for name.
// ok is false if the variable was never assigned.
func (r *Results) IntValues(name string) (values []int32, ok bool) {
	iv, ok := r.container.Value(operation.NewSymbol(name)).(*IntegerValue[int32])
	if !ok {
		return nil, false
	}
	return iv.Values(), true
}

func (r *Results) String() string {
	return r.container.String()
}
