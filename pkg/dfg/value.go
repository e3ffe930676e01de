// Package dfg provides value-set data flow analysis over control-flow graphs.
//
// For each local variable the analysis computes the set of integer literals
// that can reach the end of a method along any path. Values form a
// set-union semilattice: join is union, bottom is the empty set, and there is
// no top because graphs built from loop-free bodies cannot grow sets without bound.
package dfg

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrKindMismatch is returned when merging values of different concrete kinds.
var ErrKindMismatch = errors.New("data flow value kind mismatch")

// Value is an abstract data flow value.
type Value interface {
	// Merge joins other into the receiver in place.
	Merge(other Value) error
	// Clone returns a deep copy that shares no storage with the receiver.
	Clone() Value
	String() string
}

// Integer is the set of integer types an [IntegerValue] can range over.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// IntegerValue is the set of integers a variable may hold.
// Values over different element types are different kinds and do not merge.
// The zero value is an empty set ready to use.
type IntegerValue[T Integer] struct {
	values map[T]struct{}
}

// NewIntegerValue returns a value holding the given members.
func NewIntegerValue[T Integer](values ...T) *IntegerValue[T] {
	v := &IntegerValue[T]{values: make(map[T]struct{}, len(values))}
	v.AppendValues(values...)
	return v
}

// AppendValue adds one member.
func (v *IntegerValue[T]) AppendValue(value T) {
	v.AppendValues(value)
}

// AppendValues adds every given member.
func (v *IntegerValue[T]) AppendValues(values ...T) {
	if v.values == nil {
		v.values = make(map[T]struct{}, len(values))
	}
	for _, value := range values {
		v.values[value] = struct{}{}
	}
}

// Contains reports whether value is a member.
func (v *IntegerValue[T]) Contains(value T) bool {
	_, ok := v.values[value]
	return ok
}

// Len returns the number of members.
func (v *IntegerValue[T]) Len() int { return len(v.values) }

// Values returns the members in ascending order.
func (v *IntegerValue[T]) Values() []T {
	return slices.Sorted(maps.Keys(v.values))
}

// Equal reports whether both values hold the same members.
func (v *IntegerValue[T]) Equal(other *IntegerValue[T]) bool {
	return maps.Equal(v.values, other.values)
}

// Merge unions other into v. other must be an *IntegerValue of the same element type.
func (v *IntegerValue[T]) Merge(other Value) error {
	o, ok := other.(*IntegerValue[T])
	if !ok {
		return fmt.Errorf("%w: cannot merge %T into %T", ErrKindMismatch, other, v)
	}
	if v.values == nil {
		v.values = make(map[T]struct{}, len(o.values))
	}
	maps.Copy(v.values, o.values)
	return nil
}

// Clone returns a copy with its own storage.
func (v *IntegerValue[T]) Clone() Value {
	c := &IntegerValue[T]{values: make(map[T]struct{}, len(v.values))}
	maps.Copy(c.values, v.values)
	return c
}

func (v *IntegerValue[T]) String() string {
	values := v.Values()
	parts := make([]string, len(values))
	for i, value := range values {
		parts[i] = fmt.Sprint(value)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
