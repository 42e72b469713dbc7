// Package structgenstate provides the field states used by builders generated
// by Structgen. Generated code imports this package. It is not meant to be
// used directly.
package structgenstate

import "fmt"

// Unset marks a field of a type-state builder which has not been set yet.
type Unset struct{}

func (Unset) String() string { return "<unset>" }

// Set marks a field of a type-state builder which holds a value.
type Set[T any] struct{ Value T }

// Get returns the held value.
func (s Set[T]) Get() T { return s.Value }

func (s Set[T]) String() string { return fmt.Sprintf("%v", s.Value) }

// Slot is a field of a dynamic builder. The zero value is an empty slot.
type Slot[T any] struct {
	value T
	ok    bool
}

// Filled returns a slot holding v.
func Filled[T any](v T) Slot[T] {
	return Slot[T]{value: v, ok: true}
}

// Get returns the held value and whether the slot is filled.
func (s Slot[T]) Get() (T, bool) { return s.value, s.ok }

// IsSet reports whether the slot is filled.
func (s Slot[T]) IsSet() bool { return s.ok }

func (s Slot[T]) String() string {
	if !s.ok {
		return Unset{}.String()
	}
	return fmt.Sprintf("%v", s.value)
}

// Lookup returns the value of a type-state builder field and whether it has
// been set. state is either [Unset] or [Set] of T.
func Lookup[T any](state any) (T, bool) {
	s, ok := state.(Set[T])
	return s.Value, ok
}
