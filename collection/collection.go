// Package collection implements the ordered, possibly-empty sequence
// of value.Value that every FHIRPath expression ultimately evaluates
// to. A Collection never nests another Collection inside itself —
// navigation and function results are always flattened before being
// wrapped here, which is why value.Value has no Collection variant of
// its own (see DESIGN.md).
package collection

import (
	"github.com/fhirpath-go/fhirpath/value"
)

// Collection is an ordered sequence of values. The zero value is a
// valid empty collection.
type Collection struct {
	items []value.Value
}

// Empty returns the empty collection.
func Empty() Collection {
	return Collection{}
}

// Single wraps exactly one value into a one-element collection.
func Single(v value.Value) Collection {
	return Collection{items: []value.Value{v}}
}

// FromSlice builds a collection from an existing slice without
// copying — callers must not mutate the backing slice afterwards.
func FromSlice(items []value.Value) Collection {
	return Collection{items: items}
}

// FromValues builds a collection from individual values.
func FromValues(items ...value.Value) Collection {
	return Collection{items: items}
}

// Len returns the number of items in the collection.
func (c Collection) Len() int { return len(c.items) }

// IsEmpty reports whether the collection has zero items.
func (c Collection) IsEmpty() bool { return len(c.items) == 0 }

// At returns the item at index i. Callers must check bounds with Len
// first; At panics on an out-of-range index, mirroring slice semantics.
func (c Collection) At(i int) value.Value { return c.items[i] }

// First returns the first item and true, or the zero Value and false
// when the collection is empty.
func (c Collection) First() (value.Value, bool) {
	if len(c.items) == 0 {
		return nil, false
	}
	return c.items[0], true
}

// Last returns the final item and true, or the zero Value and false
// when the collection is empty.
func (c Collection) Last() (value.Value, bool) {
	if len(c.items) == 0 {
		return nil, false
	}
	return c.items[len(c.items)-1], true
}

// Single1 returns the sole item of a one-element collection. It
// reports ok=false for an empty collection and panics for a collection
// with more than one item — callers that might see multiple items
// (i.e. everywhere outside the `single()` function) must check Len
// before calling it.
func (c Collection) Single1() (v value.Value, ok bool) {
	switch len(c.items) {
	case 0:
		return nil, false
	case 1:
		return c.items[0], true
	default:
		panic("collection: Single1 called on a collection with more than one item")
	}
}

// Slice exposes the underlying items for read-only iteration. Callers
// must not mutate the returned slice.
func (c Collection) Slice() []value.Value { return c.items }

// Append returns a new collection with v appended, copy-on-write so
// the receiver's items are left untouched.
func (c Collection) Append(v value.Value) Collection {
	next := make([]value.Value, len(c.items), len(c.items)+1)
	copy(next, c.items)
	next = append(next, v)
	return Collection{items: next}
}

// Concat returns a new collection containing this collection's items
// followed by other's.
func (c Collection) Concat(other Collection) Collection {
	if len(c.items) == 0 {
		return other
	}
	if len(other.items) == 0 {
		return c
	}
	next := make([]value.Value, 0, len(c.items)+len(other.items))
	next = append(next, c.items...)
	next = append(next, other.items...)
	return Collection{items: next}
}

// Map applies f to every item, short-circuiting and returning the
// first error encountered.
func (c Collection) Map(f func(value.Value) (value.Value, error)) (Collection, error) {
	out := make([]value.Value, 0, len(c.items))
	for _, v := range c.items {
		mapped, err := f(v)
		if err != nil {
			return Collection{}, err
		}
		out = append(out, mapped)
	}
	return Collection{items: out}, nil
}

// Filter keeps the items for which keep returns true, short-circuiting
// on the first error.
func (c Collection) Filter(keep func(value.Value) (bool, error)) (Collection, error) {
	out := make([]value.Value, 0, len(c.items))
	for _, v := range c.items {
		ok, err := keep(v)
		if err != nil {
			return Collection{}, err
		}
		if ok {
			out = append(out, v)
		}
	}
	return Collection{items: out}, nil
}
