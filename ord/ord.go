// Package ord defines the Ordering result type and the comparison
// capability interfaces that payload types may implement.
//
// The three ordering tiers mirror the usual strong / weak / partial
// hierarchy: a strong ordering distinguishes every distinct value, a weak
// ordering may group distinct values into equivalence classes, and a
// partial ordering may leave some pairs unordered (floating point NaN is
// the canonical example). Implementing a stronger tier implies the weaker
// ones; consumers discover the tiers through the interfaces below.
package ord

import "golang.org/x/exp/constraints"

// Ordering is the result of a comparison between two values.
type Ordering int8

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// String returns a human readable form of the ordering.
func (o Ordering) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "invalid"
	}
}

// Reverse flips Less and Greater, leaving Equal in place.
func (o Ordering) Reverse() Ordering { return -o }

// IsLt reports whether the ordering is Less.
func (o Ordering) IsLt() bool { return o == Less }

// IsEq reports whether the ordering is Equal.
func (o Ordering) IsEq() bool { return o == Equal }

// IsGt reports whether the ordering is Greater.
func (o Ordering) IsGt() bool { return o == Greater }

// Compare orders two values of any built-in ordered type.
func Compare[T constraints.Ordered](a, b T) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

// Equaler is implemented by types that define their own equality. Types
// without it fall back to Go's built-in comparability where available.
type Equaler[T any] interface {
	Equal(T) bool
}

// StrongOrdered is implemented by types with a total order in which equal
// values are indistinguishable.
type StrongOrdered[T any] interface {
	Cmp(T) Ordering
}

// WeakOrdered is an optional companion interface for types whose order
// groups distinct values into equivalence classes. A StrongOrdered type is
// implicitly weakly ordered and does not need to implement this.
type WeakOrdered[T any] interface {
	WeakCmp(T) Ordering
}

// PartialOrdered is implemented by types for which some pairs of values
// have no defined order. The second result is false when the pair is
// unordered.
type PartialOrdered[T any] interface {
	PartialCmp(T) (Ordering, bool)
}
