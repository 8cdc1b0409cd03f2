// Package option provides a conventional optional value: a payload plus a
// presence flag. It is the general-purpose counterpart to the niche
// optimized choice.Optional, which avoids the flag by reusing a Choice's
// reserved index pattern.
package option

import "fmt"

// Option holds either a value of type T or nothing. The zero value is None.
type Option[T any] struct {
	value   T
	present bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, present: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option holds a value.
func (o Option[T]) IsSome() bool { return o.present }

// IsNone reports whether the option is empty.
func (o Option[T]) IsNone() bool { return !o.present }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.present }

// Unwrap returns the value. It panics if the option is empty; emptiness is
// a caller defect here, not a recoverable condition.
func (o Option[T]) Unwrap() T {
	if !o.present {
		panic("option: Unwrap on empty Option")
	}
	return o.value
}

// UnwrapOr returns the value if present, otherwise fallback.
func (o Option[T]) UnwrapOr(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// UnwrapOrZero returns the value if present, otherwise T's zero value.
func (o Option[T]) UnwrapOrZero() T {
	return o.value
}

// Take moves the value out, leaving the option empty.
func (o *Option[T]) Take() Option[T] {
	out := *o
	*o = Option[T]{}
	return out
}

// Replace stores v and returns the previous content.
func (o *Option[T]) Replace(v T) Option[T] {
	out := *o
	*o = Some(v)
	return out
}

// String renders the option for debugging.
func (o Option[T]) String() string {
	if !o.present {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

// Map applies f to the value if present.
func Map[T, U any](o Option[T], f func(T) U) Option[U] {
	if v, ok := o.Get(); ok {
		return Some(f(v))
	}
	return None[U]()
}

// AndThen chains a fallible projection over the value if present.
func AndThen[T, U any](o Option[T], f func(T) Option[U]) Option[U] {
	if v, ok := o.Get(); ok {
		return f(v)
	}
	return None[U]()
}
