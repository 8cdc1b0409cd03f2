package choice

import (
	"fmt"
	"reflect"

	"github.com/choicetype/choice/ord"
)

// Cloner is implemented by payload types that can produce an independent
// deep copy of themselves. Implementing it marks the type as a resource
// owner: such types are excluded from blind copying and duplicated through
// Clone instead.
type Cloner[T any] interface {
	Clone() T
}

// Dropper is an optional companion interface for payload types that must
// run teardown when the containing Choice destroys or replaces them. Drop
// is called exactly once per live payload.
type Dropper interface {
	Drop()
}

// capSet records which operations every payload type of a configuration
// supports. A Shape's capability set is the conjunction of its slots'.
type capSet struct {
	copy    bool
	clone   bool
	eq      bool
	strong  bool
	weak    bool
	partial bool
}

func allCaps() capSet {
	return capSet{copy: true, clone: true, eq: true, strong: true, weak: true, partial: true}
}

func (c capSet) and(o capSet) capSet {
	return capSet{
		copy:    c.copy && o.copy,
		clone:   c.clone && o.clone,
		eq:      c.eq && o.eq,
		strong:  c.strong && o.strong,
		weak:    c.weak && o.weak,
		partial: c.partial && o.partial,
	}
}

// SlotSpec describes one payload slot of a variant: its Go type, the
// capabilities derived from it, and the typed closures the storage dispatch
// table is assembled from. Build one with Slot.
type SlotSpec struct {
	typ  reflect.Type
	caps capSet

	box        func(op string, v any) any
	assign     func(op string, boxed, v any)
	drop       func(boxed any)
	copyBox    func(boxed any) any
	cloneBox   func(boxed any) any
	eq         func(op string, a, b any) bool
	cmp        func(op string, a, b any) ord.Ordering
	weakCmp    func(op string, a, b any) ord.Ordering
	partialCmp func(op string, a, b any) (ord.Ordering, bool)
	render     func(boxed any) string
}

// Type returns the slot's payload type.
func (s SlotSpec) Type() reflect.Type { return s.typ }

// Slot builds the spec for a payload slot of type T.
//
// Capabilities are discovered once, here, from T's built-in properties and
// from the optional interfaces it implements. Interface implementations on
// either the value or the pointer receiver are honored. Precedence for
// equality and ordering follows the interface over the built-in behavior,
// so a comparable struct with an Equal method is compared through Equal.
func Slot[T any]() SlotSpec {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	kind := typ.Kind()

	intKind := kind >= reflect.Int && kind <= reflect.Int64
	uintKind := kind >= reflect.Uint && kind <= reflect.Uint64
	floatKind := kind == reflect.Float32 || kind == reflect.Float64
	stringKind := kind == reflect.String

	var zero T
	// The pointer probe sees value-receiver and pointer-receiver methods
	// on a struct T; the value probe is what detects methods when T is
	// itself a pointer type.
	_, dropOnPtr := any(&zero).(Dropper)
	_, dropOnValue := any(zero).(Dropper)
	_, cloneOnPtr := any(&zero).(Cloner[T])
	_, cloneOnValue := any(zero).(Cloner[T])
	_, eqOnPtr := any(&zero).(ord.Equaler[T])
	_, eqOnValue := any(zero).(ord.Equaler[T])
	_, strongOnPtr := any(&zero).(ord.StrongOrdered[T])
	_, strongOnValue := any(zero).(ord.StrongOrdered[T])
	_, weakOnPtr := any(&zero).(ord.WeakOrdered[T])
	_, weakOnValue := any(zero).(ord.WeakOrdered[T])
	_, partialOnPtr := any(&zero).(ord.PartialOrdered[T])
	_, partialOnValue := any(zero).(ord.PartialOrdered[T])

	hasDrop := dropOnPtr || dropOnValue
	hasClone := cloneOnPtr || cloneOnValue
	hasEqualer := eqOnPtr || eqOnValue
	hasStrong := strongOnPtr || strongOnValue
	hasWeak := weakOnPtr || weakOnValue
	hasPartial := partialOnPtr || partialOnValue

	// A declared ordering interface overrides the kind's built-in order:
	// a string-kinded type with only WeakCmp orders weakly, not through
	// the lexicographic builtin.
	declaredOrder := hasStrong || hasWeak || hasPartial

	caps := capSet{
		copy:   !hasClone && !hasDrop,
		eq:     hasEqualer || typ.Comparable(),
		strong: hasStrong || (!declaredOrder && (intKind || uintKind || stringKind)),
	}
	caps.clone = caps.copy || hasClone
	caps.weak = caps.strong || hasWeak
	caps.partial = caps.weak || hasPartial || (!declaredOrder && floatKind)

	nilable := false
	switch kind {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map,
		reflect.Pointer, reflect.Slice:
		nilable = true
	}

	convert := func(op string, v any) T {
		if t, ok := v.(T); ok {
			return t
		}
		if v == nil {
			if nilable {
				var z T
				return z
			}
			violate(op, PrecondBadValue, "cannot use untyped nil as %v", typ)
		}
		rv := reflect.ValueOf(v)
		if rv.Type().ConvertibleTo(typ) {
			return rv.Convert(typ).Interface().(T)
		}
		violate(op, PrecondBadValue, "cannot use %T as %v", v, typ)
		panic("unreachable")
	}

	both := func(op string, a, b any) (*T, *T) {
		pa, ok1 := a.(*T)
		pb, ok2 := b.(*T)
		if !ok1 || !ok2 {
			violate(op, PrecondIncompatible, "payload slot is not %v", typ)
		}
		return pa, pb
	}

	spec := SlotSpec{
		typ:  typ,
		caps: caps,
		box: func(op string, v any) any {
			t := convert(op, v)
			return &t
		},
		assign: func(op string, boxed, v any) {
			*boxed.(*T) = convert(op, v)
		},
		copyBox: func(boxed any) any {
			v := *boxed.(*T)
			return &v
		},
		render: func(boxed any) string {
			p := boxed.(*T)
			if s, ok := any(*p).(fmt.Stringer); ok {
				return s.String()
			}
			if s, ok := any(p).(fmt.Stringer); ok {
				return s.String()
			}
			return fmt.Sprintf("%v", *p)
		},
	}

	switch {
	case dropOnPtr:
		spec.drop = func(boxed any) { any(boxed.(*T)).(Dropper).Drop() }
	case dropOnValue:
		spec.drop = func(boxed any) { any(*boxed.(*T)).(Dropper).Drop() }
	default:
		spec.drop = func(any) {}
	}

	switch {
	case cloneOnPtr:
		spec.cloneBox = func(boxed any) any {
			v := any(boxed.(*T)).(Cloner[T]).Clone()
			return &v
		}
	case cloneOnValue:
		spec.cloneBox = func(boxed any) any {
			v := any(*boxed.(*T)).(Cloner[T]).Clone()
			return &v
		}
	default:
		spec.cloneBox = spec.copyBox
	}

	switch {
	case eqOnPtr:
		spec.eq = func(op string, a, b any) bool {
			pa, pb := both(op, a, b)
			return any(pa).(ord.Equaler[T]).Equal(*pb)
		}
	case eqOnValue:
		spec.eq = func(op string, a, b any) bool {
			pa, pb := both(op, a, b)
			return any(*pa).(ord.Equaler[T]).Equal(*pb)
		}
	default:
		spec.eq = func(op string, a, b any) bool {
			pa, pb := both(op, a, b)
			return any(*pa) == any(*pb)
		}
	}

	builtinCmp := func(x, y T) ord.Ordering {
		rx, ry := reflect.ValueOf(x), reflect.ValueOf(y)
		switch {
		case intKind:
			return ord.Compare(rx.Int(), ry.Int())
		case uintKind:
			return ord.Compare(rx.Uint(), ry.Uint())
		case stringKind:
			return ord.Compare(rx.String(), ry.String())
		}
		panic(&Violation{Op: "compare", Precondition: PrecondCapability,
			Detail: fmt.Sprintf("%v has no built-in order", typ)})
	}

	switch {
	case strongOnPtr:
		spec.cmp = func(op string, a, b any) ord.Ordering {
			pa, pb := both(op, a, b)
			return any(pa).(ord.StrongOrdered[T]).Cmp(*pb)
		}
	case strongOnValue:
		spec.cmp = func(op string, a, b any) ord.Ordering {
			pa, pb := both(op, a, b)
			return any(*pa).(ord.StrongOrdered[T]).Cmp(*pb)
		}
	case caps.strong:
		spec.cmp = func(op string, a, b any) ord.Ordering {
			pa, pb := both(op, a, b)
			return builtinCmp(*pa, *pb)
		}
	default:
		spec.cmp = func(op string, a, b any) ord.Ordering {
			violate(op, PrecondCapability, "%v has no strong ordering", typ)
			panic("unreachable")
		}
	}

	switch {
	case caps.strong:
		spec.weakCmp = spec.cmp
	case weakOnPtr:
		spec.weakCmp = func(op string, a, b any) ord.Ordering {
			pa, pb := both(op, a, b)
			return any(pa).(ord.WeakOrdered[T]).WeakCmp(*pb)
		}
	case weakOnValue:
		spec.weakCmp = func(op string, a, b any) ord.Ordering {
			pa, pb := both(op, a, b)
			return any(*pa).(ord.WeakOrdered[T]).WeakCmp(*pb)
		}
	default:
		spec.weakCmp = func(op string, a, b any) ord.Ordering {
			violate(op, PrecondCapability, "%v has no weak ordering", typ)
			panic("unreachable")
		}
	}

	switch {
	case caps.weak:
		weak := spec.weakCmp
		spec.partialCmp = func(op string, a, b any) (ord.Ordering, bool) {
			return weak(op, a, b), true
		}
	case partialOnPtr:
		spec.partialCmp = func(op string, a, b any) (ord.Ordering, bool) {
			pa, pb := both(op, a, b)
			return any(pa).(ord.PartialOrdered[T]).PartialCmp(*pb)
		}
	case partialOnValue:
		spec.partialCmp = func(op string, a, b any) (ord.Ordering, bool) {
			pa, pb := both(op, a, b)
			return any(*pa).(ord.PartialOrdered[T]).PartialCmp(*pb)
		}
	case floatKind:
		spec.partialCmp = func(op string, a, b any) (ord.Ordering, bool) {
			pa, pb := both(op, a, b)
			x := reflect.ValueOf(*pa).Float()
			y := reflect.ValueOf(*pb).Float()
			if x != x || y != y { // NaN is unordered
				return ord.Equal, false
			}
			return ord.Compare(x, y), true
		}
	default:
		spec.partialCmp = func(op string, a, b any) (ord.Ordering, bool) {
			violate(op, PrecondCapability, "%v has no ordering at all", typ)
			panic("unreachable")
		}
	}

	return spec
}
