package choice

import (
	"github.com/choicetype/choice/internal/index"
	"github.com/choicetype/choice/internal/storage"
	"github.com/choicetype/choice/ord"
)

// Variant pairs one discriminant with its ordered payload slot group.
type Variant[D comparable] struct {
	tag   D
	slots []SlotSpec
}

// Tag returns the variant's discriminant.
func (v Variant[D]) Tag() D { return v.tag }

// Unit declares a variant that carries no payload.
func Unit[D comparable](tag D) Variant[D] {
	return Variant[D]{tag: tag}
}

// Of declares a variant carrying a single payload value of type T.
func Of[T any, D comparable](tag D) Variant[D] {
	return Variant[D]{tag: tag, slots: []SlotSpec{Slot[T]()}}
}

// Group declares a variant carrying an ordered group of payload values.
func Group[D comparable](tag D, slots ...SlotSpec) Variant[D] {
	return Variant[D]{tag: tag, slots: slots}
}

// Shape is the binder's product: the fixed, ordered pairing of
// discriminants with payload groups that every Choice value of this
// configuration shares. It owns the storage dispatch table, the selected
// index width and the derived capability set.
//
// Build one with New, normally in a package-level variable initializer so
// that binder violations surface at program start, the closest Go
// equivalent of a build failure.
type Shape[D comparable] struct {
	tags  []D
	pos   map[D]int
	specs [][]SlotSpec
	table *storage.Table
	caps  capSet
	width index.Width
}

// New builds a Shape from the declared variants, in declaration order.
// The discriminant type being a single equality-comparable type is enforced
// by the compiler through the type parameter; New panics with a *Violation
// if the variant list is empty, a discriminant repeats, or the variant
// count exceeds the representable index range.
func New[D comparable](variants ...Variant[D]) *Shape[D] {
	if len(variants) == 0 {
		violate("New", PrecondEmptyShape, "")
	}
	width, ok := index.Select(len(variants))
	if !ok {
		violate("New", PrecondTooManyVariants, "%d variants", len(variants))
	}

	s := &Shape[D]{
		tags:  make([]D, 0, len(variants)),
		pos:   make(map[D]int, len(variants)),
		specs: make([][]SlotSpec, 0, len(variants)),
		width: width,
		caps:  allCaps(),
	}
	ops := make([]storage.Ops, len(variants))
	for i, v := range variants {
		if _, dup := s.pos[v.tag]; dup {
			violate("New", PrecondDuplicateTag, "%v", v.tag)
		}
		s.pos[v.tag] = i
		s.tags = append(s.tags, v.tag)
		s.specs = append(s.specs, v.slots)
		for _, sl := range v.slots {
			s.caps = s.caps.and(sl.caps)
		}
		ops[i] = buildOps(v.slots)
	}
	s.table = storage.NewTable(ops)
	return s
}

// buildOps assembles the dispatchable operations for one variant from its
// slot specs. The group operations iterate the slots in order; comparisons
// are lexicographic over the group.
func buildOps(slots []SlotSpec) storage.Ops {
	return storage.Ops{
		Arity: len(slots),
		Construct: func(dst, vals []any) {
			for j, sl := range slots {
				dst[j] = sl.box(opConstruct, vals[j])
			}
		},
		Assign: func(dst, vals []any) {
			for j, sl := range slots {
				sl.assign(opAssign, dst[j], vals[j])
			}
		},
		Destroy: func(dst []any) {
			for j, sl := range slots {
				sl.drop(dst[j])
			}
		},
		CopyInto: func(dst, src []any) {
			for j, sl := range slots {
				dst[j] = sl.copyBox(src[j])
			}
		},
		CloneInto: func(dst, src []any) {
			for j, sl := range slots {
				dst[j] = sl.cloneBox(src[j])
			}
		},
		Eq: func(a, b []any) bool {
			for j, sl := range slots {
				if !sl.eq(opCompare, a[j], b[j]) {
					return false
				}
			}
			return true
		},
		Cmp: func(a, b []any) ord.Ordering {
			for j, sl := range slots {
				if o := sl.cmp(opCompare, a[j], b[j]); o != ord.Equal {
					return o
				}
			}
			return ord.Equal
		},
		WeakCmp: func(a, b []any) ord.Ordering {
			for j, sl := range slots {
				if o := sl.weakCmp(opCompare, a[j], b[j]); o != ord.Equal {
					return o
				}
			}
			return ord.Equal
		},
		PartialCmp: func(a, b []any) (ord.Ordering, bool) {
			for j, sl := range slots {
				o, ok := sl.partialCmp(opCompare, a[j], b[j])
				if !ok {
					return ord.Equal, false
				}
				if o != ord.Equal {
					return o, true
				}
			}
			return ord.Equal, true
		},
	}
}

const (
	opConstruct = "construct"
	opAssign    = "assign"
	opCompare   = "compare"
)

// Len returns the number of declared variants.
func (s *Shape[D]) Len() int { return len(s.tags) }

// Tags returns the discriminants in declaration order.
func (s *Shape[D]) Tags() []D {
	out := make([]D, len(s.tags))
	copy(out, s.tags)
	return out
}

// IndexOf maps a discriminant back to its declared position.
func (s *Shape[D]) IndexOf(tag D) (int, bool) {
	i, ok := s.pos[tag]
	return i, ok
}

// Arity returns the payload group size of the given discriminant.
func (s *Shape[D]) Arity(tag D) int {
	return s.table.Arity(s.mustIndex("Arity", tag))
}

// CanCopy reports whether every payload type across all variants can be
// blindly duplicated.
func (s *Shape[D]) CanCopy() bool { return s.caps.copy }

// CanClone reports whether every payload type can be duplicated, through
// either copying or a Clone method.
func (s *Shape[D]) CanClone() bool { return s.caps.clone }

// CanEqual reports whether every payload type supports equality.
func (s *Shape[D]) CanEqual() bool { return s.caps.eq }

// CanCompare reports whether every payload type supports a strong order.
func (s *Shape[D]) CanCompare() bool { return s.caps.strong }

// CanCompareWeak reports whether every payload type supports at least a
// weak order.
func (s *Shape[D]) CanCompareWeak() bool { return s.caps.weak }

// CanComparePartial reports whether every payload type supports at least a
// partial order.
func (s *Shape[D]) CanComparePartial() bool { return s.caps.partial }

// With constructs a Choice with the given discriminant active. The values
// must match the discriminant's payload group in count and convert to its
// types; anything else is a caller defect and panics with a *Violation.
func (s *Shape[D]) With(tag D, values ...any) *Choice[D] {
	i := s.mustIndex("With", tag)
	s.checkArity("With", i, len(values))
	c := &Choice[D]{shape: s, idx: uint64(i), block: s.table.NewBlock()}
	s.table.Construct(i, c.block, values)
	return c
}

// Make binds a deferred-construction marker to this shape.
func (s *Shape[D]) Make(m Marker[D]) *Choice[D] {
	return s.With(m.tag, m.values...)
}

// None returns an empty Optional carrying this shape's layout, so the
// niche index pattern is established even before any value exists.
func (s *Shape[D]) None() Optional[D] {
	return Optional[D]{c: Choice[D]{shape: s, idx: s.width.Never()}}
}

func (s *Shape[D]) mustIndex(op string, tag D) int {
	i, ok := s.pos[tag]
	if !ok {
		violate(op, PrecondUndeclaredTag, "%v", tag)
	}
	return i
}

func (s *Shape[D]) checkArity(op string, i, n int) {
	if want := s.table.Arity(i); want != n {
		violate(op, PrecondArity, "discriminant %v wants %d values, got %d",
			s.tags[i], want, n)
	}
}
