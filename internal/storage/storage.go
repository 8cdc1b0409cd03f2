// Package storage hosts the payload slots of a tagged union and dispatches
// per-alternative operations by runtime index.
//
// A Table is the dispatch side: one Ops entry per alternative, built once
// from the alternative's payload types and shared by every value of the
// same union layout. A Block is the value side: a slot slice sized to the
// largest payload group, holding at most one live group at a time. Slots
// contain boxed pointers to the payload values, which is what makes
// same-alternative assignment a true in-place write.
//
// The Table trusts its caller: binary operations require the same
// alternative to be live in both blocks, and the index is used to subscript
// the ops slice directly. Guarding those preconditions is the facade's job.
package storage

import "github.com/choicetype/choice/ord"

// Ops bundles the dispatchable operations for one alternative. Every
// function field is non-nil; operations whose capability an alternative's
// payload types lack are installed as panicking stubs by the layer that
// builds the table, and gated there before dispatch.
type Ops struct {
	// Arity is the number of payload slots the alternative occupies.
	Arity int

	// Construct boxes vals into dst[:Arity]. Pre-existing slot contents
	// are overwritten without being destroyed.
	Construct func(dst, vals []any)

	// Assign writes vals through the existing boxes in slots[:Arity].
	Assign func(slots, vals []any)

	// Destroy runs the payload values' drop hooks. It does not clear the
	// slots; the Table does that after dispatch.
	Destroy func(slots []any)

	// CopyInto fills dst[:Arity] with fresh boxes holding shallow copies
	// of the values in src.
	CopyInto func(dst, src []any)

	// CloneInto fills dst[:Arity] with fresh boxes holding independent
	// clones of the values in src.
	CloneInto func(dst, src []any)

	// Eq reports whether the payload groups in a and b are equal.
	Eq func(a, b []any) bool

	// Cmp, WeakCmp and PartialCmp order the payload groups in a and b.
	Cmp        func(a, b []any) ord.Ordering
	WeakCmp    func(a, b []any) ord.Ordering
	PartialCmp func(a, b []any) (ord.Ordering, bool)
}

// Table dispatches alternative operations by index.
type Table struct {
	ops      []Ops
	maxArity int
}

// NewTable builds a Table from one Ops entry per alternative, in
// declaration order.
func NewTable(ops []Ops) *Table {
	t := &Table{ops: ops}
	for _, op := range ops {
		if op.Arity > t.maxArity {
			t.maxArity = op.Arity
		}
	}
	return t
}

// Len returns the number of alternatives.
func (t *Table) Len() int { return len(t.ops) }

// Arity returns the payload slot count of alternative i.
func (t *Table) Arity(i int) int { return t.ops[i].Arity }

// MaxArity returns the largest payload group's slot count, which is the
// size of every Block.
func (t *Table) MaxArity() int { return t.maxArity }

// Block is the backing slot slice for one union value. It is allocated
// once and reused across alternative switches, so mutation never grows it.
type Block []any

// NewBlock allocates a Block sized to the largest alternative.
func (t *Table) NewBlock() Block {
	if t.maxArity == 0 {
		return nil
	}
	return make(Block, t.maxArity)
}

// Construct makes alternative i live in b from the given values.
func (t *Table) Construct(i int, b Block, vals []any) {
	t.ops[i].Construct(b, vals)
}

// Assign writes vals through alternative i's live boxes in b.
func (t *Table) Assign(i int, b Block, vals []any) {
	t.ops[i].Assign(b, vals)
}

// Destroy runs alternative i's drop hooks and clears the slots.
func (t *Table) Destroy(i int, b Block) {
	t.ops[i].Destroy(b)
	for j := 0; j < t.ops[i].Arity; j++ {
		b[j] = nil
	}
}

// CopyInto duplicates alternative i's payload from src into dst.
func (t *Table) CopyInto(i int, dst, src Block) {
	t.ops[i].CopyInto(dst, src)
}

// CloneInto deep-duplicates alternative i's payload from src into dst.
func (t *Table) CloneInto(i int, dst, src Block) {
	t.ops[i].CloneInto(dst, src)
}

// Eq compares alternative i's payload in a and b for equality.
func (t *Table) Eq(i int, a, b Block) bool {
	return t.ops[i].Eq(a, b)
}

// Cmp strongly orders alternative i's payload in a and b.
func (t *Table) Cmp(i int, a, b Block) ord.Ordering {
	return t.ops[i].Cmp(a, b)
}

// WeakCmp weakly orders alternative i's payload in a and b.
func (t *Table) WeakCmp(i int, a, b Block) ord.Ordering {
	return t.ops[i].WeakCmp(a, b)
}

// PartialCmp partially orders alternative i's payload in a and b. The
// second result is false when the pair is unordered.
func (t *Table) PartialCmp(i int, a, b Block) (ord.Ordering, bool) {
	return t.ops[i].PartialCmp(a, b)
}
