package choice

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/choicetype/choice/internal/storage"
	"github.com/choicetype/choice/option"
	"github.com/choicetype/choice/ord"
)

// Choice holds exactly one of its Shape's alternatives: the active
// discriminant's payload group lives in the slot block, and the index
// records which discriminant that is. Besides the declared alternatives the
// index can hold two reserved states: never-constructed (the niche an
// enclosing Optional reuses as its empty marker) and moved-from (the
// use-after-move guard). Any non-destructive use of a value in either
// reserved state panics with a *Violation.
//
// A Choice behaves as a plain owned value with no internal locking;
// concurrent mutation needs external synchronization. Duplicate with Copy
// or Clone and transfer with Take or Into — assigning the struct itself
// would alias the payload slots.
type Choice[D comparable] struct {
	shape *Shape[D]
	idx   uint64
	block storage.Block
}

// Which returns the active discriminant. It panics if the value was moved
// from or never constructed.
func (c *Choice[D]) Which() D {
	c.mustLive("Which")
	return c.shape.tags[c.idx]
}

// Is reports whether tag is declared by the shape and currently active.
func (c *Choice[D]) Is(tag D) bool {
	c.mustLive("Is")
	i, ok := c.shape.pos[tag]
	return ok && uint64(i) == c.idx
}

// Set replaces the held alternative. When tag is already active the payload
// is assigned in place through the live boxes, with no destroy and no
// construct; otherwise the current payload is destroyed, the index
// switches, and the new payload is constructed. Setting a moved-from value
// is allowed and revives it.
func (c *Choice[D]) Set(tag D, values ...any) {
	if c == nil || c.shape == nil {
		violate("Set", PrecondNeverConstructed, "")
	}
	i := c.shape.mustIndex("Set", tag)
	c.shape.checkArity("Set", i, len(values))
	if uint64(i) == c.idx {
		c.shape.table.Assign(i, c.block, values)
		return
	}
	if c.block == nil {
		c.block = c.shape.table.NewBlock()
	}
	if !c.sentinel() {
		c.shape.table.Destroy(int(c.idx), c.block)
	}
	c.idx = uint64(i)
	c.shape.table.Construct(i, c.block, values)
}

// Take moves the value out, returning the new owner. The receiver is left
// in the moved-from state; everything except Set and Destroy panics on it
// afterwards. The payload itself is transferred, not rebuilt, so no drop or
// construct hooks run.
func (c *Choice[D]) Take() *Choice[D] {
	c.mustLive("Take")
	out := &Choice[D]{shape: c.shape, idx: c.idx, block: c.block}
	c.idx = c.shape.width.Moved()
	c.block = nil
	return out
}

// Copy returns an independent shallow duplicate. It panics unless every
// payload type across the shape is blindly copyable (see Shape.CanCopy).
func (c *Choice[D]) Copy() *Choice[D] {
	c.mustLive("Copy")
	if !c.shape.caps.copy {
		violate("Copy", PrecondCapability, "a payload type owns resources; use Clone")
	}
	out := &Choice[D]{shape: c.shape, idx: c.idx, block: c.shape.table.NewBlock()}
	c.shape.table.CopyInto(int(c.idx), out.block, c.block)
	return out
}

// Clone returns an independent duplicate, using each payload type's Clone
// method where it has one and plain copying otherwise. It panics unless
// every payload type is cloneable (see Shape.CanClone).
func (c *Choice[D]) Clone() *Choice[D] {
	c.mustLive("Clone")
	if !c.shape.caps.clone {
		violate("Clone", PrecondCapability, "a payload type has neither copy nor Clone")
	}
	out := &Choice[D]{shape: c.shape, idx: c.idx, block: c.shape.table.NewBlock()}
	c.shape.table.CloneInto(int(c.idx), out.block, c.block)
	return out
}

// Destroy runs the active payload's Drop hooks and leaves the value in the
// moved-from state. Destroying a moved-from or never-constructed value is a
// no-op: the payload either was transferred elsewhere or never existed, and
// must not be dropped twice.
func (c *Choice[D]) Destroy() {
	if c == nil || c.shape == nil || c.sentinel() {
		return
	}
	c.shape.table.Destroy(int(c.idx), c.block)
	c.idx = c.shape.width.Moved()
}

// Payload returns the active payload group's values in slot order. The
// given tag must be the active discriminant; a unit variant yields an empty
// result.
func (c *Choice[D]) Payload(tag D) []any {
	i := c.mustActive("Payload", tag)
	n := c.shape.table.Arity(i)
	out := make([]any, n)
	for j := 0; j < n; j++ {
		out[j] = reflect.ValueOf(c.block[j]).Elem().Interface()
	}
	return out
}

// At returns the payload value at slot position i of the active
// discriminant's group.
func (c *Choice[D]) At(tag D, i int) any {
	v := c.mustActive("At", tag)
	if n := c.shape.table.Arity(v); i < 0 || i >= n {
		violate("At", PrecondArity, "slot %d of %d", i, n)
	}
	return reflect.ValueOf(c.block[i]).Elem().Interface()
}

// IntoValues consumes the Choice and extracts the active payload group by
// value. The receiver is left moved-from without its Drop hooks running;
// ownership of the payload passes to the caller.
func (c *Choice[D]) IntoValues(tag D) []any {
	out := c.Payload(tag)
	c.idx = c.shape.width.Moved()
	c.block = nil
	return out
}

// Equal reports whether two Choices hold the same alternative with equal
// payloads. Both shapes must be equality-capable; the other Choice may
// belong to a structurally comparable sibling shape. Comparing a moved-from
// or never-constructed value panics.
func (c *Choice[D]) Equal(o *Choice[D]) bool {
	c.mustLive("Equal")
	o.mustLive("Equal")
	if !c.shape.caps.eq || !o.shape.caps.eq {
		violate("Equal", PrecondCapability, "a payload type lacks equality")
	}
	if c.idx != o.idx {
		return false
	}
	c.checkCompatible("Equal", o)
	return c.shape.table.Eq(int(c.idx), c.block, o.block)
}

// Compare strongly orders two Choices. Differing discriminants order by
// declared sequence position regardless of payload; equal discriminants
// order by payload group. Both shapes must be strong-order capable.
func (c *Choice[D]) Compare(o *Choice[D]) ord.Ordering {
	c.mustLive("Compare")
	o.mustLive("Compare")
	if !c.shape.caps.strong || !o.shape.caps.strong {
		violate("Compare", PrecondCapability, "a payload type lacks strong ordering")
	}
	if c.idx != o.idx {
		return ord.Compare(c.idx, o.idx)
	}
	c.checkCompatible("Compare", o)
	return c.shape.table.Cmp(int(c.idx), c.block, o.block)
}

// CompareWeak weakly orders two Choices, with the same discriminant
// tie-break as Compare. Both shapes must be at least weak-order capable.
func (c *Choice[D]) CompareWeak(o *Choice[D]) ord.Ordering {
	c.mustLive("CompareWeak")
	o.mustLive("CompareWeak")
	if !c.shape.caps.weak || !o.shape.caps.weak {
		violate("CompareWeak", PrecondCapability, "a payload type lacks weak ordering")
	}
	if c.idx != o.idx {
		return ord.Compare(c.idx, o.idx)
	}
	c.checkCompatible("CompareWeak", o)
	return c.shape.table.WeakCmp(int(c.idx), c.block, o.block)
}

// ComparePartial partially orders two Choices. Differing discriminants are
// always ordered by declared position; equal discriminants may be unordered
// when a payload pair is, in which case the result is None.
func (c *Choice[D]) ComparePartial(o *Choice[D]) option.Option[ord.Ordering] {
	c.mustLive("ComparePartial")
	o.mustLive("ComparePartial")
	if !c.shape.caps.partial || !o.shape.caps.partial {
		violate("ComparePartial", PrecondCapability, "a payload type lacks partial ordering")
	}
	if c.idx != o.idx {
		return option.Some(ord.Compare(c.idx, o.idx))
	}
	c.checkCompatible("ComparePartial", o)
	if res, ok := c.shape.table.PartialCmp(int(c.idx), c.block, o.block); ok {
		return option.Some(res)
	}
	return option.None[ord.Ordering]()
}

// String renders the value for debugging: the discriminant followed by its
// payload values, using each payload's own Stringer when it has one. The
// reserved states render as text instead of panicking so that values remain
// printable mid-diagnosis.
func (c *Choice[D]) String() string {
	if c == nil || c.shape == nil || c.idx == c.shape.width.Never() {
		return "Choice(never)"
	}
	if c.idx == c.shape.width.Moved() {
		return "Choice(moved)"
	}
	i := int(c.idx)
	specs := c.shape.specs[i]
	if len(specs) == 0 {
		return fmt.Sprintf("Choice(%v)", c.shape.tags[i])
	}
	parts := make([]string, len(specs))
	for j, sl := range specs {
		parts[j] = sl.render(c.block[j])
	}
	return fmt.Sprintf("Choice(%v: %s)", c.shape.tags[i], strings.Join(parts, ", "))
}

// Get extracts the single payload value of tag, which must be the active
// discriminant of a one-value payload group.
func Get[T any, D comparable](c *Choice[D], tag D) T {
	return *payloadPtr[T](c, "Get", tag)
}

// GetPtr returns a pointer to the live payload value of tag, for in-place
// mutation. The pointer stays valid until the alternative is replaced or
// the value is destroyed or moved.
func GetPtr[T any, D comparable](c *Choice[D], tag D) *T {
	return payloadPtr[T](c, "GetPtr", tag)
}

// Into consumes the Choice and extracts the single payload value of tag by
// value. The source is left moved-from; its Drop hooks do not run because
// ownership of the payload transfers with the return value.
func Into[T any, D comparable](c *Choice[D], tag D) T {
	v := *payloadPtr[T](c, "Into", tag)
	c.idx = c.shape.width.Moved()
	c.block = nil
	return v
}

func payloadPtr[T any, D comparable](c *Choice[D], op string, tag D) *T {
	i := c.mustActive(op, tag)
	if n := c.shape.table.Arity(i); n != 1 {
		violate(op, PrecondArity, "payload group of %v has %d values", tag, n)
	}
	p, ok := c.block[0].(*T)
	if !ok {
		violate(op, PrecondBadValue, "payload of %v is %v, not %v",
			tag, c.shape.specs[i][0].typ, reflect.TypeOf((*T)(nil)).Elem())
	}
	return p
}

func (c *Choice[D]) sentinel() bool {
	return c.shape.width.IsSentinel(c.idx)
}

func (c *Choice[D]) mustLive(op string) {
	if c == nil || c.shape == nil || c.idx == c.shape.width.Never() {
		violate(op, PrecondNeverConstructed, "")
	}
	if c.idx == c.shape.width.Moved() {
		violate(op, PrecondMoved, "")
	}
}

// mustActive guards typed access: the value must be live and tag must be
// the active discriminant. Returns the active index.
func (c *Choice[D]) mustActive(op string, tag D) int {
	c.mustLive(op)
	i := c.shape.mustIndex(op, tag)
	if uint64(i) != c.idx {
		violate(op, PrecondWrongVariant, "want %v, active %v",
			tag, c.shape.tags[c.idx])
	}
	return i
}

// checkCompatible guards cross-shape binary operations: with equal active
// indices the two payload groups must at least agree on arity. Slot-level
// type mismatches are caught by the dispatch closures.
func (c *Choice[D]) checkCompatible(op string, o *Choice[D]) {
	if c.shape == o.shape {
		return
	}
	i := int(c.idx)
	if i >= o.shape.table.Len() || c.shape.table.Arity(i) != o.shape.table.Arity(i) {
		violate(op, PrecondIncompatible, "payload groups differ at position %d", i)
	}
}
