package choice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/choicetype/choice/ord"
)

// version orders strongly through an explicit Cmp method.
type version struct {
	major, minor int
}

func (v version) Cmp(o version) ord.Ordering {
	if c := ord.Compare(v.major, o.major); c != ord.Equal {
		return c
	}
	return ord.Compare(v.minor, o.minor)
}

// folded compares case-insensitively: distinct representations can be
// equivalent, so the order is weak rather than strong.
type folded string

func (f folded) WeakCmp(o folded) ord.Ordering {
	return ord.Compare(strings.ToLower(string(f)), strings.ToLower(string(o)))
}

func (f folded) Equal(o folded) bool { return f.WeakCmp(o) == ord.Equal }

// approx is ordered only within the same scale bucket.
type approx struct {
	scale int
	v     float64
}

func (a approx) PartialCmp(o approx) (ord.Ordering, bool) {
	if a.scale != o.scale {
		return ord.Equal, false
	}
	return ord.Compare(a.v, o.v), true
}

// ptrDrop takes its Drop on the pointer receiver.
type ptrDrop struct {
	n *int
}

func (p *ptrDrop) Drop() { *p.n++ }

func TestSlotBuiltinCapabilities(t *testing.T) {
	tests := []struct {
		name string
		spec SlotSpec
		want capSet
	}{
		{
			name: "int",
			spec: Slot[int](),
			want: capSet{copy: true, clone: true, eq: true, strong: true, weak: true, partial: true},
		},
		{
			name: "uint16",
			spec: Slot[uint16](),
			want: capSet{copy: true, clone: true, eq: true, strong: true, weak: true, partial: true},
		},
		{
			name: "string",
			spec: Slot[string](),
			want: capSet{copy: true, clone: true, eq: true, strong: true, weak: true, partial: true},
		},
		{
			name: "float64",
			spec: Slot[float64](),
			want: capSet{copy: true, clone: true, eq: true, partial: true},
		},
		{
			name: "byte slice",
			spec: Slot[[]byte](),
			want: capSet{copy: true, clone: true},
		},
		{
			name: "comparable struct",
			spec: Slot[struct{ A, B int }](),
			want: capSet{copy: true, clone: true, eq: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.caps)
		})
	}
}

func TestSlotInterfaceCapabilities(t *testing.T) {
	t.Run("StrongOrdered", func(t *testing.T) {
		caps := Slot[version]().caps
		assert.True(t, caps.strong)
		assert.True(t, caps.weak)
		assert.True(t, caps.partial)
		assert.True(t, caps.eq, "version is also a comparable struct")
	})

	t.Run("WeakOrdered is not strong", func(t *testing.T) {
		caps := Slot[folded]().caps
		assert.False(t, caps.strong)
		assert.True(t, caps.weak)
		assert.True(t, caps.partial)
	})

	t.Run("PartialOrdered only", func(t *testing.T) {
		caps := Slot[approx]().caps
		assert.False(t, caps.strong)
		assert.False(t, caps.weak)
		assert.True(t, caps.partial)
	})

	t.Run("pointer receiver Drop is detected", func(t *testing.T) {
		caps := Slot[ptrDrop]().caps
		assert.False(t, caps.copy)
		assert.False(t, caps.clone)
	})
}

func TestStrongOrderedInterfaceIsUsed(t *testing.T) {
	s := New(Of[version](ready), Unit(pending))
	require.True(t, s.CanCompare())

	a := s.With(ready, version{major: 1, minor: 9})
	b := s.With(ready, version{major: 2, minor: 0})
	assert.Equal(t, ord.Less, a.Compare(b))
	assert.Equal(t, ord.Equal, a.Compare(s.With(ready, version{major: 1, minor: 9})))
}

func TestWeakOrderingAndEqualerInterface(t *testing.T) {
	s := New(Of[folded](ready), Unit(pending))
	require.False(t, s.CanCompare())
	require.True(t, s.CanCompareWeak())

	a := s.With(ready, folded("Alpha"))
	b := s.With(ready, folded("alpha"))
	assert.Equal(t, ord.Equal, a.CompareWeak(b),
		"case-insensitive equivalence through WeakCmp")
	assert.True(t, a.Equal(b), "Equal method takes precedence over == ")
	assert.Equal(t, ord.Less, a.CompareWeak(s.With(ready, folded("beta"))))
}

func TestPartialOrderingInterface(t *testing.T) {
	s := New(Of[approx](ready), Unit(pending))

	sameScale := s.With(ready, approx{scale: 1, v: 2.0})
	assert.Equal(t, ord.Greater,
		sameScale.ComparePartial(s.With(ready, approx{scale: 1, v: 1.0})).Unwrap())

	other := s.With(ready, approx{scale: 2, v: 0.5})
	assert.True(t, sameScale.ComparePartial(other).IsNone(),
		"different scale buckets are unordered")
}

func TestPointerReceiverDropRuns(t *testing.T) {
	drops := 0
	s := New(Of[ptrDrop](ready), Unit(pending))

	c := s.With(ready, ptrDrop{n: &drops})
	c.Destroy()
	assert.Equal(t, 1, drops)
}
