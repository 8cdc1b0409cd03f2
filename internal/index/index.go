// Package index selects the integer width used to track which alternative
// of a tagged union is live, and defines the two reserved sentinel bit
// patterns carved out of that width.
//
// A union with n alternatives needs n+2 representable states: one per
// alternative, one "never" state (the all-ones pattern, reserved so an
// enclosing optional wrapper can mark itself empty without extra storage)
// and one "moved-from" state (all ones minus one, the use-after-move guard).
// Both sentinels sit above every valid alternative index, so a plain range
// check distinguishes live values from dead ones.
package index

// Width is the number of bytes used for the alternative index.
type Width uint8

const (
	W8  Width = 1
	W16 Width = 2
	W32 Width = 4
	W64 Width = 8
)

// Select returns the narrowest width whose value range covers count
// alternatives plus the two sentinels. The second result is false when no
// width is wide enough (count exceeds 2^64 - 2) or count is not positive.
func Select(count int) (Width, bool) {
	if count < 1 {
		return 0, false
	}
	n := uint64(count)
	switch {
	case n <= 1<<8-2:
		return W8, true
	case n <= 1<<16-2:
		return W16, true
	case n <= 1<<32-2:
		return W32, true
	case n <= (1<<64-1)-1:
		return W64, true
	}
	return 0, false
}

// Bits returns the width in bits.
func (w Width) Bits() int { return int(w) * 8 }

// Never is the all-ones pattern of the width. It can never be a valid
// alternative index, which is what makes it usable as an enclosing
// optional's empty marker.
func (w Width) Never() uint64 {
	if w == W64 {
		return ^uint64(0)
	}
	return 1<<(uint(w)*8) - 1
}

// Moved is the use-after-move sentinel, one below Never.
func (w Width) Moved() uint64 {
	return w.Never() - 1
}

// IsSentinel reports whether v is one of the width's reserved patterns.
func (w Width) IsSentinel(v uint64) bool {
	return v == w.Never() || v == w.Moved()
}

// Holds reports whether v is a valid alternative index for a union with
// count alternatives under this width.
func (w Width) Holds(v uint64, count int) bool {
	return v < uint64(count) && !w.IsSentinel(v)
}
