package choice

// Optional wraps a Choice by value and represents "no value" with the
// Choice's reserved never-constructed index pattern instead of a separate
// presence flag — the niche optimization. Consequently an Optional is
// exactly the size of the Choice it wraps; the zero value is empty.
//
// This wrapper is specific to Choice, where the reserved pattern already
// exists. For arbitrary payloads use the option package, which carries a
// conventional presence flag.
type Optional[D comparable] struct {
	c Choice[D]
}

// None returns an empty Optional with no shape attached. Shape.None
// produces an empty Optional that remembers its layout.
func None[D comparable]() Optional[D] {
	return Optional[D]{}
}

// WrapSome moves a live Choice into an Optional. The source is left
// moved-from; the payload transfers without any drop or construct hooks
// running.
func WrapSome[D comparable](c *Choice[D]) Optional[D] {
	c.mustLive("WrapSome")
	o := Optional[D]{c: Choice[D]{shape: c.shape, idx: c.idx, block: c.block}}
	c.idx = c.shape.width.Moved()
	c.block = nil
	return o
}

// IsSome reports whether the Optional holds a value.
func (o *Optional[D]) IsSome() bool {
	return o.c.shape != nil && !o.c.shape.width.IsSentinel(o.c.idx)
}

// IsNone reports whether the Optional is empty.
func (o *Optional[D]) IsNone() bool { return !o.IsSome() }

// Get returns the held Choice, which remains owned by the Optional. It
// panics with a *Violation if the Optional is empty.
func (o *Optional[D]) Get() *Choice[D] {
	if !o.IsSome() {
		violate("Optional.Get", PrecondEmptyOptional, "")
	}
	return &o.c
}

// Take moves the held Choice out, leaving the Optional empty via the
// never-constructed index pattern.
func (o *Optional[D]) Take() *Choice[D] {
	if !o.IsSome() {
		violate("Optional.Take", PrecondEmptyOptional, "")
	}
	out := &Choice[D]{shape: o.c.shape, idx: o.c.idx, block: o.c.block}
	o.c.idx = o.c.shape.width.Never()
	o.c.block = nil
	return out
}

// String renders the Optional for debugging.
func (o *Optional[D]) String() string {
	if !o.IsSome() {
		return "None"
	}
	return "Some(" + o.c.String() + ")"
}
