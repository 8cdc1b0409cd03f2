package choice

// Marker is a deferred construction of a Choice: it names the discriminant
// and captures the raw payload values, without committing to a Shape. Call
// sites that cannot name the full configuration hand a Marker to code that
// can; value conversion and validation happen at Bind time.
type Marker[D comparable] struct {
	tag    D
	values []any
}

// Tagged captures a discriminant and its payload values for later binding.
func Tagged[D comparable](tag D, values ...any) Marker[D] {
	return Marker[D]{tag: tag, values: values}
}

// Tag returns the discriminant the marker was built with.
func (m Marker[D]) Tag() D { return m.tag }

// Bind constructs the Choice against a concrete Shape. It panics with a
// *Violation if the discriminant is undeclared or the captured values do
// not fit its payload group, exactly as Shape.With would.
func (m Marker[D]) Bind(s *Shape[D]) *Choice[D] {
	return s.With(m.tag, m.values...)
}
