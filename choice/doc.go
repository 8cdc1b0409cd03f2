// Package choice implements a runtime-checked tagged union: a value that
// holds exactly one of a fixed set of named alternatives, each carrying
// zero or more payload values, in one slot block sized to the largest
// alternative.
//
// A Shape binds discriminant values to payload groups once, normally in a
// package-level initializer:
//
//	type State int
//	const (
//		Ready State = iota
//		Pending
//	)
//
//	var states = choice.New(
//		choice.Of[int](Ready),
//		choice.Unit(Pending),
//	)
//
// Values are then constructed, inspected and mutated through the Shape:
//
//	x := states.With(Ready, 5)
//	x.Which()                  // Ready
//	choice.Get[int](x, Ready)  // 5
//	x.Set(Pending)             // destroys the int payload, activates Pending
//
// Misuse — accessing the wrong alternative, using a value after it was
// moved from, constructing with values that do not fit the payload group —
// is a caller defect and panics with a *Violation. Nothing in this package
// returns an error.
//
// Capabilities (copy, clone, equality, the three ordering tiers) are
// derived per payload type when the Shape is built and gate the
// corresponding operations; see the Can methods on Shape and the
// interfaces in package ord.
package choice
