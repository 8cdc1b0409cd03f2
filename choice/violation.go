package choice

import "fmt"

// Precondition descriptions carried by Violation. They name what the caller
// got wrong, not what the library did about it.
const (
	PrecondNeverConstructed = "value was never constructed"
	PrecondMoved            = "value was moved from"
	PrecondWrongVariant     = "active discriminant does not match"
	PrecondUndeclaredTag    = "discriminant is not declared by the shape"
	PrecondArity            = "value count does not match the payload group"
	PrecondBadValue         = "value does not convert to the payload type"
	PrecondCapability       = "payload types lack the required capability"
	PrecondIncompatible     = "payload groups are not structurally comparable"
	PrecondDuplicateTag     = "duplicate discriminant"
	PrecondEmptyShape       = "a shape needs at least one variant"
	PrecondTooManyVariants  = "variant count exceeds the representable index range"
	PrecondEmptyOptional    = "optional holds no value"
)

// Violation describes a fatal misuse of a Choice: wrong-variant access, use
// of a moved-from or never-constructed value, a missing capability, or
// construction values that do not fit the payload group. These are caller
// defects rather than recoverable conditions, so they are delivered by
// panic; Violation implements error only so the diagnostic is readable
// wherever the panic is reported.
type Violation struct {
	// Op is the operation that detected the misuse.
	Op string

	// Precondition is the contract clause that was violated, one of the
	// Precond constants.
	Precondition string

	// Detail carries operation-specific context such as the offending
	// discriminant or type.
	Detail string
}

func (v *Violation) Error() string {
	if v.Detail == "" {
		return fmt.Sprintf("choice: %s: %s", v.Op, v.Precondition)
	}
	return fmt.Sprintf("choice: %s: %s: %s", v.Op, v.Precondition, v.Detail)
}

func violate(op, precondition, format string, args ...any) {
	detail := format
	if len(args) > 0 {
		detail = fmt.Sprintf(format, args...)
	}
	panic(&Violation{Op: op, Precondition: precondition, Detail: detail})
}
