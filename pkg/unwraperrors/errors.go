// Package unwraperrors defines the error returned by unwrapper functions that
// Unwrapgen generates.
package unwraperrors

import (
	"errors"
	"fmt"
)

// ErrVariantMismatch is matched by every [ConversionError] with [errors.Is].
var ErrVariantMismatch = errors.New("variant mismatch")

// ConversionError reports that a union value held another variant than the
// one an unwrapper function extracts. It is a normal outcome of calling an
// unwrapper on the wrong variant, not a fault.
type ConversionError struct {
	// Union is the name of the union type, e.g., "Shape".
	Union string

	// Expected is the name of the variant the unwrapper extracts, e.g.,
	// "Circle".
	Expected string

	// Actual is the name of the variant the union value held. It is empty if
	// the union value was nil or a nil pointer of the expected variant.
	Actual string
}

// New returns a [*ConversionError]. Generated code calls it for every variant
// other than the expected one.
func New(union, expected, actual string) error {
	return &ConversionError{Union: union, Expected: expected, Actual: actual}
}

// NewUnknown returns a [*ConversionError] for a union value whose dynamic type
// is not one of the declared variants, for example a pointer to a variant
// declared with value receivers. The dynamic type name becomes Actual.
func NewUnknown(union, expected string, v any) error {
	actual := ""
	if v != nil {
		actual = fmt.Sprintf("%T", v)
	}
	return &ConversionError{Union: union, Expected: expected, Actual: actual}
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	actual := e.Actual
	if actual == "" {
		actual = "nil"
	}
	if e.Union == "" {
		return fmt.Sprintf("unwrapping: expected %s, got %s", e.Expected, actual)
	}
	return fmt.Sprintf("unwrapping %s: expected %s, got %s", e.Union, e.Expected, actual)
}

// Is reports whether target is [ErrVariantMismatch].
func (e *ConversionError) Is(target error) bool {
	return target == ErrVariantMismatch
}
