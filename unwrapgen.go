// Package unwrapgen provides directives for generating unwrapper functions of
// union types.
//
// Go has no sum types. The idiomatic replacement is a sealed interface whose
// implementations are the variants of the union. A variant holds zero, one, or
// several payload values as struct fields. Unwrapgen generates a fallible
// unwrapper function for every variant whose single payload type is unique in
// the union:
//
//	type Shape interface{ isShape() }
//
//	type Circle struct{ Radius float64 }
//	type Square struct{ W, H float64 }
//	type Empty struct{}
//
//	func (Circle) isShape() {}
//	func (Square) isShape() {}
//	func (Empty) isShape()  {}
//
// To start with Unwrapgen, add a build constraint to files containing
// Unwrapgen directives and declare a union:
//
//	//go:build unwrapgen
//
//	package shapes
//
//	import "github.com/sublee/unwrapgen"
//
//	var ShapeAs = unwrapgen.Union[Shape]()
//
// After declaring unions, run the unwrapgen command. It will generate
// unwrapgen_gen.go for your package:
//
//	go run github.com/sublee/unwrapgen/cmd/unwrapgen
//
//	// generated: (simplified)
//	func ShapeAsCircle(in Shape) (out float64, err error) {
//		switch in := in.(type) {
//		case Circle:
//			return in.Radius, nil
//		case Square:
//			return out, unwraperrors.New("Shape", "Circle", "Square")
//		case Empty:
//			return out, unwraperrors.New("Shape", "Circle", "Empty")
//		...
//		}
//	}
//
// Square holds two payloads and Empty holds none, so they have no unwrapper.
//
// # Uniqueness
//
// A variant is unwrappable only if no other variant of the same union holds a
// single payload of an identical type. In the following union, Num and Tag
// both hold int64, so only Label gets an unwrapper:
//
//	type Num struct{ N int64 }
//	type Tag struct{ T int64 }
//	type Label struct{ S string }
//
// This is not an error. A union may have unwrappable and non-unwrappable
// variants at the same time.
//
// # Errors
//
// Unwrappers return [unwraperrors.ConversionError] when the union value holds
// another variant. It reports the expected and the actual variant, and matches
// [unwraperrors.ErrVariantMismatch] with [errors.Is].
package unwrapgen

// directive is the result of [Union]. It is unexported so there is no way to
// declare a union other than [Union].
type directive *struct{}

// Option configures how unwrappers of a union are generated. Options must be
// passed to [Union] inline. They cannot be assigned to variables.
type Option interface{ unionOption() }

// Union directive generates unwrapper functions for the union type U. U must be
// an interface type with at least one method, declared in the same package.
// Every named type in the package that implements U is a variant of U.
//
// The variable that holds the directive is the prefix of the generated
// functions. If the variable is blank, U's name followed by "As" is used:
//
//	// source:
//	var ShapeAs = unwrapgen.Union[Shape]()
//	var _ = unwrapgen.Union[Event]()
//
//	// generated: (signatures only)
//	func ShapeAsCircle(in Shape) (out float64, err error)
//	func EventAsClick(in Event) (out Point, err error)
//
// The directive is erased from the generated code.
func Union[U any](opts ...Option) directive {
	panic("unwrapgen: not generated")
}

// RenameReplace replaces all occurrences of old with new in variant names
// before they are joined to the function prefix:
//
//	// source:
//	var ShapeAs = unwrapgen.Union[Shape](unwrapgen.RenameReplace("Shape", ""))
//
//	// CircleShape is unwrapped by ShapeAsCircle.
//
// Rename options are applied in order.
func RenameReplace(old, new string) Option {
	panic("unwrapgen: not generated")
}

// RenameTrimCommonWordPrefix trims the common word prefix of all variant names.
// Words are split at camelCase transitions, underscores, and digits. For
// example, EventClick and EventScroll become Click and Scroll.
func RenameTrimCommonWordPrefix() Option {
	panic("unwrapgen: not generated")
}

// RenameTrimCommonWordSuffix trims the common word suffix of all variant names.
// For example, ClickEvent and ScrollEvent become Click and Scroll.
func RenameTrimCommonWordSuffix() Option {
	panic("unwrapgen: not generated")
}

// Skip suppresses the unwrapper of the variant that sample belongs to even if
// it is unwrappable. The variant still takes part in the uniqueness check and
// in the failure branches of the other unwrappers:
//
//	var ShapeAs = unwrapgen.Union[Shape](
//		unwrapgen.Skip(Circle{}),
//		unwrapgen.Skip((*Square)(nil)),
//	)
func Skip[V any](sample V) Option {
	panic("unwrapgen: not generated")
}
