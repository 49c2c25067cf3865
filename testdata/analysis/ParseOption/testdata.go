//go:build unwrapgen

package testdata

import "github.com/sublee/unwrapgen"

type (
	Shape  interface{ isShape() }
	Circle struct{ R float64 }
	Square struct{ W, H float64 }
	Other  struct{}
)

func (Circle) isShape()  {}
func (*Square) isShape() {}

const empty = ""

var (
	_ = unwrapgen.Union[Shape](unwrapgen.RenameReplace("", "X"))    // want `cannot replace empty string`
	_ = unwrapgen.Union[Shape](unwrapgen.RenameReplace(empty, "X")) // want `empty is not string literal`
	_ = unwrapgen.Union[Shape](unwrapgen.Skip(Other{}))             // want `Other is not a variant of Shape`
	_ = unwrapgen.Union[Shape](unwrapgen.Skip(Square{}))            // want `Square is not a variant of Shape; use \*Square`
	_ = unwrapgen.Union[Shape](unwrapgen.Skip(&Circle{}))           // want `\*Circle is not a variant of Shape; use Circle`
)
