//go:build unwrapgen

package testdata

import "github.com/sublee/unwrapgen"

type (
	Shape  interface{ isShape() }
	Circle struct{ R float64 }
)

func (Circle) isShape() {}

var (
	ShapeAs = unwrapgen.Union[Shape]()                          // ok
	Replace = unwrapgen.RenameReplace("Circle", "Round")        // want `cannot assign RenameReplace to variable`
	Trim    = unwrapgen.RenameTrimCommonWordPrefix()            // want `cannot assign RenameTrimCommonWordPrefix to variable`
	Skip    = unwrapgen.Skip(Circle{})                          // want `cannot assign Skip to variable`
	Opts    = []unwrapgen.Option{unwrapgen.RenameTrimCommonWordSuffix()} // want `RenameTrimCommonWordSuffix must be passed to Union directly`
)

func init() {
	_ = unwrapgen.Union[Shape]() // want `Union must be assigned to package-level variable`
}
