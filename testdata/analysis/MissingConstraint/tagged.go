//go:build unwrapgen

package testdata

import "github.com/sublee/unwrapgen"

type (
	Shape  interface{ isShape() }
	Circle struct{ R float64 }
)

func (Circle) isShape() {}

var ShapeAs = unwrapgen.Union[Shape]()
