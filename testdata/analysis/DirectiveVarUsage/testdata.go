//go:build unwrapgen

package testdata

import "github.com/sublee/unwrapgen"

type (
	Shape  interface{ isShape() }
	Circle struct{ R float64 }
)

func (Circle) isShape() {}

var ShapeAs = unwrapgen.Union[Shape]()

var alias = ShapeAs // want `cannot use ShapeAs outside unwrapgen; removed at code generation`

func use() {
	_ = ShapeAs // want `cannot use ShapeAs outside unwrapgen; removed at code generation`
}
