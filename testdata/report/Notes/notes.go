//go:build unwrapgen

package testdata

import "github.com/sublee/unwrapgen"

type Shape interface{ isShape() }

type (
	Circle struct{ Radius float64 }
	Square struct{ W, H float64 }
	Dot    struct{}
)

func (Circle) isShape() {}
func (Square) isShape() {}
func (Dot) isShape()    {}

var ShapeAs = unwrapgen.Union[Shape]() // want `Shape: Circle -> float64 \(ShapeAsCircle\)` `Shape: Square skipped \(multiple payloads\)` `Shape: Dot skipped \(no payload\)`
