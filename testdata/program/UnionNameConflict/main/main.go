//go:build unwrapgen

package main

import "github.com/sublee/unwrapgen"

type Shape interface{ isShape() }

type Circle struct{ Radius float64 }

func (Circle) isShape() {}

func ShapeAsCircle() {}

var ShapeAs = unwrapgen.Union[Shape]()

func main() {
	panic("unwrapgen will fail")
}
