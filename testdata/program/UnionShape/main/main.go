//go:build unwrapgen

package main

import (
	"errors"
	"fmt"

	"github.com/sublee/unwrapgen"
	"github.com/sublee/unwrapgen/pkg/unwraperrors"
)

type Shape interface{ isShape() }

type (
	Circle struct{ Radius float64 }
	Square struct{ W, H float64 }
	Empty  struct{}
)

func (Circle) isShape() {}
func (Square) isShape() {}
func (Empty) isShape()  {}

var ShapeAs = unwrapgen.Union[Shape]()

func main() {
	fmt.Println(ShapeAsCircle(Circle{2.5}))
	fmt.Println(ShapeAsCircle(Square{1, 2}))
	fmt.Println(ShapeAsCircle(Empty{}))
	fmt.Println(ShapeAsCircle(nil))

	_, err := ShapeAsCircle(Square{})
	fmt.Println(errors.Is(err, unwraperrors.ErrVariantMismatch))

	var convErr *unwraperrors.ConversionError
	if errors.As(err, &convErr) {
		fmt.Println(convErr.Union, convErr.Expected, convErr.Actual)
	}
}
