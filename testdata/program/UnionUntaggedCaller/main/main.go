package main

import (
	"errors"
	"fmt"

	"github.com/sublee/unwrapgen/pkg/unwraperrors"
)

func describe(s Shape) string {
	if r, err := ShapeAsCircle(s); err == nil {
		return fmt.Sprintf("circle of radius %g", r)
	}
	if side, err := ShapeAsSquare(s); err == nil {
		return fmt.Sprintf("square of side %g", side)
	}
	return "unknown shape"
}

func main() {
	fmt.Println(describe(Circle{1.5}))
	fmt.Println(describe(Square{2}))
	fmt.Println(describe(Rect{1, 2}))

	_, err := ShapeAsSquare(Circle{})
	fmt.Println(errors.Is(err, unwraperrors.ErrVariantMismatch), err)
}
