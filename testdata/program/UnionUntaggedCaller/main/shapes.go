package main

type Shape interface{ isShape() }

type (
	Circle struct{ Radius float64 }
	Square struct{ Side float64 }
	Rect   struct{ W, H float64 }
)

func (Circle) isShape() {}
func (Square) isShape() {}
func (Rect) isShape()   {}
