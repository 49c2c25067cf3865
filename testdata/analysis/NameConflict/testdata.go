//go:build unwrapgen

package testdata

import "github.com/sublee/unwrapgen"

type (
	Shape       interface{ isShape() }
	Circle      struct{ R float64 }
	ShapeCircle struct{ R int }
	Square      struct{ S float32 }
)

func (Circle) isShape()      {}
func (ShapeCircle) isShape() {}
func (Square) isShape()      {}

type (
	Token interface{ isToken() }
	Word  struct{ S string }
	Num   struct{ N int }
)

func (Word) isToken() {}
func (Num) isToken()  {}

const AsSquare = 0

var As = unwrapgen.Union[Shape]( // want `duplicate unwrapper AsCircle for ShapeCircle` `unwrapper AsSquare for Square conflicts with AsSquare`
	unwrapgen.RenameReplace("Shape", ""),
)

var (
	_ = unwrapgen.Union[Token]( // want `cannot name unwrapper of Word; renamed to empty string` `cannot name unwrapper of Num; "TokenAs-" is not identifier`
		unwrapgen.RenameReplace("Word", ""),
		unwrapgen.RenameReplace("Num", "-"),
	)
)
