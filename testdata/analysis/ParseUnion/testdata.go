//go:build unwrapgen

package testdata

import (
	"fmt"

	"github.com/sublee/unwrapgen"
)

type (
	Shape      interface{ isShape() }
	Marker     interface{}
	Plain      struct{}
	Gen[T any] interface{ get() T }
)

func (Plain) isShape() {}

var (
	_ = unwrapgen.Union[Shape]()            // ok
	_ = unwrapgen.Union[Plain]()            // want `Plain is not interface; union must be interface`
	_ = unwrapgen.Union[Marker]()           // want `Marker has no methods; union requires at least one`
	_ = unwrapgen.Union[Gen[int]]()         // want `Gen\[int\] is generic; union must not have type parameters`
	_ = unwrapgen.Union[fmt.Stringer]()     // want `fmt.Stringer is declared in another package; union must be declared in package testdata`
	_ = unwrapgen.Union[interface{ m() }]() // want `interface\{m\(\)\} is not named; union must be named interface`
)
