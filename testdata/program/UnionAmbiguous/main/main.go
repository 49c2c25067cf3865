//go:build unwrapgen

package main

import (
	"fmt"

	"github.com/sublee/unwrapgen"
)

type Id interface{ isId() }

type (
	Num   struct{ N int64 }
	Tag   struct{ T int64 }
	Label struct{ S string }
)

func (Num) isId()   {}
func (Tag) isId()   {}
func (Label) isId() {}

var IdAs = unwrapgen.Union[Id]()

func main() {
	// Num and Tag share int64, so only Label has an unwrapper.
	fmt.Println(IdAsLabel(Label{"x"}))
	fmt.Println(IdAsLabel(Num{1}))
	fmt.Println(IdAsLabel(Tag{2}))
}
