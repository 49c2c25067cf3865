//go:build unwrapgen

package main

import (
	"fmt"

	"github.com/sublee/unwrapgen"
)

type Value interface{ isValue() }

type (
	Bool     bool
	Bytes    []byte
	Callback func() string
	Pair     struct {
		_    [0]func()
		Pair [2]int
	}
)

func (Bool) isValue()     {}
func (Bytes) isValue()    {}
func (Callback) isValue() {}
func (Pair) isValue()     {}

var ValueAs = unwrapgen.Union[Value]()

func main() {
	fmt.Println(ValueAsBool(Bool(true)))
	fmt.Println(ValueAsBytes(Bytes("hi")))

	cb, err := ValueAsCallback(Callback(func() string { return "called" }))
	fmt.Println(cb(), err)

	// Blank fields are not payloads.
	fmt.Println(ValueAsPair(Pair{Pair: [2]int{1, 2}}))
	fmt.Println(ValueAsBool(Bytes(nil)))
}
