//go:build unwrapgen

package main

import "github.com/sublee/unwrapgen"

type (
	Plain  struct{ X int }
	Marker interface{}
)

var (
	_ = unwrapgen.Union[Plain]()
	_ = unwrapgen.Union[Marker]()
)

func main() {
	panic("unwrapgen will fail")
}
