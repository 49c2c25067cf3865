//go:build unwrapgen

package main

import (
	"fmt"

	"github.com/sublee/unwrapgen"
)

type (
	Key   interface{ isKey() }
	Value interface{ isValue() }
)

type (
	Name  struct{ S string }
	Index struct{ I int }
)

func (Name) isKey()  {}
func (Index) isKey() {}

type (
	Text  struct{ S string }
	Alias struct{ S string }
	Count struct{ N int }
)

func (Text) isValue()  {}
func (Alias) isValue() {}
func (Count) isValue() {}

var (
	KeyAs   = unwrapgen.Union[Key]()
	ValueAs = unwrapgen.Union[Value]()
)

func main() {
	// string is ambiguous in Value but not in Key.
	fmt.Println(KeyAsName(Name{"a"}))
	fmt.Println(KeyAsIndex(Index{1}))

	// int is unique in Value even though Key also has an int variant.
	fmt.Println(ValueAsCount(Count{3}))
	fmt.Println(ValueAsCount(Text{"b"}))
}
