//go:build unwrapgen

package main

import "github.com/sublee/unwrapgen"

type Msg interface{ isMsg() }

type (
	MsgA struct{ S string }
	MsgB struct{ I int }
)

func (MsgA) isMsg() {}
func (MsgB) isMsg() {}

// Both names become "Msg" after the replacements.
var As = unwrapgen.Union[Msg](
	unwrapgen.RenameReplace("A", ""),
	unwrapgen.RenameReplace("B", ""),
)

func main() {
	panic("unwrapgen will fail")
}
