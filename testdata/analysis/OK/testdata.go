//go:build unwrapgen

package testdata

import (
	"time"

	"github.com/sublee/unwrapgen"
)

type (
	Event interface{ isEvent() }

	ClickEvent  struct{ X, Y int }
	TimerEvent  struct{ After time.Duration }
	KeyEvent    struct{ Code rune }
	ScrollEvent struct{ Delta int32 }
)

func (ClickEvent) isEvent()   {}
func (*TimerEvent) isEvent()  {}
func (KeyEvent) isEvent()     {}
func (*ScrollEvent) isEvent() {}

// rune and int32 are identical, so neither KeyEvent nor ScrollEvent has an
// unwrapper. It is not an error.
var EventAs = unwrapgen.Union[Event](
	unwrapgen.RenameTrimCommonWordSuffix(),
	unwrapgen.Skip((*TimerEvent)(nil)),
)
