//go:build unwrapgen

package main

import (
	"fmt"

	"github.com/sublee/unwrapgen"
)

type Event interface{ isEvent() }

type (
	ClickEvent  struct{ Button int }
	ScrollEvent struct{ Delta float64 }
	KeyEvent    struct{ Code rune }
	ResizeEvent struct{ W, H int }
)

func (ClickEvent) isEvent()  {}
func (ScrollEvent) isEvent() {}
func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}

var _ = unwrapgen.Union[Event](
	unwrapgen.RenameTrimCommonWordSuffix(),
	unwrapgen.RenameReplace("Key", "Keyboard"),
	unwrapgen.Skip(ScrollEvent{}),
)

func main() {
	fmt.Println(EventAsClick(ClickEvent{1}))
	fmt.Println(EventAsKeyboard(KeyEvent{'a'}))

	// ScrollEvent is skipped but it still fails other unwrappers by its name.
	fmt.Println(EventAsClick(ScrollEvent{0.5}))
	fmt.Println(EventAsKeyboard(ResizeEvent{1, 2}))
}
