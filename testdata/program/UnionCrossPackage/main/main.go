//go:build unwrapgen

package main

import (
	"fmt"
	"time"

	"example.com/UnionCrossPackage/geo"
	"github.com/sublee/unwrapgen"
)

type Command interface{ isCommand() }

type (
	Move  struct{ To geo.Point }
	Wait  struct{ For time.Duration }
	Batch struct{ Steps []Command }
	Stop  struct{}
)

func (Move) isCommand()  {}
func (Wait) isCommand()  {}
func (Batch) isCommand() {}
func (Stop) isCommand()  {}

var CommandAs = unwrapgen.Union[Command]()

func main() {
	fmt.Println(CommandAsMove(Move{geo.Point{X: 1, Y: 2}}))
	fmt.Println(CommandAsWait(Wait{time.Second}))

	steps, err := CommandAsBatch(Batch{[]Command{Stop{}, Wait{}}})
	fmt.Println(len(steps), err)

	fmt.Println(CommandAsWait(Stop{}))
}
