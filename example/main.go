//go:build unwrapgen

package main

import (
	"errors"
	"fmt"

	"github.com/sublee/unwrapgen"
	"github.com/sublee/unwrapgen/pkg/unwraperrors"
)

// Message is a message of a chat protocol.
type Message interface{ isMessage() }

type (
	TextMessage  struct{ Body string }
	ImageMessage struct {
		URL           string
		Width, Height int
	}
	JoinMessage  struct{ User User }
	LeaveMessage struct{ User User }
	PingMessage  struct{}
)

type User struct{ Name string }

func (TextMessage) isMessage()  {}
func (ImageMessage) isMessage() {}
func (JoinMessage) isMessage()  {}
func (LeaveMessage) isMessage() {}
func (PingMessage) isMessage()  {}

// JoinMessage and LeaveMessage share User, so only TextMessage gets an
// unwrapper.
var MessageAs = unwrapgen.Union[Message](
	unwrapgen.RenameTrimCommonWordSuffix(),
)

func main() {
	// Output: hello <nil>
	fmt.Println(MessageAsText(TextMessage{"hello"}))

	// Output: true
	_, err := MessageAsText(PingMessage{})
	fmt.Println(errors.Is(err, unwraperrors.ErrVariantMismatch))

	// Output: unwrapping Message: expected TextMessage, got JoinMessage
	_, err = MessageAsText(JoinMessage{User{"alice"}})
	fmt.Println(err)
}
