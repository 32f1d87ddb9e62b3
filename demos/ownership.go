package demos

import (
	"context"
	"fmt"
)

type message struct {
	text string
}

// anotherOwner holds a second handle to the same message and mutates it in
// place.
func anotherOwner(m *message) {
	m.text += "!!!"
}

// SharedMutation hands a second pointer to one heap value to another function,
// which mutates it. The change is visible through the first pointer.
func SharedMutation(ctx context.Context, env *Env) error {
	msg := &message{text: "I shall mutate this"}
	alias := msg

	anotherOwner(alias)

	env.Log.WithField("aliased", msg == alias).Debug("mutated through second handle")
	_, err := fmt.Fprintln(env.Out, msg.text)
	return err
}
