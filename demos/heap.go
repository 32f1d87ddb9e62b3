package demos

import (
	"context"
	"errors"
	"fmt"

	"hop.computer/slist/pkg/slist"
)

// LinkedList fills a list from both ends, pops the head and prints the rest.
func LinkedList(ctx context.Context, env *Env) error {
	l := slist.New[string]()

	l.PushBack("Lol")
	l.PushFront("Such wow")
	l.PushBack("rofl")
	l.PushBack("kekw")
	l.PushBack("x'D")

	popped, ok := l.PopFront()
	if !ok {
		return errors.New("pop from a list of five returned nothing")
	}
	if _, err := fmt.Fprintf(env.Out, "This is the popped_value: %s\n", popped); err != nil {
		return err
	}

	for v := range l.All() {
		if _, err := fmt.Fprintln(env.Out, v); err != nil {
			return err
		}
	}
	env.Log.WithField("released", l.Clear()).Debug("list cleared")
	return nil
}
