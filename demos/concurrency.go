package demos

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"hop.computer/slist/pkg/guarded"
)

// JoinHandles starts one goroutine per worker, waits for every one of them,
// and only then prints its closing line.
func JoinHandles(ctx context.Context, env *Env) error {
	out := &syncWriter{w: env.Out}
	var g errgroup.Group
	for i := 0; i < env.Workers; i++ {
		g.Go(func() error {
			_, err := fmt.Fprintf(out, "Printing counter %d from new thread\n", i)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(out, "After thread handlers finished printing.")
	return err
}

type counter struct {
	m sync.Mutex
	// +checklocks:m
	value int
}

// SharedCounter gives every worker the same mutex-guarded counter. Each one
// stores its index and prints the counter while still holding the lock.
func SharedCounter(ctx context.Context, env *Env) error {
	c := new(counter)
	out := &syncWriter{w: env.Out}
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < env.Workers; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.m.Lock()
			defer c.m.Unlock()
			c.value = i
			_, err := fmt.Fprintf(out, "Counter: %d\n", c.value)
			return err
		})
	}
	err := g.Wait()

	c.m.Lock()
	env.Log.WithField("last", c.value).Debug("counter settled")
	c.m.Unlock()
	return err
}

// Channels fans in messages from one producer per worker over a single
// unbuffered channel. The channel is closed once the last producer returns,
// which ends the consumer loop.
func Channels(ctx context.Context, env *Env) error {
	ch := make(chan string)
	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < env.Workers; i++ {
		g.Go(func() error {
			select {
			case ch <- fmt.Sprintf("Message sent No. %d", i):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(ch)
	}()

	received := 0
	var writeErr error
	for msg := range ch {
		received++
		if writeErr != nil {
			continue
		}
		_, writeErr = fmt.Fprintln(env.Out, msg)
	}
	env.Log.WithField("received", received).Debug("channel closed")
	if err := <-done; err != nil {
		return err
	}
	return writeErr
}

// GuardedList has every worker append to one guarded.List and counts the
// insert events it receives.
func GuardedList(ctx context.Context, env *Env) error {
	var l guarded.List[string]
	var events atomic.Int64
	l.EventRegister(guarded.NewFunctionEntry(func(guarded.Event[string]) {
		events.Add(1)
	}))

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < env.Workers; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			l.PushBack(fmt.Sprintf("value %d", i))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(env.Out, "Guarded list holds %d values after %d inserts\n", l.Len(), events.Load())
	env.Log.WithField("released", l.Clear()).Debug("guarded list cleared")
	return err
}
