// Package demos holds small, self-contained demonstrations of single
// ownership, heap-allocated recursive structures and basic concurrency. The
// demos share no state with each other.
package demos

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"hop.computer/slist/pkg/glob"
)

// Env is what a demo gets to work with.
type Env struct {
	Out     io.Writer
	Log     *logrus.Entry
	Workers int
}

// Func runs one demo, writing its output to env.Out.
type Func func(ctx context.Context, env *Env) error

// Demo is a named, runnable demonstration.
type Demo struct {
	Name        string
	Description string
	Run         Func

	order int
}

var registry = map[string]Demo{}

func register(order int, name, description string, run Func) {
	if _, ok := registry[name]; ok {
		panic("demos: duplicate demo " + name)
	}
	registry[name] = Demo{Name: name, Description: description, Run: run, order: order}
}

func init() {
	register(1, "ownership/shared-mutation", "two handles mutate one heap value", SharedMutation)
	register(2, "heap/linked-list", "push, pop and iterate a singly-linked list", LinkedList)
	register(3, "concurrency/join-handles", "spawn goroutines and join them all", JoinHandles)
	register(4, "concurrency/shared-counter", "goroutines take turns on a mutex-guarded counter", SharedCounter)
	register(5, "concurrency/channels", "many producers, one consumer, one channel", Channels)
	register(6, "concurrency/guarded-list", "goroutines push into a locked list", GuardedList)
}

// All returns every demo in run order.
func All() []Demo {
	ds := maps.Values(registry)
	slices.SortFunc(ds, func(a, b Demo) bool {
		return a.order < b.order
	})
	return ds
}

// Lookup returns the demo called name.
func Lookup(name string) (Demo, bool) {
	d, ok := registry[name]
	return d, ok
}

// Select returns, in run order, the demos whose names match at least one of
// patterns.
func Select(patterns []string, opts ...glob.Option) []Demo {
	var out []Demo
	for _, d := range All() {
		if glob.Any(patterns, d.Name, opts...) {
			out = append(out, d)
		}
	}
	return out
}

// syncWriter serializes writes from concurrent goroutines so lines are never
// interleaved.
type syncWriter struct {
	m sync.Mutex
	w io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.m.Lock()
	defer s.m.Unlock()
	return s.w.Write(p)
}
