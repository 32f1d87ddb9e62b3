// Package guarded wraps slist.List with a mutex so several goroutines can share
// one list, and lets callers register to be told about inserts. It is loosely
// based on the wait queues in gVisor.
package guarded

import (
	"iter"
	"sync"

	"golang.org/x/exp/slices"

	"hop.computer/slist/pkg/slist"
)

// Op identifies the operation that produced an Event.
type Op int

// Operations reported to listeners.
const (
	OpPushFront Op = iota + 1
	OpPushBack
)

func (o Op) String() string {
	switch o {
	case OpPushFront:
		return "push_front"
	case OpPushBack:
		return "push_back"
	default:
		return "unknown"
	}
}

// Event describes one insert.
type Event[T any] struct {
	Op    Op
	Value T
}

// EventListener receives events from a List.
type EventListener[T any] interface {
	NotifyEvent(Event[T])
}

// Entry is a registration handle for a listener.
type Entry[T any] struct {
	listener EventListener[T]
}

type functionNotifier[T any] func(Event[T])

func (f functionNotifier[T]) NotifyEvent(e Event[T]) {
	f(e)
}

// NewFunctionEntry returns an entry that calls f for every event.
func NewFunctionEntry[T any](f func(Event[T])) *Entry[T] {
	return &Entry[T]{listener: functionNotifier[T](f)}
}

type channelNotifier[T any] chan Event[T]

func (c channelNotifier[T]) NotifyEvent(e Event[T]) {
	c <- e
}

// NewChannelEntry returns an entry that sends every event on c. Sends block, so
// c must be buffered or drained by another goroutine.
func NewChannelEntry[T any](c chan Event[T]) *Entry[T] {
	return &Entry[T]{listener: channelNotifier[T](c)}
}

// List is a slist.List behind a mutex. The zero value is an empty list.
// Listeners are notified after the lock is released, in registration order,
// on the goroutine that performed the insert.
type List[T any] struct {
	m sync.Mutex
	// +checklocks:m
	l slist.List[T]
	// +checklocks:m
	n int
	// +checklocks:m
	entries []*Entry[T]
}

// EventRegister adds e to the listeners.
func (g *List[T]) EventRegister(e *Entry[T]) {
	g.m.Lock()
	defer g.m.Unlock()
	g.entries = append(g.entries, e)
}

// EventUnregister removes e. It returns false if e was not registered.
func (g *List[T]) EventUnregister(e *Entry[T]) bool {
	g.m.Lock()
	defer g.m.Unlock()
	for i, x := range g.entries {
		if x == e {
			// In-flight notifications may still hold the old slice.
			g.entries = slices.Delete(slices.Clone(g.entries), i, i+1)
			return true
		}
	}
	return false
}

func (g *List[T]) notify(entries []*Entry[T], ev Event[T]) {
	for _, e := range entries {
		e.listener.NotifyEvent(ev)
	}
}

// PushFront inserts v at the head.
func (g *List[T]) PushFront(v T) {
	g.m.Lock()
	g.l.PushFront(v)
	g.n++
	entries := g.entries
	g.m.Unlock()
	g.notify(entries, Event[T]{Op: OpPushFront, Value: v})
}

// PushBack appends v.
func (g *List[T]) PushBack(v T) {
	g.m.Lock()
	g.l.PushBack(v)
	g.n++
	entries := g.entries
	g.m.Unlock()
	g.notify(entries, Event[T]{Op: OpPushBack, Value: v})
}

// PopFront removes and returns the head, or false if the list is empty.
func (g *List[T]) PopFront() (T, bool) {
	g.m.Lock()
	defer g.m.Unlock()
	v, ok := g.l.PopFront()
	if ok {
		g.n--
	}
	return v, ok
}

// Len returns the number of elements.
func (g *List[T]) Len() int {
	g.m.Lock()
	defer g.m.Unlock()
	return g.n
}

// All returns a snapshot of the list. The lock is held only while the
// snapshot is taken. The sequence can be ranged only once.
func (g *List[T]) All() iter.Seq[T] {
	g.m.Lock()
	defer g.m.Unlock()
	return g.l.All()
}

// Clear empties the list and returns how many elements it held.
func (g *List[T]) Clear() int {
	g.m.Lock()
	defer g.m.Unlock()
	g.n = 0
	return g.l.Clear()
}

// Do runs f with the lock held, for compound operations that must not
// interleave with other callers. f works through tx and must not call methods
// on g or keep tx after it returns. Inserts made through tx are reported to
// listeners once the lock is released, in the order they were made.
func (g *List[T]) Do(f func(tx *Txn[T])) {
	tx := &Txn[T]{g: g}
	entries := func() []*Entry[T] {
		g.m.Lock()
		defer g.m.Unlock()
		f(tx)
		return g.entries
	}()
	tx.g = nil
	for _, ev := range tx.events {
		g.notify(entries, ev)
	}
}

// Txn is the view of a List inside Do. It keeps the list's length current as
// it goes.
type Txn[T any] struct {
	g      *List[T]
	events []Event[T]
}

// PushFront inserts v at the head.
func (tx *Txn[T]) PushFront(v T) {
	tx.g.l.PushFront(v)
	tx.g.n++
	tx.events = append(tx.events, Event[T]{Op: OpPushFront, Value: v})
}

// PushBack appends v.
func (tx *Txn[T]) PushBack(v T) {
	tx.g.l.PushBack(v)
	tx.g.n++
	tx.events = append(tx.events, Event[T]{Op: OpPushBack, Value: v})
}

// PopFront removes and returns the head, or false if the list is empty.
func (tx *Txn[T]) PopFront() (T, bool) {
	v, ok := tx.g.l.PopFront()
	if ok {
		tx.g.n--
	}
	return v, ok
}

// Len returns the number of elements.
func (tx *Txn[T]) Len() int {
	return tx.g.n
}
