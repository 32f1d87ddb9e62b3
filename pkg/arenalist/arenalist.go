// Package arenalist implements a singly-linked list whose nodes live in a
// single slice and are addressed by index. Released slots are kept on a free
// list and reused by later inserts.
package arenalist

import "iter"

// Links are 1-based so that the zero value of a slot, and of List, means "no
// successor" and "empty".
type slot[T any] struct {
	value T
	next  int
}

// List has the same contract as slist.List: constant time operations at the
// front, linear PushBack, snapshot iteration. The list is not thread-safe.
type List[T any] struct {
	slots []slot[T]
	head  int
	free  int
}

// New returns an empty list with room for capacity nodes before the arena
// grows.
func New[T any](capacity int) *List[T] {
	return &List[T]{slots: make([]slot[T], 0, capacity)}
}

func (l *List[T]) at(i int) *slot[T] {
	return &l.slots[i-1]
}

func (l *List[T]) alloc(v T) int {
	if l.free != 0 {
		i := l.free
		l.free = l.at(i).next
		*l.at(i) = slot[T]{value: v}
		return i
	}
	l.slots = append(l.slots, slot[T]{value: v})
	return len(l.slots)
}

func (l *List[T]) release(i int) {
	*l.at(i) = slot[T]{next: l.free}
	l.free = i
}

// Cap returns the number of slots in the arena, in use or free.
func (l *List[T]) Cap() int {
	return len(l.slots)
}

// PushFront inserts v as the new head.
func (l *List[T]) PushFront(v T) {
	i := l.alloc(v)
	l.at(i).next = l.head
	l.head = i
}

// PushBack appends v after the last node. This function is O(n).
func (l *List[T]) PushBack(v T) {
	if l.head == 0 {
		l.PushFront(v)
		return
	}
	last := l.head
	for l.at(last).next != 0 {
		last = l.at(last).next
	}
	// alloc may grow the arena; indices survive, pointers into slots do not.
	i := l.alloc(v)
	l.at(last).next = i
}

// PopFront removes the head and returns its value, or the zero value and false
// if the list is empty. The slot goes back on the free list.
func (l *List[T]) PopFront() (T, bool) {
	if l.head == 0 {
		var zero T
		return zero, false
	}
	i := l.head
	v := l.at(i).value
	l.head = l.at(i).next
	l.release(i)
	return v, true
}

// Clear releases every node in the chain and returns how many there were. The
// arena keeps its backing array.
func (l *List[T]) Clear() int {
	released := 0
	for i := l.head; i != 0; i = l.at(i).next {
		released++
	}
	clear(l.slots)
	l.slots = l.slots[:0]
	l.head, l.free = 0, 0
	return released
}

// Iter returns an iterator over a copy of the values, in order, taken now.
func (l *List[T]) Iter() *Iterator[T] {
	var values []T
	for i := l.head; i != 0; i = l.at(i).next {
		values = append(values, l.at(i).value)
	}
	return &Iterator[T]{values: values}
}

// All returns the Iter snapshot as a range-over-func sequence. Like Iter, the
// sequence is single-use: a second range picks up after the values the first
// one consumed.
func (l *List[T]) All() iter.Seq[T] {
	it := l.Iter()
	return func(yield func(T) bool) {
		for v, ok := it.Next(); ok; v, ok = it.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Iterator yields the values captured by Iter, once.
type Iterator[T any] struct {
	values []T
}

// Next returns the next captured value, or false once all have been returned.
func (it *Iterator[T]) Next() (T, bool) {
	if len(it.values) == 0 {
		var zero T
		return zero, false
	}
	v := it.values[0]
	it.values = it.values[1:]
	return v, true
}
