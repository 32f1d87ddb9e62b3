// Package slist implements a singly-linked list of exclusively owned nodes.
package slist

import "iter"

type node[T any] struct {
	value T
	next  *node[T]
}

// List is a singly-linked list. Every node is reachable from exactly one
// place: the list's head, or the next field of its predecessor. The zero value
// is an empty list ready to use.
//
// Only the head is tracked, so operations at the front are constant time and
// PushBack is linear in the length of the list. The list is not thread-safe;
// see package guarded for a locked wrapper.
type List[T any] struct {
	head *node[T]
}

// New returns an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// PushFront inserts v as the new head. The previous chain becomes the
// successor of the new node. This function is constant time.
func (l *List[T]) PushFront(v T) {
	l.head = &node[T]{value: v, next: l.head}
}

// PushBack appends v after the last node, found by walking from the head. On an
// empty list it is equivalent to PushFront. This function is O(n).
func (l *List[T]) PushBack(v T) {
	link := &l.head
	for *link != nil {
		link = &(*link).next
	}
	*link = &node[T]{value: v}
}

// PopFront detaches the head and returns its value. If the list is empty, it
// returns the zero value and false. This function is constant time.
func (l *List[T]) PopFront() (T, bool) {
	n := l.head
	if n == nil {
		var zero T
		return zero, false
	}
	l.head, n.next = n.next, nil
	return n.value, true
}

// Clear releases every node, starting at the head, and returns how many were
// released. The chain is unlinked iteratively so long lists never recurse.
func (l *List[T]) Clear() int {
	released := 0
	n := l.head
	l.head = nil
	for n != nil {
		next := n.next
		n.next = nil
		n = next
		released++
	}
	return released
}

// Iter returns an iterator over a copy of the list taken now. Values are
// duplicated by assignment, so elements holding pointers, slices or maps
// share their referents with the list; use IterFunc for a deeper copy.
func (l *List[T]) Iter() *Iterator[T] {
	return &Iterator[T]{head: l.duplicate(nil)}
}

// IterFunc is like Iter but duplicates every element with clone.
func (l *List[T]) IterFunc(clone func(T) T) *Iterator[T] {
	return &Iterator[T]{head: l.duplicate(clone)}
}

// All returns a range-over-func sequence of the snapshot Iter would produce.
// The snapshot is taken when All is called, not when the sequence is ranged.
// The sequence is single-use: each range continues where the previous one
// stopped, so ranging it again after a full pass yields nothing.
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

func (l *List[T]) duplicate(clone func(T) T) *node[T] {
	var head *node[T]
	link := &head
	for n := l.head; n != nil; n = n.next {
		v := n.value
		if clone != nil {
			v = clone(v)
		}
		*link = &node[T]{value: v}
		link = &(*link).next
	}
	return head
}

// Iterator walks a private copy of a list from head to tail. It is single
// pass: once Next reports false, it keeps reporting false.
type Iterator[T any] struct {
	head *node[T]
}

// Next returns the next value and true, or the zero value and false when the
// copy is exhausted. Each node is released as it is consumed.
func (it *Iterator[T]) Next() (T, bool) {
	n := it.head
	if n == nil {
		var zero T
		return zero, false
	}
	it.head, n.next = n.next, nil
	return n.value, true
}
