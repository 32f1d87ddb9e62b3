// Package slisttest checks that a singly-linked list implementation honors the
// contract of slist.List. Implementations call TestList from their own tests.
package slisttest

import (
	"fmt"
	"iter"
	"testing"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	"hop.computer/slist/pkg/readers"
)

// List is the operation set shared by the list implementations.
type List[T any] interface {
	PushFront(v T)
	PushBack(v T)
	PopFront() (T, bool)
	All() iter.Seq[T]
	Clear() int
}

// MakeList returns a new, empty list.
type MakeList func() List[string]

// TestList runs every conformance check against lists returned by mk.
func TestList(t *testing.T, mk MakeList) {
	t.Run("PushBackOrder", func(t *testing.T) { testPushBackOrder(t, mk) })
	t.Run("PushFrontOrder", func(t *testing.T) { testPushFrontOrder(t, mk) })
	t.Run("PopEmpty", func(t *testing.T) { testPopEmpty(t, mk) })
	t.Run("RoundTrip", func(t *testing.T) { testRoundTrip(t, mk) })
	t.Run("Interleaved", func(t *testing.T) { testInterleaved(t, mk) })
	t.Run("Snapshot", func(t *testing.T) { testSnapshot(t, mk) })
	t.Run("EarlyBreak", func(t *testing.T) { testEarlyBreak(t, mk) })
	t.Run("SingleUse", func(t *testing.T) { testSingleUse(t, mk) })
	t.Run("Clear", func(t *testing.T) { testClear(t, mk) })
	t.Run("Randomized", func(t *testing.T) { testRandomized(t, mk) })
}

// Collect drains seq into a slice. An empty sequence yields nil.
func Collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func values(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("v%d", i)
	}
	return out
}

func testPushBackOrder(t *testing.T, mk MakeList) {
	for _, n := range []int{0, 1, 2, 17} {
		l := mk()
		in := values(n)
		for _, v := range in {
			l.PushBack(v)
		}
		got := Collect(l.All())
		assert.Assert(t, is.Len(got, n))
		for i := range in {
			assert.Check(t, is.Equal(in[i], got[i]))
		}
	}
}

func testPushFrontOrder(t *testing.T, mk MakeList) {
	for _, n := range []int{0, 1, 2, 17} {
		l := mk()
		in := values(n)
		for _, v := range in {
			l.PushFront(v)
		}
		got := Collect(l.All())
		assert.Assert(t, is.Len(got, n))
		for i := range in {
			assert.Check(t, is.Equal(in[n-1-i], got[i]))
		}
	}
}

func testPopEmpty(t *testing.T, mk MakeList) {
	l := mk()
	for i := 0; i < 3; i++ {
		v, ok := l.PopFront()
		assert.Check(t, !ok)
		assert.Check(t, is.Equal("", v))
	}
}

func testRoundTrip(t *testing.T, mk MakeList) {
	l := mk()
	l.PushFront("x")
	v, ok := l.PopFront()
	assert.Assert(t, ok)
	assert.Equal(t, "x", v)
	_, ok = l.PopFront()
	assert.Check(t, !ok)
	assert.Check(t, is.Len(Collect(l.All()), 0))
}

func testInterleaved(t *testing.T, mk MakeList) {
	l := mk()
	l.PushBack("Lol")
	l.PushFront("Such wow")
	l.PushBack("rofl")
	l.PushBack("kekw")
	l.PushBack("x'D")

	v, ok := l.PopFront()
	assert.Assert(t, ok)
	assert.Equal(t, "Such wow", v)
	assert.DeepEqual(t, []string{"Lol", "rofl", "kekw", "x'D"}, Collect(l.All()))
}

func testSnapshot(t *testing.T, mk MakeList) {
	l := mk()
	l.PushBack("a")
	l.PushBack("b")
	seq := l.All()

	l.PushFront("z")
	l.PushBack("c")
	_, _ = l.PopFront()
	_, _ = l.PopFront()

	assert.DeepEqual(t, []string{"a", "b"}, Collect(seq))
	assert.DeepEqual(t, []string{"b", "c"}, Collect(l.All()))
}

func testEarlyBreak(t *testing.T, mk MakeList) {
	l := mk()
	for _, v := range values(5) {
		l.PushBack(v)
	}
	var got []string
	for v := range l.All() {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	assert.DeepEqual(t, []string{"v0", "v1"}, got)
	assert.Check(t, is.Len(Collect(l.All()), 5))
}

func testSingleUse(t *testing.T, mk MakeList) {
	l := mk()
	for _, v := range values(3) {
		l.PushBack(v)
	}
	seq := l.All()
	assert.DeepEqual(t, []string{"v0", "v1", "v2"}, Collect(seq))
	assert.Check(t, is.Len(Collect(seq), 0))

	seq = l.All()
	for range seq {
		break
	}
	assert.DeepEqual(t, []string{"v1", "v2"}, Collect(seq))
}

func testClear(t *testing.T, mk MakeList) {
	l := mk()
	assert.Equal(t, 0, l.Clear())
	for _, v := range values(9) {
		l.PushBack(v)
	}
	_, _ = l.PopFront()
	assert.Equal(t, 8, l.Clear())
	assert.Equal(t, 0, l.Clear())
	_, ok := l.PopFront()
	assert.Check(t, !ok)

	// A cleared list is reusable.
	l.PushBack("again")
	assert.DeepEqual(t, []string{"again"}, Collect(l.All()))
}

// testRandomized applies a repeatable mix of operations to the list and to a
// slice model: about one step in fifty clears, a quarter of the rest pop, and
// the others push to either end. Every pop, every cleared count and the final
// contents must agree with the model.
func testRandomized(t *testing.T, mk MakeList) {
	for seed := uint64(1); seed <= 8; seed++ {
		src := readers.NewSource(seed)
		l := mk()
		var model []string
		pushedBack, pushedFront, popped := 0, 0, 0
		for step := 0; step < 200; step++ {
			v := fmt.Sprintf("s%d-%d", seed, step)
			switch {
			case src.Intn(50) == 0:
				assert.Equal(t, len(model), l.Clear(), "seed %d step %d", seed, step)
				popped += len(model)
				model = nil
			case src.Flip(2):
				got, ok := l.PopFront()
				if len(model) == 0 {
					assert.Assert(t, !ok, "seed %d step %d", seed, step)
					continue
				}
				assert.Assert(t, ok, "seed %d step %d", seed, step)
				assert.Equal(t, model[0], got, "seed %d step %d", seed, step)
				model = model[1:]
				popped++
			case src.Flip(1):
				l.PushBack(v)
				model = append(model, v)
				pushedBack++
			default:
				l.PushFront(v)
				model = append([]string{v}, model...)
				pushedFront++
			}
		}
		got := Collect(l.All())
		assert.Equal(t, pushedBack+pushedFront-popped, len(got), "seed %d", seed)
		if len(model) == 0 {
			assert.Check(t, is.Len(got, 0), "seed %d", seed)
		} else {
			assert.DeepEqual(t, model, got)
		}
		assert.Equal(t, len(model), l.Clear(), "seed %d", seed)
	}
}
