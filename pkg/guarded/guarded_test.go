package guarded

import (
	"sync"
	"testing"

	"go.uber.org/goleak"
	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	"hop.computer/slist/pkg/slist/slisttest"
)

func TestConformance(t *testing.T) {
	slisttest.TestList(t, func() slisttest.List[string] {
		return new(List[string])
	})
}

func TestEmpty(t *testing.T) {
	var g List[int]

	cnt := 0
	e := NewFunctionEntry(func(Event[int]) { cnt++ })
	g.EventRegister(e)
	assert.Equal(t, 1, len(g.entries))
	assert.Assert(t, g.EventUnregister(e))
	assert.Equal(t, 0, len(g.entries))
	assert.Assert(t, !g.EventUnregister(e))

	g.PushBack(1)
	assert.Equal(t, 0, cnt, "callback was called when it shouldn't have been")
	assert.Equal(t, 1, g.Len())
}

func TestFunctionListener(t *testing.T) {
	var g List[string]
	var got []Event[string]
	g.EventRegister(NewFunctionEntry(func(e Event[string]) {
		got = append(got, e)
	}))

	g.PushBack("a")
	g.PushFront("b")
	_, _ = g.PopFront()

	assert.DeepEqual(t, []Event[string]{
		{Op: OpPushBack, Value: "a"},
		{Op: OpPushFront, Value: "b"},
	}, got)
}

func TestChannelListener(t *testing.T) {
	defer goleak.VerifyNone(t)

	var g List[int]
	ch := make(chan Event[int], 4)
	e := NewChannelEntry(ch)
	g.EventRegister(e)
	g.PushBack(1)
	g.PushBack(2)
	g.EventUnregister(e)
	g.PushBack(3)
	close(ch)

	var values []int
	for ev := range ch {
		assert.Check(t, is.Equal(OpPushBack, ev.Op))
		values = append(values, ev.Value)
	}
	assert.DeepEqual(t, []int{1, 2}, values)
}

func TestConcurrentPushes(t *testing.T) {
	defer goleak.VerifyNone(t)

	const workers, per = 8, 250
	var g List[int]
	var notified sync.WaitGroup
	notified.Add(workers * per)
	g.EventRegister(NewFunctionEntry(func(Event[int]) { notified.Done() }))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < per; i++ {
				if i%2 == 0 {
					g.PushBack(w*per + i)
				} else {
					g.PushFront(w*per + i)
				}
			}
		}(w)
	}
	wg.Wait()
	notified.Wait()

	assert.Equal(t, workers*per, g.Len())
	seen := make(map[int]bool)
	for v := range g.All() {
		assert.Assert(t, !seen[v], "duplicate %d", v)
		seen[v] = true
	}
	assert.Equal(t, workers*per, len(seen))
	assert.Equal(t, workers*per, g.Clear())
	assert.Equal(t, 0, g.Len())
}

func TestDo(t *testing.T) {
	var g List[int]
	g.PushBack(1)

	var events []Event[int]
	g.EventRegister(NewFunctionEntry(func(e Event[int]) {
		events = append(events, e)
	}))

	g.Do(func(tx *Txn[int]) {
		tx.PushBack(2)
		tx.PushFront(0)
		assert.Check(t, is.Equal(3, tx.Len()))
		v, ok := tx.PopFront()
		assert.Check(t, ok)
		assert.Check(t, is.Equal(0, v))
		tx.PushBack(3)
		// Listeners run after the lock is released.
		assert.Check(t, is.Len(events, 0))
	})
	assert.Equal(t, 3, g.Len())
	assert.DeepEqual(t, []int{1, 2, 3}, slisttest.Collect(g.All()))
	assert.DeepEqual(t, []Event[int]{
		{Op: OpPushBack, Value: 2},
		{Op: OpPushFront, Value: 0},
		{Op: OpPushBack, Value: 3},
	}, events)
}

func TestDoEmptyPops(t *testing.T) {
	var g List[string]
	g.Do(func(tx *Txn[string]) {
		_, ok := tx.PopFront()
		assert.Check(t, !ok)
		assert.Check(t, is.Equal(0, tx.Len()))
	})
	assert.Equal(t, 0, g.Len())
}

// Len must never observe a half-applied Do.
func TestDoAtomic(t *testing.T) {
	defer goleak.VerifyNone(t)

	var g List[int]
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.Do(func(tx *Txn[int]) {
					tx.PushBack(i)
					tx.PushBack(j)
				})
			}
		}()
	}
	for i := 0; i < 100; i++ {
		assert.Check(t, g.Len()%2 == 0)
	}
	wg.Wait()
	assert.Equal(t, 8*100*2, g.Len())
	assert.Equal(t, 8*100*2, g.Clear())
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "push_front", OpPushFront.String())
	assert.Equal(t, "push_back", OpPushBack.String())
	assert.Equal(t, "unknown", Op(0).String())
}
