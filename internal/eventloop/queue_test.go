package eventloop

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDrain_RunsInPostOrder(t *testing.T) {
	q := NewQueue()
	var order []int
	for i := 0; i < 3; i++ {
		q.Post(func() { order = append(order, i) })
	}

	ran := q.Drain()

	assert.Equal(t, 3, ran)
	assert.Equal(t, []int{0, 1, 2}, order)
	assert.Equal(t, 0, q.Pending())
}

func TestDrain_TasksPostedDuringDrainRunAfterCurrent(t *testing.T) {
	q := NewQueue()
	var order []string
	q.Post(func() {
		order = append(order, "outer-start")
		q.Post(func() { order = append(order, "inner") })
		order = append(order, "outer-end")
	})
	q.Post(func() { order = append(order, "second") })

	q.Drain()

	assert.Equal(t, []string{"outer-start", "outer-end", "second", "inner"}, order)
}

func TestDrain_NestedCallIsNoop(t *testing.T) {
	q := NewQueue()
	nested := -1
	q.Post(func() {
		q.Post(func() {})
		nested = q.Drain()
	})

	total := q.Drain()

	assert.Equal(t, 0, nested)
	assert.Equal(t, 2, total)
}

func TestPost_WakesOnce(t *testing.T) {
	q := NewQueue()
	q.Post(func() {})
	q.Post(func() {})

	select {
	case <-q.Wake():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected wake signal")
	}

	select {
	case <-q.Wake():
		t.Fatal("wake signal should be coalesced")
	default:
	}
}

func TestPost_FromManyGoroutines(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup
	count := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Post(func() { count++ })
		}()
	}
	wg.Wait()

	q.Drain()

	assert.Equal(t, 50, count)
}

func TestClose_DropsPendingAndRejectsNew(t *testing.T) {
	q := NewQueue()
	ran := false
	q.Post(func() { ran = true })
	q.Close()
	q.Post(func() { ran = true })

	assert.Equal(t, 0, q.Drain())
	assert.False(t, ran)
}

func TestPost_NilIgnored(t *testing.T) {
	q := NewQueue()
	q.Post(nil)
	assert.Equal(t, 0, q.Pending())
}

func TestClose_ReleasesWakeListeners(t *testing.T) {
	q := NewQueue()
	released := make(chan struct{})
	go func() {
		for range q.Wake() {
		}
		close(released)
	}()

	q.Close()
	q.Close()
	q.Post(func() {})

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("wake channel should be closed")
	}
}
