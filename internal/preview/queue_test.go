package preview

import (
	"testing"
	"time"

	"wallpick/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for _, p := range []string{"a", "b", "a", "c"} {
		require.NoError(t, q.Push(p))
	}
	assert.Equal(t, 4, q.Len())

	var got []string
	for q.Len() > 0 {
		p, ok := q.Pop()
		require.True(t, ok)
		got = append(got, p)
	}
	assert.Equal(t, []string{"a", "b", "a", "c"}, got)
	assert.Equal(t, 4, q.Pushed())
}

func TestQueuePopBlocksUntilPush(t *testing.T) {
	q := NewQueue()
	got := make(chan string, 1)
	go func() {
		p, _ := q.Pop()
		got <- p
	}()

	select {
	case <-got:
		t.Fatal("Pop returned on an empty queue")
	case <-time.After(20 * time.Millisecond):
	}

	require.NoError(t, q.Push("x"))
	select {
	case p := <-got:
		assert.Equal(t, "x", p)
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake up")
	}
}

func TestQueueClose(t *testing.T) {
	q := NewQueue()
	require.NoError(t, q.Push("left"))
	q.Close()
	q.Close()

	assert.True(t, q.Closed())
	assert.ErrorIs(t, q.Push("late"), errors.ErrWorkerStopped)

	p, ok := q.Pop()
	assert.True(t, ok, "items queued before Close are still delivered")
	assert.Equal(t, "left", p)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestQueueCloseWakesPop(t *testing.T) {
	q := NewQueue()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.Pop()
		done <- ok
	}()

	time.Sleep(10 * time.Millisecond)
	q.Close()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Close did not wake Pop")
	}
}

func TestQueueTryPop(t *testing.T) {
	q := NewQueue()
	_, ok := q.TryPop()
	assert.False(t, ok)

	require.NoError(t, q.Push("a"))
	p, ok := q.TryPop()
	assert.True(t, ok)
	assert.Equal(t, "a", p)
}
