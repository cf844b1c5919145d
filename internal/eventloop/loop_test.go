package eventloop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPending_Order(t *testing.T) {
	l := New()
	var got []int
	for i := 1; i <= 3; i++ {
		l.Post(func() { got = append(got, i) })
	}
	assert.Equal(t, 3, l.Pending())

	assert.Equal(t, 3, l.RunPending())
	assert.Equal(t, []int{1, 2, 3}, got)
	assert.Zero(t, l.Pending())
}

func TestRunPending_PostedWhileRunning(t *testing.T) {
	l := New()
	var got []string
	l.Post(func() {
		got = append(got, "outer start")
		l.Post(func() { got = append(got, "inner") })
		got = append(got, "outer end")
	})

	assert.Equal(t, 2, l.RunPending())
	assert.Equal(t, []string{"outer start", "outer end", "inner"}, got)
}

func TestPost_Nil(t *testing.T) {
	l := New()
	l.Post(nil)
	assert.Zero(t, l.Pending())
}

func TestRun_ProcessesFromOtherGoroutines(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	var wg sync.WaitGroup
	var mu sync.Mutex
	count := 0
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go l.Post(func() {
			mu.Lock()
			count++
			mu.Unlock()
			wg.Done()
		})
	}
	wg.Wait()

	cancel()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	assert.Equal(t, 10, count)
}
