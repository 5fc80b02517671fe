package progress

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress_Update(t *testing.T) {
	tracker := New()
	tracker.Update(Delta{Spawned: 1, Running: 1})
	tracker.Update(Delta{Spawned: 1, Running: 1})
	tracker.Update(Delta{Running: -1, Killed: 1})

	actual := tracker.Snapshot()
	assert.Equal(t, 2, actual.Spawned)
	assert.Equal(t, 1, actual.Running)
	assert.Equal(t, 1, actual.Killed)
	assert.False(t, actual.StartedAt.IsZero())
}

func TestProgress_Concurrent(t *testing.T) {
	tracker := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Update(Delta{Spawned: 1, Running: 1})
			tracker.Update(Delta{Running: -1, Exited: 1})
		}()
	}
	wg.Wait()
	assert.Equal(t, Counters{StartedAt: tracker.Snapshot().StartedAt, Spawned: 50, Exited: 50}, tracker.Snapshot())
}

func TestProgress_Nil(t *testing.T) {
	var tracker *Progress
	tracker.Update(Delta{Spawned: 1})
	assert.Equal(t, Counters{}, tracker.Snapshot())
}
