package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/fluxterm/model"
)

func TestRegistry(t *testing.T) {
	registry := New()
	assert.Nil(t, registry.Peek())
	assert.Nil(t, registry.Take())

	first := model.NewSession(100, "sleep 5", "/")
	second := model.NewSession(101, "sleep 6", "/")

	assert.Nil(t, registry.Set(first))
	assert.Same(t, first, registry.Peek())

	assert.Same(t, first, registry.Set(second), "last spawn wins the slot")
	assert.False(t, registry.CompareAndClear(first), "stale session must not clear the slot")
	assert.Same(t, second, registry.Peek())

	assert.True(t, registry.CompareAndClear(second))
	assert.Nil(t, registry.Peek())
	assert.False(t, registry.CompareAndClear(second))

	registry.Set(first)
	assert.Same(t, first, registry.Take())
	assert.Nil(t, registry.Take())
}

func TestRegistry_ConcurrentTake(t *testing.T) {
	registry := New()
	registry.Set(model.NewSession(1, "yes", "/"))

	var taken sync.Map
	wg := sync.WaitGroup{}
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if session := registry.Take(); session != nil {
				taken.Store(i, session)
			}
		}(i)
	}
	wg.Wait()

	count := 0
	taken.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count, "exactly one caller takes the session")
}
