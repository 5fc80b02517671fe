package memory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type line struct {
	Session int
	Text    string
}

func TestQueue_PublishConsume(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[line](DefaultConfig())

	for i := 0; i < 3; i++ {
		require.NoError(t, queue.Publish(ctx, &line{Session: 7, Text: strconv.Itoa(i)}))
	}

	for i := 0; i < 3; i++ {
		msg, err := queue.Consume(ctx)
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(i), msg.T().Text)
		assert.NoError(t, msg.Ack())
		assert.ErrorIs(t, msg.Ack(), ErrProcessed)
		assert.ErrorIs(t, msg.Nack(nil), ErrProcessed)
	}
}

func TestQueue_Nack(t *testing.T) {
	ctx := context.Background()
	config := DefaultConfig()
	config.MaxRetries = 2
	config.RetryDelay = 5 * time.Millisecond
	queue := NewQueue[line](config)
	require.NoError(t, queue.Publish(ctx, &line{Text: "retry"}))

	var id string
	for attempt := 0; attempt <= config.MaxRetries; attempt++ {
		consumeCtx, cancel := context.WithTimeout(ctx, time.Second)
		msg, err := queue.Consume(consumeCtx)
		cancel()
		require.NoError(t, err, attempt)
		if id == "" {
			id = msg.(*Message[line]).ID()
		}
		assert.Equal(t, id, msg.(*Message[line]).ID())
		require.NoError(t, msg.Nack(errors.New("handler failed")))
	}

	// retries exhausted, the message is not redelivered again
	consumeCtx, cancel := context.WithTimeout(ctx, 20*config.RetryDelay)
	defer cancel()
	_, err := queue.Consume(consumeCtx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQueue_TryPublish(t *testing.T) {
	queue := NewQueue[line](Config{QueueBuffer: 2})
	assert.True(t, queue.TryPublish(&line{Text: "a"}))
	assert.True(t, queue.TryPublish(&line{Text: "b"}))
	assert.False(t, queue.TryPublish(&line{Text: "c"}))

	msg, err := queue.Consume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", msg.T().Text)
	assert.True(t, queue.TryPublish(&line{Text: "c"}))
}

func TestQueue_Concurrent(t *testing.T) {
	ctx := context.Background()
	queue := NewQueue[line](Config{QueueBuffer: 4})
	producers, perProducer := 8, 25

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				assert.NoError(t, queue.Publish(ctx, &line{Session: p, Text: strconv.Itoa(i)}))
			}
		}(p)
	}

	// per producer order is preserved
	next := map[int]int{}
	for i := 0; i < producers*perProducer; i++ {
		msg, err := queue.Consume(ctx)
		require.NoError(t, err)
		payload := msg.T()
		assert.Equal(t, strconv.Itoa(next[payload.Session]), payload.Text)
		next[payload.Session]++
		require.NoError(t, msg.Ack())
	}
	wg.Wait()
}

func TestQueue_Cancelled(t *testing.T) {
	queue := NewQueue[line](DefaultConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, queue.Publish(ctx, &line{}), context.Canceled)
	_, err := queue.Consume(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	require.NoError(t, queue.Publish(context.Background(), &line{Text: "ok"}))
	msg, err := queue.Consume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", msg.T().Text)
}
