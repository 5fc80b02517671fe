// Package streamer forwards process output streams to a model.Sink as
// line events.
package streamer

import (
	"context"
	"io"
	"log"
	"sync"
	"time"

	"github.com/viant/fluxterm/model"
	"github.com/viant/fluxterm/service/framer"
)

// Forward emits every line read from reader as an OutputLine tagged with
// stream, until EOF or a read error, and returns the number of lines sent.
// Read errors end forwarding silently; sink errors are logged.
func Forward(ctx context.Context, reader io.Reader, stream model.Stream, sink model.Sink) int {
	count := 0
	for line := range framer.Lines(reader) {
		if err := sink.Emit(ctx, model.NewOutputLine(stream, line)); err != nil {
			log.Printf("fluxterm: failed to emit %v line: %v", stream, err)
		}
		count++
	}
	return count
}

// Forwarding tracks the two concurrent forwarders of one session.
type Forwarding struct {
	readers []io.Closer
	done    chan struct{}
	once    sync.Once
}

// Start forwards stdout and stderr concurrently. Lines keep their order
// within a stream, there is no ordering across streams.
func Start(ctx context.Context, stdout, stderr io.ReadCloser, sink model.Sink) *Forwarding {
	ret := &Forwarding{readers: []io.Closer{stdout, stderr}, done: make(chan struct{})}
	wg := sync.WaitGroup{}
	wg.Add(2)
	go func() {
		defer wg.Done()
		Forward(ctx, stdout, model.Stdout, sink)
	}()
	go func() {
		defer wg.Done()
		Forward(ctx, stderr, model.Stderr, sink)
	}()
	go func() {
		wg.Wait()
		close(ret.done)
	}()
	return ret
}

// Wait blocks until both streams drained or timeout elapsed. On timeout
// the readers are closed, which ends the forwarders, and false is
// returned. A non positive timeout waits without limit.
func (f *Forwarding) Wait(timeout time.Duration) bool {
	drained := true
	if timeout <= 0 {
		<-f.done
	} else {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-f.done:
		case <-timer.C:
			drained = false
		}
	}
	f.close()
	<-f.done
	return drained
}

func (f *Forwarding) close() {
	f.once.Do(func() {
		for _, reader := range f.readers {
			_ = reader.Close()
		}
	})
}
