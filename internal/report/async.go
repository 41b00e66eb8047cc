package report

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// ErrQueueFull is returned by Async.Report when a record had to be dropped.
var ErrQueueFull = errors.New("report queue full")

// ErrClosed is returned by Async.Report after Close.
var ErrClosed = errors.New("report sink closed")

// Async decouples the scan from a slow sink.
//
// Records are queued and delivered by a single background goroutine, in
// order. Report never blocks: when the queue is full the record is dropped
// and counted. Delivery failures are logged by the background goroutine.
// Close stops accepting records, delivers what is queued, and waits.
type Async struct {
	next   Sink
	logger *zap.Logger
	queue  chan Record
	done   chan struct{}

	mu     sync.RWMutex
	closed bool

	delivered atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

// NewAsync starts the delivery goroutine for next with a queue of size records.
func NewAsync(next Sink, size int, logger *zap.Logger) *Async {
	if size <= 0 {
		size = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Async{
		next:   next,
		logger: logger,
		queue:  make(chan Record, size),
		done:   make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) run() {
	defer close(a.done)
	for r := range a.queue {
		// The enqueuing scan's context may be gone by now.
		if err := a.next.Report(context.Background(), r); err != nil {
			a.failed.Add(1)
			a.logger.Warn("report delivery failed",
				zap.String("id", r.ID),
				zap.Int64("seed", r.Seed),
				zap.Error(err))
			continue
		}
		a.delivered.Add(1)
	}
}

// Report enqueues r.
func (a *Async) Report(_ context.Context, r Record) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}

	select {
	case a.queue <- r:
		return nil
	default:
		a.dropped.Add(1)
		return ErrQueueFull
	}
}

// Close drains the queue and waits for the delivery goroutine to exit.
func (a *Async) Close() error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()

	<-a.done
	return nil
}

// AsyncStats counts what happened to queued records.
type AsyncStats struct {
	Delivered int64 `json:"delivered"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
}

// Stats returns delivery counters.
func (a *Async) Stats() AsyncStats {
	return AsyncStats{
		Delivered: a.delivered.Load(),
		Failed:    a.failed.Load(),
		Dropped:   a.dropped.Load(),
	}
}
