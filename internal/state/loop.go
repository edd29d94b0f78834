package state

import (
	"context"
	"sync"
)

// Executor runs posted functions one at a time on its owner goroutine.
// Post reports false once the executor has shut down.
type Executor interface {
	Post(fn func()) bool
}

// Loop is the production Executor. Posting never blocks, including from
// functions already running on the loop.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	closed  bool
	wake    chan struct{}
}

// Ensure Loop implements Executor at compile time.
var _ Executor = (*Loop)(nil)

// NewLoop builds an idle loop. Call Run to start executing.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post queues fn.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run executes queued functions until ctx is cancelled. Work still queued
// at cancellation is discarded.
func (l *Loop) Run(ctx context.Context) error {
	for {
		for {
			fn := l.next()
			if fn == nil {
				break
			}
			fn()
			if ctx.Err() != nil {
				break
			}
		}
		select {
		case <-ctx.Done():
			l.shutdown()
			return ctx.Err()
		case <-l.wake:
		}
	}
}

func (l *Loop) next() func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.pending) == 0 {
		return nil
	}
	fn := l.pending[0]
	l.pending[0] = nil
	l.pending = l.pending[1:]
	return fn
}

func (l *Loop) shutdown() {
	l.mu.Lock()
	l.closed = true
	l.pending = nil
	l.mu.Unlock()
}
