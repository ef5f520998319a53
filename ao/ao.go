// ao/ao.go
package ao

import (
	"context"
	"sync/atomic"
)

// DispatchFn consumes one event on the object's own goroutine. All
// mutation of the owner's state belongs here; callers never lock.
type DispatchFn[T any] func(ev T)

// Config for one active object.
type Config struct {
	Name  string
	Depth int // inbox capacity; <=0 gets the default
}

const defaultDepth = 8

// Object pairs a bounded inbox with exactly one consumer goroutine.
// Producers enqueue without blocking; the consumer drains one event at
// a time in FIFO order. The RTOS original also carried task priority
// and a stack budget; the Go runtime owns both, so they do not appear
// here.
type Object[T any] struct {
	name    string
	inbox   chan T
	drops   uint32
	started atomic.Bool
	stopped chan struct{}
}

// New allocates the inbox. The object accepts posts immediately; they
// sit in the inbox until Start attaches the consumer.
func New[T any](cfg Config) *Object[T] {
	if cfg.Depth <= 0 {
		cfg.Depth = defaultDepth
	}
	if cfg.Name == "" {
		cfg.Name = "ao"
	}
	return &Object[T]{
		name:    cfg.Name,
		inbox:   make(chan T, cfg.Depth),
		stopped: make(chan struct{}),
	}
}

// Start launches the consumer loop bound to fn. Must be called exactly
// once; a second call is a programming error and panics. The loop runs
// until ctx is cancelled (for the program lifetime in production).
func (o *Object[T]) Start(ctx context.Context, fn DispatchFn[T]) {
	if fn == nil {
		panic("ao: " + o.name + ": nil dispatch")
	}
	if !o.started.CompareAndSwap(false, true) {
		panic("ao: " + o.name + ": started twice")
	}
	go func() {
		defer close(o.stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case ev := <-o.inbox:
				fn(ev)
			}
		}
	}()
}

// Post enqueues from task context. Non-blocking: a full inbox drops
// the event and returns false; noticing the drop is the caller's
// business, nothing propagates.
func (o *Object[T]) Post(ev T) bool {
	select {
	case o.inbox <- ev:
		return true
	default:
		atomic.AddUint32(&o.drops, 1)
		return false
	}
}

// PostFromISR enqueues from interrupt or hardware-callback context.
// Never blocks. The channel send wakes the consumer, which is the Go
// analogue of the RTOS "higher-priority task woken" yield hint.
func (o *Object[T]) PostFromISR(ev T) bool {
	select {
	case o.inbox <- ev:
		return true
	default:
		atomic.AddUint32(&o.drops, 1) // protect the ISR path
		return false
	}
}

func (o *Object[T]) Name() string  { return o.name }
func (o *Object[T]) Cap() int      { return cap(o.inbox) }
func (o *Object[T]) Len() int      { return len(o.inbox) }
func (o *Object[T]) Drops() uint32 { return atomic.LoadUint32(&o.drops) }

// Stopped closes when the consumer loop has exited.
func (o *Object[T]) Stopped() <-chan struct{} { return o.stopped }
