// Package eventbus is an in-process typed publish/subscribe signal.
package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// Sink receives every published event after local delivery.
type Sink[T any] interface {
	Forward(ctx context.Context, ev T) error
}

type Bus[T any] struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[uint64]func(T)
	sink   Sink[T]
	log    *slog.Logger
}

func New[T any](log *slog.Logger) *Bus[T] {
	if log == nil {
		log = slog.Default()
	}
	return &Bus[T]{subs: make(map[uint64]func(T)), log: log}
}

// WithSink attaches an external forwarder. Call before the bus is shared.
func (b *Bus[T]) WithSink(s Sink[T]) *Bus[T] {
	b.sink = s
	return b
}

// Subscribe registers fn and returns the func that removes it. The returned
// func is safe to call more than once.
func (b *Bus[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
		})
	}
}

// Publish calls every current subscriber synchronously, then the sink.
func (b *Bus[T]) Publish(ctx context.Context, ev T) {
	b.mu.RLock()
	fns := make([]func(T), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}

	if b.sink != nil {
		if err := b.sink.Forward(ctx, ev); err != nil {
			b.log.Warn("event forward failed", "err", err)
		}
	}
}

// Len is the number of live subscribers.
func (b *Bus[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
