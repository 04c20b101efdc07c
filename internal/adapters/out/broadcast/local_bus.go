package broadcast

import (
	"context"
	"errors"
	"sync"
)

const localBufferSize = 256

// ErrBusClosed is returned by operations on a closed bus.
var ErrBusClosed = errors.New("broadcast bus is closed")

// LocalBus relays within a single process. A subscriber that falls behind by more
// than its buffer loses messages.
type LocalBus struct {
	mu          sync.RWMutex
	subscribers map[chan []byte]struct{}
	closed      bool
}

func NewLocalBus() *LocalBus {
	return &LocalBus{subscribers: make(map[chan []byte]struct{})}
}

func (b *LocalBus) Publish(_ context.Context, message []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}
	for sub := range b.subscribers {
		select {
		case sub <- message:
		default:
		}
	}
	return nil
}

func (b *LocalBus) Subscribe(ctx context.Context, handle func(message []byte)) error {
	sub := make(chan []byte, localBufferSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrBusClosed
	}
	b.subscribers[sub] = struct{}{}
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.subscribers, sub)
		b.mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case message, ok := <-sub:
			if !ok {
				return ErrBusClosed
			}
			handle(message)
		}
	}
}

// Close ends every running Subscribe with ErrBusClosed.
func (b *LocalBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	for sub := range b.subscribers {
		close(sub)
		delete(b.subscribers, sub)
	}
	return nil
}
