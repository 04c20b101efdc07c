package broadcast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	amqpMinReconnect = time.Second
	amqpMaxReconnect = 30 * time.Second
)

// AMQPBus relays through a fanout exchange. Each subscriber binds its own
// exclusive queue, so every process receives every message. A dropped broker
// connection is redialled: Publish retries once on a fresh channel and
// Subscribe rebinds with backoff. Messages sent while no queue is bound are lost.
type AMQPBus struct {
	url      string
	exchange string
	logger   *slog.Logger
	done     chan struct{}

	mu     sync.Mutex
	conn   *amqp.Connection
	ch     *amqp.Channel
	closed bool
}

// NewAMQPBus dials url and declares the fanout exchange.
func NewAMQPBus(url, exchange string, logger *slog.Logger) (*AMQPBus, error) {
	b := &AMQPBus{
		url:      url,
		exchange: exchange,
		logger:   logger.With("component", "amqp-bus"),
		done:     make(chan struct{}),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.connectLocked(); err != nil {
		return nil, err
	}
	return b, nil
}

// connectLocked redials the connection and reopens the publishing channel when
// either is gone.
func (b *AMQPBus) connectLocked() error {
	if b.closed {
		return ErrBusClosed
	}
	if b.conn == nil || b.conn.IsClosed() {
		conn, err := amqp.Dial(b.url)
		if err != nil {
			return fmt.Errorf("dial amqp: %w", err)
		}
		b.conn = conn
		b.ch = nil
	}
	if b.ch == nil || b.ch.IsClosed() {
		ch, err := b.conn.Channel()
		if err != nil {
			return fmt.Errorf("open amqp channel: %w", err)
		}
		if err = ch.ExchangeDeclare(b.exchange, "fanout", true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return fmt.Errorf("declare exchange %s: %w", b.exchange, err)
		}
		b.ch = ch
	}
	return nil
}

// Publish sends a transient message; realtime events are not worth persisting.
func (b *AMQPBus) Publish(ctx context.Context, message []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var err error
	for attempt := 0; attempt < 2; attempt++ {
		if err = b.connectLocked(); err != nil {
			return err
		}
		err = b.ch.PublishWithContext(ctx, b.exchange, "", false, false, amqp.Publishing{
			DeliveryMode: amqp.Transient,
			Timestamp:    time.Now().UTC(),
			ContentType:  "application/json",
			Body:         message,
		})
		if !errors.Is(err, amqp.ErrClosed) {
			return err
		}
	}
	return err
}

// Subscribe consumes until ctx is done or the bus is closed, rebinding after
// a lost connection.
func (b *AMQPBus) Subscribe(ctx context.Context, handle func(message []byte)) error {
	backoff := amqpMinReconnect
	for {
		established, err := b.consume(ctx, handle)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if b.isClosed() {
			return ErrBusClosed
		}
		if established {
			backoff = amqpMinReconnect
		}
		b.logger.Warn("amqp subscription lost", "error", err, "retry_in", backoff)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-b.done:
			return ErrBusClosed
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, amqpMaxReconnect)
	}
}

// consume reports whether deliveries started flowing before it returned.
func (b *AMQPBus) consume(ctx context.Context, handle func(message []byte)) (bool, error) {
	ch, err := b.channel()
	if err != nil {
		return false, err
	}
	defer ch.Close()

	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return false, fmt.Errorf("declare queue: %w", err)
	}
	if err = ch.QueueBind(q.Name, "", b.exchange, false, nil); err != nil {
		return false, fmt.Errorf("bind queue: %w", err)
	}
	deliveries, err := ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return false, fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return true, amqp.ErrClosed
			}
			handle(d.Body)
		}
	}
}

// channel opens a consumer channel on the current connection, redialling first
// when needed.
func (b *AMQPBus) channel() (*amqp.Channel, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.connectLocked(); err != nil {
		return nil, err
	}
	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open amqp channel: %w", err)
	}
	return ch, nil
}

func (b *AMQPBus) isClosed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}

// Close ends every running Subscribe with ErrBusClosed.
func (b *AMQPBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	close(b.done)
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn == nil || b.conn.IsClosed() {
		return nil
	}
	return b.conn.Close()
}
