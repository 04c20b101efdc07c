package broadcast

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisBus relays through a Redis pub/sub channel.
type RedisBus struct {
	rdb     *redis.Client
	channel string
}

// NewRedisBus parses redisURL and checks the server is reachable.
func NewRedisBus(ctx context.Context, redisURL, channel string) (*RedisBus, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err = rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisBus{rdb: rdb, channel: channel}, nil
}

func (b *RedisBus) Publish(ctx context.Context, message []byte) error {
	return b.rdb.Publish(ctx, b.channel, message).Err()
}

// Subscribe waits for the subscription to be confirmed before consuming, so
// messages published after Subscribe starts receiving are not missed.
func (b *RedisBus) Subscribe(ctx context.Context, handle func(message []byte)) error {
	pubsub := b.rdb.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				return ErrBusClosed
			}
			handle([]byte(msg.Payload))
		}
	}
}

func (b *RedisBus) Close() error {
	return b.rdb.Close()
}
