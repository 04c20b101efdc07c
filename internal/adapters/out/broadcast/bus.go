package broadcast

import (
	"context"
	"log/slog"

	"fooddelivery/internal/core/domain/model/realtime"
)

// Bus relays encoded envelopes between processes. Every subscriber of a bus
// receives every message published on it, including its own.
type Bus interface {
	Publish(ctx context.Context, message []byte) error
	// Subscribe calls handle for each message until ctx is done or the bus fails.
	Subscribe(ctx context.Context, handle func(message []byte)) error
	Close() error
}

// Sink delivers a frame to the connections joined to channel in this process.
type Sink interface {
	Deliver(channel realtime.Channel, frame []byte)
}

// Forward subscribes to bus and hands every well-formed envelope to sink.
// It blocks until ctx is cancelled or the subscription fails.
func Forward(ctx context.Context, bus Bus, sink Sink, logger *slog.Logger) error {
	logger = logger.With("component", "broadcast-forwarder")

	return bus.Subscribe(ctx, func(message []byte) {
		env, err := decodeEnvelope(message)
		if err != nil {
			logger.Warn("dropping malformed envelope", "error", err)
			return
		}
		frame, err := EncodeFrame(env.Event, env.Data)
		if err != nil {
			logger.Warn("failed to encode frame", "event", env.Event, "error", err)
			return
		}
		sink.Deliver(realtime.Channel(env.Channel), frame)
	})
}
