package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/realtime"
)

// Broadcaster pushes an event to every connection joined to a channel.
// Delivery is at most once and nothing is kept for offline recipients.
type Broadcaster interface {
	Publish(ctx context.Context, channel realtime.Channel, event realtime.Event) error
}
