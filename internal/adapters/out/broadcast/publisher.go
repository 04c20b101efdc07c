package broadcast

import (
	"context"

	"fooddelivery/internal/core/domain/model/realtime"
)

// Publisher implements ports.Broadcaster on top of a relay bus.
type Publisher struct {
	bus Bus
}

func NewPublisher(bus Bus) *Publisher {
	return &Publisher{bus: bus}
}

// Publish encodes the event for channel and hands it to the bus. It does not wait
// for any socket delivery.
func (p *Publisher) Publish(ctx context.Context, channel realtime.Channel, event realtime.Event) error {
	message, err := encodeEnvelope(channel.String(), event.Type, event.Payload)
	if err != nil {
		return err
	}
	return p.bus.Publish(ctx, message)
}
