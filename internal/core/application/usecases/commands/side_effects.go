package commands

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/realtime"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
)

const defaultSideEffectTimeout = 5 * time.Second

// OrderPartiesReader resolves the names order events are denormalized with.
type OrderPartiesReader interface {
	OrderParties(ctx context.Context, restaurantID, customerID kernel.UUID) (views.OrderParties, error)
}

// SideEffects stores the notices of a committed transition and pushes them, together
// with the order events, to the realtime channels. Failures are logged and never
// reach the caller of the transition.
type SideEffects struct {
	notifications ports.NotificationStore
	broadcaster   ports.Broadcaster
	parties       OrderPartiesReader
	logger        *slog.Logger
	timeout       time.Duration
}

func NewSideEffects(notifications ports.NotificationStore, broadcaster ports.Broadcaster, logger *slog.Logger) *SideEffects {
	return &SideEffects{
		notifications: notifications,
		broadcaster:   broadcaster,
		logger:        logger.With("component", "side-effects"),
		timeout:       defaultSideEffectTimeout,
	}
}

// WithParties makes order events carry the restaurant and customer names read
// through reader. Without it they carry ids only.
func (s *SideEffects) WithParties(reader OrderPartiesReader) *SideEffects {
	s.parties = reader
	return s
}

// Apply must only be called after the transition is committed. It detaches from the
// request context so a client disconnect does not drop notifications.
func (s *SideEffects) Apply(ctx context.Context, o *order.Order, plan services.TransitionPlan) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	orderID := o.ID()
	now := time.Now()

	for _, notice := range plan.Notices {
		n, err := notification.NewNotification(notice.Recipient, &orderID, notice.Message, now)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to build notification", "order_id", orderID.String(), "error", err)
			continue
		}

		stored, err := s.notifications.Append(ctx, n)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to store notification",
				"order_id", orderID.String(), "recipient", notice.Recipient.ID().String(), "error", err)
			stored = n
		}

		s.publish(ctx, notice.Channel, realtime.Event{
			Type:    realtime.EventNotification,
			Payload: views.NewNotification(stored),
		})
	}

	if len(plan.Deliveries) == 0 {
		return
	}
	parties := s.orderParties(ctx, o)
	for _, d := range plan.Deliveries {
		s.publish(ctx, d.Channel, realtime.Event{
			Type:    d.Event,
			Payload: views.NewOrderEvent(o, d.Audience).WithParties(parties),
		})
	}
}

func (s *SideEffects) orderParties(ctx context.Context, o *order.Order) views.OrderParties {
	if s.parties == nil {
		return views.OrderParties{}
	}
	parties, err := s.parties.OrderParties(ctx, o.RestaurantID(), o.CustomerID())
	if err != nil {
		s.logger.WarnContext(ctx, "failed to resolve order parties", "order_id", o.ID().String(), "error", err)
	}
	return parties
}

func (s *SideEffects) publish(ctx context.Context, channel realtime.Channel, event realtime.Event) {
	if err := s.broadcaster.Publish(ctx, channel, event); err != nil {
		s.logger.WarnContext(ctx, "failed to publish event",
			"channel", channel.String(), "event", event.Type, "error", err)
	}
}
