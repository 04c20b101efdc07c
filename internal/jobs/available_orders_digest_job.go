package jobs

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/realtime"
	"fooddelivery/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// AvailableOrdersLister is the query the digest is built from.
type AvailableOrdersLister interface {
	ListAvailable(ctx context.Context, q queries.ListAvailableOrdersQuery) ([]views.Order, error)
}

// AvailableOrdersPayload is the body of the AVAILABLE_ORDERS event.
type AvailableOrdersPayload struct {
	Orders []views.Order `json:"orders"`
}

// AvailableOrdersDigestJob periodically pushes the full list of claimable orders
// to online riders, so riders that missed individual events catch up.
type AvailableOrdersDigestJob struct {
	orders      AvailableOrdersLister
	broadcaster ports.Broadcaster
	schedule    string
	timeout     time.Duration
	cron        *cron.Cron
	logger      *slog.Logger
}

// NewAvailableOrdersDigestJob creates the job. schedule accepts standard cron
// expressions and descriptors such as "@every 30s".
func NewAvailableOrdersDigestJob(
	orders AvailableOrdersLister,
	broadcaster ports.Broadcaster,
	schedule string,
	logger *slog.Logger,
) *AvailableOrdersDigestJob {
	return &AvailableOrdersDigestJob{
		orders:      orders,
		broadcaster: broadcaster,
		schedule:    schedule,
		timeout:     10 * time.Second,
		cron:        cron.New(),
		logger:      logger.With("component", "available_orders_digest_job"),
	}
}

// Start registers the job on its schedule and starts the scheduler.
func (j *AvailableOrdersDigestJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()

		if err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Available orders digest failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Available orders digest job started", "schedule", j.schedule)
	return nil
}

// Run publishes one digest.
func (j *AvailableOrdersDigestJob) Run(ctx context.Context) error {
	orders, err := j.orders.ListAvailable(ctx, queries.NewListAvailableOrdersQuery())
	if err != nil {
		return err
	}
	return j.broadcaster.Publish(ctx, realtime.RidersOnline, realtime.Event{
		Type:    realtime.EventAvailableOrders,
		Payload: AvailableOrdersPayload{Orders: orders},
	})
}

// Stop stops the scheduler and waits for a running digest to finish.
func (j *AvailableOrdersDigestJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Available orders digest job stopped")
}
