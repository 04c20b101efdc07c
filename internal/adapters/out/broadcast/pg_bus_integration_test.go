package broadcast_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"fooddelivery/internal/adapters/out/broadcast"
	"fooddelivery/internal/core/application/views"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/realtime"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// availableOrdersDigest builds an AVAILABLE_ORDERS event listing n claimable orders.
func availableOrdersDigest(t *testing.T, n int) realtime.Event {
	t.Helper()
	orders := make([]*order.Order, 0, n)
	for range n {
		line, err := order.NewLine(kernel.NewUUID(), "Paneer Tikka", 2, kernel.MustMoney("9.75"))
		require.NoError(t, err)
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), []order.Line{line}, time.Now())
		require.NoError(t, err)
		orders = append(orders, o)
	}
	return realtime.Event{
		Type:    realtime.EventAvailableOrders,
		Payload: map[string][]views.Order{"orders": views.NewOrders(orders, actor.Rider)},
	}
}

type PGBusIntegrationTestSuite struct {
	suite.Suite
	container *pgcontainer.PostgresContainer
	dsn       string
	db        *sql.DB
}

func (suite *PGBusIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := pgcontainer.Run(ctx,
		"postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("testuser"),
		pgcontainer.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	suite.dsn, err = container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.db, err = sql.Open("postgres", suite.dsn)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.db.PingContext(ctx))
}

func (suite *PGBusIntegrationTestSuite) TearDownSuite() {
	if suite.db != nil {
		_ = suite.db.Close()
	}
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func TestPGBusIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(PGBusIntegrationTestSuite))
}

func (suite *PGBusIntegrationTestSuite) newBus(channel string) *broadcast.PGBus {
	bus, err := broadcast.NewPGBus(suite.T().Context(), suite.db, suite.dsn, channel, discardLogger())
	suite.Require().NoError(err)
	return bus
}

// Two buses stand in for two replicas listening on one notify channel.
func (suite *PGBusIntegrationTestSuite) TestPublishReachesEveryReplica() {
	ctx := suite.T().Context()
	producer := suite.newBus("realtime_roundtrip")
	consumer := suite.newBus("realtime_roundtrip")

	producerSink := newRecordingSink()
	consumerSink := newRecordingSink()
	startForward(suite.T(), producer, producerSink)
	startForward(suite.T(), consumer, consumerSink)

	publisher := broadcast.NewPublisher(producer)
	channel := realtime.Channel("CUSTOMER:c1")

	suite.Require().Eventually(func() bool {
		suite.Require().NoError(publisher.Publish(ctx, channel, realtime.Event{
			Type:    realtime.EventOrderStatusUpdate,
			Payload: map[string]string{"orderId": "o1", "status": "ACCEPTED"},
		}))
		return len(producerSink.framesFor(channel)) > 0 && len(consumerSink.framesFor(channel)) > 0
	}, 10*time.Second, 200*time.Millisecond)
}

func (suite *PGBusIntegrationTestSuite) TestOversizedDigestIsDelivered() {
	ctx := suite.T().Context()
	producer := suite.newBus("realtime_digest")
	consumer := suite.newBus("realtime_digest")

	sink := newRecordingSink()
	startForward(suite.T(), consumer, sink)

	digest := availableOrdersDigest(suite.T(), 60)
	raw, err := json.Marshal(digest.Payload)
	suite.Require().NoError(err)
	suite.Require().Greater(len(raw), 8000)

	publisher := broadcast.NewPublisher(producer)
	suite.Require().Eventually(func() bool {
		suite.Require().NoError(publisher.Publish(ctx, realtime.RidersOnline, digest))
		return len(sink.framesFor(realtime.RidersOnline)) > 0
	}, 10*time.Second, 200*time.Millisecond)

	var frame broadcast.Frame
	suite.Require().NoError(json.Unmarshal(sink.framesFor(realtime.RidersOnline)[0], &frame))
	suite.Equal(realtime.EventAvailableOrders, frame.Event)
	suite.JSONEq(string(raw), string(frame.Data))

	var spilled int
	suite.Require().NoError(suite.db.QueryRowContext(ctx, "SELECT count(*) FROM realtime_payloads").Scan(&spilled))
	suite.Positive(spilled)
}

func (suite *PGBusIntegrationTestSuite) TestSmallMessagesStayInline() {
	ctx := suite.T().Context()
	bus := suite.newBus("realtime_inline")

	var before int
	suite.Require().NoError(suite.db.QueryRowContext(ctx, "SELECT count(*) FROM realtime_payloads").Scan(&before))

	suite.Require().NoError(bus.Publish(ctx, []byte(`{"channel":"x","event":"y","data":{}}`)))

	var after int
	suite.Require().NoError(suite.db.QueryRowContext(ctx, "SELECT count(*) FROM realtime_payloads").Scan(&after))
	suite.Equal(before, after)
}
