package queries_test

import (
	"context"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderReader) ListByCustomer(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) ListByRestaurant(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) ListByRider(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) ListAvailable(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRestaurantReader struct{ mock.Mock }

func (m *MockRestaurantReader) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

func (m *MockRestaurantReader) GetByOwner(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

type orderFixture struct {
	customer actor.Actor
	owner    actor.Actor
	rider    actor.Actor
	r        *restaurant.Restaurant
	o        *order.Order
}

func newOrderFixture(t *testing.T, status order.Status) orderFixture {
	t.Helper()
	mk := func(role actor.Role) actor.Actor {
		a, err := actor.NewActor(kernel.NewUUID(), role)
		require.NoError(t, err)
		return a
	}
	f := orderFixture{customer: mk(actor.Customer), owner: mk(actor.Restaurant), rider: mk(actor.Rider)}

	var err error
	f.r, err = restaurant.NewRestaurant(kernel.NewUUID(), f.owner.ID(), "Green Bowl", "Salads", "", time.Now())
	require.NoError(t, err)

	line, err := order.NewLine(kernel.NewUUID(), "Caesar", 1, kernel.MustMoney("8.00"))
	require.NoError(t, err)
	placed, err := order.NewOrder(kernel.NewUUID(), f.customer.ID(), f.r.ID(), []order.Line{line}, time.Now())
	require.NoError(t, err)
	riderID := f.rider.ID()
	f.o, err = order.RestoreOrder(placed.ID(), placed.CustomerID(), placed.RestaurantID(), &riderID,
		status, placed.Total(), placed.Lines(), placed.Payment(), placed.CreatedAt())
	require.NoError(t, err)
	return f
}

func TestOrderQueryHandler_GetOrder(t *testing.T) {
	ctx := t.Context()
	f := newOrderFixture(t, order.Preparing)

	orders := new(MockOrderReader)
	restaurants := new(MockRestaurantReader)
	orders.On("Get", ctx, f.o.ID()).Return(f.o, nil)
	restaurants.On("Get", ctx, f.r.ID()).Return(f.r, nil)
	handler := queries.NewOrderQueryHandler(orders, restaurants)

	t.Run("customer does not see the rider before pickup", func(t *testing.T) {
		q, err := queries.NewGetOrderQuery(f.customer, f.o.ID())
		require.NoError(t, err)

		view, err := handler.GetOrder(ctx, q)

		require.NoError(t, err)
		assert.Equal(t, "PREPARING", view.Status)
		assert.Nil(t, view.RiderID)
	})

	t.Run("restaurant sees the rider", func(t *testing.T) {
		q, err := queries.NewGetOrderQuery(f.owner, f.o.ID())
		require.NoError(t, err)

		view, err := handler.GetOrder(ctx, q)

		require.NoError(t, err)
		require.NotNil(t, view.RiderID)
		assert.Equal(t, f.rider.ID().String(), *view.RiderID)
	})

	t.Run("unrelated rider is forbidden", func(t *testing.T) {
		stranger, err := actor.NewActor(kernel.NewUUID(), actor.Rider)
		require.NoError(t, err)
		q, err := queries.NewGetOrderQuery(stranger, f.o.ID())
		require.NoError(t, err)

		_, err = handler.GetOrder(ctx, q)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestOrderQueryHandler_ListMyOrders(t *testing.T) {
	ctx := t.Context()
	f := newOrderFixture(t, order.Picked)

	orders := new(MockOrderReader)
	restaurants := new(MockRestaurantReader)
	orders.On("ListByCustomer", ctx, f.customer.ID()).Return([]*order.Order{f.o}, nil).Once()
	orders.On("ListByRestaurant", ctx, f.r.ID()).Return([]*order.Order{f.o}, nil).Once()
	orders.On("ListByRider", ctx, f.rider.ID()).Return([]*order.Order{}, nil).Once()
	restaurants.On("GetByOwner", ctx, f.owner.ID()).Return(f.r, nil).Once()
	handler := queries.NewOrderQueryHandler(orders, restaurants)

	for _, a := range []actor.Actor{f.customer, f.owner, f.rider} {
		q, err := queries.NewListMyOrdersQuery(a)
		require.NoError(t, err)
		_, err = handler.ListMyOrders(ctx, q)
		require.NoError(t, err)
	}

	admin, err := actor.NewActor(kernel.NewUUID(), actor.Admin)
	require.NoError(t, err)
	q, err := queries.NewListMyOrdersQuery(admin)
	require.NoError(t, err)
	_, err = handler.ListMyOrders(ctx, q)
	require.ErrorIs(t, err, errs.ErrForbidden)

	orders.AssertExpectations(t)
	restaurants.AssertExpectations(t)
}

func TestOrderQueryHandler_ListMyOrders_RestaurantWithoutRestaurant(t *testing.T) {
	ctx := t.Context()
	f := newOrderFixture(t, order.Placed)

	restaurants := new(MockRestaurantReader)
	restaurants.On("GetByOwner", ctx, f.owner.ID()).
		Return(nil, errs.NewObjectNotFoundError("restaurant", f.owner.ID().String())).Once()
	handler := queries.NewOrderQueryHandler(new(MockOrderReader), restaurants)

	q, err := queries.NewListMyOrdersQuery(f.owner)
	require.NoError(t, err)

	_, err = handler.ListMyOrders(ctx, q)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
