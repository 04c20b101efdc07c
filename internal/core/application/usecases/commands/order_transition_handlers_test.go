package commands_test

import (
	"context"
	"sync"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/realtime"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAcceptOrderCommandHandler_Handle(t *testing.T) {
	customer := newActor(t, actor.Customer)
	owner := newActor(t, actor.Restaurant)
	r := newRestaurant(t, owner)

	t.Run("owner accepts", func(t *testing.T) {
		o := orderIn(t, customer, r, order.Placed, nil)
		store := newMemoryOrders(r, o)
		inbox := &recordingInbox{}
		bus := &recordingBroadcaster{}
		handler := commands.NewAcceptOrderCommandHandler(store, newSideEffects(inbox, bus))

		cmd, err := commands.NewAcceptOrderCommand(owner, o.ID())
		require.NoError(t, err)

		view, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "ACCEPTED", view.Status)
		assert.Equal(t, []kernel.UUID{customer.ID()}, inbox.recipients())
		assert.Equal(t, []realtime.Channel{realtime.RidersOnline}, bus.channels(realtime.EventOrderAvailable))

		stored, err := store.Create().OrderRepository().Get(t.Context(), o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Accepted, stored.Status())
	})

	t.Run("customer is forbidden", func(t *testing.T) {
		o := orderIn(t, customer, r, order.Placed, nil)
		handler := commands.NewAcceptOrderCommandHandler(newMemoryOrders(r, o),
			newSideEffects(&recordingInbox{}, &recordingBroadcaster{}))

		cmd, err := commands.NewAcceptOrderCommand(customer, o.ID())
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("second accept is an invalid transition", func(t *testing.T) {
		o := orderIn(t, customer, r, order.Placed, nil)
		handler := commands.NewAcceptOrderCommandHandler(newMemoryOrders(r, o),
			newSideEffects(&recordingInbox{}, &recordingBroadcaster{}))

		cmd, err := commands.NewAcceptOrderCommand(owner, o.ID())
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)
		require.NoError(t, err)
		_, err = handler.Handle(t.Context(), cmd)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("unknown order", func(t *testing.T) {
		handler := commands.NewAcceptOrderCommandHandler(newMemoryOrders(r),
			newSideEffects(&recordingInbox{}, &recordingBroadcaster{}))

		cmd, err := commands.NewAcceptOrderCommand(owner, kernel.NewUUID())
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestUpdateOrderStatusCommandHandler_Handle(t *testing.T) {
	customer := newActor(t, actor.Customer)
	owner := newActor(t, actor.Restaurant)
	rider := newActor(t, actor.Rider)
	r := newRestaurant(t, owner)

	t.Run("unknown status fails before lookup", func(t *testing.T) {
		_, err := commands.NewUpdateOrderStatusCommand(owner, kernel.NewUUID(), "COOKING")
		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})

	t.Run("assigned rider picks up", func(t *testing.T) {
		riderID := rider.ID()
		o := orderIn(t, customer, r, order.Ready, &riderID)
		store := newMemoryOrders(r, o)
		inbox := &recordingInbox{}
		bus := &recordingBroadcaster{}
		handler := commands.NewUpdateOrderStatusCommandHandler(store, newSideEffects(inbox, bus))

		cmd, err := commands.NewUpdateOrderStatusCommand(rider, o.ID(), "PICKED")
		require.NoError(t, err)

		view, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "PICKED", view.Status)
		assert.ElementsMatch(t, []kernel.UUID{customer.ID(), owner.ID(), rider.ID()}, inbox.recipients())
		assert.Equal(t, 3, bus.count(realtime.EventOrderStatusUpdate))
	})

	t.Run("unassigned rider is forbidden", func(t *testing.T) {
		riderID := rider.ID()
		o := orderIn(t, customer, r, order.Ready, &riderID)
		handler := commands.NewUpdateOrderStatusCommandHandler(newMemoryOrders(r, o),
			newSideEffects(&recordingInbox{}, &recordingBroadcaster{}))

		cmd, err := commands.NewUpdateOrderStatusCommand(newActor(t, actor.Rider), o.ID(), "DELIVERED")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("customer cancels an available order", func(t *testing.T) {
		o := orderIn(t, customer, r, order.Accepted, nil)
		store := newMemoryOrders(r, o)
		bus := &recordingBroadcaster{}
		handler := commands.NewUpdateOrderStatusCommandHandler(store, newSideEffects(&recordingInbox{}, bus))

		cmd, err := commands.NewUpdateOrderStatusCommand(customer, o.ID(), "CANCELLED")
		require.NoError(t, err)

		view, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, "CANCELLED", view.Status)
		assert.Equal(t, 1, bus.count(realtime.EventOrderWithdrawn))
	})

	t.Run("accepted cannot be set through the generic path", func(t *testing.T) {
		o := orderIn(t, customer, r, order.Placed, nil)
		handler := commands.NewUpdateOrderStatusCommandHandler(newMemoryOrders(r, o),
			newSideEffects(&recordingInbox{}, &recordingBroadcaster{}))

		cmd, err := commands.NewUpdateOrderStatusCommand(owner, o.ID(), "ACCEPTED")
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, order.ErrInvalidStatus)
	})
}

// claimingOrders assigns a rider right before the first status write, as a
// concurrent claim committing between the read and the write would.
type claimingOrders struct {
	*memoryOrders
	riderID kernel.UUID
	once    sync.Once
}

func (m *claimingOrders) Create() commands.OrderUoW {
	return claimingUoW{memoryUoW: memoryUoW{store: m.memoryOrders}, orders: m}
}

type claimingUoW struct {
	memoryUoW
	orders *claimingOrders
}

func (u claimingUoW) OrderRepository() ports.OrderRepository {
	return claimingOrderRepository{memoryOrderRepository: memoryOrderRepository{store: u.store}, orders: u.orders}
}

type claimingOrderRepository struct {
	memoryOrderRepository
	orders *claimingOrders
}

func (r claimingOrderRepository) ConditionalUpdate(
	ctx context.Context,
	id kernel.UUID,
	match ports.OrderMatch,
	mutation ports.OrderMutation,
) (int64, error) {
	r.orders.once.Do(func() {
		preparing := order.Preparing
		_, _ = r.memoryOrderRepository.ConditionalUpdate(ctx, id,
			ports.OrderMatch{RiderUnassigned: true, StatusIn: order.ClaimableStatuses()},
			ports.OrderMutation{RiderID: &r.orders.riderID, Status: &preparing},
		)
	})
	return r.memoryOrderRepository.ConditionalUpdate(ctx, id, match, mutation)
}

func TestUpdateOrderStatusCommandHandler_ClaimBetweenReadAndWrite(t *testing.T) {
	customer := newActor(t, actor.Customer)
	owner := newActor(t, actor.Restaurant)
	rider := newActor(t, actor.Rider)
	r := newRestaurant(t, owner)
	o := orderIn(t, customer, r, order.Accepted, nil)

	store := &claimingOrders{memoryOrders: newMemoryOrders(r, o), riderID: rider.ID()}
	inbox := &recordingInbox{}
	bus := &recordingBroadcaster{}
	handler := commands.NewUpdateOrderStatusCommandHandler(store, newSideEffects(inbox, bus))

	cmd, err := commands.NewUpdateOrderStatusCommand(owner, o.ID(), "READY")
	require.NoError(t, err)

	view, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "READY", view.Status)
	require.NotNil(t, view.RiderID)
	assert.Equal(t, rider.ID().String(), *view.RiderID)
	assert.Contains(t, inbox.recipients(), rider.ID())
	assert.Zero(t, bus.count(realtime.EventOrderWithdrawn))

	final, err := store.memoryOrders.Create().OrderRepository().Get(t.Context(), o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Ready, final.Status())
	require.NotNil(t, final.RiderID())
	assert.True(t, final.RiderID().IsEqual(rider.ID()))
}

func TestUpdateOrderStatusCommandHandler_WritePinnedToReadState(t *testing.T) {
	ctx := t.Context()
	customer := newActor(t, actor.Customer)
	owner := newActor(t, actor.Restaurant)
	r := newRestaurant(t, owner)
	o := orderIn(t, customer, r, order.Accepted, nil)

	cmd, err := commands.NewUpdateOrderStatusCommand(owner, o.ID(), "PREPARING")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	restaurantRepo := new(MockRestaurantRepository)
	uow := new(MockUoW)
	factory := new(MockOrderUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	uow.On("RestaurantRepository").Return(restaurantRepo)
	uow.On("Rollback", ctx).Return(nil).Once()
	restaurantRepo.On("Get", ctx, r.ID()).Return(r, nil)
	// Each read hands out a fresh copy, since the state machine mutates what it gets.
	orderRepo.On("Get", ctx, o.ID()).Return(restored(t, o), nil).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(restored(t, o), nil).Once()
	orderRepo.On("ConditionalUpdate", ctx, mock.Anything,
		ports.OrderMatch{RiderUnassigned: true, StatusIn: []order.Status{order.Accepted}},
		mock.AnythingOfType("ports.OrderMutation"),
	).Return(int64(0), nil).Twice()

	bus := &recordingBroadcaster{}
	handler := commands.NewUpdateOrderStatusCommandHandler(factory, newSideEffects(&recordingInbox{}, bus))

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrConflict)
	uow.AssertNotCalled(t, "Commit", ctx)
	assert.Empty(t, bus.events)
	orderRepo.AssertExpectations(t)
}

func restored(t *testing.T, o *order.Order) *order.Order {
	t.Helper()
	c, err := order.RestoreOrder(o.ID(), o.CustomerID(), o.RestaurantID(), o.RiderID(),
		o.Status(), o.Total(), o.Lines(), o.Payment(), o.CreatedAt())
	require.NoError(t, err)
	return c
}
