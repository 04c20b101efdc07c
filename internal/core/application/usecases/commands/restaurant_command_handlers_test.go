package commands_test

import (
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateRestaurantCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, actor.Restaurant)

	t.Run("first restaurant", func(t *testing.T) {
		repo := new(MockRestaurantRepository)
		uow := new(MockUoW)
		factory := new(MockRestaurantUoWFactory)

		mock.InOrder(
			factory.On("Create").Return(uow).Once(),
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("RestaurantRepository").Return(repo).Once(),
			repo.On("GetByOwner", ctx, owner.ID()).Return(nil, errs.NewObjectNotFoundError("restaurant", "")).Once(),
			repo.On("Add", ctx, mock.AnythingOfType("*restaurant.Restaurant")).Return(nil).Once(),
			uow.On("Commit", ctx).Return(nil).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)

		cmd, err := commands.NewCreateRestaurantCommand(owner, "Spice Route", "Indian", "")
		require.NoError(t, err)

		view, err := commands.NewCreateRestaurantCommandHandler(factory).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, "Spice Route", view.Name)
		assert.Equal(t, owner.ID().String(), view.OwnerID)
		repo.AssertExpectations(t)
	})

	t.Run("second restaurant conflicts", func(t *testing.T) {
		repo := new(MockRestaurantRepository)
		uow := new(MockUoW)
		factory := new(MockRestaurantUoWFactory)

		factory.On("Create").Return(uow).Once()
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("RestaurantRepository").Return(repo).Once()
		uow.On("Rollback", ctx).Return(nil).Once()
		repo.On("GetByOwner", ctx, owner.ID()).Return(newRestaurant(t, owner), nil).Once()

		cmd, err := commands.NewCreateRestaurantCommand(owner, "Another", "Thai", "")
		require.NoError(t, err)

		_, err = commands.NewCreateRestaurantCommandHandler(factory).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("customers cannot own restaurants", func(t *testing.T) {
		_, err := commands.NewCreateRestaurantCommand(newActor(t, actor.Customer), "Mine", "", "")
		require.ErrorIs(t, err, errs.ErrForbidden)
	})
}

func TestMenuItemCommandHandler_ForeignItemIsNotFound(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, actor.Restaurant)
	r := newRestaurant(t, owner)
	foreign := newMenuItem(t, kernel.NewUUID(), "Ramen", "9.00")

	restaurantRepo := new(MockRestaurantRepository)
	menuRepo := new(MockMenuItemRepository)
	uow := new(MockUoW)
	factory := new(MockRestaurantUoWFactory)

	factory.On("Create").Return(uow)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("RestaurantRepository").Return(restaurantRepo)
	uow.On("MenuItemRepository").Return(menuRepo)
	restaurantRepo.On("GetByOwner", ctx, owner.ID()).Return(r, nil)
	menuRepo.On("Get", ctx, foreign.ID()).Return(foreign, nil)

	handler := commands.NewMenuItemCommandHandler(factory)

	price := kernel.MustMoney("1.00")
	update, err := commands.NewUpdateMenuItemCommand(owner, foreign.ID(), restaurant.MenuItemChanges{Price: &price})
	require.NoError(t, err)
	_, err = handler.Update(ctx, update)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	del, err := commands.NewDeleteMenuItemCommand(owner, foreign.ID())
	require.NoError(t, err)
	require.ErrorIs(t, handler.Delete(ctx, del), errs.ErrObjectNotFound)

	menuRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	menuRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	assert.True(t, foreign.Price().IsEqual(kernel.MustMoney("9.00")))
}

func TestMenuItemCommandHandler_Create(t *testing.T) {
	ctx := t.Context()
	owner := newActor(t, actor.Restaurant)
	r := newRestaurant(t, owner)

	restaurantRepo := new(MockRestaurantRepository)
	menuRepo := new(MockMenuItemRepository)
	uow := new(MockUoW)
	factory := new(MockRestaurantUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("RestaurantRepository").Return(restaurantRepo).Once(),
		restaurantRepo.On("GetByOwner", ctx, owner.ID()).Return(r, nil).Once(),
		uow.On("MenuItemRepository").Return(menuRepo).Once(),
		menuRepo.On("Add", ctx, mock.AnythingOfType("*restaurant.MenuItem")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	cmd, err := commands.NewCreateMenuItemCommand(owner, restaurant.MenuItemDetails{
		Name:  "Masala Dosa",
		Price: kernel.MustMoney("7.25"),
		Veg:   true,
	})
	require.NoError(t, err)

	view, err := commands.NewMenuItemCommandHandler(factory).Create(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, r.ID().String(), view.RestaurantID)
	assert.Equal(t, "7.25", view.Price.String())
	menuRepo.AssertExpectations(t)
}
