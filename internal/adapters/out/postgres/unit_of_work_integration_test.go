package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/core/domain/model/actor"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work and every
// repository it hands out against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := postgres_adapter.Open(postgres_adapter.DBConfig{Driver: postgres_adapter.DriverPostgres, DSN: dsn})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, order_lines, payments, menu_items, restaurants, users CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryCommit() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	owner := suite.newUser("owner@example.com", actor.Restaurant)
	customer := suite.newUser("customer@example.com", actor.Customer)
	r, err := restaurant.NewRestaurant(kernel.NewUUID(), owner.ID(), "Pasta Place", "Italian", "", time.Now())
	suite.Require().NoError(err)
	item := suite.newMenuItem(r.ID(), "Carbonara", "12.50")
	o := suite.newOrder(customer.ID(), r.ID(), item)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, owner))
	suite.Require().NoError(uow.UserRepository().Add(ctx, customer))
	suite.Require().NoError(uow.RestaurantRepository().Add(ctx, r))
	suite.Require().NoError(uow.MenuItemRepository().Add(ctx, item))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()

	gotRestaurant, err := reader.RestaurantRepository().GetByOwner(ctx, owner.ID())
	suite.Require().NoError(err)
	suite.Equal(r.ID(), gotRestaurant.ID())

	menu, err := reader.MenuItemRepository().ListByRestaurant(ctx, r.ID())
	suite.Require().NoError(err)
	suite.Require().Len(menu, 1)
	suite.Equal("12.50", menu[0].Price().String())

	gotOrder, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal("25.00", gotOrder.Total().String())

	gotUser, err := reader.UserRepository().GetByEmail(ctx, "  Customer@Example.com ")
	suite.Require().NoError(err)
	suite.Equal(customer.ID(), gotUser.ID())
	suite.True(gotUser.CheckPassword("secret123"))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Rollback() {
	ctx := suite.T().Context()
	uow := suite.factory.Create()

	customer := suite.newUser("rollback@example.com", actor.Customer)
	item := suite.newMenuItem(kernel.NewUUID(), "Soup", "4.00")
	o := suite.newOrder(customer.ID(), item.RestaurantID(), item)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.UserRepository().Add(ctx, customer))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	_, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err, "order is visible inside its transaction")

	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = reader.UserRepository().Get(ctx, customer.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_Isolation() {
	ctx := suite.T().Context()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	item := suite.newMenuItem(kernel.NewUUID(), "Tea", "2.00")
	order1 := suite.newOrder(kernel.NewUUID(), item.RestaurantID(), item)
	order2 := suite.newOrder(kernel.NewUUID(), item.RestaurantID(), item)

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err)
	_, err = reader.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRestaurantRepository_OneRestaurantPerOwner() {
	ctx := suite.T().Context()
	repo := suite.factory.Create().RestaurantRepository()
	ownerID := kernel.NewUUID()

	first, err := restaurant.NewRestaurant(kernel.NewUUID(), ownerID, "First", "", "", time.Now())
	suite.Require().NoError(err)
	second, err := restaurant.NewRestaurant(kernel.NewUUID(), ownerID, "Second", "", "", time.Now())
	suite.Require().NoError(err)

	suite.Require().NoError(repo.Add(ctx, first))
	suite.Require().ErrorIs(repo.Add(ctx, second), errs.ErrConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUserRepository_DuplicateEmail() {
	ctx := suite.T().Context()
	repo := suite.factory.Create().UserRepository()

	suite.Require().NoError(repo.Add(ctx, suite.newUser("dup@example.com", actor.Customer)))
	suite.Require().ErrorIs(repo.Add(ctx, suite.newUser("dup@example.com", actor.Rider)), errs.ErrConflict)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMenuItemRepository_SoftDelete() {
	ctx := suite.T().Context()
	repo := suite.factory.Create().MenuItemRepository()
	item := suite.newMenuItem(kernel.NewUUID(), "Salad", "6.00")

	suite.Require().NoError(repo.Add(ctx, item))
	suite.Require().NoError(repo.Delete(ctx, item.ID()))

	_, err := repo.Get(ctx, item.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().ErrorIs(repo.Delete(ctx, item.ID()), errs.ErrObjectNotFound)

	menu, err := repo.ListByRestaurant(ctx, item.RestaurantID())
	suite.Require().NoError(err)
	suite.Empty(menu)

	var stored int64
	suite.Require().NoError(suite.db.Unscoped().Table("menu_items").Where("id = ?", item.ID().Bytes()).Count(&stored).Error)
	suite.Equal(int64(1), stored, "deleted items stay for order history")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TracksWrittenAggregates() {
	ctx := suite.T().Context()
	uow := postgres_adapter.NewGormUnitOfWorkFactory(suite.db).CreateGorm()
	item := suite.newMenuItem(kernel.NewUUID(), "Bread", "1.00")

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.MenuItemRepository().Add(ctx, item))
	suite.Equal([]kernel.UUID{item.ID()}, uow.TrackedIDs())
	suite.Require().NoError(uow.Rollback(ctx))
	suite.Empty(uow.TrackedIDs())
}

func (suite *UnitOfWorkIntegrationTestSuite) newUser(email string, role actor.Role) *user.User {
	u, err := user.NewUser(kernel.NewUUID(), "Test User", email, "secret123", role, time.Now())
	suite.Require().NoError(err)
	return u
}

func (suite *UnitOfWorkIntegrationTestSuite) newMenuItem(restaurantID kernel.UUID, name, price string) *restaurant.MenuItem {
	item, err := restaurant.NewMenuItem(kernel.NewUUID(), restaurantID, restaurant.MenuItemDetails{
		Name:  name,
		Price: kernel.MustMoney(price),
		Veg:   true,
	}, time.Now())
	suite.Require().NoError(err)
	return item
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(customerID, restaurantID kernel.UUID, item *restaurant.MenuItem) *order.Order {
	line, err := order.NewLine(item.ID(), item.Name(), 2, item.Price())
	suite.Require().NoError(err)
	o, err := order.NewOrder(kernel.NewUUID(), customerID, restaurantID, []order.Line{line}, time.Now())
	suite.Require().NoError(err)
	return o
}
