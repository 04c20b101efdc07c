package cmd

import (
	"log/slog"

	httpin "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/in/ws"
	"fooddelivery/internal/adapters/out/jwtauth"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config        Config
	gormDB        *gorm.DB
	uowFactory    *postgres.GormUnitOfWorkFactory
	reads         *postgres.GormUnitOfWork
	notifications ports.NotificationStore
	broadcaster   ports.Broadcaster
	tokens        *jwtauth.Service
	sideEffects   *commands.SideEffects
	logger        *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	notifications ports.NotificationStore,
	broadcaster ports.Broadcaster,
	tokens *jwtauth.Service,
	logger *slog.Logger,
) CompositionRoot {
	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	// Never begun and only read from, so it stays on the pool and tracks nothing.
	reads := uowFactory.CreateGorm()
	sideEffects := commands.NewSideEffects(notifications, broadcaster, logger).
		WithParties(queries.NewOrderPartiesQueryHandler(reads.RestaurantRepository(), reads.UserRepository()))

	return CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		uowFactory:    uowFactory,
		reads:         reads,
		notifications: notifications,
		broadcaster:   broadcaster,
		tokens:        tokens,
		sideEffects:   sideEffects,
		logger:        logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) restaurantUoWFactory() commands.RestaurantUoWFactory {
	return FuncRestaurantUoWFactory(func() commands.RestaurantUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) userUoWFactory() commands.UserUoWFactory {
	return FuncUserUoWFactory(func() commands.UserUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.orderUoWFactory(), c.sideEffects)
}

func (c *CompositionRoot) CreateAcceptOrderCommandHandler() commands.AcceptOrderCommandHandler {
	return commands.NewAcceptOrderCommandHandler(c.orderUoWFactory(), c.sideEffects)
}

func (c *CompositionRoot) CreateClaimOrderCommandHandler() commands.ClaimOrderCommandHandler {
	return commands.NewClaimOrderCommandHandler(c.orderUoWFactory(), c.sideEffects)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory(), c.sideEffects)
}

func (c *CompositionRoot) CreateCreateRestaurantCommandHandler() commands.CreateRestaurantCommandHandler {
	return commands.NewCreateRestaurantCommandHandler(c.restaurantUoWFactory())
}

func (c *CompositionRoot) CreateUpdateRestaurantCommandHandler() commands.UpdateRestaurantCommandHandler {
	return commands.NewUpdateRestaurantCommandHandler(c.restaurantUoWFactory())
}

func (c *CompositionRoot) CreateMenuItemCommandHandler() commands.MenuItemCommandHandler {
	return commands.NewMenuItemCommandHandler(c.restaurantUoWFactory())
}

func (c *CompositionRoot) CreateUserCommandHandler() commands.UserCommandHandler {
	return commands.NewUserCommandHandler(c.userUoWFactory(), c.tokens)
}

func (c *CompositionRoot) CreateNotificationCommandHandler() commands.NotificationCommandHandler {
	return commands.NewNotificationCommandHandler(c.notifications)
}

func (c *CompositionRoot) CreateOrderQueryHandler() queries.OrderQueryHandler {
	return queries.NewOrderQueryHandler(c.reads.OrderRepository(), c.reads.RestaurantRepository())
}

func (c *CompositionRoot) CreateListRestaurantsQueryHandler() queries.ListRestaurantsQueryHandler {
	return queries.NewListRestaurantsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateRestaurantQueryHandler() queries.RestaurantQueryHandler {
	return queries.NewRestaurantQueryHandler(c.reads.RestaurantRepository(), c.reads.MenuItemRepository())
}

func (c *CompositionRoot) CreateUserQueryHandler() queries.UserQueryHandler {
	return queries.NewUserQueryHandler(c.reads.UserRepository())
}

func (c *CompositionRoot) CreateNotificationQueryHandler() queries.NotificationQueryHandler {
	return queries.NewNotificationQueryHandler(c.notifications)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		PlaceOrder:         c.CreatePlaceOrderCommandHandler(),
		AcceptOrder:        c.CreateAcceptOrderCommandHandler(),
		ClaimOrder:         c.CreateClaimOrderCommandHandler(),
		UpdateOrderStatus:  c.CreateUpdateOrderStatusCommandHandler(),
		CreateRestaurant:   c.CreateCreateRestaurantCommandHandler(),
		UpdateRestaurant:   c.CreateUpdateRestaurantCommandHandler(),
		MenuItems:          c.CreateMenuItemCommandHandler(),
		Users:              c.CreateUserCommandHandler(),
		Notifications:      c.CreateNotificationCommandHandler(),
		Orders:             c.CreateOrderQueryHandler(),
		ListRestaurants:    c.CreateListRestaurantsQueryHandler(),
		Restaurants:        c.CreateRestaurantQueryHandler(),
		Accounts:           c.CreateUserQueryHandler(),
		NotificationsQuery: c.CreateNotificationQueryHandler(),
	}, c.logger)
}

// Tokens verifies bearer credentials for HTTP and the websocket handshake.
func (c *CompositionRoot) Tokens() ports.TokenVerifier {
	return c.tokens
}

func (c *CompositionRoot) CreateRealtimeHandler(hub *ws.Hub) *ws.Handler {
	return ws.NewHandler(hub, c.tokens, c.reads.RestaurantRepository(), c.config.CORSOrigins, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	digest := jobs.NewAvailableOrdersDigestJob(
		c.CreateOrderQueryHandler(),
		c.broadcaster,
		c.config.AvailableOrdersSchedule,
		c.logger,
	)
	return jobs.NewJobManager(digest)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncRestaurantUoWFactory func() commands.RestaurantUoW

func (f FuncRestaurantUoWFactory) Create() commands.RestaurantUoW {
	return f()
}

type FuncUserUoWFactory func() commands.UserUoW

func (f FuncUserUoWFactory) Create() commands.UserUoW {
	return f()
}
