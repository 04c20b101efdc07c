package commands_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/notification"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/realtime"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/domain/model/user"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ConditionalUpdate(
	ctx context.Context,
	id kernel.UUID,
	match ports.OrderMatch,
	mutation ports.OrderMutation,
) (int64, error) {
	args := m.Called(ctx, id, match, mutation)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) ListByCustomer(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByRestaurant(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByRider(ctx context.Context, id kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListAvailable(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockRestaurantRepository struct{ mock.Mock }

func (m *MockRestaurantRepository) Add(ctx context.Context, r *restaurant.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Update(ctx context.Context, r *restaurant.Restaurant) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRestaurantRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) GetByOwner(ctx context.Context, id kernel.UUID) (*restaurant.Restaurant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.Restaurant), args.Error(1)
}

func (m *MockRestaurantRepository) List(ctx context.Context) ([]*restaurant.Restaurant, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*restaurant.Restaurant), args.Error(1)
}

type MockMenuItemRepository struct{ mock.Mock }

func (m *MockMenuItemRepository) Add(ctx context.Context, item *restaurant.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Update(ctx context.Context, item *restaurant.MenuItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockMenuItemRepository) Get(ctx context.Context, id kernel.UUID) (*restaurant.MenuItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*restaurant.MenuItem), args.Error(1)
}

func (m *MockMenuItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMenuItemRepository) ListByRestaurant(ctx context.Context, id kernel.UUID) ([]*restaurant.MenuItem, error) {
	args := m.Called(ctx, id)
	return args.Get(0).([]*restaurant.MenuItem), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

// MockUoW satisfies every unit of work flavour used by the handlers.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) RestaurantRepository() ports.RestaurantRepository {
	args := m.Called()
	return args.Get(0).(ports.RestaurantRepository)
}

func (m *MockUoW) MenuItemRepository() ports.MenuItemRepository {
	args := m.Called()
	return args.Get(0).(ports.MenuItemRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockRestaurantUoWFactory struct{ mock.Mock }

func (m *MockRestaurantUoWFactory) Create() commands.RestaurantUoW {
	args := m.Called()
	return args.Get(0).(commands.RestaurantUoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

// recordingInbox is a NotificationStore keeping everything in memory.
type recordingInbox struct {
	mu    sync.Mutex
	items []notification.Notification
	fail  error
}

func (s *recordingInbox) Append(_ context.Context, n notification.Notification) (notification.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return notification.Notification{}, s.fail
	}
	n = n.WithID(fmt.Sprintf("n-%d", len(s.items)+1))
	s.items = append(s.items, n)
	return n, nil
}

func (s *recordingInbox) ListByUser(context.Context, kernel.UUID, int) ([]notification.Notification, error) {
	return nil, nil
}

func (s *recordingInbox) MarkRead(context.Context, string, kernel.UUID) (notification.Notification, error) {
	return notification.Notification{}, errs.NewObjectNotFoundError("notification", "")
}

func (s *recordingInbox) MarkAllRead(context.Context, kernel.UUID) (int64, error) {
	return 0, nil
}

func (s *recordingInbox) recipients() []kernel.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]kernel.UUID, 0, len(s.items))
	for _, n := range s.items {
		out = append(out, n.RecipientID())
	}
	return out
}

type published struct {
	channel realtime.Channel
	event   realtime.Event
}

// recordingBroadcaster is a Broadcaster keeping every publish in memory.
type recordingBroadcaster struct {
	mu     sync.Mutex
	events []published
	fail   error
}

func (b *recordingBroadcaster) Publish(_ context.Context, channel realtime.Channel, event realtime.Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, published{channel: channel, event: event})
	return b.fail
}

func (b *recordingBroadcaster) count(eventType string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, e := range b.events {
		if e.event.Type == eventType {
			n++
		}
	}
	return n
}

func (b *recordingBroadcaster) channels(eventType string) []realtime.Channel {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []realtime.Channel
	for _, e := range b.events {
		if e.event.Type == eventType {
			out = append(out, e.channel)
		}
	}
	return out
}

func newSideEffects(inbox *recordingInbox, bus *recordingBroadcaster) *commands.SideEffects {
	return commands.NewSideEffects(inbox, bus, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
