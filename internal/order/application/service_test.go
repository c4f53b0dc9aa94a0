package application

import (
	"context"
	"testing"

	"github.com/bearingmart/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrderRepository struct {
	orders      map[string]*domain.Order
	saveErr     error
	saveCalls   int
	updateCalls int
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{orders: make(map[string]*domain.Order)}
}

func (m *mockOrderRepository) Save(ctx context.Context, order *domain.Order) error {
	m.saveCalls++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.orders[order.OrderNumber] = order
	return nil
}

func (m *mockOrderRepository) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	return m.orders[orderNumber], nil
}

func (m *mockOrderRepository) ExistsByNumber(ctx context.Context, orderNumber string) (bool, error) {
	_, ok := m.orders[orderNumber]
	return ok, nil
}

func (m *mockOrderRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error) {
	var result []*domain.Order
	for _, o := range m.orders {
		if o.UserID == userID {
			result = append(result, o)
		}
	}
	return result, int64(len(result)), nil
}

func (m *mockOrderRepository) UpdateStatus(ctx context.Context, orderNumber string, status domain.Status) error {
	m.updateCalls++
	if o, ok := m.orders[orderNumber]; ok {
		o.Status = status
	}
	return nil
}

type mockPublisher struct {
	published []publishedEvent
}

type publishedEvent struct {
	topic string
	key   string
	event any
}

func (m *mockPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	m.published = append(m.published, publishedEvent{topic: topic, key: key, event: event})
	return nil
}

func newService() (*OrderApplicationService, *mockOrderRepository, *mockPublisher) {
	repo := newMockOrderRepository()
	pub := &mockPublisher{}
	return NewOrderApplicationService(repo, pub), repo, pub
}

func TestCreateOrder(t *testing.T) {
	svc, repo, pub := newService()

	order, err := svc.CreateOrder(context.Background(), CreateOrderCommand{
		OrderNumber: "ord-1",
		UserID:      "user-1",
		Total:       decimal.RequireFromString("241.00"),
		Items: []domain.OrderItem{
			{ProductID: "p1", Name: "6205-2RS Deep Groove", Quantity: 2},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, order.Status)
	assert.Equal(t, 1, repo.saveCalls)

	require.Len(t, pub.published, 1)
	assert.Equal(t, domain.TopicOrderCreated, pub.published[0].topic)
}

func TestCreateOrder_DuplicateNumber(t *testing.T) {
	svc, repo, _ := newService()
	cmd := CreateOrderCommand{OrderNumber: "ord-1", UserID: "user-1", Total: decimal.Zero}

	_, err := svc.CreateOrder(context.Background(), cmd)
	require.NoError(t, err)

	_, err = svc.CreateOrder(context.Background(), cmd)
	assert.ErrorIs(t, err, ErrOrderExists)
	assert.Equal(t, 1, repo.saveCalls)
}

func TestTransitionStatus(t *testing.T) {
	svc, repo, pub := newService()
	repo.orders["ord-1"] = &domain.Order{OrderNumber: "ord-1", UserID: "user-1", Status: domain.StatusPending}

	order, err := svc.TransitionStatus(context.Background(), "ord-1", domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, order.Status)

	require.Len(t, pub.published, 1)
	assert.Equal(t, domain.TopicOrderStatusChanged, pub.published[0].topic)
	event := pub.published[0].event.(domain.OrderStatusChangedEvent)
	assert.Equal(t, domain.StatusPending, event.OldStatus)
	assert.Equal(t, domain.StatusConfirmed, event.NewStatus)
}

func TestTransitionStatus_RejectsIllegalTransition(t *testing.T) {
	svc, repo, pub := newService()
	repo.orders["ord-1"] = &domain.Order{OrderNumber: "ord-1", Status: domain.StatusPending}

	_, err := svc.TransitionStatus(context.Background(), "ord-1", domain.StatusShipped)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 0, repo.updateCalls)
	assert.Empty(t, pub.published)
}

func TestTransitionStatus_RejectsUnknownStatus(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.TransitionStatus(context.Background(), "ord-1", domain.Status("paid"))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTransitionStatus_OrderNotFound(t *testing.T) {
	svc, _, _ := newService()
	_, err := svc.TransitionStatus(context.Background(), "missing", domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestTransitionStatus_CancelFromProcessing(t *testing.T) {
	svc, repo, _ := newService()
	repo.orders["ord-1"] = &domain.Order{OrderNumber: "ord-1", Status: domain.StatusProcessing}

	order, err := svc.TransitionStatus(context.Background(), "ord-1", domain.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, order.Status)
}

func TestGetOrderStatus(t *testing.T) {
	svc, repo, _ := newService()
	repo.orders["ord-1"] = &domain.Order{OrderNumber: "ord-1", Status: domain.StatusShipped}

	view, err := svc.GetOrderStatus(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "shipped", view.Status)
	assert.Equal(t, "purple", view.BadgeColor)
	assert.False(t, view.Terminal)
	require.Len(t, view.Timeline, 4)
	assert.Equal(t, "pending", view.Timeline[0].Status)
	assert.Equal(t, "shipped", view.Timeline[3].Status)
}

func TestGetOrderStatus_Cancelled(t *testing.T) {
	svc, repo, _ := newService()
	repo.orders["ord-1"] = &domain.Order{OrderNumber: "ord-1", Status: domain.StatusCancelled}

	view, err := svc.GetOrderStatus(context.Background(), "ord-1")
	require.NoError(t, err)
	assert.True(t, view.Terminal)
	require.Len(t, view.Timeline, 2)
	assert.Equal(t, "cancelled", view.Timeline[1].Status)
	assert.Equal(t, "red", view.Timeline[1].BadgeColor)
}
