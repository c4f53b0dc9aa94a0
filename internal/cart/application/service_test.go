package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bearingmart/storefront/internal/cart/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockCartRepository struct {
	carts      map[string]*domain.Cart
	deleteErr  error
	saveCalls  int
	nextCartID uint
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: make(map[string]*domain.Cart), nextCartID: 1}
}

func (m *mockCartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, ok := m.carts[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	loaded := *cart
	loaded.Items = append([]domain.CartItem(nil), cart.Items...)
	return &loaded, nil
}

// Save 与真实仓储一致：只 upsert 传入的条目，不删除缺失条目
func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	m.saveCalls++
	if cart.ID == 0 {
		cart.ID = m.nextCartID
		m.nextCartID++
	}
	stored, ok := m.carts[cart.UserID]
	if !ok {
		saved := *cart
		saved.Items = append([]domain.CartItem(nil), cart.Items...)
		m.carts[cart.UserID] = &saved
		return nil
	}
	for _, item := range cart.Items {
		merged := false
		for i := range stored.Items {
			if stored.Items[i].ProductID == item.ProductID {
				stored.Items[i] = item
				merged = true
				break
			}
		}
		if !merged {
			stored.Items = append(stored.Items, item)
		}
	}
	return nil
}

func (m *mockCartRepository) RemoveItem(ctx context.Context, cartID uint, productID string) error {
	for _, cart := range m.carts {
		if cart.ID != cartID {
			continue
		}
		for i := range cart.Items {
			if cart.Items[i].ProductID == productID {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				break
			}
		}
	}
	return nil
}

func (m *mockCartRepository) Delete(ctx context.Context, userID string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.carts, userID)
	return nil
}

type mockCartPublisher struct {
	topics []string
	err    error
}

func (m *mockCartPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	if m.err != nil {
		return m.err
	}
	m.topics = append(m.topics, topic)
	return nil
}

func addCmd(userID, productID string, qty int) AddItemCommand {
	return AddItemCommand{
		UserID:    userID,
		ProductID: productID,
		Name:      "6205-2RS Deep Groove",
		Price:     decimal.RequireFromString("100.00"),
		Quantity:  qty,
	}
}

func TestGetCart_MissingReturnsEmpty(t *testing.T) {
	svc := NewCartApplicationService(newMockCartRepository(), &mockCartPublisher{})

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", cart.UserID)
	assert.True(t, cart.IsEmpty())
}

func TestAddItem_CreatesCartAndPublishes(t *testing.T) {
	repo := newMockCartRepository()
	pub := &mockCartPublisher{}
	svc := NewCartApplicationService(repo, pub)

	require.NoError(t, svc.AddItem(context.Background(), addCmd("user-1", "p1", 2)))

	cart := repo.carts["user-1"]
	require.NotNil(t, cart)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, []string{"cart.item.added"}, pub.topics)
}

func TestAddItem_MergesExistingProduct(t *testing.T) {
	repo := newMockCartRepository()
	svc := NewCartApplicationService(repo, &mockCartPublisher{})

	require.NoError(t, svc.AddItem(context.Background(), addCmd("user-1", "p1", 2)))
	require.NoError(t, svc.AddItem(context.Background(), addCmd("user-1", "p1", 3)))

	cart := repo.carts["user-1"]
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestAddItem_PublishFailureDoesNotFailOperation(t *testing.T) {
	repo := newMockCartRepository()
	svc := NewCartApplicationService(repo, &mockCartPublisher{err: errors.New("broker down")})

	err := svc.AddItem(context.Background(), addCmd("user-1", "p1", 1))
	require.NoError(t, err)
	assert.NotNil(t, repo.carts["user-1"])
}

func TestClearCart_PublishesReasonEvent(t *testing.T) {
	repo := newMockCartRepository()
	pub := &mockCartPublisher{}
	svc := NewCartApplicationService(repo, pub)

	require.NoError(t, svc.AddItem(context.Background(), addCmd("user-1", "p1", 1)))
	require.NoError(t, svc.ClearCart(context.Background(), "user-1", "checkout_finalized"))

	assert.Nil(t, repo.carts["user-1"])
	assert.Contains(t, pub.topics, "cart.cleared")
}

func TestRemoveItem(t *testing.T) {
	repo := newMockCartRepository()
	pub := &mockCartPublisher{}
	svc := NewCartApplicationService(repo, pub)

	require.NoError(t, svc.AddItem(context.Background(), addCmd("user-1", "p1", 1)))
	require.NoError(t, svc.AddItem(context.Background(), addCmd("user-1", "p2", 1)))
	require.NoError(t, svc.RemoveItem(context.Background(), "user-1", "p1"))

	cart := repo.carts["user-1"]
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
	assert.Contains(t, pub.topics, "cart.item.removed")
}

func TestRemoveItem_StaysRemovedAfterReload(t *testing.T) {
	repo := newMockCartRepository()
	svc := NewCartApplicationService(repo, &mockCartPublisher{})

	require.NoError(t, svc.AddItem(context.Background(), addCmd("user-1", "p1", 2)))
	require.NoError(t, svc.AddItem(context.Background(), addCmd("user-1", "p2", 1)))
	require.NoError(t, svc.RemoveItem(context.Background(), "user-1", "p1"))

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
}

func TestUpdateQuantity_ChangesQuantity(t *testing.T) {
	repo := newMockCartRepository()
	svc := NewCartApplicationService(repo, &mockCartPublisher{})

	require.NoError(t, svc.AddItem(context.Background(), addCmd("user-1", "p1", 2)))
	require.NoError(t, svc.UpdateQuantity(context.Background(), "user-1", "p1", 7))

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateQuantity_BelowOneRemovesItem(t *testing.T) {
	repo := newMockCartRepository()
	pub := &mockCartPublisher{}
	svc := NewCartApplicationService(repo, pub)

	require.NoError(t, svc.AddItem(context.Background(), addCmd("user-1", "p1", 2)))
	require.NoError(t, svc.UpdateQuantity(context.Background(), "user-1", "p1", 0))

	cart, err := svc.GetCart(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Contains(t, pub.topics, "cart.item.removed")
}
