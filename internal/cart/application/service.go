// Package application 购物车应用服务
package application

import (
	"context"
	"time"

	"github.com/bearingmart/storefront/internal/cart/domain"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AddItemCommand 添加商品到购物车命令
type AddItemCommand struct {
	UserID     string
	ProductID  string
	Name       string
	PartNumber string
	Price      decimal.Decimal
	Quantity   int
	ImageURL   string
}

// CartApplicationService 购物车应用服务
type CartApplicationService struct {
	repo      domain.CartRepository
	publisher domain.EventPublisher
}

// NewCartApplicationService 创建购物车应用服务实例
func NewCartApplicationService(repo domain.CartRepository, publisher domain.EventPublisher) *CartApplicationService {
	return &CartApplicationService{repo: repo, publisher: publisher}
}

// GetCart 获取用户购物车，不存在时返回空购物车
func (s *CartApplicationService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err == gorm.ErrRecordNotFound {
		return &domain.Cart{UserID: userID}, nil
	}
	return cart, err
}

// AddItem 添加商品到购物车
func (s *CartApplicationService) AddItem(ctx context.Context, cmd AddItemCommand) error {
	cart, err := s.repo.GetByUserID(ctx, cmd.UserID)
	if err != nil && err != gorm.ErrRecordNotFound {
		return err
	}
	if cart == nil || cart.ID == 0 {
		cart = &domain.Cart{UserID: cmd.UserID}
	}

	cart.AddItem(domain.CartItem{
		ProductID:  cmd.ProductID,
		Name:       cmd.Name,
		PartNumber: cmd.PartNumber,
		Price:      cmd.Price,
		Quantity:   cmd.Quantity,
		ImageURL:   cmd.ImageURL,
	})
	if err := s.repo.Save(ctx, cart); err != nil {
		return err
	}

	event := domain.CartItemAddedEvent{
		CartID:    cart.ID,
		UserID:    cart.UserID,
		ProductID: cmd.ProductID,
		Quantity:  cmd.Quantity,
		Price:     cmd.Price.String(),
		Timestamp: time.Now(),
	}
	if err := s.publisher.Publish(ctx, "cart.item.added", cmd.UserID, event); err != nil {
		logger.Warn(ctx, "Failed to publish cart event", "topic", "cart.item.added", "error", err)
	}

	return nil
}

// UpdateQuantity 更新购物车商品数量，数量小于 1 时移除该商品
func (s *CartApplicationService) UpdateQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		return s.RemoveItem(ctx, userID, productID)
	}
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}
	cart.UpdateQuantity(productID, quantity)
	return s.repo.Save(ctx, cart)
}

// RemoveItem 从购物车移除商品
func (s *CartApplicationService) RemoveItem(ctx context.Context, userID, productID string) error {
	cart, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	// 直接删除条目行，Save 的 upsert 不会清理已移除的条目
	if err := s.repo.RemoveItem(ctx, cart.ID, productID); err != nil {
		return err
	}

	event := domain.CartItemRemovedEvent{
		CartID:    cart.ID,
		UserID:    cart.UserID,
		ProductID: productID,
		Timestamp: time.Now(),
	}
	if err := s.publisher.Publish(ctx, "cart.item.removed", userID, event); err != nil {
		logger.Warn(ctx, "Failed to publish cart event", "topic", "cart.item.removed", "error", err)
	}

	return nil
}

// ClearCart 清空购物车，reason 标记触发来源（用户操作或结算完成）
func (s *CartApplicationService) ClearCart(ctx context.Context, userID, reason string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}

	event := domain.CartClearedEvent{
		UserID:    userID,
		Reason:    reason,
		Timestamp: time.Now(),
	}
	if err := s.publisher.Publish(ctx, "cart.cleared", userID, event); err != nil {
		logger.Warn(ctx, "Failed to publish cart event", "topic", "cart.cleared", "error", err)
	}

	return nil
}
