package repository

import (
	"context"
	"fmt"

	"github.com/bearingmart/storefront/internal/order/domain"
	"github.com/bearingmart/storefront/pkg/logger"
	"gorm.io/gorm"
)

// OrderRepositoryImpl 订单仓储实现
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Save 保存订单
func (or *OrderRepositoryImpl) Save(ctx context.Context, order *domain.Order) error {
	if err := or.db.WithContext(ctx).Create(order).Error; err != nil {
		logger.Error(ctx, "Failed to save order",
			"order_number", order.OrderNumber,
			"error", err,
		)
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

// GetByNumber 根据订单号获取订单
func (or *OrderRepositoryImpl) GetByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	var order domain.Order
	if err := or.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		logger.Error(ctx, "Failed to get order",
			"order_number", orderNumber,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &order, nil
}

// ExistsByNumber 订单号是否已存在
func (or *OrderRepositoryImpl) ExistsByNumber(ctx context.Context, orderNumber string) (bool, error) {
	var count int64
	if err := or.db.WithContext(ctx).Model(&domain.Order{}).Where("order_number = ?", orderNumber).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check order existence: %w", err)
	}
	return count > 0, nil
}

// ListByUser 获取用户订单列表
func (or *OrderRepositoryImpl) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error) {
	var orders []*domain.Order
	var total int64

	query := or.db.WithContext(ctx).Model(&domain.Order{}).Where("user_id = ?", userID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&orders).Error; err != nil {
		logger.Error(ctx, "Failed to list orders",
			"user_id", userID,
			"error", err,
		)
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

// UpdateStatus 更新订单状态
func (or *OrderRepositoryImpl) UpdateStatus(ctx context.Context, orderNumber string, status domain.Status) error {
	if err := or.db.WithContext(ctx).Model(&domain.Order{}).Where("order_number = ?", orderNumber).Update("status", string(status)).Error; err != nil {
		logger.Error(ctx, "Failed to update order status",
			"order_number", orderNumber,
			"error", err,
		)
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}
