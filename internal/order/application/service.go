// Package application 订单应用服务
package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bearingmart/storefront/internal/order/domain"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderExists 订单号已存在
	ErrOrderExists = errors.New("order already exists")
	// ErrInvalidStatus 非法状态值
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidTransition 状态流转不被允许
	ErrInvalidTransition = errors.New("status transition not allowed")
)

// CreateOrderCommand 创建订单命令
type CreateOrderCommand struct {
	OrderNumber     string
	UserID          string
	Email           string
	Total           decimal.Decimal
	Items           []domain.OrderItem
	ShippingAddress domain.ShippingAddress
}

// OrderApplicationService 订单应用服务
type OrderApplicationService struct {
	repo      domain.OrderRepository
	publisher domain.EventPublisher
}

// NewOrderApplicationService 创建订单应用服务
func NewOrderApplicationService(repo domain.OrderRepository, publisher domain.EventPublisher) *OrderApplicationService {
	return &OrderApplicationService{repo: repo, publisher: publisher}
}

// CreateOrder 创建订单，订单号已存在时返回 ErrOrderExists
// 由结算流程在支付成功后调用，初始状态为 confirmed
func (s *OrderApplicationService) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	exists, err := s.repo.ExistsByNumber(ctx, cmd.OrderNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrOrderExists
	}

	order := &domain.Order{
		OrderNumber:     cmd.OrderNumber,
		UserID:          cmd.UserID,
		Email:           cmd.Email,
		Status:          domain.StatusConfirmed,
		Total:           cmd.Total,
		Items:           cmd.Items,
		ShippingAddress: cmd.ShippingAddress,
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, err
	}

	event := domain.OrderCreatedEvent{
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Total:       order.Total.StringFixed(2),
		ItemCount:   len(order.Items),
		Timestamp:   time.Now(),
	}
	if err := s.publisher.Publish(ctx, domain.TopicOrderCreated, order.OrderNumber, event); err != nil {
		logger.Warn(ctx, "Failed to publish order created event",
			"order_number", order.OrderNumber,
			"error", err,
		)
	}

	logger.Info(ctx, "Order created",
		"order_number", order.OrderNumber,
		"user_id", order.UserID,
		"total", order.Total.StringFixed(2),
	)
	return order, nil
}

// TransitionStatus 推进订单状态，校验状态机约束后落库并发布变更事件
func (s *OrderApplicationService) TransitionStatus(ctx context.Context, orderNumber string, next domain.Status) (*domain.Order, error) {
	if !next.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, next)
	}

	order, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, next)
	}

	old := order.Status
	if err := s.repo.UpdateStatus(ctx, orderNumber, next); err != nil {
		return nil, err
	}
	order.Status = next

	event := domain.OrderStatusChangedEvent{
		OrderNumber: orderNumber,
		UserID:      order.UserID,
		Email:       order.Email,
		OldStatus:   old,
		NewStatus:   next,
		Timestamp:   time.Now(),
	}
	if err := s.publisher.Publish(ctx, domain.TopicOrderStatusChanged, orderNumber, event); err != nil {
		logger.Warn(ctx, "Failed to publish order status changed event",
			"order_number", orderNumber,
			"error", err,
		)
	}

	logger.Info(ctx, "Order status changed",
		"order_number", orderNumber,
		"old_status", old,
		"new_status", next,
	)
	return order, nil
}

// GetOrder 根据订单号获取订单
func (s *OrderApplicationService) GetOrder(ctx context.Context, orderNumber string) (*domain.Order, error) {
	order, err := s.repo.GetByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetOrderStatus 获取订单状态视图，含徽标颜色与履约时间线
func (s *OrderApplicationService) GetOrderStatus(ctx context.Context, orderNumber string) (*OrderStatusView, error) {
	order, err := s.GetOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	timeline := make([]TimelineStep, 0, len(order.Status.Timeline()))
	for _, step := range order.Status.Timeline() {
		timeline = append(timeline, TimelineStep{
			Status:     string(step),
			BadgeColor: step.BadgeColor(),
		})
	}

	return &OrderStatusView{
		OrderNumber: order.OrderNumber,
		Status:      string(order.Status),
		BadgeColor:  order.Status.BadgeColor(),
		Terminal:    order.Status.IsTerminal(),
		Timeline:    timeline,
		UpdatedAt:   order.UpdatedAt,
	}, nil
}

// ListOrders 获取用户订单列表
func (s *OrderApplicationService) ListOrders(ctx context.Context, userID string, limit, offset int) ([]*domain.Order, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
