package application

import (
	"context"

	"github.com/bearingmart/storefront/internal/checkout/domain"
)

// CartPort 购物车上下文端口
type CartPort interface {
	// 获取用户购物车行
	GetLines(ctx context.Context, userID string) ([]domain.CartLine, error)
	// 清空用户购物车
	Clear(ctx context.Context, userID string, reason string) error
}

// OrderWriteInput 创建订单输入
type OrderWriteInput struct {
	OrderNumber     string
	UserID          string
	Email           string
	Totals          domain.Totals
	Lines           []domain.CartLine
	ShippingAddress domain.ShippingAddress
}

// OrderWriter 订单上下文端口，支付成功后写入订单
type OrderWriter interface {
	Create(ctx context.Context, input OrderWriteInput) error
}

// ConfirmationInput 订单确认邮件输入
type ConfirmationInput struct {
	OrderNumber     string
	UserID          string
	Email           string
	Lines           []domain.CartLine
	Totals          domain.Totals
	ShippingAddress domain.ShippingAddress
}

// ConfirmationMailer 通知上下文端口，发送订单确认邮件
type ConfirmationMailer interface {
	SendConfirmation(ctx context.Context, input ConfirmationInput) error
}
