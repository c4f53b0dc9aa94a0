// Package adapter 结算上下文到其他限界上下文的适配
package adapter

import (
	"context"
	"errors"

	cartapp "github.com/bearingmart/storefront/internal/cart/application"
	"github.com/bearingmart/storefront/internal/checkout/application"
	"github.com/bearingmart/storefront/internal/checkout/domain"
	notifapp "github.com/bearingmart/storefront/internal/notification/application"
	orderapp "github.com/bearingmart/storefront/internal/order/application"
	orderdomain "github.com/bearingmart/storefront/internal/order/domain"
	"github.com/shopspring/decimal"
)

// CartAdapter 购物车上下文适配器
type CartAdapter struct {
	app *cartapp.CartApplicationService
}

// NewCartAdapter 创建购物车适配器
func NewCartAdapter(app *cartapp.CartApplicationService) *CartAdapter {
	return &CartAdapter{app: app}
}

// GetLines 获取用户购物车行
func (a *CartAdapter) GetLines(ctx context.Context, userID string) ([]domain.CartLine, error) {
	cart, err := a.app.GetCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines := make([]domain.CartLine, 0, len(cart.Items))
	for _, item := range cart.Items {
		lines = append(lines, domain.CartLine{
			ProductID:  item.ProductID,
			Name:       item.Name,
			PartNumber: item.PartNumber,
			Price:      item.Price,
			Quantity:   item.Quantity,
			ImageURL:   item.ImageURL,
		})
	}
	return lines, nil
}

// Clear 清空用户购物车
func (a *CartAdapter) Clear(ctx context.Context, userID string, reason string) error {
	return a.app.ClearCart(ctx, userID, reason)
}

// OrderAdapter 订单上下文适配器
type OrderAdapter struct {
	app *orderapp.OrderApplicationService
}

// NewOrderAdapter 创建订单适配器
func NewOrderAdapter(app *orderapp.OrderApplicationService) *OrderAdapter {
	return &OrderAdapter{app: app}
}

// Create 写入订单，订单号已存在视为已完成
func (a *OrderAdapter) Create(ctx context.Context, input application.OrderWriteInput) error {
	items := make([]orderdomain.OrderItem, 0, len(input.Lines))
	for _, line := range input.Lines {
		items = append(items, orderdomain.OrderItem{
			ProductID:  line.ProductID,
			Name:       line.Name,
			PartNumber: line.PartNumber,
			Price:      line.Price,
			Quantity:   line.Quantity,
			ImageURL:   line.ImageURL,
		})
	}

	_, err := a.app.CreateOrder(ctx, orderapp.CreateOrderCommand{
		OrderNumber: input.OrderNumber,
		UserID:      input.UserID,
		Email:       input.Email,
		Total:       decimal.NewFromInt(input.Totals.TotalMinor).Div(decimal.NewFromInt(100)),
		Items:       items,
		ShippingAddress: orderdomain.ShippingAddress{
			Name:       input.ShippingAddress.Name,
			Address:    input.ShippingAddress.Address,
			City:       input.ShippingAddress.City,
			Province:   input.ShippingAddress.Province,
			PostalCode: input.ShippingAddress.PostalCode,
			Country:    input.ShippingAddress.Country,
		},
	})
	if errors.Is(err, orderapp.ErrOrderExists) {
		return nil
	}
	return err
}

// MailerAdapter 通知上下文适配器
type MailerAdapter struct {
	app *notifapp.NotificationService
}

// NewMailerAdapter 创建通知适配器
func NewMailerAdapter(app *notifapp.NotificationService) *MailerAdapter {
	return &MailerAdapter{app: app}
}

// SendConfirmation 发送订单确认邮件
func (a *MailerAdapter) SendConfirmation(ctx context.Context, input application.ConfirmationInput) error {
	items := make([]notifapp.EmailLineItem, 0, len(input.Lines))
	for _, line := range input.Lines {
		items = append(items, notifapp.EmailLineItem{
			Name:       line.Name,
			PartNumber: line.PartNumber,
			PriceMinor: line.Price.Mul(decimal.NewFromInt(100)).Round(0).IntPart(),
			Quantity:   line.Quantity,
		})
	}

	return a.app.SendOrderConfirmation(ctx, notifapp.OrderConfirmation{
		OrderNumber:   input.OrderNumber,
		UserID:        input.UserID,
		Email:         input.Email,
		CustomerName:  input.ShippingAddress.Name,
		Items:         items,
		SubtotalMinor: input.Totals.SubtotalMinor,
		ShippingMinor: input.Totals.ShippingMinor,
		TaxMinor:      input.Totals.TaxMinor,
		TotalMinor:    input.Totals.TotalMinor,
		Address:       input.ShippingAddress.Address,
		City:          input.ShippingAddress.City,
		Province:      input.ShippingAddress.Province,
		PostalCode:    input.ShippingAddress.PostalCode,
		Country:       input.ShippingAddress.Country,
	})
}
