// Package payment Stripe 支付网关实现
package payment

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bearingmart/storefront/internal/checkout/domain"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// StripeGateway Stripe 支付网关
// 创建支付意向时将购物车与收货地址写入元数据，订单延迟到支付成功后创建
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway 创建 Stripe 网关，密钥为空时返回未配置的网关
func NewStripeGateway(secretKey string) *StripeGateway {
	if secretKey == "" {
		return &StripeGateway{}
	}
	return &StripeGateway{api: client.New(secretKey, nil)}
}

// Configured 网关是否已配置密钥
func (g *StripeGateway) Configured() bool {
	return g.api != nil
}

// CreateIntent 创建支付意向
func (g *StripeGateway) CreateIntent(ctx context.Context, req domain.CreateIntentRequest) (*domain.PaymentIntent, error) {
	if g.api == nil {
		return nil, fmt.Errorf("stripe gateway is not configured")
	}

	cartJSON, err := json.Marshal(req.CartLines)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cart metadata: %w", err)
	}
	shippingJSON, err := json.Marshal(req.ShippingAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shipping metadata: %w", err)
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountMinor),
		Currency: stripe.String(req.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"user_id":          req.UserID,
			"cart_items":       string(cartJSON),
			"shipping_address": string(shippingJSON),
		},
	}
	if req.Email != "" {
		params.ReceiptEmail = stripe.String(req.Email)
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		logger.Error(ctx, "Failed to create payment intent",
			"user_id", req.UserID,
			"amount", req.AmountMinor,
			"error", err,
		)
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &domain.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountMinor:  intent.Amount,
		Currency:     string(intent.Currency),
	}, nil
}
