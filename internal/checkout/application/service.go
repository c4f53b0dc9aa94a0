// Package application 结算应用服务
package application

import (
	"context"
	"errors"

	"github.com/bearingmart/storefront/internal/checkout/domain"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/bearingmart/storefront/pkg/metrics"
)

var (
	// ErrGatewayNotConfigured 支付网关未配置
	ErrGatewayNotConfigured = errors.New("payment gateway is not configured")
	// ErrIncompleteAddress 收货地址不完整
	ErrIncompleteAddress = errors.New("shipping address is incomplete")
)

// CheckoutApplicationService 结算应用服务
// 负责支付意向创建与支付前的收货地址暂存
type CheckoutApplicationService struct {
	gateway   domain.PaymentGateway
	cart      CartPort
	snapshots domain.ShippingSnapshotStore
	currency  string
	metrics   *metrics.Metrics
}

// NewCheckoutApplicationService 创建结算应用服务
func NewCheckoutApplicationService(
	gateway domain.PaymentGateway,
	cart CartPort,
	snapshots domain.ShippingSnapshotStore,
	currency string,
	m *metrics.Metrics,
) *CheckoutApplicationService {
	return &CheckoutApplicationService{
		gateway:   gateway,
		cart:      cart,
		snapshots: snapshots,
		currency:  currency,
		metrics:   m,
	}
}

// GetTotals 按当前购物车计算结算金额
func (s *CheckoutApplicationService) GetTotals(ctx context.Context, userID string) (domain.Totals, error) {
	lines, err := s.cart.GetLines(ctx, userID)
	if err != nil {
		return domain.Totals{}, err
	}
	return domain.ComputeTotals(lines)
}

// SaveShippingAddress 暂存收货地址，支付成功后随订单落库
func (s *CheckoutApplicationService) SaveShippingAddress(ctx context.Context, userID string, addr domain.ShippingAddress) error {
	if !addr.IsComplete() {
		return ErrIncompleteAddress
	}
	return s.snapshots.Put(ctx, userID, addr)
}

// CreatePaymentIntent 创建支付意向
// 空购物车在调用网关前即拒绝，金额由服务端按购物车重新计算
func (s *CheckoutApplicationService) CreatePaymentIntent(ctx context.Context, userID, email string) (*domain.PaymentIntent, domain.Totals, error) {
	lines, err := s.cart.GetLines(ctx, userID)
	if err != nil {
		return nil, domain.Totals{}, err
	}

	totals, err := domain.ComputeTotals(lines)
	if err != nil {
		return nil, domain.Totals{}, err
	}

	if !s.gateway.Configured() {
		return nil, domain.Totals{}, ErrGatewayNotConfigured
	}

	var addr domain.ShippingAddress
	if snapshot, err := s.snapshots.Get(ctx, userID); err != nil {
		logger.Warn(ctx, "Failed to load shipping snapshot, proceeding without address",
			"user_id", userID,
			"error", err,
		)
	} else if snapshot != nil {
		addr = *snapshot
	}

	intent, err := s.gateway.CreateIntent(ctx, domain.CreateIntentRequest{
		UserID:          userID,
		Email:           email,
		AmountMinor:     totals.TotalMinor,
		Currency:        s.currency,
		CartLines:       lines,
		ShippingAddress: addr,
	})
	if err != nil {
		return nil, domain.Totals{}, err
	}

	if s.metrics != nil {
		s.metrics.PaymentIntentsTotal.Inc()
	}
	logger.Info(ctx, "Payment intent created",
		"user_id", userID,
		"intent_id", intent.ID,
		"amount", totals.TotalMinor,
		"currency", s.currency,
	)
	return intent, totals, nil
}
