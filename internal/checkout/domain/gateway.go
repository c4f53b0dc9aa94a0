package domain

import "context"

// PaymentIntent 支付网关返回的支付意向
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	AmountMinor  int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// CreateIntentRequest 创建支付意向请求
// 购物车与收货地址以元数据形式随支付意向传递，订单在支付成功后才落库
type CreateIntentRequest struct {
	UserID          string
	Email           string
	AmountMinor     int64
	Currency        string
	CartLines       []CartLine
	ShippingAddress ShippingAddress
}

// PaymentGateway 支付网关接口
type PaymentGateway interface {
	// 创建支付意向
	CreateIntent(ctx context.Context, req CreateIntentRequest) (*PaymentIntent, error)
	// 网关是否已配置密钥
	Configured() bool
}
