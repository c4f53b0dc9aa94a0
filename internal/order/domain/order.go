// Package domain 订单服务的领域模型
package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order 订单实体
// 支付成功后由结算流程创建，每个订单号只允许创建一次
type Order struct {
	gorm.Model
	// 订单号，对应支付回跳携带的 order token
	OrderNumber string `gorm:"column:order_number;type:varchar(64);uniqueIndex;not null" json:"order_number"`
	// 用户 ID
	UserID string `gorm:"column:user_id;type:varchar(36);index;not null" json:"user_id"`
	// 客户邮箱，结算时采集，用于订单确认与状态变更通知
	Email string `gorm:"column:email;type:varchar(100)" json:"email"`
	// 订单状态
	Status Status `gorm:"column:status;type:varchar(20);index;not null" json:"status"`
	// 订单总额（主货币单位）
	Total decimal.Decimal `gorm:"column:total;type:decimal(12,2);not null" json:"total"`
	// 下单时的商品快照
	Items []OrderItem `gorm:"serializer:json;column:items;type:json" json:"items"`
	// 收货地址快照
	ShippingAddress ShippingAddress `gorm:"serializer:json;column:shipping_address;type:json" json:"shipping_address"`
}

// TableName 指定表名
func (Order) TableName() string { return "orders" }

// OrderItem 订单条目快照，下单后不可变
type OrderItem struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	PartNumber string          `json:"part_number"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	ImageURL   string          `json:"image_url,omitempty"`
}

// ShippingAddress 收货地址快照
type ShippingAddress struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// IsComplete 所有字段是否均已填写
func (a ShippingAddress) IsComplete() bool {
	return a.Name != "" && a.Address != "" && a.City != "" &&
		a.Province != "" && a.PostalCode != "" && a.Country != ""
}

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// 保存订单
	Save(ctx context.Context, order *Order) error
	// 根据订单号获取订单
	GetByNumber(ctx context.Context, orderNumber string) (*Order, error)
	// 订单号是否已存在
	ExistsByNumber(ctx context.Context, orderNumber string) (bool, error)
	// 获取用户订单列表，按创建时间倒序
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*Order, int64, error)
	// 更新订单状态
	UpdateStatus(ctx context.Context, orderNumber string, status Status) error
}

// EventPublisher 订单事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
