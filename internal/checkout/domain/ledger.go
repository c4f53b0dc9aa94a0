package domain

import "context"

// ShippingAddress 结算时采集的收货地址
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

// FinalizationLedger 结算完成台账
// 以订单号为键记录已处理与已发信标记，防止支付回跳重复执行
type FinalizationLedger interface {
	// 订单号是否已完成结算处理
	HasProcessed(ctx context.Context, orderNumber string) (bool, error)
	// 标记订单号已处理
	MarkProcessed(ctx context.Context, orderNumber string) error
	// 订单号是否已发送确认邮件
	HasEmailed(ctx context.Context, orderNumber string) (bool, error)
	// 标记订单号已发信
	MarkEmailed(ctx context.Context, orderNumber string) error
}

// ShippingSnapshotStore 支付前收货地址快照存储，按用户保存
type ShippingSnapshotStore interface {
	Put(ctx context.Context, userID string, addr ShippingAddress) error
	Get(ctx context.Context, userID string) (*ShippingAddress, error)
	Delete(ctx context.Context, userID string) error
}
