// Package domain 结算流程的领域模型
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyCart 空购物车不允许结算
	ErrEmptyCart = errors.New("cart is empty")
)

const (
	// ShippingFlatMinor 固定运费（最小货币单位）
	ShippingFlatMinor int64 = 1500
)

// TaxRate 销售税率
var TaxRate = decimal.NewFromFloat(0.13)

// CartLine 结算时的购物车行
type CartLine struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	PartNumber string          `json:"part_number"`
	// 单价（主货币单位）
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	ImageURL string          `json:"image_url,omitempty"`
}

// Totals 结算金额汇总，全部以最小货币单位表示
type Totals struct {
	SubtotalMinor int64 `json:"subtotal"`
	ShippingMinor int64 `json:"shipping"`
	TaxMinor      int64 `json:"tax"`
	TotalMinor    int64 `json:"total"`
}

// ComputeTotals 计算订单金额
// 小计为各行单价乘数量之和，运费为固定值，税按小计乘税率四舍五入
func ComputeTotals(lines []CartLine) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		lineTotal := line.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		subtotal = subtotal.Add(lineTotal)
	}

	// 转为最小货币单位后再计税，保证税额只做一次舍入
	subtotalMinor := subtotal.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	taxMinor := decimal.NewFromInt(subtotalMinor).Mul(TaxRate).Round(0).IntPart()

	return Totals{
		SubtotalMinor: subtotalMinor,
		ShippingMinor: ShippingFlatMinor,
		TaxMinor:      taxMinor,
		TotalMinor:    subtotalMinor + ShippingFlatMinor + taxMinor,
	}, nil
}
