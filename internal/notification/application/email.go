package application

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// EmailLineItem 邮件中的订单行
type EmailLineItem struct {
	Name       string
	PartNumber string
	PriceMinor int64
	Quantity   int
}

// OrderConfirmation 订单确认邮件输入
type OrderConfirmation struct {
	OrderNumber   string
	UserID        string
	Email         string
	CustomerName  string
	Items         []EmailLineItem
	SubtotalMinor int64
	ShippingMinor int64
	TaxMinor      int64
	TotalMinor    int64
	Address       string
	City          string
	Province      string
	PostalCode    string
	Country       string
}

// OrderStatusUpdate 订单状态变更邮件输入
type OrderStatusUpdate struct {
	OrderNumber string
	UserID      string
	Email       string
	OldStatus   string
	NewStatus   string
}

// formatMinor 最小货币单位转为带两位小数的金额串
func formatMinor(minor int64) string {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// buildConfirmationEmail 生成订单确认邮件的主题和正文
func buildConfirmationEmail(c OrderConfirmation) (subject, content string) {
	subject = fmt.Sprintf("Order confirmation %s", c.OrderNumber)

	var b strings.Builder
	name := c.CustomerName
	if name == "" {
		name = "Customer"
	}
	fmt.Fprintf(&b, "Hello %s,\n\n", name)
	fmt.Fprintf(&b, "Thank you for your order %s. Your items:\n\n", c.OrderNumber)

	for _, item := range c.Items {
		fmt.Fprintf(&b, "  %s (%s) x%d - $%s\n",
			item.Name,
			SpecsFromPartNumber(item.PartNumber),
			item.Quantity,
			formatMinor(item.PriceMinor),
		)
	}

	fmt.Fprintf(&b, "\nSubtotal: $%s\n", formatMinor(c.SubtotalMinor))
	fmt.Fprintf(&b, "Shipping: $%s\n", formatMinor(c.ShippingMinor))
	fmt.Fprintf(&b, "Tax: $%s\n", formatMinor(c.TaxMinor))
	fmt.Fprintf(&b, "Total: $%s\n\n", formatMinor(c.TotalMinor))

	fmt.Fprintf(&b, "Shipping to:\n%s\n%s, %s %s\n%s\n",
		c.Address, c.City, c.Province, c.PostalCode, c.Country)

	return subject, b.String()
}

// buildStatusUpdateEmail 生成状态变更邮件的主题和正文
func buildStatusUpdateEmail(u OrderStatusUpdate) (subject, content string) {
	subject = fmt.Sprintf("Order %s is now %s", u.OrderNumber, u.NewStatus)
	content = fmt.Sprintf(
		"Hello,\n\nYour order %s has moved from %s to %s.\n\nYou can check the latest status in your order history.\n",
		u.OrderNumber, u.OldStatus, u.NewStatus,
	)
	return subject, content
}
