// Package domain 购物车服务的领域模型
package domain

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart 购物车实体，每个用户一个
type Cart struct {
	gorm.Model
	// 用户 ID
	UserID string `gorm:"column:user_id;type:varchar(36);uniqueIndex;not null" json:"user_id"`
	// 购物车条目
	Items []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

// TableName 指定表名
func (Cart) TableName() string { return "carts" }

// CartItem 购物车条目
type CartItem struct {
	gorm.Model
	// 所属购物车 ID
	CartID uint `gorm:"column:cart_id;index;not null" json:"cart_id"`
	// 商品 ID
	ProductID string `gorm:"column:product_id;type:varchar(36);not null" json:"product_id"`
	// 商品名称（下单时的快照）
	Name string `gorm:"column:name;type:varchar(200);not null" json:"name"`
	// 轴承型号
	PartNumber string `gorm:"column:part_number;type:varchar(100)" json:"part_number"`
	// 单价
	Price decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	// 数量
	Quantity int `gorm:"column:quantity;not null" json:"quantity"`
	// 图片地址
	ImageURL string `gorm:"column:image_url;type:varchar(500)" json:"image_url"`
}

// TableName 指定表名
func (CartItem) TableName() string { return "cart_items" }

// Total 计算购物车总金额
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// AddItem 添加商品，已存在时累加数量
func (c *Cart) AddItem(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ProductID == item.ProductID {
			c.Items[i].Quantity += item.Quantity
			return
		}
	}
	c.Items = append(c.Items, item)
}

// UpdateQuantity 更新商品数量，数量小于 1 时移除
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	if quantity < 1 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem 移除商品
func (c *Cart) RemoveItem(productID string) {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}
