// Package domain 商品目录的领域模型
package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product 轴承商品实体
type Product struct {
	gorm.Model
	// 商品 ID，业务主键
	ProductID string `gorm:"column:product_id;type:varchar(36);uniqueIndex;not null" json:"product_id"`
	// 轴承型号（如 6204-2RS、NU 2210 ECP）
	PartNumber string `gorm:"column:part_number;type:varchar(100);uniqueIndex;not null" json:"part_number"`
	// 商品名称
	Name string `gorm:"column:name;type:varchar(200);not null" json:"name"`
	// 品牌
	Brand string `gorm:"column:brand;type:varchar(100);index" json:"brand"`
	// 内径（mm）
	BoreDiameter decimal.Decimal `gorm:"column:bore_diameter;type:decimal(10,2)" json:"bore_diameter"`
	// 外径（mm）
	OuterDiameter decimal.Decimal `gorm:"column:outer_diameter;type:decimal(10,2)" json:"outer_diameter"`
	// 宽度（mm）
	Width decimal.Decimal `gorm:"column:width;type:decimal(10,2)" json:"width"`
	// 单价
	Price decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	// 库存
	Stock int `gorm:"column:stock;not null;default:0" json:"stock"`
	// 图片地址
	ImageURL string `gorm:"column:image_url;type:varchar(500)" json:"image_url"`
	// 描述
	Description string `gorm:"column:description;type:text" json:"description"`
}

// TableName 指定表名
func (Product) TableName() string { return "products" }

// InStock 是否有足够库存
func (p *Product) InStock(quantity int) bool {
	return p.Stock >= quantity
}

// ProductRepository 商品仓储接口
type ProductRepository interface {
	Save(ctx context.Context, product *Product) error
	GetByID(ctx context.Context, productID string) (*Product, error)
	GetByPartNumber(ctx context.Context, partNumber string) (*Product, error)
	List(ctx context.Context, brand string, limit, offset int) ([]*Product, int64, error)
}
