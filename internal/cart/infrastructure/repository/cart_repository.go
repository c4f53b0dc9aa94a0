package repository

import (
	"context"

	"github.com/bearingmart/storefront/internal/cart/domain"
	"gorm.io/gorm"
)

type cartRepository struct{ db *gorm.DB }

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) domain.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetByUserID(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.db.WithContext(ctx).Preload("Items").Where("user_id = ?", userID).First(&cart).Error
	return &cart, err
}

func (r *cartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	// FullSaveAssociations 只对 Items 中现存条目做 upsert，条目删除走 RemoveItem
	return r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(cart).Error
}

func (r *cartRepository) RemoveItem(ctx context.Context, cartID uint, productID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&domain.CartItem{}).Error
}

func (r *cartRepository) Delete(ctx context.Context, userID string) error {
	var cart domain.Cart
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&domain.CartItem{}, "cart_id = ?", cart.ID).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&cart).Error
}
