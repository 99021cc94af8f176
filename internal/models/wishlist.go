package models

import "time"

// Wishlist 心愿单，每个用户一份
type Wishlist struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	Items []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
}

// TableName 指定表名
func (Wishlist) TableName() string {
	return "wishlists"
}

// WishlistItem 心愿单项，只记录商品是否在心愿单中
type WishlistItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	WishlistID uint      `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"wishlist_id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:idx_wishlist_product" json:"product_id"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// TableName 指定表名
func (WishlistItem) TableName() string {
	return "wishlist_items"
}
