package models

import "time"

// Cart 购物车，每个用户一份，首次使用时创建
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

// CartItem 购物车项，名称/价格/图片为加入时的快照
type CartItem struct {
	ID          uint      `gorm:"primarykey" json:"id"`                                        // 主键
	CartID      uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"cart_id"`        // 购物车ID
	ProductID   uint      `gorm:"not null;uniqueIndex:idx_cart_product" json:"product_id"`     // 商品ID
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`                      // 名称快照
	PriceAmount Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price_amount"`   // 价格快照
	Image       string    `gorm:"type:varchar(500)" json:"image"`                              // 图片快照
	Quantity    int       `gorm:"not null;default:1;check:quantity >= 1" json:"quantity"`      // 数量
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                                  // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
