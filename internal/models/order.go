package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
// 除 Status 外创建后不可变
type Order struct {
	ID            uint            `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo       string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"order_no"`       // 对外订单号
	UserID        uint            `gorm:"index;not null" json:"user_id"`                               // 用户ID
	Shipping      ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping"`           // 收货地址快照
	PaymentMethod string          `gorm:"type:varchar(32);not null" json:"payment_method"`             // 支付方式标签，如 COD
	Status        string          `gorm:"type:varchar(20);index;not null" json:"status"`               // 订单状态
	TotalAmount   Money           `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`   // 订单总额
	CreatedAt     time.Time       `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt     time.Time       `gorm:"index" json:"updated_at"`                                     // 更新时间
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`                                              // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
