package models

import (
	"time"

	"gorm.io/gorm"
)

// CustomOrder 定制订单（款式定制提交记录）
type CustomOrder struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                    // 主键
	OrderNo      string         `gorm:"type:varchar(32);uniqueIndex;not null" json:"order_no"`   // 对外订单号，与普通订单同一规则
	UserID       uint           `gorm:"index;not null" json:"user_id"`                           // 用户ID
	NeckDesign   string         `gorm:"type:varchar(80);not null" json:"neck_design"`            // 领口款式
	SleeveLength string         `gorm:"type:varchar(80);not null" json:"sleeve_length"`          // 袖长
	KurtiLength  string         `gorm:"type:varchar(80);not null" json:"kurti_length"`           // 衣长
	FabricType   string         `gorm:"type:varchar(80);not null;default:'Khadi'" json:"fabric_type"` // 面料
	Color        string         `gorm:"type:varchar(32);not null" json:"color"`                  // 颜色值
	ColorName    string         `gorm:"type:varchar(80);not null" json:"color_name"`             // 颜色名称
	Status       string         `gorm:"type:varchar(20);index;not null" json:"status"`           // 状态
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                                 // 创建时间
	UpdatedAt    time.Time      `json:"updated_at"`                                              // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                          // 软删除时间

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (CustomOrder) TableName() string {
	return "custom_orders"
}
