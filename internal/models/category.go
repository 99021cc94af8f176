package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// StringArray 字符串数组类型，用于存储商品图片等
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("unsupported string array source %T", value)
	}
}

// First 返回第一个非空元素
func (s StringArray) First() string {
	for _, item := range s {
		if item != "" {
			return item
		}
	}
	return ""
}

// Category 分类表
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`                    // 主键
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`        // 唯一标识，如 kurti / saree
	Name      string         `gorm:"type:varchar(120);not null" json:"name"` // 名称
	Image     string         `gorm:"type:varchar(500)" json:"image"`          // 分类图片
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`       // 排序权重
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                 // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                              // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                          // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
