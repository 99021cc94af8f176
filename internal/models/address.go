package models

import "strings"

// ShippingAddress 收货地址快照
// 订单中按值复制保存，用户后续修改地址不会影响历史订单
type ShippingAddress struct {
	Name    string `gorm:"type:varchar(120)" json:"name" validate:"required,max=120"`
	Address string `gorm:"type:varchar(500)" json:"address" validate:"required,max=500"`
	Pincode string `gorm:"type:varchar(20)" json:"pincode" validate:"required,max=20"`
	City    string `gorm:"type:varchar(120)" json:"city" validate:"required,max=120"`
	State   string `gorm:"type:varchar(120)" json:"state" validate:"required,max=120"`
}

// Trimmed 返回去除首尾空白后的副本
func (a ShippingAddress) Trimmed() ShippingAddress {
	return ShippingAddress{
		Name:    strings.TrimSpace(a.Name),
		Address: strings.TrimSpace(a.Address),
		Pincode: strings.TrimSpace(a.Pincode),
		City:    strings.TrimSpace(a.City),
		State:   strings.TrimSpace(a.State),
	}
}

// IsZero 是否为空地址
func (a ShippingAddress) IsZero() bool {
	t := a.Trimmed()
	return t.Name == "" && t.Address == "" && t.Pincode == "" && t.City == "" && t.State == ""
}
