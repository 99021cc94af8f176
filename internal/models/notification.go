package models

import "time"

// Notification 站内通知
type Notification struct {
	ID        uint       `gorm:"primarykey" json:"id"`
	UserID    uint       `gorm:"not null;index:idx_notification_user_read" json:"user_id"`
	Message   string     `gorm:"type:varchar(500);not null" json:"message"`
	IsRead    bool       `gorm:"not null;default:false;index:idx_notification_user_read" json:"is_read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (Notification) TableName() string {
	return "notifications"
}
