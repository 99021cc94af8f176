package models

import "time"

// OutboxEvent 领域事件发件箱
// 与业务写入同一事务落库，由 worker 异步投递
type OutboxEvent struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	EventID     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"event_id"`
	Topic       string     `gorm:"type:varchar(64);index;not null" json:"topic"`
	Key         string     `gorm:"type:varchar(64);not null" json:"key"`
	Payload     string     `gorm:"type:text;not null" json:"payload"`
	Attempts    int        `gorm:"not null;default:0" json:"attempts"`
	LastError   string     `gorm:"type:varchar(500)" json:"last_error,omitempty"`
	SentAt      *time.Time `gorm:"index" json:"sent_at,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (OutboxEvent) TableName() string {
	return "outbox_events"
}
