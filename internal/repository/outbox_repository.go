package repository

import (
	"time"

	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
)

// OutboxRepository 事件发件箱数据访问接口
type OutboxRepository interface {
	Insert(event *models.OutboxEvent) error
	FetchPending(limit, maxAttempts int) ([]models.OutboxEvent, error)
	MarkSent(ids []uint, at time.Time) error
	MarkFailed(id uint, lastError string) error
	WithTx(tx *gorm.DB) OutboxRepository
}

// GormOutboxRepository GORM 实现
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewOutboxRepository 创建发件箱仓库
func NewOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOutboxRepository) WithTx(tx *gorm.DB) OutboxRepository {
	if tx == nil {
		return r
	}
	return &GormOutboxRepository{db: tx}
}

// Insert 写入事件
func (r *GormOutboxRepository) Insert(event *models.OutboxEvent) error {
	return r.db.Create(event).Error
}

// FetchPending 获取待投递事件，按写入顺序
func (r *GormOutboxRepository) FetchPending(limit, maxAttempts int) ([]models.OutboxEvent, error) {
	var events []models.OutboxEvent
	query := r.db.Where("sent_at IS NULL")
	if maxAttempts > 0 {
		query = query.Where("attempts < ?", maxAttempts)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// MarkSent 标记已投递
func (r *GormOutboxRepository) MarkSent(ids []uint, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.OutboxEvent{}).Where("id IN ?", ids).Updates(map[string]interface{}{
		"sent_at":    at,
		"last_error": "",
	}).Error
}

// MarkFailed 记录投递失败
func (r *GormOutboxRepository) MarkFailed(id uint, lastError string) error {
	if len(lastError) > 500 {
		lastError = lastError[:500]
	}
	return r.db.Model(&models.OutboxEvent{}).Where("id = ?", id).Updates(map[string]interface{}{
		"attempts":   gorm.Expr("attempts + 1"),
		"last_error": lastError,
	}).Error
}
