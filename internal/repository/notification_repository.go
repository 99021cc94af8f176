package repository

import (
	"time"

	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository 站内通知数据访问接口
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetForUser(id, userID uint) (*models.Notification, error)
	List(filter NotificationListFilter) ([]models.Notification, int64, error)
	CountUnread(userID uint) (int64, error)
	MarkRead(userID uint, ids []uint) (int64, error)
	MarkAllRead(userID uint) (int64, error)
	WithTx(tx *gorm.DB) NotificationRepository
}

// GormNotificationRepository GORM 实现
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓库
func NewNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// WithTx 绑定事务
func (r *GormNotificationRepository) WithTx(tx *gorm.DB) NotificationRepository {
	if tx == nil {
		return r
	}
	return &GormNotificationRepository{db: tx}
}

// Create 创建通知
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// GetForUser 获取属于指定用户的通知
func (r *GormNotificationRepository) GetForUser(id, userID uint) (*models.Notification, error) {
	return findOne[models.Notification](r.db.Where("id = ? AND user_id = ?", id, userID))
}

// List 通知列表，按时间倒序
func (r *GormNotificationRepository) List(filter NotificationListFilter) ([]models.Notification, int64, error) {
	query := r.db.Model(&models.Notification{}).Where("user_id = ?", filter.UserID)
	if filter.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	return findPage[models.Notification](query, filter.Page, filter.PageSize, "created_at DESC, id DESC")
}

// CountUnread 统计未读数量
func (r *GormNotificationRepository) CountUnread(userID uint) (int64, error) {
	return count(r.db.Model(&models.Notification{}).Where("user_id = ? AND is_read = ?", userID, false))
}

// MarkRead 标记指定通知为已读，只作用于本人通知
func (r *GormNotificationRepository) MarkRead(userID uint, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND id IN ? AND is_read = ?", userID, ids, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	return result.RowsAffected, result.Error
}

// MarkAllRead 全部标记已读
func (r *GormNotificationRepository) MarkAllRead(userID uint) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": time.Now()})
	return result.RowsAffected, result.Error
}
