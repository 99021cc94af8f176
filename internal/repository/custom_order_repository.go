package repository

import (
	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
)

// CustomOrderRepository 定制订单数据访问接口
type CustomOrderRepository interface {
	Create(order *models.CustomOrder) error
	GetByID(id uint) (*models.CustomOrder, error)
	List(filter CustomOrderListFilter) ([]models.CustomOrder, int64, error)
	UpdateStatus(id uint, fromStatus, toStatus string) (int64, error)
	Delete(id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CustomOrderRepository
}

// GormCustomOrderRepository GORM 实现
type GormCustomOrderRepository struct {
	db *gorm.DB
}

// NewCustomOrderRepository 创建定制订单仓库
func NewCustomOrderRepository(db *gorm.DB) *GormCustomOrderRepository {
	return &GormCustomOrderRepository{db: db}
}

// Transaction 执行事务
func (r *GormCustomOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// WithTx 绑定事务
func (r *GormCustomOrderRepository) WithTx(tx *gorm.DB) CustomOrderRepository {
	if tx == nil {
		return r
	}
	return &GormCustomOrderRepository{db: tx}
}

// Create 创建定制订单
func (r *GormCustomOrderRepository) Create(order *models.CustomOrder) error {
	return r.db.Omit("User").Create(order).Error
}

// GetByID 根据 ID 获取定制订单
func (r *GormCustomOrderRepository) GetByID(id uint) (*models.CustomOrder, error) {
	return findOne[models.CustomOrder](r.db.Preload("User"), id)
}

// List 定制订单列表，UserID 为 0 时返回全部（管理端）
func (r *GormCustomOrderRepository) List(filter CustomOrderListFilter) ([]models.CustomOrder, int64, error) {
	query := r.db.Model(&models.CustomOrder{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserID == 0 {
		query = query.Preload("User")
	}
	return findPage[models.CustomOrder](query, filter.Page, filter.PageSize, "created_at DESC, id DESC")
}

// UpdateStatus 条件更新定制订单状态
func (r *GormCustomOrderRepository) UpdateStatus(id uint, fromStatus, toStatus string) (int64, error) {
	result := r.db.Model(&models.CustomOrder{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Update("status", toStatus)
	return result.RowsAffected, result.Error
}

// Delete 删除定制订单
func (r *GormCustomOrderRepository) Delete(id uint) error {
	return r.db.Delete(&models.CustomOrder{}, id).Error
}
