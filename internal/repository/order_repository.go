package repository

import (
	"errors"
	"strings"

	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNo(orderNo string) (*models.Order, error)
	GetByOrderNoAndUser(orderNo string, userID uint) (*models.Order, error)
	GetLatestByUser(userID uint) (*models.Order, error)
	ResolveReceiverEmailByOrderID(orderID uint) (string, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error)
	Delete(id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 返回绑定到 tx 的仓库，tx 为 nil 时返回自身
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// Create 写入订单头，再批量写入订单项
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if err := r.db.Omit("Items").Create(order).Error; err != nil {
		return err
	}
	if len(items) > 0 {
		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	order.Items = items
	return nil
}

func (r *GormOrderRepository) withItems() *gorm.DB {
	return r.db.Preload("Items")
}

func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	return findOne[models.Order](r.withItems(), id)
}

func (r *GormOrderRepository) GetByOrderNo(orderNo string) (*models.Order, error) {
	return findOne[models.Order](r.withItems().Where("order_no = ?", orderNo))
}

// GetByOrderNoAndUser 只返回属于该顾客的订单
func (r *GormOrderRepository) GetByOrderNoAndUser(orderNo string, userID uint) (*models.Order, error) {
	return findOne[models.Order](r.withItems().Where("order_no = ? AND user_id = ?", orderNo, userID))
}

// GetLatestByUser 顾客最近一笔订单，不加载订单项
func (r *GormOrderRepository) GetLatestByUser(userID uint) (*models.Order, error) {
	return findOne[models.Order](r.db.Where("user_id = ?", userID).Order("created_at DESC, id DESC"))
}

// ResolveReceiverEmailByOrderID 查询下单顾客的邮箱，用于状态通知
func (r *GormOrderRepository) ResolveReceiverEmailByOrderID(orderID uint) (string, error) {
	if orderID == 0 {
		return "", nil
	}
	var emails []string
	err := r.db.Model(&models.Order{}).
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.id = ?", orderID).
		Limit(1).
		Pluck("users.email", &emails).Error
	if err != nil || len(emails) == 0 {
		return "", err
	}
	return strings.TrimSpace(emails[0]), nil
}

// ListByUser 顾客订单列表，订单号支持模糊匹配
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID).Scopes(orderStatusScope(filter.Status))
	if filter.OrderNo != "" {
		query = query.Where("order_no LIKE ? ESCAPE '\\'", containsPattern(filter.OrderNo))
	}
	return findPage[models.Order](query.Preload("Items"), filter.Page, filter.PageSize, "created_at DESC, id DESC")
}

// ListAdmin 后台订单列表，按顾客、状态、订单号与创建时间区间过滤
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Scopes(orderStatusScope(filter.Status))
	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.OrderNo != "" {
		query = query.Where("order_no = ?", filter.OrderNo)
	}
	if from := filter.CreatedFrom; from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	if to := filter.CreatedTo; to != nil {
		query = query.Where("created_at <= ?", *to)
	}
	return findPage[models.Order](query.Preload("Items"), filter.Page, filter.PageSize, "id DESC")
}

func orderStatusScope(status string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", status)
	}
}

// UpdateStatus 比较并交换：仅当当前状态为 fromStatus 时更新，返回影响行数
func (r *GormOrderRepository) UpdateStatus(id uint, fromStatus, toStatus string, updates map[string]interface{}) (int64, error) {
	if toStatus == "" {
		return 0, errors.New("target status is required")
	}
	values := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		values[k] = v
	}
	values["status"] = toStatus
	result := r.db.Model(&models.Order{}).Where("id = ? AND status = ?", id, fromStatus).Updates(values)
	return result.RowsAffected, result.Error
}

// Delete 删除订单与订单项
func (r *GormOrderRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}
