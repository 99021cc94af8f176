package repository

import (
	"time"

	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	GetOrCreate(userID uint) (*models.Cart, error)
	GetByUser(userID uint) (*models.Cart, error)
	ListItems(cartID uint) ([]models.CartItem, error)
	AddItem(item *models.CartItem, delta int) error
	DecrementItem(cartID, productID uint) (bool, error)
	DeleteItem(cartID, productID uint) (int64, error)
	DeleteItemsByProducts(cartID uint, productIDs []uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// Transaction 执行事务
func (r *GormCartRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetOrCreate 获取用户购物车，不存在时创建
// 并发创建依赖 user_id 唯一索引去重
func (r *GormCartRepository) GetOrCreate(userID uint) (*models.Cart, error) {
	cart := &models.Cart{UserID: userID}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(cart).Error; err != nil {
		return nil, err
	}
	var existing models.Cart
	if err := r.db.Where("user_id = ?", userID).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// GetByUser 获取用户购物车，不存在返回 nil
func (r *GormCartRepository) GetByUser(userID uint) (*models.Cart, error) {
	return findOne[models.Cart](r.db.Where("user_id = ?", userID))
}

// ListItems 获取购物车项
func (r *GormCartRepository) ListItems(cartID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Where("cart_id = ?", cartID).Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem 插入购物车项，已存在时数量累加 delta，快照保持首次加入时的值
func (r *GormCartRepository) AddItem(item *models.CartItem, delta int) error {
	if item == nil {
		return nil
	}
	if delta <= 0 {
		delta = 1
	}
	if item.Quantity <= 0 {
		item.Quantity = delta
	}
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + ?", delta),
			"updated_at": time.Now(),
		}),
	}).Create(item).Error
}

// DecrementItem 数量减一，数量为 1 时删除该项；返回是否存在该项
func (r *GormCartRepository) DecrementItem(cartID, productID uint) (bool, error) {
	result := r.db.Model(&models.CartItem{}).
		Where("cart_id = ? AND product_id = ? AND quantity > 1", cartID, productID).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity - 1"),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}
	deleted, err := r.DeleteItem(cartID, productID)
	if err != nil {
		return false, err
	}
	return deleted > 0, nil
}

// DeleteItem 删除购物车项
func (r *GormCartRepository) DeleteItem(cartID, productID uint) (int64, error) {
	result := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}

// DeleteItemsByProducts 批量删除购物车中的指定商品
func (r *GormCartRepository) DeleteItemsByProducts(cartID uint, productIDs []uint) error {
	if cartID == 0 || len(productIDs) == 0 {
		return nil
	}
	return r.db.Where("cart_id = ? AND product_id IN ?", cartID, productIDs).Delete(&models.CartItem{}).Error
}
