package repository

import (
	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WishlistRepository 心愿单数据访问接口
type WishlistRepository interface {
	GetOrCreate(userID uint) (*models.Wishlist, error)
	GetByUser(userID uint) (*models.Wishlist, error)
	ListItems(wishlistID uint) ([]models.WishlistItem, error)
	AddItem(wishlistID, productID uint) error
	GetItemForUser(itemID, userID uint) (*models.WishlistItem, error)
	DeleteItem(itemID uint) (int64, error)
	DeleteItemByProduct(wishlistID, productID uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) WishlistRepository
}

// GormWishlistRepository GORM 实现
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository 创建心愿单仓库
func NewWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// WithTx 绑定事务
func (r *GormWishlistRepository) WithTx(tx *gorm.DB) WishlistRepository {
	if tx == nil {
		return r
	}
	return &GormWishlistRepository{db: tx}
}

// Transaction 执行事务
func (r *GormWishlistRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetOrCreate 获取用户心愿单，不存在时创建
func (r *GormWishlistRepository) GetOrCreate(userID uint) (*models.Wishlist, error) {
	wishlist := &models.Wishlist{UserID: userID}
	if err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(wishlist).Error; err != nil {
		return nil, err
	}
	var existing models.Wishlist
	if err := r.db.Where("user_id = ?", userID).First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// GetByUser 获取用户心愿单，不存在返回 nil
func (r *GormWishlistRepository) GetByUser(userID uint) (*models.Wishlist, error) {
	return findOne[models.Wishlist](r.db.Where("user_id = ?", userID))
}

// ListItems 获取心愿单项（含商品）
func (r *GormWishlistRepository) ListItems(wishlistID uint) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	if err := r.db.Preload("Product").
		Where("wishlist_id = ?", wishlistID).
		Order("created_at DESC, id DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem 加入心愿单，重复加入忽略
func (r *GormWishlistRepository) AddItem(wishlistID, productID uint) error {
	item := &models.WishlistItem{WishlistID: wishlistID, ProductID: productID}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wishlist_id"}, {Name: "product_id"}},
		DoNothing: true,
	}).Create(item).Error
}

// GetItemForUser 获取属于指定用户的心愿单项，商品随项一并加载
func (r *GormWishlistRepository) GetItemForUser(itemID, userID uint) (*models.WishlistItem, error) {
	return findOne[models.WishlistItem](r.db.Preload("Product").
		Joins("JOIN wishlists ON wishlists.id = wishlist_items.wishlist_id").
		Where("wishlist_items.id = ? AND wishlists.user_id = ?", itemID, userID))
}

// DeleteItem 删除心愿单项
func (r *GormWishlistRepository) DeleteItem(itemID uint) (int64, error) {
	result := r.db.Delete(&models.WishlistItem{}, itemID)
	return result.RowsAffected, result.Error
}

// DeleteItemByProduct 按商品删除心愿单项
func (r *GormWishlistRepository) DeleteItemByProduct(wishlistID, productID uint) (int64, error) {
	result := r.db.Where("wishlist_id = ? AND product_id = ?", wishlistID, productID).Delete(&models.WishlistItem{})
	return result.RowsAffected, result.Error
}
