package repository

import (
	"strings"

	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
)

// ProductRepository 商品数据访问
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	Search(keyword string, limit int) ([]models.Product, error)
	GetByID(id uint) (*models.Product, error)
	GetActiveByID(id uint) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	DecrementStock(productID uint, quantity int) (int64, error)
	IncrementStock(productID uint, quantity int) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// WithTx 返回绑定到 tx 的仓库，tx 为 nil 时返回自身
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx}
}

func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

const productListOrder = "products.sort_order DESC, products.created_at DESC, products.id DESC"

// List 商品分页列表，支持分类 ID / slug、关键字与上架状态过滤
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.OnlyActive {
		query = query.Where("products.is_active = ?", true)
	}
	if filter.CategoryID > 0 {
		query = query.Where("products.category_id = ?", filter.CategoryID)
	}
	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		bySlug := r.db.Model(&models.Category{}).Select("id").Where("slug = ?", slug)
		query = query.Where("products.category_id IN (?)", bySlug)
	}
	if keyword := strings.TrimSpace(filter.Search); keyword != "" {
		condition, n := buildLikeCondition(r.db, []string{"products.name", "products.description"})
		query = query.Where(condition, repeatLikeArgs(containsPattern(keyword), n)...)
	}
	return findPage[models.Product](query, filter.Page, filter.PageSize, productListOrder)
}

// Search 模糊搜索上架商品，limit 非正数时不限制条数
func (r *GormProductRepository) Search(keyword string, limit int) ([]models.Product, error) {
	condition, n := buildLikeCondition(r.db, []string{"name", "description"})
	query := r.db.Where("is_active = ?", true).
		Where(condition, repeatLikeArgs(containsPattern(keyword), n)...).
		Order("sort_order DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	var products []models.Product
	err := query.Find(&products).Error
	return products, err
}

// GetByID 查询商品（含下架），附带分类
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	return findOne[models.Product](r.db.Preload("Category"), id)
}

// GetActiveByID 查询上架商品，下架商品视为不存在
func (r *GormProductRepository) GetActiveByID(id uint) (*models.Product, error) {
	return findOne[models.Product](r.db.Where("is_active = ?", true), id)
}

func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	products := []models.Product{}
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Omit("Category").Save(product).Error
}

func (r *GormProductRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

// DecrementStock 条件扣减库存，库存不足时不修改并返回 0 行
func (r *GormProductRepository) DecrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, nil
	}
	return r.adjustStock(r.db.Where("id = ? AND stock >= ?", productID, quantity), "stock - ?", quantity)
}

// IncrementStock 回补库存，已删除的商品同样回补
func (r *GormProductRepository) IncrementStock(productID uint, quantity int) (int64, error) {
	if productID == 0 || quantity <= 0 {
		return 0, nil
	}
	return r.adjustStock(r.db.Unscoped().Where("id = ?", productID), "stock + ?", quantity)
}

func (r *GormProductRepository) adjustStock(scope *gorm.DB, expr string, quantity int) (int64, error) {
	result := scope.Model(&models.Product{}).Update("stock", gorm.Expr(expr, quantity))
	return result.RowsAffected, result.Error
}
