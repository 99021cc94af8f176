package repository

import (
	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository 分类数据访问
type CategoryRepository interface {
	List() ([]models.Category, error)
	GetByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	CountProducts(categoryID uint) (int64, error)
}

// GormCategoryRepository GORM 实现
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository 创建分类仓库
func NewCategoryRepository(db *gorm.DB) *GormCategoryRepository {
	return &GormCategoryRepository{db: db}
}

// List 按排序权重倒序列出分类
func (r *GormCategoryRepository) List() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("sort_order DESC, id ASC").Find(&categories).Error
	return categories, err
}

func (r *GormCategoryRepository) GetByID(id uint) (*models.Category, error) {
	return findOne[models.Category](r.db, id)
}

func (r *GormCategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *GormCategoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *GormCategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

// CountBySlug 统计使用该 slug 的分类数，excludeID 用于更新时排除自身
func (r *GormCategoryRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	query := r.db.Model(&models.Category{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}
	return count(query)
}

// CountProducts 统计分类下未删除的商品数
func (r *GormCategoryRepository) CountProducts(categoryID uint) (int64, error) {
	return count(r.db.Model(&models.Product{}).Where("category_id = ?", categoryID))
}
