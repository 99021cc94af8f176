package service

import (
	"context"
	"regexp"
	"strings"

	"github.com/vastra-shop/internal/cache"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"
)

const catalogCachePattern = "catalog:*"

var categorySlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CategoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategoryInput 创建与更新共用
type CreateCategoryInput struct {
	Slug      string `json:"slug" validate:"required,max=80"`
	Name      string `json:"name" validate:"required,max=120"`
	Image     string `json:"image" validate:"max=500"`
	SortOrder int    `json:"sort_order"`
}

func (in CreateCategoryInput) normalized() (CreateCategoryInput, error) {
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	in.Name = strings.TrimSpace(in.Name)
	in.Image = strings.TrimSpace(in.Image)
	if err := validateStruct(in); err != nil {
		return in, err
	}
	if !categorySlugPattern.MatchString(in.Slug) {
		return in, newValidationError("slug", "must be lowercase letters, digits and dashes")
	}
	return in, nil
}

func (in CreateCategoryInput) applyTo(category *models.Category) {
	category.Slug = in.Slug
	category.Name = in.Name
	category.Image = in.Image
	category.SortOrder = in.SortOrder
}

func (s *CategoryService) List() ([]models.Category, error) {
	categories, err := s.repo.List()
	return categories, wrapStorage("list categories", err)
}

func (s *CategoryService) Create(input CreateCategoryInput) (*models.Category, error) {
	return s.save(nil, input)
}

func (s *CategoryService) Update(id uint, input CreateCategoryInput) (*models.Category, error) {
	return s.save(&id, input)
}

// save id 为空时创建，slug 需全局唯一
func (s *CategoryService) save(id *uint, input CreateCategoryInput) (*models.Category, error) {
	input, err := input.normalized()
	if err != nil {
		return nil, err
	}

	category := &models.Category{}
	if id != nil {
		if category, err = s.mustGet(*id); err != nil {
			return nil, err
		}
	}
	taken, err := s.repo.CountBySlug(input.Slug, id)
	if err != nil {
		return nil, wrapStorage("count category slug", err)
	}
	if taken > 0 {
		return nil, ErrCategorySlugExists
	}

	input.applyTo(category)
	if id == nil {
		err = s.repo.Create(category)
	} else {
		err = s.repo.Update(category)
	}
	switch {
	case repository.IsUniqueViolation(err):
		return nil, ErrCategorySlugExists
	case err != nil:
		return nil, wrapStorage("save category", err)
	}
	invalidateCatalogCache()
	return category, nil
}

// Delete 分类下仍有商品时拒绝删除
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.mustGet(id); err != nil {
		return err
	}
	products, err := s.repo.CountProducts(id)
	if err != nil {
		return wrapStorage("count category products", err)
	}
	if products > 0 {
		return ErrCategoryInUse
	}
	if err := s.repo.Delete(id); err != nil {
		return wrapStorage("delete category", err)
	}
	invalidateCatalogCache()
	return nil
}

func (s *CategoryService) mustGet(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, wrapStorage("load category", err)
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

func invalidateCatalogCache() {
	if err := cache.DelByPattern(context.Background(), catalogCachePattern); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
}
