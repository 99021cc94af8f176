package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vastra-shop/internal/cache"
	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	productListCacheTTL   = 60 * time.Second
	productSearchMaxChars = 100
)

type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// CreateProductInput 创建与更新共用；IsActive 为空时创建默认上架、更新保持原值
type CreateProductInput struct {
	CategoryID  uint            `json:"category_id" validate:"required"`
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=5000"`
	PriceAmount decimal.Decimal `json:"price_amount"`
	Images      []string        `json:"images" validate:"max=10,dive,max=500"`
	Stock       int             `json:"stock" validate:"min=0"`
	IsActive    *bool           `json:"is_active"`
	SortOrder   int             `json:"sort_order"`
}

func (in CreateProductInput) applyTo(product *models.Product) {
	product.CategoryID = in.CategoryID
	product.Name = in.Name
	product.Description = in.Description
	product.PriceAmount = models.NewMoneyFromDecimal(in.PriceAmount)
	product.Images = models.StringArray(in.Images)
	product.Stock = in.Stock
	product.SortOrder = in.SortOrder
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
}

type productListPage struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
}

// ListPublic 上架商品分页，可按分类 slug 过滤；缓存不可用时直接查库
func (s *ProductService) ListPublic(ctx context.Context, categorySlug string, page, pageSize int) ([]models.Product, int64, error) {
	categorySlug = strings.ToLower(strings.TrimSpace(categorySlug))
	key := fmt.Sprintf(constants.CacheKeyProductList, categorySlug, page, pageSize)

	var cached productListPage
	hit, err := cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Debugw("product_list_cache_read_failed", "key", key, "error", err)
	}
	if hit {
		return cached.Items, cached.Total, nil
	}

	products, total, err := s.repo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategorySlug: categorySlug,
		OnlyActive:   true,
		WithCategory: true,
	})
	if err != nil {
		return nil, 0, wrapStorage("list products", err)
	}
	if err := cache.SetJSON(ctx, key, productListPage{Items: products, Total: total}, productListCacheTTL); err != nil {
		logger.Debugw("product_list_cache_write_failed", "key", key, "error", err)
	}
	return products, total, nil
}

// Search 名称或描述的大小写不敏感子串匹配
func (s *ProductService) Search(keyword string) ([]models.Product, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, newValidationError("q", "is required")
	}
	if len(keyword) > productSearchMaxChars {
		keyword = keyword[:productSearchMaxChars]
	}
	products, err := s.repo.Search(keyword, constants.ProductSearchResultLimit)
	return products, wrapStorage("search products", err)
}

func (s *ProductService) GetPublic(id uint) (*models.Product, error) {
	return s.load(id, s.repo.GetActiveByID)
}

func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	return s.load(id, s.repo.GetByID)
}

func (s *ProductService) load(id uint, get func(uint) (*models.Product, error)) (*models.Product, error) {
	product, err := get(id)
	if err != nil {
		return nil, wrapStorage("load product", err)
	}
	if product == nil {
		return nil, &ProductNotFoundError{ProductID: id}
	}
	return product, nil
}

func (s *ProductService) ListAdmin(categoryID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	products, total, err := s.repo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       strings.TrimSpace(search),
		WithCategory: true,
	})
	if err != nil {
		return nil, 0, wrapStorage("list products", err)
	}
	return products, total, nil
}

func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	if err := s.normalize(&input); err != nil {
		return nil, err
	}
	product := &models.Product{IsActive: true}
	input.applyTo(product)

	// is_active 列默认 true，零值在插入时会被忽略，下架需要二次写入
	inactive := !product.IsActive
	product.IsActive = true
	if err := s.repo.Create(product); err != nil {
		return nil, wrapStorage("create product", err)
	}
	if inactive {
		product.IsActive = false
		if err := s.repo.Update(product); err != nil {
			return nil, wrapStorage("update product", err)
		}
	}
	invalidateCatalogCache()
	return product, nil
}

func (s *ProductService) Update(id uint, input CreateProductInput) (*models.Product, error) {
	if err := s.normalize(&input); err != nil {
		return nil, err
	}
	product, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}
	input.applyTo(product)
	if err := s.repo.Update(product); err != nil {
		return nil, wrapStorage("update product", err)
	}
	invalidateCatalogCache()
	return product, nil
}

// Delete 软删除，历史订单行保留快照
func (s *ProductService) Delete(id uint) error {
	if _, err := s.GetAdminByID(id); err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return wrapStorage("delete product", err)
	}
	invalidateCatalogCache()
	return nil
}

func (s *ProductService) normalize(input *CreateProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	images := make([]string, 0, len(input.Images))
	for _, image := range input.Images {
		if image = strings.TrimSpace(image); image != "" {
			images = append(images, image)
		}
	}
	input.Images = images
	if err := validateStruct(*input); err != nil {
		return err
	}
	input.PriceAmount = input.PriceAmount.Round(2)
	if !input.PriceAmount.IsPositive() {
		return newValidationError("price_amount", "must be greater than 0")
	}
	category, err := s.categoryRepo.GetByID(input.CategoryID)
	if err != nil {
		return wrapStorage("load category", err)
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return nil
}
