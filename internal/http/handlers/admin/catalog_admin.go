package admin

import (
	"strconv"
	"strings"

	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// catalogResult 写出目录类接口的结果，错误按 catalogErrorRules 映射
func catalogResult(c *gin.Context, data interface{}, err error, fallbackKey string) {
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, fallbackKey)
		return
	}
	response.Success(c, data)
}

var deletedResult = gin.H{"deleted": true}

func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	catalogResult(c, categories, err, "error.category_failed")
}

func (h *Handler) CreateCategory(c *gin.Context) {
	req, ok := bindBody[service.CreateCategoryInput](c)
	if !ok {
		return
	}
	category, err := h.CategoryService.Create(req)
	catalogResult(c, category, err, "error.category_failed")
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := bindBody[service.CreateCategoryInput](c)
	if !ok {
		return
	}
	category, err := h.CategoryService.Update(id, req)
	catalogResult(c, category, err, "error.category_failed")
}

// DeleteCategory 删除分类，分类下仍有商品时返回 409
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	catalogResult(c, deletedResult, h.CategoryService.Delete(id), "error.category_failed")
}

// GetAdminProducts 后台商品列表，包含已下架商品
func (h *Handler) GetAdminProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)

	products, total, err := h.ProductService.ListAdmin(uint(categoryID), strings.TrimSpace(c.Query("search")), page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.product_failed")
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

func (h *Handler) GetAdminProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := h.ProductService.GetAdminByID(id)
	catalogResult(c, product, err, "error.product_failed")
}

func (h *Handler) CreateProduct(c *gin.Context) {
	req, ok := bindBody[service.CreateProductInput](c)
	if !ok {
		return
	}
	product, err := h.ProductService.Create(req)
	catalogResult(c, product, err, "error.product_failed")
}

// UpdateProduct 全量更新商品，库存以请求值为准
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := bindBody[service.CreateProductInput](c)
	if !ok {
		return
	}
	product, err := h.ProductService.Update(id, req)
	catalogResult(c, product, err, "error.product_failed")
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	catalogResult(c, deletedResult, h.ProductService.Delete(id), "error.product_failed")
}
