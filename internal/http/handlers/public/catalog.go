package public

import (
	"strings"

	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
)

var catalogErrorRules = []mappedHandlerError{
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.category_failed")
		return
	}
	response.Success(c, categories)
}

// GetProducts 获取上架商品列表，可按分类 slug 过滤
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := parsePagination(c)
	slug := strings.TrimSpace(c.Query("category"))

	products, total, err := h.ProductService.ListPublic(c.Request.Context(), slug, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.product_failed")
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProductsByCategory 按路径中的分类 slug 获取商品
func (h *Handler) GetProductsByCategory(c *gin.Context) {
	page, pageSize := parsePagination(c)
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	products, total, err := h.ProductService.ListPublic(c.Request.Context(), slug, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.product_failed")
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 获取商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	product, err := h.ProductService.GetPublic(id)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.product_failed")
		return
	}
	response.Success(c, product)
}

// SearchProducts 按名称搜索商品
func (h *Handler) SearchProducts(c *gin.Context) {
	keyword := strings.TrimSpace(c.Query("q"))
	if keyword == "" {
		response.Success(c, []interface{}{})
		return
	}

	products, err := h.ProductService.Search(keyword)
	if err != nil {
		respondWithMappedError(c, err, catalogErrorRules, response.CodeInternal, "error.search_failed")
		return
	}
	response.Success(c, products)
}
