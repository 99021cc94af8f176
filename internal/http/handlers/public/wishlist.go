package public

import (
	"github.com/vastra-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// WishlistItemRequest 收藏请求
type WishlistItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist 获取收藏夹
func (h *Handler) GetWishlist(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.WishlistService.List(uid)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.wishlist_fetch_failed")
		return
	}
	response.Success(c, items)
}

// AddWishlistItem 加入收藏，重复收藏幂等
func (h *Handler) AddWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	req, ok := bindBody[WishlistItemRequest](c)
	if !ok {
		return
	}

	if err := h.WishlistService.Add(uid, req.ProductID); err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.wishlist_update_failed")
		return
	}
	response.Success(c, gin.H{"added": true})
}

// DeleteWishlistItem 移除收藏项
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.WishlistService.Remove(uid, itemID); err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.wishlist_update_failed")
		return
	}
	response.Success(c, gin.H{"removed": true})
}

// MoveWishlistItemToCart 收藏项移入购物车
func (h *Handler) MoveWishlistItemToCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	if err := h.WishlistService.MoveToCart(c.Request.Context(), uid, itemID); err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.wishlist_update_failed")
		return
	}
	response.Success(c, gin.H{"moved": true})
}
