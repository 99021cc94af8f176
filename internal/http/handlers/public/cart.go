package public

import (
	"github.com/vastra-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CartItemRequest 加购请求，每次加一件
type CartItemRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	view, err := h.CartService.GetCart(uid)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.cart_fetch_failed")
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	req, ok := bindBody[CartItemRequest](c)
	if !ok {
		return
	}

	view, err := h.CartService.AddToCart(uid, req.ProductID)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}

// DecrementCartItem 购物车商品数量减一，减到 0 时移除
func (h *Handler) DecrementCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	view, err := h.CartService.RemoveOneFromCart(uid, productID)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}

// DeleteCartItem 移除购物车商品
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	productID, ok := parseIDParam(c, "product_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}

	view, err := h.CartService.RemoveFromCart(uid, productID)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.cart_update_failed")
		return
	}
	response.Success(c, view)
}
