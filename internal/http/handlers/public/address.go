package public

import (
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/models"

	"github.com/gin-gonic/gin"
)

// GetAddress 获取常用收货地址
func (h *Handler) GetAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	address, err := h.AddressService.GetAddress(uid)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.address_fetch_failed")
		return
	}
	response.Success(c, address)
}

// SaveAddress 保存常用收货地址
func (h *Handler) SaveAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	req, ok := bindBody[models.ShippingAddress](c)
	if !ok {
		return
	}

	address, err := h.AddressService.SaveAddress(uid, req)
	if err != nil {
		respondWithMappedError(c, err, userAuthErrorRules, response.CodeInternal, "error.address_save_failed")
		return
	}
	response.Success(c, address)
}
