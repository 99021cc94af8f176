package public

import (
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// SubmitCustomOrder 提交定制订单
func (h *Handler) SubmitCustomOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	req, ok := bindBody[service.SubmitCustomOrderInput](c)
	if !ok {
		return
	}
	req.UserID = uid

	order, err := h.CustomOrderService.Submit(req)
	if err != nil {
		respondWithMappedError(c, err, customOrderErrorRules, response.CodeInternal, "error.custom_order_failed")
		return
	}
	response.Success(c, order)
}

// ListMyCustomOrders 我的定制订单
func (h *Handler) ListMyCustomOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	orders, total, err := h.CustomOrderService.ListMine(uid, page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, customOrderErrorRules, response.CodeInternal, "error.custom_order_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}
