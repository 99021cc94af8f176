package admin

import (
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/i18n"

	"github.com/gin-gonic/gin"
)

// AdminListCustomOrders 定制订单列表
func (h *Handler) AdminListCustomOrders(c *gin.Context) {
	page, pageSize := parsePagination(c)

	orders, total, err := h.CustomOrderService.ListForAdmin(c.Query("status"), page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, customOrderErrorRules, response.CodeInternal, "error.custom_order_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// AdminDeleteCustomOrder 删除定制订单
func (h *Handler) AdminDeleteCustomOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.CustomOrderService.Delete(id); err != nil {
		respondWithMappedError(c, err, customOrderErrorRules, response.CodeInternal, "error.custom_order_failed")
		return
	}
	response.Success(c, deletedResult)
}

// AdminUpdateCustomOrderStatus 更新定制订单状态
func (h *Handler) AdminUpdateCustomOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := bindBody[UpdateOrderStatusRequest](c)
	if !ok {
		return
	}

	order, err := h.CustomOrderService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, customOrderErrorRules, response.CodeInternal, "error.custom_order_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.order_status_updated"), order)
}
