package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/i18n"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AdminListOrders 订单列表，支持 status / order_no / user_id / created_from / created_to 过滤
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := parsePagination(c)
	input := service.AdminOrderListInput{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		OrderNo:  c.Query("order_no"),
	}
	if raw := strings.TrimSpace(c.Query("user_id")); raw != "" {
		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		input.UserID = uint(userID)
	}
	from, ok := parseDateQuery(c, "created_from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "created_to")
	if !ok {
		return
	}
	input.CreatedFrom = from
	input.CreatedTo = to

	orders, total, err := h.OrderService.ListOrdersForAdmin(input)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// AdminGetOrder 订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrderForAdmin(id)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// AdminDeleteOrder 删除订单
func (h *Handler) AdminDeleteOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.OrderService.DeleteOrder(id); err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.order_delete_failed")
		return
	}
	response.Success(c, deletedResult)
}

// AdminUpdateOrderStatus 更新订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	req, ok := bindBody[UpdateOrderStatusRequest](c)
	if !ok {
		return
	}

	order, err := h.OrderService.UpdateOrderStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.order_update_failed")
		return
	}
	if adminID, exists := c.Get("admin_id"); exists {
		requestLog(c).Infow("admin_order_status_updated", "admin_id", adminID, "order_no", order.OrderNo, "status", order.Status)
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.order_status_updated"), order)
}

// parseDateQuery 解析 RFC3339 或 YYYY-MM-DD 日期参数，失败时已写出响应
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return &parsed, true
		}
	}
	respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	return nil, false
}
