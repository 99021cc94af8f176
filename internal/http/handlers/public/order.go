package public

import (
	"strings"

	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// idempotencyHeader 客户端重试下单时携带的幂等键
const idempotencyHeader = "Idempotency-Key"

// OrderLineRequest 下单行
type OrderLineRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// PlaceOrderRequest 下单请求，不接收任何价格字段
type PlaceOrderRequest struct {
	Shipping      models.ShippingAddress `json:"shipping"`
	Lines         []OrderLineRequest     `json:"lines"`
	PaymentMethod string                 `json:"payment_method"`
}

// PlaceOrder 创建订单
func (h *Handler) PlaceOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	req, ok := bindBody[PlaceOrderRequest](c)
	if !ok {
		return
	}

	lines := make([]service.OrderLineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, service.OrderLineInput{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
		})
	}

	confirmation, err := h.OrderService.PlaceOrder(c.Request.Context(), service.PlaceOrderInput{
		UserID:         uid,
		Shipping:       req.Shipping,
		Lines:          lines,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: strings.TrimSpace(c.GetHeader(idempotencyHeader)),
	})
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.order_create_failed")
		return
	}
	response.Success(c, confirmation)
}

// ListOrders 我的订单
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	orders, total, err := h.OrderService.ListUserOrders(uid, c.Query("status"), page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.SuccessWithPage(c, orders, response.BuildPagination(page, pageSize, total))
}

// GetOrderByOrderNo 按订单号获取订单详情
func (h *Handler) GetOrderByOrderNo(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	order, err := h.OrderService.GetOrderByUserOrderNo(c.Param("order_no"), uid)
	if err != nil {
		respondWithMappedError(c, err, nil, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}
