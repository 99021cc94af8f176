package service

import (
	"strings"
	"time"

	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"
)

// statusFilter 空串表示不过滤，其余必须是已知状态（大小写不敏感）
func statusFilter(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	status, ok := normalizeOrderStatus(raw)
	if !ok {
		return "", newValidationError("status", "unknown status")
	}
	return status, nil
}

func requireOrder(order *models.Order, err error) (*models.Order, error) {
	if err != nil {
		return nil, wrapStorage("load order", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListUserOrders 我的订单，新单在前
func (s *OrderService) ListUserOrders(userID uint, status string, page, pageSize int) ([]models.Order, int64, error) {
	normalized, err := statusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	orders, total, err := s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Status:   normalized,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, 0, wrapStorage("list user orders", err)
	}
	return orders, total, nil
}

// GetOrderByUserOrderNo 他人订单与不存在的订单同样返回 ErrOrderNotFound
func (s *OrderService) GetOrderByUserOrderNo(orderNo string, userID uint) (*models.Order, error) {
	orderNo = strings.ToUpper(strings.TrimSpace(orderNo))
	if !isValidOrderNo(orderNo) {
		return nil, ErrOrderNotFound
	}
	return requireOrder(s.orderRepo.GetByOrderNoAndUser(orderNo, userID))
}

type AdminOrderListInput struct {
	Page        int
	PageSize    int
	UserID      uint
	Status      string
	OrderNo     string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

func (s *OrderService) ListOrdersForAdmin(input AdminOrderListInput) ([]models.Order, int64, error) {
	normalized, err := statusFilter(input.Status)
	if err != nil {
		return nil, 0, err
	}
	orders, total, err := s.orderRepo.ListAdmin(repository.OrderListFilter{
		Page:        input.Page,
		PageSize:    input.PageSize,
		UserID:      input.UserID,
		Status:      normalized,
		OrderNo:     strings.ToUpper(strings.TrimSpace(input.OrderNo)),
		CreatedFrom: input.CreatedFrom,
		CreatedTo:   input.CreatedTo,
	})
	if err != nil {
		return nil, 0, wrapStorage("list orders", err)
	}
	return orders, total, nil
}

func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	return requireOrder(s.orderRepo.GetByID(orderID))
}

// DeleteOrder 软删除，不回补库存
func (s *OrderService) DeleteOrder(orderID uint) error {
	order, err := s.GetOrderForAdmin(orderID)
	if err != nil {
		return err
	}
	if err := s.orderRepo.Delete(order.ID); err != nil {
		return wrapStorage("delete order", err)
	}
	logger.Infow("order_deleted", "order_no", order.OrderNo, "status", order.Status)
	return nil
}
