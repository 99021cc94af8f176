package service

import (
	"strings"

	"github.com/vastra-shop/internal/constants"
)

// orderStatusTransitions 订单状态流转图，只能前进（允许跳过中间状态），Delivered 与 Cancelled 为终态
// 普通订单与定制订单共用
var orderStatusTransitions = map[string]map[string]bool{
	constants.OrderStatusPending: {
		constants.OrderStatusProcessing: true,
		constants.OrderStatusShipped:    true,
		constants.OrderStatusDelivered:  true,
		constants.OrderStatusCancelled:  true,
	},
	constants.OrderStatusProcessing: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
	},
}

var orderStatuses = []string{
	constants.OrderStatusPending,
	constants.OrderStatusProcessing,
	constants.OrderStatusShipped,
	constants.OrderStatusDelivered,
	constants.OrderStatusCancelled,
}

// OrderStatuses 返回全部订单状态
func OrderStatuses() []string {
	out := make([]string, len(orderStatuses))
	copy(out, orderStatuses)
	return out
}

// normalizeOrderStatus 大小写不敏感地匹配规范状态名
func normalizeOrderStatus(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, status := range orderStatuses {
		if strings.EqualFold(raw, status) {
			return status, true
		}
	}
	return "", false
}

// canTransitOrderStatus 判断状态是否允许流转
func canTransitOrderStatus(from, to string) bool {
	nexts, ok := orderStatusTransitions[from]
	if !ok {
		return false
	}
	return nexts[to]
}

// resolveStatusTarget 校验目标状态，返回规范化后的状态
func resolveStatusTarget(raw string) (string, error) {
	target, ok := normalizeOrderStatus(raw)
	if !ok {
		return "", newValidationError("status", "must be one of "+strings.Join(orderStatuses, "/"))
	}
	return target, nil
}
