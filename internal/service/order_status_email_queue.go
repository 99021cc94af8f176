package service

import (
	"net/mail"
	"strings"

	"github.com/vastra-shop/internal/queue"
	"github.com/vastra-shop/internal/repository"
)

// enqueueOrderStatusEmailTaskIfEligible 根据订单所属用户邮箱决定是否入队状态邮件任务。
// 返回值 skipped 表示任务被跳过（没有可用的收件邮箱）；查询邮箱失败时仍入队，由 worker 再次解析。
func enqueueOrderStatusEmailTaskIfEligible(orderRepo repository.OrderRepository, queueClient *queue.Client, orderID uint, status string) (skipped bool, err error) {
	if queueClient == nil || orderID == 0 {
		return true, nil
	}
	if orderRepo != nil {
		receiverEmail, lookupErr := orderRepo.ResolveReceiverEmailByOrderID(orderID)
		if lookupErr == nil && !isDeliverableEmail(receiverEmail) {
			return true, nil
		}
	}
	if err := queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: orderID,
		Status:  strings.TrimSpace(status),
	}); err != nil {
		return false, err
	}
	return false, nil
}

// enqueueCustomOrderStatusEmailTask 定制订单状态邮件，收件人由 worker 解析
func enqueueCustomOrderStatusEmailTask(queueClient *queue.Client, customOrderID uint, status string) error {
	if queueClient == nil || customOrderID == 0 {
		return nil
	}
	return queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: customOrderID,
		Status:  strings.TrimSpace(status),
		Custom:  true,
	})
}

func isDeliverableEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
