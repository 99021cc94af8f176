package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/provider"
	"github.com/vastra-shop/internal/queue"
	"github.com/vastra-shop/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
	mux.HandleFunc(queue.TaskOutboxRelay, c.handleOutboxRelay)
}

// statusEmailJob 已解析的状态邮件
type statusEmailJob struct {
	receiver string
	locale   string
	input    service.OrderStatusEmailInput
}

func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseOrderStatusEmailPayload(task)
	if err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.EmailService == nil || !c.EmailService.Enabled() {
		logger.Debugw("worker_order_status_email_skip_email_disabled", "order_id", payload.OrderID)
		return nil
	}

	job, err := c.resolveStatusEmail(payload)
	if err != nil {
		logger.Warnw("worker_order_status_email_resolve_failed",
			"order_id", payload.OrderID,
			"custom", payload.Custom,
			"error", err,
		)
		return err
	}
	if job == nil {
		return nil
	}
	if err := c.EmailService.SendOrderStatusEmail(job.receiver, job.input, job.locale); err != nil {
		logger.Warnw("worker_order_status_email_send_failed",
			"order_no", job.input.OrderNo,
			"receiver_email", job.receiver,
			"status", job.input.Status,
			"error", err,
		)
		if errors.Is(err, service.ErrEmailRecipientRejected) || errors.Is(err, service.ErrInvalidEmail) {
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}
		return err
	}
	return nil
}

// resolveStatusEmail 解析收件人与邮件内容，找不到订单或收件人时返回 nil
func (c *Consumer) resolveStatusEmail(payload queue.OrderStatusEmailPayload) (*statusEmailJob, error) {
	var (
		orderNo string
		status  string
		amount  models.Money
		user    *models.User
	)
	if payload.Custom {
		order, err := c.CustomOrderRepo.GetByID(payload.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID, "custom", true)
			return nil, nil
		}
		orderNo, status, user = order.OrderNo, order.Status, order.User
	} else {
		order, err := c.OrderRepo.GetByID(payload.OrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
			return nil, nil
		}
		orderNo, status, amount = order.OrderNo, order.Status, order.TotalAmount
		user, err = c.UserRepo.GetByID(order.UserID)
		if err != nil {
			return nil, err
		}
	}

	if user == nil || strings.TrimSpace(user.Email) == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_no", orderNo)
		return nil, nil
	}
	if s := strings.TrimSpace(payload.Status); s != "" {
		status = s
	}
	return &statusEmailJob{
		receiver: strings.TrimSpace(user.Email),
		locale:   strings.TrimSpace(user.Locale),
		input: service.OrderStatusEmailInput{
			OrderNo: orderNo,
			Status:  status,
			Amount:  amount,
			Custom:  payload.Custom,
		},
	}, nil
}

func (c *Consumer) handleOutboxRelay(ctx context.Context, _ *asynq.Task) error {
	if c == nil || c.OutboxRelayService == nil {
		return nil
	}
	n, err := c.OutboxRelayService.Drain(ctx)
	if err != nil {
		logger.Warnw("worker_outbox_relay_failed", "relayed", n, "error", err)
		// 失败事件已计数，由定时循环继续重试
		return nil
	}
	return nil
}
