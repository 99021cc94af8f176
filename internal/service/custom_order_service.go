package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/events"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/metrics"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/queue"
	"github.com/vastra-shop/internal/repository"

	"gorm.io/gorm"
)

const defaultFabricType = "Khadi"

// CustomOrderService 定制订单服务
type CustomOrderService struct {
	repo        repository.CustomOrderRepository
	outboxRepo  repository.OutboxRepository
	notifier    StatusNotifier
	queueClient *queue.Client
	metrics     *metrics.Metrics
}

// NewCustomOrderService 创建定制订单服务
func NewCustomOrderService(
	repo repository.CustomOrderRepository,
	outboxRepo repository.OutboxRepository,
	notifier StatusNotifier,
	queueClient *queue.Client,
	m *metrics.Metrics,
) *CustomOrderService {
	return &CustomOrderService{
		repo:        repo,
		outboxRepo:  outboxRepo,
		notifier:    notifier,
		queueClient: queueClient,
		metrics:     m,
	}
}

// SubmitCustomOrderInput 定制款式提交
type SubmitCustomOrderInput struct {
	UserID       uint   `json:"-" validate:"required"`
	NeckDesign   string `json:"neck_design" validate:"required,max=80"`
	SleeveLength string `json:"sleeve_length" validate:"required,max=80"`
	KurtiLength  string `json:"kurti_length" validate:"required,max=80"`
	FabricType   string `json:"fabric_type" validate:"max=80"`
	Color        string `json:"color" validate:"required,max=32"`
	ColorName    string `json:"color_name" validate:"required,max=80"`
}

// Submit 提交定制订单
func (s *CustomOrderService) Submit(input SubmitCustomOrderInput) (*models.CustomOrder, error) {
	input.NeckDesign = strings.TrimSpace(input.NeckDesign)
	input.SleeveLength = strings.TrimSpace(input.SleeveLength)
	input.KurtiLength = strings.TrimSpace(input.KurtiLength)
	input.FabricType = strings.TrimSpace(input.FabricType)
	input.Color = strings.TrimSpace(input.Color)
	input.ColorName = strings.TrimSpace(input.ColorName)
	if input.FabricType == "" {
		input.FabricType = defaultFabricType
	}
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	orderNo, err := generateOrderNo()
	if err != nil {
		return nil, fmt.Errorf("generate order no: %w", err)
	}
	order := &models.CustomOrder{
		OrderNo:      orderNo,
		UserID:       input.UserID,
		NeckDesign:   input.NeckDesign,
		SleeveLength: input.SleeveLength,
		KurtiLength:  input.KurtiLength,
		FabricType:   input.FabricType,
		Color:        input.Color,
		ColorName:    input.ColorName,
		Status:       constants.OrderStatusPending,
	}
	if err := s.repo.Create(order); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflictRetryable
		}
		return nil, wrapStorage("create custom order", err)
	}
	logger.Infow("custom_order_submitted", "order_no", order.OrderNo, "user_id", order.UserID)
	return order, nil
}

// ListMine 我的定制订单
func (s *CustomOrderService) ListMine(userID uint, page, pageSize int) ([]models.CustomOrder, int64, error) {
	orders, total, err := s.repo.List(repository.CustomOrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   userID,
	})
	if err != nil {
		return nil, 0, wrapStorage("list custom orders", err)
	}
	return orders, total, nil
}

// ListForAdmin 管理端定制订单列表
func (s *CustomOrderService) ListForAdmin(status string, page, pageSize int) ([]models.CustomOrder, int64, error) {
	filter := repository.CustomOrderListFilter{Page: page, PageSize: pageSize}
	if status = strings.TrimSpace(status); status != "" {
		normalized, ok := normalizeOrderStatus(status)
		if !ok {
			return nil, 0, newValidationError("status", "unknown status")
		}
		filter.Status = normalized
	}
	orders, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, wrapStorage("list custom orders", err)
	}
	return orders, total, nil
}

// Delete 删除定制订单
func (s *CustomOrderService) Delete(id uint) error {
	order, err := s.repo.GetByID(id)
	if err != nil {
		return wrapStorage("load custom order", err)
	}
	if order == nil {
		return ErrCustomOrderNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return wrapStorage("delete custom order", err)
	}
	return nil
}

// UpdateStatus 更新定制订单状态，流转规则与普通订单一致，通知为尽力投递
func (s *CustomOrderService) UpdateStatus(ctx context.Context, id uint, newStatus string) (*models.CustomOrder, error) {
	target, err := resolveStatusTarget(newStatus)
	if err != nil {
		return nil, err
	}
	order, err := s.repo.GetByID(id)
	if err != nil {
		return nil, wrapStorage("load custom order", err)
	}
	if order == nil {
		return nil, ErrCustomOrderNotFound
	}
	if order.Status == target {
		return order, nil
	}
	if !canTransitOrderStatus(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	fromStatus := order.Status
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		affected, err := s.repo.WithTx(tx).UpdateStatus(order.ID, fromStatus, target)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflictRetryable
		}
		if s.outboxRepo == nil {
			return nil
		}
		event, err := events.NewOutboxEvent(constants.EventCustomOrderStatusChanged, order.OrderNo, map[string]any{
			"order_no": order.OrderNo,
			"user_id":  order.UserID,
			"from":     fromStatus,
			"to":       target,
		})
		if err != nil {
			return err
		}
		return s.outboxRepo.WithTx(tx).Insert(event)
	})
	if err != nil {
		return nil, translateOrderWriteError(err)
	}

	order.Status = target
	order.UpdatedAt = time.Now()
	s.metrics.StatusChanged("custom_order", target)
	logger.Infow("custom_order_status_updated", "order_no", order.OrderNo, "from", fromStatus, "to", target)

	if s.notifier != nil {
		message := fmt.Sprintf(constants.NotificationCustomOrderStatusTemplate, order.OrderNo, target)
		if err := s.notifier.Notify(ctx, order.UserID, message); err != nil {
			logger.Warnw("custom_order_notification_failed", "order_no", order.OrderNo, "user_id", order.UserID, "error", err)
		}
	}
	if err := enqueueCustomOrderStatusEmailTask(s.queueClient, order.ID, target); err != nil {
		logger.Warnw("custom_order_enqueue_status_email_failed", "order_no", order.OrderNo, "error", err)
	}
	if s.queueClient != nil {
		if err := s.queueClient.EnqueueOutboxRelay(); err != nil {
			logger.Debugw("outbox_relay_kick_failed", "error", err)
		}
	}
	return order, nil
}
