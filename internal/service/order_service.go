package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vastra-shop/internal/cache"
	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/events"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/metrics"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/queue"
	"github.com/vastra-shop/internal/repository"

	"gorm.io/gorm"
)

const idempotencyPending = "pending"

// OrderService 订单服务
type OrderService struct {
	orderRepo      repository.OrderRepository
	productRepo    repository.ProductRepository
	cartRepo       repository.CartRepository
	outboxRepo     repository.OutboxRepository
	notifier       StatusNotifier
	queueClient    *queue.Client
	metrics        *metrics.Metrics
	idempotency    idempotencyStore
	idempotencyTTL time.Duration
}

// idempotencyStore 下单幂等键存储，默认落 Redis，未启用时 SetNX 恒成功
type idempotencyStore interface {
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type redisIdempotencyStore struct{}

func (redisIdempotencyStore) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return cache.SetNX(ctx, key, value, ttl)
}

func (redisIdempotencyStore) GetString(ctx context.Context, key string) (string, bool, error) {
	return cache.GetString(ctx, key)
}

func (redisIdempotencyStore) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	return cache.SetString(ctx, key, value, ttl)
}

func (redisIdempotencyStore) Del(ctx context.Context, key string) error {
	return cache.Del(ctx, key)
}

// NewOrderService 创建订单服务
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	outboxRepo repository.OutboxRepository,
	notifier StatusNotifier,
	queueClient *queue.Client,
	m *metrics.Metrics,
	idempotencyTTLSeconds int,
) *OrderService {
	ttl := time.Duration(idempotencyTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &OrderService{
		orderRepo:      orderRepo,
		productRepo:    productRepo,
		cartRepo:       cartRepo,
		outboxRepo:     outboxRepo,
		notifier:       notifier,
		queueClient:    queueClient,
		metrics:        m,
		idempotency:    redisIdempotencyStore{},
		idempotencyTTL: ttl,
	}
}

// OrderLineInput 下单行
type OrderLineInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,min=1"`
}

// PlaceOrderInput 下单输入，金额只由服务端根据商品目录计算
type PlaceOrderInput struct {
	UserID         uint                   `json:"user_id" validate:"required"`
	Shipping       models.ShippingAddress `json:"shipping"`
	Lines          []OrderLineInput       `json:"lines" validate:"required,min=1,dive"`
	PaymentMethod  string                 `json:"payment_method" validate:"required,max=32"`
	IdempotencyKey string                 `json:"-"`
}

// OrderConfirmation 下单结果
type OrderConfirmation struct {
	OrderID string `json:"order_id"`
	Success bool   `json:"success"`
}

// orderLinePlan 校验通过后的下单行
type orderLinePlan struct {
	product  models.Product
	quantity int
}

// PlaceOrder 创建订单
// 校验、查商品、查库存均在写入前完成；订单写入、条件扣库存、事件落库、清理购物车在同一事务内
func (s *OrderService) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*OrderConfirmation, error) {
	input = normalizePlaceOrderInput(input)
	if err := validateStruct(input); err != nil {
		s.metrics.OrderFailed("validation")
		return nil, err
	}

	if input.IdempotencyKey == "" {
		return s.placeOrder(ctx, input)
	}

	cacheKey := fmt.Sprintf(constants.CacheKeyIdempotency, input.UserID, input.IdempotencyKey)
	previous, acquired, err := s.acquireIdempotency(ctx, cacheKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return &OrderConfirmation{OrderID: previous, Success: true}, nil
	}
	confirmation, err := s.placeOrder(ctx, input)
	if err != nil {
		s.releaseIdempotency(ctx, cacheKey, input.UserID)
		return nil, err
	}
	if setErr := s.idempotency.SetString(ctx, cacheKey, confirmation.OrderID, s.idempotencyTTL); setErr != nil {
		// 键停留在 pending 会让同一个 key 的重试在整个 TTL 内都拿到 409
		logger.Warnw("order_idempotency_store_failed", "user_id", input.UserID, "order_no", confirmation.OrderID, "error", setErr)
		s.releaseIdempotency(ctx, cacheKey, input.UserID)
	}
	return confirmation, nil
}

func (s *OrderService) releaseIdempotency(ctx context.Context, cacheKey string, userID uint) {
	if err := s.idempotency.Del(ctx, cacheKey); err != nil {
		logger.Warnw("order_idempotency_release_failed", "user_id", userID, "error", err)
	}
}

// acquireIdempotency 抢占幂等键；已完成时返回原订单号，处理中返回 ErrIdempotencyInProgress
// Redis 不可用时降级为无幂等保护
func (s *OrderService) acquireIdempotency(ctx context.Context, cacheKey string) (string, bool, error) {
	ok, err := s.idempotency.SetNX(ctx, cacheKey, idempotencyPending, s.idempotencyTTL)
	if err != nil {
		logger.Warnw("order_idempotency_unavailable", "error", err)
		return "", true, nil
	}
	if ok {
		return "", true, nil
	}
	value, hit, err := s.idempotency.GetString(ctx, cacheKey)
	if err != nil {
		logger.Warnw("order_idempotency_unavailable", "error", err)
		return "", true, nil
	}
	if hit && value != idempotencyPending && value != "" {
		return value, false, nil
	}
	return "", false, ErrIdempotencyInProgress
}

func (s *OrderService) placeOrder(ctx context.Context, input PlaceOrderInput) (*OrderConfirmation, error) {
	lines := mergeOrderLines(input.Lines)

	plans, err := s.resolveOrderLines(lines)
	if err != nil {
		s.recordPlaceFailure(err)
		return nil, err
	}

	total := models.NewMoneyFromInt(0)
	items := make([]models.OrderItem, 0, len(plans))
	for _, plan := range plans {
		lineTotal := plan.product.PriceAmount.MulQuantity(plan.quantity)
		total = total.Add(lineTotal)
		items = append(items, models.OrderItem{
			ProductID:  plan.product.ID,
			Name:       plan.product.Name,
			Image:      plan.product.Images.First(),
			UnitPrice:  plan.product.PriceAmount,
			Quantity:   plan.quantity,
			TotalPrice: lineTotal,
		})
	}

	orderNo, err := generateOrderNo()
	if err != nil {
		return nil, fmt.Errorf("generate order no: %w", err)
	}

	order := &models.Order{
		OrderNo:       orderNo,
		UserID:        input.UserID,
		Shipping:      input.Shipping,
		PaymentMethod: input.PaymentMethod,
		Status:        constants.OrderStatusPending,
		TotalAmount:   total,
	}

	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		if err := orderRepo.Create(order, items); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrConflictRetryable
			}
			return err
		}
		for _, plan := range plans {
			affected, err := productRepo.DecrementStock(plan.product.ID, plan.quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				s.metrics.StockConflict()
				current, err := productRepo.GetByID(plan.product.ID)
				if err != nil {
					return err
				}
				available := 0
				if current != nil {
					available = current.Stock
				}
				return newInsufficientStockError(plan.product.ID, plan.product.Name, plan.quantity, available)
			}
		}
		if s.outboxRepo != nil {
			event, err := events.NewOutboxEvent(constants.EventOrderPlaced, order.OrderNo, map[string]any{
				"order_no":       order.OrderNo,
				"user_id":        order.UserID,
				"total_amount":   order.TotalAmount.String(),
				"payment_method": order.PaymentMethod,
				"lines":          buildEventLines(items),
			})
			if err != nil {
				return err
			}
			if err := s.outboxRepo.WithTx(tx).Insert(event); err != nil {
				return err
			}
		}
		if s.cartRepo != nil {
			return clearOrderedCartItems(s.cartRepo.WithTx(tx), input.UserID, items)
		}
		return nil
	})
	if err != nil {
		err = translateOrderWriteError(err)
		s.recordPlaceFailure(err)
		return nil, err
	}

	s.metrics.OrderPlaced()
	logger.Infow("order_placed",
		"order_no", order.OrderNo,
		"user_id", order.UserID,
		"total_amount", order.TotalAmount.String(),
		"lines", len(items),
	)
	s.kickOutboxRelay()
	return &OrderConfirmation{OrderID: order.OrderNo, Success: true}, nil
}

// resolveOrderLines 依次校验商品存在与库存，任一失败均不产生写入
func (s *OrderService) resolveOrderLines(lines []OrderLineInput) ([]orderLinePlan, error) {
	ids := make([]uint, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := s.productRepo.ListByIDs(ids)
	if err != nil {
		return nil, wrapStorage("load products", err)
	}
	productMap := make(map[uint]models.Product, len(products))
	for _, product := range products {
		if product.IsActive {
			productMap[product.ID] = product
		}
	}

	plans := make([]orderLinePlan, 0, len(lines))
	for _, line := range lines {
		product, ok := productMap[line.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: line.ProductID}
		}
		plans = append(plans, orderLinePlan{product: product, quantity: line.Quantity})
	}
	for _, plan := range plans {
		if plan.quantity > plan.product.Stock {
			return nil, newInsufficientStockError(plan.product.ID, plan.product.Name, plan.quantity, plan.product.Stock)
		}
	}
	return plans, nil
}

func (s *OrderService) recordPlaceFailure(err error) {
	switch {
	case errors.Is(err, ErrProductNotFound):
		s.metrics.OrderFailed("product_not_found")
	case errors.Is(err, ErrInsufficientStock):
		s.metrics.OrderFailed("insufficient_stock")
	case errors.Is(err, ErrConflictRetryable):
		s.metrics.OrderFailed("conflict")
	default:
		s.metrics.OrderFailed("storage")
		logger.Errorw("order_place_failed", "error", err)
	}
}

// translateOrderWriteError 事务错误归类：业务错误原样返回，其余视为存储不可用
func translateOrderWriteError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInsufficientStock),
		errors.Is(err, ErrConflictRetryable),
		errors.Is(err, ErrOrderStatusInvalid),
		errors.Is(err, ErrValidation):
		return err
	case repository.IsUniqueViolation(err):
		return ErrConflictRetryable
	default:
		return wrapStorage("order transaction", err)
	}
}

func clearOrderedCartItems(cartRepo repository.CartRepository, userID uint, items []models.OrderItem) error {
	cart, err := cartRepo.GetByUser(userID)
	if err != nil || cart == nil {
		return err
	}
	productIDs := make([]uint, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}
	return cartRepo.DeleteItemsByProducts(cart.ID, productIDs)
}

func buildEventLines(items []models.OrderItem) []map[string]any {
	lines := make([]map[string]any, 0, len(items))
	for _, item := range items {
		lines = append(lines, map[string]any{
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice.String(),
		})
	}
	return lines
}

func normalizePlaceOrderInput(input PlaceOrderInput) PlaceOrderInput {
	input.Shipping = input.Shipping.Trimmed()
	input.PaymentMethod = strings.TrimSpace(input.PaymentMethod)
	input.IdempotencyKey = strings.TrimSpace(input.IdempotencyKey)
	if len(input.IdempotencyKey) > 128 {
		input.IdempotencyKey = input.IdempotencyKey[:128]
	}
	return input
}

// mergeOrderLines 合并同一商品的下单行，保持首次出现的顺序
func mergeOrderLines(lines []OrderLineInput) []OrderLineInput {
	merged := make([]OrderLineInput, 0, len(lines))
	index := make(map[uint]int, len(lines))
	for _, line := range lines {
		if pos, ok := index[line.ProductID]; ok {
			merged[pos].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(merged)
		merged = append(merged, line)
	}
	return merged
}

// UpdateOrderStatus 管理端更新订单状态
// 状态写入先提交；站内通知与邮件为尽力投递，失败只记录日志
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderID uint, newStatus string) (*models.Order, error) {
	target, err := resolveStatusTarget(newStatus)
	if err != nil {
		return nil, err
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, wrapStorage("load order", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.Status == target {
		return order, nil
	}
	if !canTransitOrderStatus(order.Status, target) {
		return nil, ErrOrderStatusInvalid
	}

	fromStatus := order.Status
	now := time.Now()
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		affected, err := s.orderRepo.WithTx(tx).UpdateStatus(order.ID, fromStatus, target, map[string]interface{}{
			"updated_at": now,
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConflictRetryable
		}
		if target == constants.OrderStatusCancelled {
			productRepo := s.productRepo.WithTx(tx)
			for _, item := range order.Items {
				if _, err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
		}
		if s.outboxRepo == nil {
			return nil
		}
		event, err := events.NewOutboxEvent(constants.EventOrderStatusChanged, order.OrderNo, map[string]any{
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
	order.UpdatedAt = now
	s.metrics.StatusChanged("order", target)
	logger.Infow("order_status_updated",
		"order_no", order.OrderNo,
		"from", fromStatus,
		"to", target,
	)

	s.notifyOrderStatus(ctx, order)
	s.kickOutboxRelay()
	return order, nil
}

// notifyOrderStatus 尽力投递状态变更通知，失败不回滚状态
func (s *OrderService) notifyOrderStatus(ctx context.Context, order *models.Order) {
	if s.notifier != nil {
		message := fmt.Sprintf(constants.NotificationOrderStatusTemplate, order.OrderNo, order.Status)
		if err := s.notifier.Notify(ctx, order.UserID, message); err != nil {
			logger.Warnw("order_notification_failed",
				"order_no", order.OrderNo,
				"user_id", order.UserID,
				"status", order.Status,
				"error", err,
			)
		}
	}
	if s.queueClient != nil {
		if _, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, order.ID, order.Status); err != nil {
			logger.Warnw("order_enqueue_status_email_failed",
				"order_no", order.OrderNo,
				"status", order.Status,
				"error", err,
			)
		}
	}
}

func (s *OrderService) kickOutboxRelay() {
	if s.queueClient == nil {
		return
	}
	if err := s.queueClient.EnqueueOutboxRelay(); err != nil {
		logger.Debugw("outbox_relay_kick_failed", "error", err)
	}
}
