package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestMergeOrderLinesKeepsFirstOrder(t *testing.T) {
	merged := mergeOrderLines([]OrderLineInput{
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	})
	if len(merged) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(merged))
	}
	if merged[0].ProductID != 2 || merged[0].Quantity != 4 {
		t.Fatalf("unexpected first line: %+v", merged[0])
	}
	if merged[1].ProductID != 1 || merged[1].Quantity != 2 {
		t.Fatalf("unexpected second line: %+v", merged[1])
	}
}

func TestPlaceOrderCreatesOrderAndDecrementsStock(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5, "kurti.jpg")
	saree := seedServiceProduct(t, db, "Silk Saree", 1200, 2)

	cartRepo := repository.NewCartRepository(db)
	cart, err := cartRepo.GetOrCreate(7)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	if err := cartRepo.AddItem(snapshotCartItem(cart.ID, kurti, constants.CartPlaceholderImage), 1); err != nil {
		t.Fatalf("seed cart failed: %v", err)
	}

	svc := newTestOrderService(db, nil)
	confirmation, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        7,
		Shipping:      testShipping(),
		PaymentMethod: constants.DefaultPaymentMethodCOD,
		Lines: []OrderLineInput{
			{ProductID: kurti.ID, Quantity: 2},
			{ProductID: saree.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if !confirmation.Success || !isValidOrderNo(confirmation.OrderID) {
		t.Fatalf("unexpected confirmation: %+v", confirmation)
	}

	if got := reloadStock(t, db, kurti.ID); got != 3 {
		t.Fatalf("kurti stock want 3 got %d", got)
	}
	if got := reloadStock(t, db, saree.ID); got != 1 {
		t.Fatalf("saree stock want 1 got %d", got)
	}

	order, err := repository.NewOrderRepository(db).GetByOrderNo(confirmation.OrderID)
	if err != nil || order == nil {
		t.Fatalf("load order failed: %v", err)
	}
	if order.Status != constants.OrderStatusPending {
		t.Fatalf("new order should be pending, got %s", order.Status)
	}
	if order.TotalAmount.String() != "2200.00" {
		t.Fatalf("total want 2200.00 got %s", order.TotalAmount.String())
	}
	if len(order.Items) != 2 || order.Items[0].Image != "kurti.jpg" || order.Items[0].UnitPrice.String() != "500.00" {
		t.Fatalf("unexpected order items: %+v", order.Items)
	}
	if order.Shipping.City != "Pune" {
		t.Fatalf("shipping snapshot missing: %+v", order.Shipping)
	}

	var events []models.OutboxEvent
	if err := db.Where("topic = ?", constants.EventOrderPlaced).Find(&events).Error; err != nil {
		t.Fatalf("load outbox failed: %v", err)
	}
	if len(events) != 1 || events[0].Key != confirmation.OrderID {
		t.Fatalf("expected one order.placed event, got %+v", events)
	}

	items, err := cartRepo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list cart failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("ordered products should leave the cart, got %+v", items)
	}
}

// countingProductRepo 统计商品查询次数
type countingProductRepo struct {
	repository.ProductRepository
	listCalls int
}

func (r *countingProductRepo) ListByIDs(ids []uint) ([]models.Product, error) {
	r.listCalls++
	return r.ProductRepository.ListByIDs(ids)
}

func TestPlaceOrderValidatesBeforeCatalogLookup(t *testing.T) {
	db := openServiceTestDB(t)
	products := &countingProductRepo{ProductRepository: repository.NewProductRepository(db)}
	svc := NewOrderService(repository.NewOrderRepository(db), products, nil, nil, nil, nil, nil, 0)

	cases := []struct {
		name  string
		input PlaceOrderInput
		field string
	}{
		{
			name:  "empty lines",
			input: PlaceOrderInput{UserID: 1, Shipping: testShipping(), PaymentMethod: "COD"},
			field: "lines",
		},
		{
			name: "zero quantity",
			input: PlaceOrderInput{UserID: 1, Shipping: testShipping(), PaymentMethod: "COD",
				Lines: []OrderLineInput{{ProductID: 1, Quantity: 0}}},
			field: "lines[0].quantity",
		},
		{
			name: "blank shipping city",
			input: PlaceOrderInput{UserID: 1, Shipping: models.ShippingAddress{Name: "A", Address: "B", Pincode: "1", City: "  ", State: "S"},
				PaymentMethod: "COD", Lines: []OrderLineInput{{ProductID: 1, Quantity: 1}}},
			field: "shipping.city",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.PlaceOrder(context.Background(), tc.input)
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tc.field {
				t.Fatalf("expected field %s, got %v", tc.field, err)
			}
		})
	}
	if products.listCalls != 0 {
		t.Fatalf("catalog should not be read for invalid input, got %d calls", products.listCalls)
	}
}

func TestPlaceOrderUnknownProductWritesNothing(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	svc := newTestOrderService(db, nil)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        3,
		Shipping:      testShipping(),
		PaymentMethod: "COD",
		Lines: []OrderLineInput{
			{ProductID: kurti.ID, Quantity: 1},
			{ProductID: 9999, Quantity: 1},
		},
	})
	var notFound *ProductNotFoundError
	if !errors.As(err, &notFound) || notFound.ProductID != 9999 {
		t.Fatalf("expected product not found for 9999, got %v", err)
	}
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("error should unwrap to ErrProductNotFound")
	}
	assertNoOrders(t, db)
	if got := reloadStock(t, db, kurti.ID); got != 5 {
		t.Fatalf("stock must be untouched, got %d", got)
	}
}

func TestPlaceOrderInactiveProductCountsAsMissing(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	if err := db.Model(&models.Product{}).Where("id = ?", kurti.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	svc := newTestOrderService(db, nil)
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: 3, Shipping: testShipping(), PaymentMethod: "COD",
		Lines: []OrderLineInput{{ProductID: kurti.ID, Quantity: 1}},
	})
	if !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("inactive product should be not found, got %v", err)
	}
}

func TestPlaceOrderInsufficientStockIsAllOrNothing(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	saree := seedServiceProduct(t, db, "Silk Saree", 1200, 1)
	svc := newTestOrderService(db, nil)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        3,
		Shipping:      testShipping(),
		PaymentMethod: "COD",
		Lines: []OrderLineInput{
			{ProductID: kurti.ID, Quantity: 2},
			{ProductID: saree.ID, Quantity: 2},
		},
	})
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if stockErr.ProductID != saree.ID || stockErr.Requested != 2 || stockErr.Available != 1 || stockErr.Shortfall != 1 {
		t.Fatalf("unexpected stock error detail: %+v", stockErr)
	}
	assertNoOrders(t, db)
	if got := reloadStock(t, db, kurti.ID); got != 5 {
		t.Fatalf("kurti stock must be untouched, got %d", got)
	}
}

// staleStockProductRepo 返回过期的库存快照，使校验阶段放行，由事务内的条件扣减兜底
type staleStockProductRepo struct {
	repository.ProductRepository
}

func (r staleStockProductRepo) ListByIDs(ids []uint) ([]models.Product, error) {
	products, err := r.ProductRepository.ListByIDs(ids)
	for i := range products {
		products[i].Stock = 100
	}
	return products, err
}

func TestPlaceOrderLaterLineFailureRollsBackEarlierDebit(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	saree := seedServiceProduct(t, db, "Silk Saree", 1200, 1)
	svc := newTestOrderService(db, nil)
	svc.productRepo = staleStockProductRepo{ProductRepository: repository.NewProductRepository(db)}

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID:        3,
		Shipping:      testShipping(),
		PaymentMethod: "COD",
		Lines: []OrderLineInput{
			{ProductID: kurti.ID, Quantity: 2},
			{ProductID: saree.ID, Quantity: 3},
		},
	})
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	if stockErr.ProductID != saree.ID || stockErr.Requested != 3 || stockErr.Available != 1 {
		t.Fatalf("unexpected stock error detail: %+v", stockErr)
	}
	if got := reloadStock(t, db, kurti.ID); got != 5 {
		t.Fatalf("kurti debit should be rolled back, got %d", got)
	}
	if got := reloadStock(t, db, saree.ID); got != 1 {
		t.Fatalf("saree stock must be untouched, got %d", got)
	}
	assertNoOrders(t, db)
	var events int64
	db.Model(&models.OutboxEvent{}).Count(&events)
	if events != 0 {
		t.Fatalf("expected no outbox events, got %d", events)
	}
}

// memoryIdempotencyStore 内存幂等键存储，可注入写回失败
type memoryIdempotencyStore struct {
	mu      sync.Mutex
	values  map[string]string
	failSet bool
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{values: map[string]string{}}
}

func (m *memoryIdempotencyStore) SetNX(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok {
		return false, nil
	}
	m.values[key] = value
	return true, nil
}

func (m *memoryIdempotencyStore) GetString(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	value, ok := m.values[key]
	return value, ok, nil
}

func (m *memoryIdempotencyStore) SetString(_ context.Context, key, value string, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return errors.New("redis: connection pool timeout")
	}
	m.values[key] = value
	return nil
}

func (m *memoryIdempotencyStore) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func idempotentOrderInput(productID uint, key string) PlaceOrderInput {
	return PlaceOrderInput{
		UserID:         8,
		Shipping:       testShipping(),
		PaymentMethod:  "COD",
		Lines:          []OrderLineInput{{ProductID: productID, Quantity: 1}},
		IdempotencyKey: key,
	}
}

func TestPlaceOrderIdempotencyKeyReplaysConfirmation(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	svc := newTestOrderService(db, nil)
	svc.idempotency = newMemoryIdempotencyStore()

	first, err := svc.PlaceOrder(context.Background(), idempotentOrderInput(kurti.ID, "checkout-1"))
	if err != nil {
		t.Fatalf("first place order failed: %v", err)
	}
	second, err := svc.PlaceOrder(context.Background(), idempotentOrderInput(kurti.ID, "checkout-1"))
	if err != nil {
		t.Fatalf("replayed place order failed: %v", err)
	}
	if second.OrderID != first.OrderID {
		t.Fatalf("replay should return %s, got %s", first.OrderID, second.OrderID)
	}
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	if orders != 1 {
		t.Fatalf("expected 1 order, got %d", orders)
	}
	if got := reloadStock(t, db, kurti.ID); got != 4 {
		t.Fatalf("stock want 4 got %d", got)
	}
}

func TestPlaceOrderIdempotencyStoreFailureReleasesKey(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	store := newMemoryIdempotencyStore()
	store.failSet = true
	svc := newTestOrderService(db, nil)
	svc.idempotency = store

	first, err := svc.PlaceOrder(context.Background(), idempotentOrderInput(kurti.ID, "checkout-2"))
	if err != nil {
		t.Fatalf("order should commit even if the key cannot be stored, got %v", err)
	}
	store.mu.Lock()
	left := len(store.values)
	store.mu.Unlock()
	if left != 0 {
		t.Fatalf("pending key should be released, %d left", left)
	}

	second, err := svc.PlaceOrder(context.Background(), idempotentOrderInput(kurti.ID, "checkout-2"))
	if errors.Is(err, ErrIdempotencyInProgress) {
		t.Fatalf("released key must not keep returning in-progress")
	}
	if err != nil {
		t.Fatalf("second place order failed: %v", err)
	}
	if second.OrderID == first.OrderID {
		t.Fatalf("without a stored confirmation a new order is expected")
	}
}

func TestPlaceOrderConcurrentBuyersNeverOversell(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	svc := newTestOrderService(db, nil)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, results[idx] = svc.PlaceOrder(context.Background(), PlaceOrderInput{
				UserID:        uint(idx + 1),
				Shipping:      testShipping(),
				PaymentMethod: "COD",
				Lines:         []OrderLineInput{{ProductID: kurti.ID, Quantity: 3}},
			})
		}(i)
	}
	wg.Wait()

	success, rejected := 0, 0
	for _, err := range results {
		switch {
		case err == nil:
			success++
		case errors.Is(err, ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 || rejected != 1 {
		t.Fatalf("want one success and one rejection, got success=%d rejected=%d", success, rejected)
	}
	if got := reloadStock(t, db, kurti.ID); got != 2 {
		t.Fatalf("stock want 2 got %d", got)
	}
	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 1 {
		t.Fatalf("want exactly one order, got %d", count)
	}
}

func TestPlaceOrderStorageUnavailable(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init failed: %v", err)
	}
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		t.Fatalf("open gorm failed: %v", err)
	}
	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnError(errors.New("connection refused"))

	svc := newTestOrderService(db, nil)
	_, err = svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: 1, Shipping: testShipping(), PaymentMethod: "COD",
		Lines: []OrderLineInput{{ProductID: 1, Quantity: 1}},
	})
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("expected storage unavailable, got %v", err)
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("cause should be kept, got %v", err)
	}
}

func placeTestOrder(t *testing.T, svc *OrderService, userID uint, productID uint, qty int) *models.Order {
	t.Helper()
	confirmation, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		UserID: userID, Shipping: testShipping(), PaymentMethod: "COD",
		Lines: []OrderLineInput{{ProductID: productID, Quantity: qty}},
	})
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	order, err := svc.orderRepo.GetByOrderNo(confirmation.OrderID)
	if err != nil || order == nil {
		t.Fatalf("load order failed: %v", err)
	}
	return order
}

func TestUpdateOrderStatusFollowsTransitionGraph(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	notifier := &recordingNotifier{}
	svc := newTestOrderService(db, notifier)
	order := placeTestOrder(t, svc, 4, kurti.ID, 1)

	if _, err := svc.UpdateOrderStatus(context.Background(), order.ID, "Refunded"); !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown status should be a validation error, got %v", err)
	}

	updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, "processing")
	if err != nil {
		t.Fatalf("pending -> processing failed: %v", err)
	}
	if updated.Status != constants.OrderStatusProcessing {
		t.Fatalf("status want Processing got %s", updated.Status)
	}
	if notifier.count() != 1 || !strings.Contains(notifier.messages[0], order.OrderNo) {
		t.Fatalf("expected one notification mentioning the order, got %+v", notifier.messages)
	}

	if _, err := svc.UpdateOrderStatus(context.Background(), order.ID, "Processing"); err != nil {
		t.Fatalf("same status should be a no-op, got %v", err)
	}
	if notifier.count() != 1 {
		t.Fatalf("no-op update must not notify, got %d", notifier.count())
	}

	if _, err := svc.UpdateOrderStatus(context.Background(), order.ID, "Pending"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("processing -> pending should be rejected, got %v", err)
	}

	// 可跳过 Shipped 直接送达
	updated, err = svc.UpdateOrderStatus(context.Background(), order.ID, "Delivered")
	if err != nil {
		t.Fatalf("processing -> delivered failed: %v", err)
	}
	if updated.Status != constants.OrderStatusDelivered || notifier.count() != 2 {
		t.Fatalf("expected delivered with 2 notifications, got %s / %d", updated.Status, notifier.count())
	}
	if _, err := svc.UpdateOrderStatus(context.Background(), order.ID, "Shipped"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("delivered is terminal, got %v", err)
	}

	if _, err := svc.UpdateOrderStatus(context.Background(), 9999, "Shipped"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("missing order should be not found, got %v", err)
	}
}

func TestUpdateOrderStatusShippedRoundTrip(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 2)
	notifications := NewNotificationService(repository.NewNotificationRepository(db))
	svc := newTestOrderService(db, notifications)
	order := placeTestOrder(t, svc, 21, kurti.ID, 2)

	if _, err := svc.UpdateOrderStatus(context.Background(), order.ID, "Shipped"); err != nil {
		t.Fatalf("pending -> shipped failed: %v", err)
	}

	reloaded, err := svc.orderRepo.GetByID(order.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusShipped {
		t.Fatalf("status want Shipped got %s", reloaded.Status)
	}

	var rows []models.Notification
	if err := db.Where("user_id = ?", order.UserID).Find(&rows).Error; err != nil {
		t.Fatalf("load notifications failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(rows))
	}
	if !strings.Contains(rows[0].Message, order.OrderNo) || !strings.Contains(rows[0].Message, "Shipped") {
		t.Fatalf("notification should name the order and status, got %q", rows[0].Message)
	}
}

func TestUpdateOrderStatusCancelRestocks(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	svc := newTestOrderService(db, nil)
	order := placeTestOrder(t, svc, 4, kurti.ID, 3)
	if got := reloadStock(t, db, kurti.ID); got != 2 {
		t.Fatalf("stock after order want 2 got %d", got)
	}

	if _, err := svc.UpdateOrderStatus(context.Background(), order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if got := reloadStock(t, db, kurti.ID); got != 5 {
		t.Fatalf("stock after cancel want 5 got %d", got)
	}
	if _, err := svc.UpdateOrderStatus(context.Background(), order.ID, constants.OrderStatusProcessing); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("cancelled is terminal, got %v", err)
	}
}

func TestUpdateOrderStatusNotificationFailureKeepsStatus(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	notifier := &recordingNotifier{err: errors.New("notification store down")}
	svc := newTestOrderService(db, notifier)
	order := placeTestOrder(t, svc, 4, kurti.ID, 1)

	updated, err := svc.UpdateOrderStatus(context.Background(), order.ID, constants.OrderStatusProcessing)
	if err != nil {
		t.Fatalf("notification failure must not fail the update: %v", err)
	}
	if updated.Status != constants.OrderStatusProcessing {
		t.Fatalf("unexpected status %s", updated.Status)
	}
	reloaded, err := svc.orderRepo.GetByID(order.ID)
	if err != nil || reloaded == nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusProcessing {
		t.Fatalf("status should be persisted, got %s", reloaded.Status)
	}
	if notifier.count() != 1 {
		t.Fatalf("notifier should have been attempted once")
	}
}

func TestUpdateOrderStatusLostRaceIsRetryable(t *testing.T) {
	db := openServiceTestDB(t)
	kurti := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	svc := newTestOrderService(db, nil)
	order := placeTestOrder(t, svc, 4, kurti.ID, 1)

	stale := &staleOrderRepo{OrderRepository: svc.orderRepo, db: db}
	svc.orderRepo = stale
	if _, err := svc.UpdateOrderStatus(context.Background(), order.ID, constants.OrderStatusProcessing); !errors.Is(err, ErrConflictRetryable) {
		t.Fatalf("expected retryable conflict, got %v", err)
	}
}

// staleOrderRepo 读取后由另一方抢先修改状态
type staleOrderRepo struct {
	repository.OrderRepository
	db *gorm.DB
}

func (r *staleOrderRepo) GetByID(id uint) (*models.Order, error) {
	order, err := r.OrderRepository.GetByID(id)
	if err != nil || order == nil {
		return order, err
	}
	if err := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", constants.OrderStatusCancelled).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func assertNoOrders(t *testing.T, db *gorm.DB) {
	t.Helper()
	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	if orders != 0 || items != 0 {
		t.Fatalf("expected no order rows, got orders=%d items=%d", orders, items)
	}
}
