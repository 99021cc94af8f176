package repository

import (
	"testing"
	"time"

	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/models"
)

func TestOrderCreateRejectsDuplicateOrderNo(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)

	newOrder := func() *models.Order {
		return &models.Order{
			OrderNo:       "ORD-DUPL1234",
			UserID:        1,
			Shipping:      models.ShippingAddress{Name: "Asha", Address: "1 MG Road", Pincode: "411001", City: "Pune", State: "MH"},
			PaymentMethod: constants.DefaultPaymentMethodCOD,
			Status:        constants.OrderStatusPending,
			TotalAmount:   models.NewMoneyFromInt(100),
		}
	}
	items := []models.OrderItem{{ProductID: 1, Name: "Kurti", UnitPrice: models.NewMoneyFromInt(100), Quantity: 1, TotalPrice: models.NewMoneyFromInt(100)}}
	if err := repo.Create(newOrder(), items); err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	err := repo.Create(newOrder(), nil)
	if !IsUniqueViolation(err) {
		t.Fatalf("duplicate order_no should be a unique violation, got %v", err)
	}
}

func TestOrderUpdateStatusIsConditional(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)
	order := &models.Order{
		OrderNo:       "ORD-STATUS01",
		UserID:        1,
		PaymentMethod: constants.DefaultPaymentMethodCOD,
		Status:        constants.OrderStatusPending,
		TotalAmount:   models.NewMoneyFromInt(100),
	}
	if err := repo.Create(order, nil); err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	affected, err := repo.UpdateStatus(order.ID, constants.OrderStatusPending, constants.OrderStatusProcessing, map[string]interface{}{"updated_at": time.Now()})
	if err != nil || affected != 1 {
		t.Fatalf("first update want 1 row got %d err=%v", affected, err)
	}
	affected, err = repo.UpdateStatus(order.ID, constants.OrderStatusPending, constants.OrderStatusCancelled, nil)
	if err != nil || affected != 0 {
		t.Fatalf("stale update want 0 rows got %d err=%v", affected, err)
	}

	reloaded, err := repo.GetByOrderNoAndUser("ORD-STATUS01", 1)
	if err != nil || reloaded == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != constants.OrderStatusProcessing {
		t.Fatalf("status want Processing got %s", reloaded.Status)
	}
	if other, _ := repo.GetByOrderNoAndUser("ORD-STATUS01", 2); other != nil {
		t.Fatalf("order must be scoped to owner")
	}
}

func TestOrderListsAndLookups(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewOrderRepository(db)

	user := &models.User{Email: " buyer@example.com", PasswordHash: "x", Status: "active"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	for i, status := range []string{constants.OrderStatusPending, constants.OrderStatusShipped, constants.OrderStatusPending} {
		order := &models.Order{
			OrderNo:       []string{"ORD-AAAA0001", "ORD-AAAA0002", "ORD-BBBB0003"}[i],
			UserID:        user.ID,
			PaymentMethod: constants.DefaultPaymentMethodCOD,
			Status:        status,
			TotalAmount:   models.NewMoneyFromInt(100),
		}
		if err := repo.Create(order, nil); err != nil {
			t.Fatalf("create order failed: %v", err)
		}
	}

	pending, total, err := repo.ListAdmin(OrderListFilter{Status: constants.OrderStatusPending, Page: 1, PageSize: 1})
	if err != nil {
		t.Fatalf("list admin failed: %v", err)
	}
	if total != 2 || len(pending) != 1 || pending[0].OrderNo != "ORD-BBBB0003" {
		t.Fatalf("unexpected admin page: total=%d rows=%v", total, pending)
	}

	mine, total, err := repo.ListByUser(OrderListFilter{UserID: user.ID, OrderNo: "AAAA"})
	if err != nil || total != 2 || len(mine) != 2 {
		t.Fatalf("user list want 2 rows, total=%d err=%v", total, err)
	}

	latest, err := repo.GetLatestByUser(user.ID)
	if err != nil || latest == nil {
		t.Fatalf("latest order missing: %v", err)
	}

	email, err := repo.ResolveReceiverEmailByOrderID(latest.ID)
	if err != nil || email != "buyer@example.com" {
		t.Fatalf("receiver email want trimmed address, got %q err=%v", email, err)
	}
	if email, err := repo.ResolveReceiverEmailByOrderID(9999); err != nil || email != "" {
		t.Fatalf("unknown order should resolve empty email, got %q err=%v", email, err)
	}
	if missing, err := repo.GetByID(9999); err != nil || missing != nil {
		t.Fatalf("unknown order should be nil without error, err=%v", err)
	}
}
