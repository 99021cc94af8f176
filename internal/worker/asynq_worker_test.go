package worker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/provider"
	"github.com/vastra-shop/internal/queue"
	"github.com/vastra-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupConsumerTest(t *testing.T) (*Consumer, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:worker_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return NewConsumer(&provider.Container{
		UserRepo:        repository.NewUserRepository(db),
		OrderRepo:       repository.NewOrderRepository(db),
		CustomOrderRepo: repository.NewCustomOrderRepository(db),
	}), db
}

func seedWorkerUser(t *testing.T, db *gorm.DB, email, locale string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Username: "u-" + email, PasswordHash: "x", Locale: locale}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func TestResolveStatusEmailForOrder(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	user := seedWorkerUser(t, db, "asha@example.com", "zh-CN")
	order := &models.Order{
		OrderNo:       "ORD-AAAA1111",
		UserID:        user.ID,
		PaymentMethod: "COD",
		Status:        "Shipped",
		TotalAmount:   models.NewMoneyFromInt(1200),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	job, err := consumer.resolveStatusEmail(queue.OrderStatusEmailPayload{OrderID: order.ID, Status: "Delivered"})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if job == nil {
		t.Fatalf("expected job")
	}
	if job.receiver != "asha@example.com" || job.locale != "zh-CN" {
		t.Fatalf("unexpected receiver: %+v", job)
	}
	if job.input.Status != "Delivered" || job.input.Amount.String() != "1200.00" || job.input.Custom {
		t.Fatalf("unexpected input: %+v", job.input)
	}
}

func TestResolveStatusEmailForCustomOrder(t *testing.T) {
	consumer, db := setupConsumerTest(t)
	user := seedWorkerUser(t, db, "ravi@example.com", "")
	order := &models.CustomOrder{
		OrderNo:      "ORD-BBBB2222",
		UserID:       user.ID,
		NeckDesign:   "Boat",
		SleeveLength: "Elbow",
		KurtiLength:  "Knee",
		FabricType:   "Khadi",
		Color:        "#aa0000",
		ColorName:    "Maroon",
		Status:       "Processing",
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create custom order failed: %v", err)
	}

	job, err := consumer.resolveStatusEmail(queue.OrderStatusEmailPayload{OrderID: order.ID, Custom: true})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if job == nil || job.receiver != "ravi@example.com" {
		t.Fatalf("unexpected job: %+v", job)
	}
	if job.input.Status != "Processing" || !job.input.Custom {
		t.Fatalf("unexpected input: %+v", job.input)
	}
}

func TestResolveStatusEmailMissingOrderSkips(t *testing.T) {
	consumer, _ := setupConsumerTest(t)
	job, err := consumer.resolveStatusEmail(queue.OrderStatusEmailPayload{OrderID: 999})
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if job != nil {
		t.Fatalf("missing order should skip, got %+v", job)
	}
}
