package repository

import (
	"testing"
	"time"

	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/models"

	"gorm.io/gorm"
)

func createDashboardOrder(t *testing.T, db *gorm.DB, orderNo, status string, amount int64, createdAt time.Time) {
	t.Helper()
	order := &models.Order{
		OrderNo:       orderNo,
		UserID:        1,
		Shipping:      models.ShippingAddress{Name: "Asha", Address: "1 MG Road", Pincode: "411001", City: "Pune", State: "MH"},
		PaymentMethod: constants.DefaultPaymentMethodCOD,
		Status:        status,
		TotalAmount:   models.NewMoneyFromInt(amount),
		CreatedAt:     createdAt,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
}

func TestDashboardOverviewExcludesCancelledSales(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewDashboardRepository(db)
	kurtis := seedCategory(t, db, "kurtis")
	seedCategory(t, db, "empty")
	seedProduct(t, db, kurtis.ID, "Cotton Kurti", 400, 3)

	jan := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC)
	createDashboardOrder(t, db, "ORD-AAAA0001", constants.OrderStatusDelivered, 1000, jan)
	createDashboardOrder(t, db, "ORD-AAAA0002", constants.OrderStatusPending, 500, feb)
	createDashboardOrder(t, db, "ORD-AAAA0003", constants.OrderStatusCancelled, 9000, feb)

	overview, err := repo.GetOverview()
	if err != nil {
		t.Fatalf("overview failed: %v", err)
	}
	if overview.OrdersTotal != 3 || overview.PendingOrders != 1 || overview.CancelledOrders != 1 {
		t.Fatalf("unexpected order counts: %+v", overview)
	}
	if overview.TotalSales != 1500 {
		t.Fatalf("total sales want 1500 got %v", overview.TotalSales)
	}
	if overview.ProductsTotal != 1 {
		t.Fatalf("products total want 1 got %d", overview.ProductsTotal)
	}

	sales, err := repo.GetSalesPerMonth()
	if err != nil {
		t.Fatalf("sales per month failed: %v", err)
	}
	if len(sales) != 2 || sales[0].Month != "2026-01" || sales[1].Amount != 500 {
		t.Fatalf("unexpected sales rows: %+v", sales)
	}

	perCategory, err := repo.GetProductsPerCategory()
	if err != nil {
		t.Fatalf("products per category failed: %v", err)
	}
	if len(perCategory) != 2 || perCategory[0].Count != 1 || perCategory[1].Count != 0 {
		t.Fatalf("unexpected category rows: %+v", perCategory)
	}
}
