package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func openServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return db
}

func seedServiceProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int, images ...string) *models.Product {
	t.Helper()
	var category models.Category
	if err := db.Where("slug = ?", "kurti").FirstOrCreate(&category, models.Category{Slug: "kurti", Name: "Kurti"}).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	product := &models.Product{
		CategoryID:  category.ID,
		Name:        name,
		PriceAmount: models.NewMoneyFromInt(price),
		Images:      models.StringArray(images),
		Stock:       stock,
		IsActive:    true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func reloadStock(t *testing.T, db *gorm.DB, productID uint) int {
	t.Helper()
	var product models.Product
	if err := db.Unscoped().First(&product, productID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	return product.Stock
}

func testShipping() models.ShippingAddress {
	return models.ShippingAddress{
		Name:    "Asha Rao",
		Address: "12 MG Road",
		Pincode: "411001",
		City:    "Pune",
		State:   "Maharashtra",
	}
}

// recordingNotifier 记录通知调用，可注入失败
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *recordingNotifier) Notify(_ context.Context, userID uint, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, fmt.Sprintf("%d:%s", userID, message))
	return n.err
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.messages)
}

func newTestOrderService(db *gorm.DB, notifier StatusNotifier) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		repository.NewOutboxRepository(db),
		notifier,
		nil,
		nil,
		0,
	)
}
