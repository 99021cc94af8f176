package repository

import (
	"testing"

	"github.com/vastra-shop/internal/models"
)

func TestCartGetOrCreateIsIdempotent(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)

	first, err := repo.GetOrCreate(7)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}
	second, err := repo.GetOrCreate(7)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if first.ID == 0 || first.ID != second.ID {
		t.Fatalf("cart should be reused, got %d and %d", first.ID, second.ID)
	}
	var count int64
	db.Model(&models.Cart{}).Where("user_id = ?", 7).Count(&count)
	if count != 1 {
		t.Fatalf("want 1 cart got %d", count)
	}
}

func TestCartAddItemUpsertsQuantityAndKeepsSnapshot(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)
	cart, err := repo.GetOrCreate(1)
	if err != nil {
		t.Fatalf("create cart failed: %v", err)
	}

	first := &models.CartItem{CartID: cart.ID, ProductID: 10, Name: "Silk Saree", PriceAmount: models.NewMoneyFromInt(1200), Image: "a.jpg"}
	if err := repo.AddItem(first, 1); err != nil {
		t.Fatalf("add item failed: %v", err)
	}
	second := &models.CartItem{CartID: cart.ID, ProductID: 10, Name: "Renamed", PriceAmount: models.NewMoneyFromInt(1), Image: "b.jpg"}
	if err := repo.AddItem(second, 1); err != nil {
		t.Fatalf("add item again failed: %v", err)
	}

	items, err := repo.ListItems(cart.ID)
	if err != nil {
		t.Fatalf("list items failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("want 1 line got %d", len(items))
	}
	if items[0].Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", items[0].Quantity)
	}
	if items[0].Name != "Silk Saree" || items[0].Image != "a.jpg" {
		t.Fatalf("snapshot should be kept, got %+v", items[0])
	}
}

func TestCartDecrementItemDeletesAtOne(t *testing.T) {
	db := openRepositoryTestDB(t)
	repo := NewCartRepository(db)
	cart, _ := repo.GetOrCreate(1)
	if err := repo.AddItem(&models.CartItem{CartID: cart.ID, ProductID: 3, Name: "Dupatta", Quantity: 2}, 2); err != nil {
		t.Fatalf("add item failed: %v", err)
	}

	found, err := repo.DecrementItem(cart.ID, 3)
	if err != nil || !found {
		t.Fatalf("decrement should find item, found=%v err=%v", found, err)
	}
	items, _ := repo.ListItems(cart.ID)
	if len(items) != 1 || items[0].Quantity != 1 {
		t.Fatalf("quantity want 1 got %+v", items)
	}

	found, err = repo.DecrementItem(cart.ID, 3)
	if err != nil || !found {
		t.Fatalf("decrement at one should delete, found=%v err=%v", found, err)
	}
	items, _ = repo.ListItems(cart.ID)
	if len(items) != 0 {
		t.Fatalf("line should be removed, got %+v", items)
	}

	found, err = repo.DecrementItem(cart.ID, 3)
	if err != nil || found {
		t.Fatalf("missing line should report not found, found=%v err=%v", found, err)
	}
}
