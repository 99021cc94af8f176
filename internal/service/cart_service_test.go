package service

import (
	"errors"
	"testing"

	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/repository"
)

func TestCartAddAndRemoveOne(t *testing.T) {
	db := openServiceTestDB(t)
	product := seedServiceProduct(t, db, "Khadi Kurti", 500, 5)
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	empty, err := svc.GetCart(21)
	if err != nil {
		t.Fatalf("get cart failed: %v", err)
	}
	if len(empty.Items) != 0 || empty.TotalAmount.String() != "0.00" {
		t.Fatalf("new cart should be empty, got %+v", empty)
	}

	if _, err := svc.AddToCart(21, product.ID); err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	view, err := svc.AddToCart(21, product.ID)
	if err != nil {
		t.Fatalf("add to cart failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 {
		t.Fatalf("expected one line with quantity 2, got %+v", view.Items)
	}
	if view.Items[0].Image != constants.CartPlaceholderImage {
		t.Fatalf("expected placeholder image, got %s", view.Items[0].Image)
	}
	if view.TotalQuantity != 2 || view.TotalAmount.String() != "1000.00" {
		t.Fatalf("unexpected totals: quantity=%d amount=%s", view.TotalQuantity, view.TotalAmount.String())
	}

	view, err = svc.RemoveOneFromCart(21, product.ID)
	if err != nil {
		t.Fatalf("remove one failed: %v", err)
	}
	if view.Items[0].Quantity != 1 {
		t.Fatalf("quantity want 1 got %d", view.Items[0].Quantity)
	}

	view, err = svc.RemoveOneFromCart(21, product.ID)
	if err != nil {
		t.Fatalf("remove one failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("last unit should drop the line, got %+v", view.Items)
	}

	if _, err := svc.RemoveOneFromCart(21, product.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected item not found, got %v", err)
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	if _, err := svc.AddToCart(22, 404); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
	if _, err := svc.AddToCart(22, 0); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCartRemoveLine(t *testing.T) {
	db := openServiceTestDB(t)
	product := seedServiceProduct(t, db, "Silk Saree", 1200, 5, "saree.jpg")
	svc := NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))

	for i := 0; i < 2; i++ {
		if _, err := svc.AddToCart(23, product.ID); err != nil {
			t.Fatalf("add to cart failed: %v", err)
		}
	}

	view, err := svc.RemoveFromCart(23, product.ID)
	if err != nil {
		t.Fatalf("remove line failed: %v", err)
	}
	if len(view.Items) != 0 {
		t.Fatalf("cart should be empty, got %+v", view.Items)
	}
	if _, err := svc.RemoveFromCart(23, product.ID); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected item not found, got %v", err)
	}
}
