package service

import (
	"errors"
	"testing"

	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"
)

func TestAddressFallsBackToLatestOrder(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewAddressService(repository.NewUserRepository(db), repository.NewOrderRepository(db))

	user := &models.User{Email: "meera@example.com", Username: "meera", PasswordHash: "x", Status: "active"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	empty, err := svc.GetAddress(user.ID)
	if err != nil || empty != nil {
		t.Fatalf("expected no address yet, got %+v err=%v", empty, err)
	}

	shipped := models.ShippingAddress{Name: "Meera", Address: "4 Park Street", Pincode: "700016", City: "Kolkata", State: "West Bengal"}
	order := &models.Order{
		OrderNo:       "ORD-ADDR0001",
		UserID:        user.ID,
		Shipping:      shipped,
		PaymentMethod: "COD",
		Status:        "Pending",
		TotalAmount:   models.NewMoneyFromInt(100),
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}
	fallback, err := svc.GetAddress(user.ID)
	if err != nil || fallback == nil || fallback.City != "Kolkata" {
		t.Fatalf("expected latest order address, got %+v err=%v", fallback, err)
	}

	saved, err := svc.SaveAddress(user.ID, models.ShippingAddress{Name: " Meera ", Address: "9 Lake Road", Pincode: "700029", City: "Kolkata", State: "West Bengal"})
	if err != nil {
		t.Fatalf("save address failed: %v", err)
	}
	if saved.Name != "Meera" {
		t.Fatalf("saved address should be trimmed, got %q", saved.Name)
	}
	current, err := svc.GetAddress(user.ID)
	if err != nil || current == nil || current.Address != "9 Lake Road" {
		t.Fatalf("saved address should win over order snapshot, got %+v err=%v", current, err)
	}
}

func TestSaveAddressValidation(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewAddressService(repository.NewUserRepository(db), repository.NewOrderRepository(db))

	_, err := svc.SaveAddress(1, models.ShippingAddress{Name: "Ravi", Address: "1 Main Road", City: "Pune", State: "Maharashtra"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "pincode" {
		t.Fatalf("expected pincode validation error, got %v", err)
	}

	_, err = svc.SaveAddress(404, models.ShippingAddress{Name: "Ravi", Address: "1 Main Road", Pincode: "411001", City: "Pune", State: "Maharashtra"})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
