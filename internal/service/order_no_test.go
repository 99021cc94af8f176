package service

import (
	"errors"
	"testing"
)

func TestGenerateOrderNoFormat(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		orderNo, err := generateOrderNo()
		if err != nil {
			t.Fatalf("generate order no failed: %v", err)
		}
		if !isValidOrderNo(orderNo) {
			t.Fatalf("invalid order no: %s", orderNo)
		}
		seen[orderNo] = struct{}{}
	}
	if len(seen) < 199 {
		t.Fatalf("order numbers should be random, got %d unique of 200", len(seen))
	}
	if isValidOrderNo("ORD-abc12345") || isValidOrderNo("DJ-12345678") || isValidOrderNo("ORD-1234") {
		t.Fatalf("malformed order numbers must be rejected")
	}
}

func TestTypedErrorsUnwrapToSentinels(t *testing.T) {
	err := newInsufficientStockError(5, "Kurti", 3, 2)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("insufficient stock should unwrap")
	}
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) || stockErr.Shortfall != 1 {
		t.Fatalf("unexpected stock error: %+v", stockErr)
	}
	if !errors.Is(&ProductNotFoundError{ProductID: 1}, ErrProductNotFound) {
		t.Fatalf("product not found should unwrap")
	}
	if !errors.Is(newValidationError("lines", "is required"), ErrValidation) {
		t.Fatalf("validation error should unwrap")
	}
	driverErr := errors.New("dial tcp: refused")
	wrapped := wrapStorage("load products", driverErr)
	if !errors.Is(wrapped, ErrStorageUnavailable) || !errors.Is(wrapped, driverErr) {
		t.Fatalf("storage error should unwrap to both sentinel and cause: %v", wrapped)
	}
	if wrapStorage("noop", nil) != nil {
		t.Fatalf("nil error should stay nil")
	}
}
