package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoneyMulQuantityAndAdd(t *testing.T) {
	price := NewMoneyFromDecimal(decimal.RequireFromString("499.995"))
	if price.String() != "500.00" {
		t.Fatalf("money should round to 2 places, got %s", price.String())
	}
	line := NewMoneyFromInt(500).MulQuantity(2)
	if line.String() != "1000.00" {
		t.Fatalf("line total want 1000.00 got %s", line.String())
	}
	total := line.Add(NewMoneyFromDecimal(decimal.RequireFromString("0.10")))
	if total.String() != "1000.10" {
		t.Fatalf("total want 1000.10 got %s", total.String())
	}
}

func TestMoneyJSONAcceptsStringAndNumber(t *testing.T) {
	var fromString Money
	if err := json.Unmarshal([]byte(`"12.345"`), &fromString); err != nil {
		t.Fatalf("unmarshal string failed: %v", err)
	}
	var fromNumber Money
	if err := json.Unmarshal([]byte(`12.345`), &fromNumber); err != nil {
		t.Fatalf("unmarshal number failed: %v", err)
	}
	if !fromString.Equal(fromNumber.Decimal) {
		t.Fatalf("string and number should match: %s vs %s", fromString, fromNumber)
	}
	raw, err := json.Marshal(fromString)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(raw) != `"12.35"` {
		t.Fatalf("unexpected json: %s", raw)
	}
}

func TestStringArrayScanAndFirst(t *testing.T) {
	var arr StringArray
	if err := arr.Scan(`["", "a.jpg", "b.jpg"]`); err != nil {
		t.Fatalf("scan string failed: %v", err)
	}
	if arr.First() != "a.jpg" {
		t.Fatalf("first non-empty want a.jpg got %s", arr.First())
	}
	if err := arr.Scan(nil); err != nil || len(arr) != 0 {
		t.Fatalf("nil scan should reset array, got %v err=%v", arr, err)
	}
	value, err := StringArray(nil).Value()
	if err != nil || value != "[]" {
		t.Fatalf("nil array should store [], got %v err=%v", value, err)
	}
}

func TestShippingAddressTrimmedAndZero(t *testing.T) {
	addr := ShippingAddress{Name: "  Asha ", City: " Pune "}
	trimmed := addr.Trimmed()
	if trimmed.Name != "Asha" || trimmed.City != "Pune" {
		t.Fatalf("unexpected trimmed address: %+v", trimmed)
	}
	if addr.IsZero() {
		t.Fatalf("address with fields should not be zero")
	}
	if !(ShippingAddress{Name: "  "}).IsZero() {
		t.Fatalf("blank address should be zero")
	}
}
