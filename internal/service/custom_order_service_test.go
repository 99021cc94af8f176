package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/repository"
)

func TestCustomOrderSubmitDefaultsFabric(t *testing.T) {
	db := openServiceTestDB(t)
	svc := NewCustomOrderService(repository.NewCustomOrderRepository(db), repository.NewOutboxRepository(db), nil, nil, nil)

	order, err := svc.Submit(SubmitCustomOrderInput{
		UserID:       5,
		NeckDesign:   "Boat neck",
		SleeveLength: "Three quarter",
		KurtiLength:  "Knee",
		Color:        "#aa3355",
		ColorName:    "Rani pink",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if order.FabricType != "Khadi" || order.Status != constants.OrderStatusPending || !isValidOrderNo(order.OrderNo) {
		t.Fatalf("unexpected custom order: %+v", order)
	}

	if _, err := svc.Submit(SubmitCustomOrderInput{UserID: 5, NeckDesign: "Round"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("missing fields should fail validation, got %v", err)
	}

	mine, total, err := svc.ListMine(5, 1, 20)
	if err != nil || total != 1 || len(mine) != 1 {
		t.Fatalf("list mine failed: total=%d err=%v", total, err)
	}
}

func TestCustomOrderStatusUpdateNotifiesWithCustomTemplate(t *testing.T) {
	db := openServiceTestDB(t)
	notifier := &recordingNotifier{err: errors.New("down")}
	svc := NewCustomOrderService(repository.NewCustomOrderRepository(db), repository.NewOutboxRepository(db), notifier, nil, nil)

	order, err := svc.Submit(SubmitCustomOrderInput{
		UserID: 6, NeckDesign: "V", SleeveLength: "Short", KurtiLength: "Long", Color: "#000", ColorName: "Black",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	updated, err := svc.UpdateStatus(context.Background(), order.ID, "PROCESSING")
	if err != nil {
		t.Fatalf("update failed despite notifier error: %v", err)
	}
	if updated.Status != constants.OrderStatusProcessing {
		t.Fatalf("unexpected status %s", updated.Status)
	}
	if _, err := svc.UpdateStatus(context.Background(), order.ID, "Pending"); !errors.Is(err, ErrOrderStatusInvalid) {
		t.Fatalf("processing -> pending should be rejected, got %v", err)
	}
	want := "Your custom order " + order.OrderNo + " status has been updated to Processing"
	if notifier.count() != 1 || !strings.HasSuffix(notifier.messages[0], want) {
		t.Fatalf("unexpected notification: %+v", notifier.messages)
	}

	var events []models.OutboxEvent
	db.Where("topic = ?", constants.EventCustomOrderStatusChanged).Find(&events)
	if len(events) != 1 {
		t.Fatalf("expected one status event, got %d", len(events))
	}

	if err := svc.Delete(order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), order.ID, "Shipped"); !errors.Is(err, ErrCustomOrderNotFound) {
		t.Fatalf("deleted order should be not found, got %v", err)
	}
}
