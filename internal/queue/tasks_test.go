package queue

import (
	"testing"

	"github.com/vastra-shop/internal/config"
)

func TestOrderStatusEmailTaskRoundTrip(t *testing.T) {
	task, err := NewOrderStatusEmailTask(OrderStatusEmailPayload{OrderID: 9, Status: "Shipped"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskOrderStatusEmail {
		t.Fatalf("unexpected task type: %s", task.Type())
	}
	payload, err := ParseOrderStatusEmailPayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.OrderID != 9 || payload.Status != "Shipped" || payload.Custom {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueOrderStatusEmail(OrderStatusEmailPayload{OrderID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be noop: %v", err)
	}
	if err := client.EnqueueOutboxRelay(); err != nil {
		t.Fatalf("disabled relay enqueue should be noop: %v", err)
	}
	opt, cfg := BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" || cfg.Concurrency != 10 {
		t.Fatalf("unexpected defaults: %s %d", opt.Addr, cfg.Concurrency)
	}
}
