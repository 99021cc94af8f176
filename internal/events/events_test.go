package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/models"
)

func TestNewOutboxEventWrapsPayload(t *testing.T) {
	event, err := NewOutboxEvent("order.placed", "ORD-ABCD1234", map[string]any{"total": "1000.00"})
	if err != nil {
		t.Fatalf("build event failed: %v", err)
	}
	if event.EventID == "" || event.Topic != "order.placed" || event.Key != "ORD-ABCD1234" {
		t.Fatalf("unexpected event: %+v", event)
	}
	var envelope Envelope
	if err := json.Unmarshal([]byte(event.Payload), &envelope); err != nil {
		t.Fatalf("payload should be json: %v", err)
	}
	if envelope.EventID != event.EventID || envelope.Payload["total"] != "1000.00" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestNewPublisherFallsBackToLog(t *testing.T) {
	publisher := NewPublisher(&config.KafkaConfig{Enabled: true})
	if _, ok := publisher.(LogPublisher); !ok {
		t.Fatalf("kafka without brokers should fall back to log publisher, got %T", publisher)
	}
	if err := publisher.Publish(context.Background(), []models.OutboxEvent{{EventID: "e1"}}); err != nil {
		t.Fatalf("log publish failed: %v", err)
	}

	kafkaPublisher := NewPublisher(&config.KafkaConfig{Enabled: true, Brokers: []string{"127.0.0.1:9092"}})
	if _, ok := kafkaPublisher.(*KafkaPublisher); !ok {
		t.Fatalf("expected kafka publisher, got %T", kafkaPublisher)
	}
	if err := kafkaPublisher.Publish(context.Background(), nil); err != nil {
		t.Fatalf("empty publish should be noop: %v", err)
	}
	_ = kafkaPublisher.Close()
}
