package events

import (
	"encoding/json"
	"time"

	"github.com/vastra-shop/internal/models"

	"github.com/google/uuid"
)

// Envelope 领域事件统一信封，写入 outbox payload 并原样投递
type Envelope struct {
	EventID   string         `json:"event_id"`
	Type      string         `json:"type"`
	CreatedAt time.Time      `json:"created_at"`
	Payload   map[string]any `json:"payload"`
}

// NewOutboxEvent 构建待写入发件箱的事件记录
func NewOutboxEvent(topic, key string, payload map[string]any) (*models.OutboxEvent, error) {
	envelope := Envelope{
		EventID:   uuid.NewString(),
		Type:      topic,
		CreatedAt: time.Now().UTC(),
		Payload:   payload,
	}
	data, err := json.Marshal(envelope)
	if err != nil {
		return nil, err
	}
	return &models.OutboxEvent{
		EventID: envelope.EventID,
		Topic:   topic,
		Key:     key,
		Payload: string(data),
	}, nil
}
