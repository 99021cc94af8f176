package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/models"

	"github.com/segmentio/kafka-go"
)

// ErrDisabled 事件投递未启用
var ErrDisabled = errors.New("event publisher disabled")

// Publisher 事件投递接口
type Publisher interface {
	Publish(ctx context.Context, events []models.OutboxEvent) error
	Close() error
}

// KafkaPublisher Kafka 投递实现，所有事件写入同一 topic，事件类型放在 header
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewPublisher 按配置创建投递器，未启用 Kafka 时返回日志投递器
func NewPublisher(cfg *config.KafkaConfig) Publisher {
	if cfg == nil || !cfg.Enabled || len(cfg.Brokers) == 0 {
		return LogPublisher{}
	}
	topic := strings.TrimSpace(cfg.Topic)
	if topic == "" {
		topic = "vastra.events"
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// Publish 批量投递，同一 key 的事件进入同一分区保证顺序
func (p *KafkaPublisher) Publish(ctx context.Context, events []models.OutboxEvent) error {
	if p == nil || p.writer == nil {
		return ErrDisabled
	}
	if len(events) == 0 {
		return nil
	}
	messages := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		messages = append(messages, kafka.Message{
			Key:   []byte(event.Key),
			Value: []byte(event.Payload),
			Time:  event.CreatedAt.UTC(),
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(event.EventID)},
				{Key: "event_type", Value: []byte(event.Topic)},
			},
		})
	}
	return p.writer.WriteMessages(ctx, messages...)
}

// Close 关闭 writer
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

// LogPublisher 仅记录日志的投递器，用于未接入 Kafka 的部署
type LogPublisher struct{}

// Publish 记录事件后视为已投递
func (LogPublisher) Publish(_ context.Context, events []models.OutboxEvent) error {
	for _, event := range events {
		logger.Debugw("outbox_event_logged",
			"event_id", event.EventID,
			"topic", event.Topic,
			"key", event.Key,
		)
	}
	return nil
}

// Close 无资源需要释放
func (LogPublisher) Close() error {
	return nil
}
