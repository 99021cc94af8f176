package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vastra-shop/internal/events"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/metrics"
	"github.com/vastra-shop/internal/repository"
)

const (
	defaultOutboxBatchSize   = 100
	defaultOutboxMaxAttempts = 10
)

// OutboxRelayService 发件箱投递服务
type OutboxRelayService struct {
	repo        repository.OutboxRepository
	publisher   events.Publisher
	metrics     *metrics.Metrics
	batchSize   int
	maxAttempts int
}

// NewOutboxRelayService 创建发件箱投递服务
func NewOutboxRelayService(repo repository.OutboxRepository, publisher events.Publisher, m *metrics.Metrics, batchSize, maxAttempts int) *OutboxRelayService {
	if batchSize <= 0 {
		batchSize = defaultOutboxBatchSize
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultOutboxMaxAttempts
	}
	return &OutboxRelayService{
		repo:        repo,
		publisher:   publisher,
		metrics:     m,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
	}
}

// RelayOnce 投递一批待发送事件，返回成功投递数量
// 整批投递失败时逐条记录失败次数，超过上限的事件不再被拉取
func (s *OutboxRelayService) RelayOnce(ctx context.Context) (int, error) {
	if s.publisher == nil {
		return 0, ErrOutboxPublisherRequired
	}
	log := logger.Named("outbox_relay")
	pending, err := s.repo.FetchPending(s.batchSize, s.maxAttempts)
	if err != nil {
		return 0, wrapStorage("fetch outbox", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	if err := s.publisher.Publish(ctx, pending); err != nil {
		for _, event := range pending {
			if markErr := s.repo.MarkFailed(event.ID, err.Error()); markErr != nil {
				log.Warnw("mark_failed_error", "event_id", event.EventID, "error", markErr)
			}
		}
		if s.metrics != nil {
			s.metrics.OutboxRelayed("failed", len(pending))
		}
		log.Warnw("publish_failed", "count", len(pending), "error", err)
		return 0, fmt.Errorf("publish outbox events: %w", err)
	}

	ids := make([]uint, 0, len(pending))
	for _, event := range pending {
		ids = append(ids, event.ID)
	}
	if err := s.repo.MarkSent(ids, time.Now()); err != nil {
		// 已投递但未标记，下轮会重复投递，消费端按 event_id 去重
		return 0, wrapStorage("mark outbox sent", err)
	}
	if s.metrics != nil {
		s.metrics.OutboxRelayed("sent", len(ids))
	}
	log.Debugw("relayed", "count", len(ids))
	return len(ids), nil
}

// Drain 连续投递直到没有待发送事件或出错
func (s *OutboxRelayService) Drain(ctx context.Context) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := s.RelayOnce(ctx)
		total += n
		if err != nil || n < s.batchSize {
			return total, err
		}
	}
}
