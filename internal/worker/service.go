package worker

import (
	"context"
	"errors"
	"time"

	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultOutboxRelayInterval = 5 * time.Second

// Service 异步队列服务，同时运行发件箱定时投递
// 队列未启用时只运行投递循环
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	relayInterval time.Duration
	stopped       chan struct{}
}

// NewService 创建异步队列服务
func NewService(cfg *config.Config, consumer *Consumer) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	interval := time.Duration(cfg.Order.OutboxRelayIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = defaultOutboxRelayInterval
	}
	s := &Service{
		name:          "worker",
		consumer:      consumer,
		relayInterval: interval,
		stopped:       make(chan struct{}),
	}
	if cfg.Queue.Enabled {
		opt, serverCfg := queue.BuildServerConfig(&cfg.Queue)
		s.server = asynq.NewServer(opt, serverCfg)
		s.mux = asynq.NewServeMux()
		consumer.Register(s.mux)
	} else {
		logger.Warnw("worker_queue_disabled", "outbox_relay_interval", interval.String())
	}
	return s, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.consumer == nil {
		return errors.New("worker not initialized")
	}
	go s.runOutboxRelayLoop(ctx)
	if s.server == nil {
		<-ctx.Done()
		return nil
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if s.server != nil {
		s.server.Shutdown()
	}
	select {
	case <-s.stopped:
	case <-ctx.Done():
	}
	return nil
}

func (s *Service) runOutboxRelayLoop(ctx context.Context) {
	defer close(s.stopped)
	relay := s.consumer.OutboxRelayService
	if relay == nil {
		return
	}
	runOnce := func() {
		if n, err := relay.Drain(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warnw("worker_outbox_relay_loop_failed", "relayed", n, "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(s.relayInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
