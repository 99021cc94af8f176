package queue

import (
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	DefaultQueue  = constants.QueueDefault
	QueueCritical = constants.QueueCritical

	defaultConcurrency = 10
)

// Client asynq 客户端封装，未启用队列时所有投递均为空操作
type Client struct {
	inner *asynq.Client
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{inner: asynq.NewClient(redisOpt(cfg))}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

func (c *Client) enqueue(task *asynq.Task, base []asynq.Option, extra []asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	_, err := c.inner.Enqueue(task, append(base, extra...)...)
	return err
}

// EnqueueOrderStatusEmail 推送订单状态邮件任务
func (c *Client) EnqueueOrderStatusEmail(payload OrderStatusEmailPayload, opts ...asynq.Option) error {
	task, err := NewOrderStatusEmailTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, []asynq.Option{asynq.Queue(DefaultQueue)}, opts)
}

// EnqueueOutboxRelay 推送发件箱投递任务，下单后立即触发一次投递
// 5 秒内重复触发合并为一次
func (c *Client) EnqueueOutboxRelay(opts ...asynq.Option) error {
	err := c.enqueue(NewOutboxRelayTask(), []asynq.Option{
		asynq.Queue(QueueCritical),
		asynq.Unique(5 * time.Second),
		asynq.MaxRetry(0),
	}, opts)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// BuildServerConfig 生成 worker 端连接与并发配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	serverCfg := asynq.Config{
		Concurrency: defaultConcurrency,
		Queues:      map[string]int{QueueCritical: 6, DefaultQueue: 3},
	}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			serverCfg.Concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			serverCfg.Queues = cfg.Queues
		}
	}
	return redisOpt(cfg), serverCfg
}

func redisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	host, port := "127.0.0.1", 6379
	opt := asynq.RedisClientOpt{}
	if cfg != nil {
		if h := strings.TrimSpace(cfg.Host); h != "" {
			host = h
		}
		if cfg.Port > 0 {
			port = cfg.Port
		}
		opt.Password = cfg.Password
		opt.DB = cfg.DB
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	return opt
}
