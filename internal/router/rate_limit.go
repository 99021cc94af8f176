package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/i18n"
	"github.com/vastra-shop/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// RateLimitKeyFunc 从请求中提取限流维度
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
// 窗口内请求数超过 MaxRequests 后封禁 BlockSeconds，BlockSeconds 为 0 时等待窗口结束
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	MessageKey    string
}

func newRateLimitRule(prefix string, cfg config.RateLimitConfig, messageKey string) RateLimitRule {
	return RateLimitRule{
		Prefix:        prefix,
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
		BlockSeconds:  cfg.BlockSeconds,
		MessageKey:    messageKey,
	}
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

// limiter 返回是否放行以及需要等待的秒数
type limiter interface {
	allow(ctx context.Context, key string) (bool, int, error)
}

// RateLimitMiddleware 频率限制中间件，client 为 nil 时退化为进程内令牌桶
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	if !rule.enabled() {
		return func(c *gin.Context) { c.Next() }
	}
	var backend limiter = newLocalLimiter(rule)
	if client != nil {
		backend = &redisLimiter{client: client, rule: rule}
	}
	msgKey := strings.TrimSpace(rule.MessageKey)
	if msgKey == "" {
		msgKey = "error.rate_limited"
	}

	return func(c *gin.Context) {
		key := rateLimitKey(c, rule.Prefix, keyFunc)
		ok, wait, err := backend.allow(c.Request.Context(), key)
		switch {
		case err != nil:
			logger.Warnw("rate_limit_backend_failed", "key", key, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable"))
			c.Abort()
		case !ok:
			response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), msgKey, max(wait, 1)))
			c.Abort()
		default:
			c.Next()
		}
	}
}

func rateLimitKey(c *gin.Context, prefix string, keyFunc RateLimitKeyFunc) string {
	var key string
	if keyFunc != nil {
		key = strings.TrimSpace(keyFunc(c))
	}
	if key == "" {
		key = c.ClientIP()
	}
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}

// 固定窗口计数；首次超限时把过期时间延长为封禁时长
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if current == tonumber(ARGV[2]) + 1 and tonumber(ARGV[3]) > 0 then
	redis.call("EXPIRE", KEYS[1], ARGV[3])
end
return {current, redis.call("TTL", KEYS[1])}
`)

type redisLimiter struct {
	client *redis.Client
	rule   RateLimitRule
}

func (l *redisLimiter) allow(ctx context.Context, key string) (bool, int, error) {
	values, err := rateLimitScript.Run(ctx, l.client, []string{key}, l.rule.WindowSeconds, l.rule.MaxRequests, l.rule.BlockSeconds).Int64Slice()
	if err != nil {
		return false, 0, err
	}
	if len(values) != 2 {
		return false, 0, fmt.Errorf("rate limit script returned %d values", len(values))
	}
	if values[0] <= int64(l.rule.MaxRequests) {
		return true, 0, nil
	}
	if ttl := int(values[1]); ttl > 0 {
		return false, ttl, nil
	}
	return false, l.rule.WindowSeconds, nil
}

// localLimiter 进程内限流，多实例部署时各实例独立计数
type localLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*localBucket
	limit     rate.Limit
	burst     int
	block     time.Duration
	idleTTL   time.Duration
	nextSweep time.Time
	now       func() time.Time
}

type localBucket struct {
	tokens       *rate.Limiter
	blockedUntil time.Time
	lastSeen     time.Time
}

func newLocalLimiter(rule RateLimitRule) *localLimiter {
	window := time.Duration(rule.WindowSeconds) * time.Second
	block := time.Duration(rule.BlockSeconds) * time.Second
	return &localLimiter{
		buckets: make(map[string]*localBucket),
		limit:   rate.Limit(float64(rule.MaxRequests) / window.Seconds()),
		burst:   rule.MaxRequests,
		block:   block,
		idleTTL: 2 * max(window, block),
		now:     time.Now,
	}
}

func (l *localLimiter) allow(_ context.Context, key string) (bool, int, error) {
	ok, wait := l.allowAt(key, l.now())
	return ok, wait, nil
}

func (l *localLimiter) allowAt(key string, now time.Time) (bool, int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.evictIdle(now)
	bucket := l.buckets[key]
	if bucket == nil {
		bucket = &localBucket{tokens: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = bucket
	}
	bucket.lastSeen = now

	if now.Before(bucket.blockedUntil) {
		return false, ceilSeconds(bucket.blockedUntil.Sub(now))
	}
	if bucket.tokens.AllowN(now, 1) {
		return true, 0
	}
	if l.block > 0 {
		bucket.blockedUntil = now.Add(l.block)
		return false, ceilSeconds(l.block)
	}
	r := bucket.tokens.ReserveN(now, 1)
	defer r.CancelAt(now)
	return false, ceilSeconds(r.DelayFrom(now))
}

func (l *localLimiter) evictIdle(now time.Time) {
	if now.Before(l.nextSweep) {
		return
	}
	for key, bucket := range l.buckets {
		if now.Sub(bucket.lastSeen) > l.idleTTL && !now.Before(bucket.blockedUntil) {
			delete(l.buckets, key)
		}
	}
	l.nextSweep = now.Add(l.idleTTL)
}

func ceilSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByUser 已登录用户按用户 ID 限流，未登录时退回 IP
func KeyByUser(c *gin.Context) string {
	if id := c.GetUint(userIDContextKey); id > 0 {
		return fmt.Sprintf("user:%d", id)
	}
	return c.ClientIP()
}

// KeyByIPAndJSONField 按 JSON 字段（如邮箱）与 IP 组合限流
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONString(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// peekJSONString 读取请求体中的字符串字段，读取后恢复请求体供后续绑定
func peekJSONString(c *gin.Context, field string) string {
	if c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if json.Unmarshal(body, &payload) != nil {
		return ""
	}
	var text string
	if raw, ok := payload[field]; !ok || json.Unmarshal(raw, &text) != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
