package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/logger"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "vastra"

// 包级单例，未启用时所有读写均为空操作（读取视为未命中）
var (
	rdb    *redis.Client
	prefix = defaultKeyPrefix
)

// InitRedis 初始化 Redis 客户端，连通性问题只记录日志，读写失败时调用方回源
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		rdb = nil
		return nil
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix = strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Warnw("redis_ping_failed", "addr", rdb.Options().Addr, "error", err)
	}
	return nil
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return rdb != nil
}

// Client 获取 Redis 客户端，未启用时为 nil
func Client() *redis.Client {
	return rdb
}

// Close 关闭 Redis 客户端
func Close() error {
	if rdb == nil {
		return nil
	}
	err := rdb.Close()
	rdb = nil
	return err
}

func buildKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return prefix
	}
	return prefix + ":" + key
}

// GetJSON 读取 JSON 缓存，返回是否命中
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, hit, err := GetString(ctx, key)
	if err != nil || !hit {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, buildKey(key), payload, ttl).Err()
}

// GetString 读取字符串缓存，返回是否命中
func GetString(ctx context.Context, key string) (string, bool, error) {
	if rdb == nil {
		return "", false, nil
	}
	val, err := rdb.Get(ctx, buildKey(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

// SetString 写入字符串缓存
func SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	return rdb.Set(ctx, buildKey(key), value, ttl).Err()
}

// SetNX 仅在 key 不存在时写入，返回是否写入成功
// 缓存未启用时返回 true，调用方按无锁处理
func SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}
	return rdb.SetNX(ctx, buildKey(key), value, ttl).Result()
}

// Del 删除缓存
func Del(ctx context.Context, key string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, buildKey(key)).Err()
}

// DelByPattern 按模式删除缓存（SCAN 遍历，避免 KEYS 阻塞）
func DelByPattern(ctx context.Context, pattern string) error {
	if rdb == nil {
		return nil
	}
	var keys []string
	iter := rdb.Scan(ctx, 0, buildKey(pattern), 200).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rdb.Del(ctx, keys...).Err()
}
