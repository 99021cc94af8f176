package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/vastra-shop/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	UserJWT  JWTConfig      `mapstructure:"user_jwt"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Queue    QueueConfig    `mapstructure:"queue"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Security SecurityConfig `mapstructure:"security"`
	Email    EmailConfig    `mapstructure:"email"`
	Order    OrderConfig    `mapstructure:"order"`
	Captcha  CaptchaConfig  `mapstructure:"captcha"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver   string             `mapstructure:"driver"` // sqlite / postgres
	DSN      string             `mapstructure:"dsn"`
	LogLevel string             `mapstructure:"log_level"` // silent / error / warn / info
	Pool     DatabasePoolConfig `mapstructure:"pool"`
}

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// QueueConfig 异步队列配置
type QueueConfig struct {
	Enabled     bool           `mapstructure:"enabled"`
	Host        string         `mapstructure:"host"`
	Port        int            `mapstructure:"port"`
	Password    string         `mapstructure:"password"`
	DB          int            `mapstructure:"db"`
	Concurrency int            `mapstructure:"concurrency"`
	Queues      map[string]int `mapstructure:"queues"`
}

// KafkaConfig 领域事件投递配置
type KafkaConfig struct {
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// OrderConfig 订单配置
type OrderConfig struct {
	IdempotencyTTLSeconds      int `mapstructure:"idempotency_ttl_seconds"`
	OutboxRelayIntervalSeconds int `mapstructure:"outbox_relay_interval_seconds"`
	OutboxBatchSize            int `mapstructure:"outbox_batch_size"`
	OutboxMaxAttempts          int `mapstructure:"outbox_max_attempts"`
}

// EmailConfig 邮件服务配置
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"from_name"`
	UseTLS   bool   `mapstructure:"use_tls"`
	UseSSL   bool   `mapstructure:"use_ssl"`
}

// CaptchaConfig 图片验证码配置
type CaptchaConfig struct {
	Enabled bool               `mapstructure:"enabled"`
	Scenes  CaptchaSceneConfig `mapstructure:"scenes"`
	Image   CaptchaImageConfig `mapstructure:"image"`
}

// CaptchaSceneConfig 验证码场景开关
type CaptchaSceneConfig struct {
	UserLogin  bool `mapstructure:"user_login"`
	AdminLogin bool `mapstructure:"admin_login"`
	Register   bool `mapstructure:"register"`
}

// CaptchaImageConfig 图片验证码参数
type CaptchaImageConfig struct {
	Length        int `mapstructure:"length"`
	Width         int `mapstructure:"width"`
	Height        int `mapstructure:"height"`
	NoiseCount    int `mapstructure:"noise_count"`
	ShowLine      int `mapstructure:"show_line"`
	ExpireSeconds int `mapstructure:"expire_seconds"`
	MaxStore      int `mapstructure:"max_store"`
}

// MetricsConfig Prometheus 指标配置
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path"`
	Namespace string `mapstructure:"namespace"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	LoginRateLimit RateLimitConfig      `mapstructure:"login_rate_limit"`
	OrderRateLimit RateLimitConfig      `mapstructure:"order_rate_limit"`
	PasswordPolicy PasswordPolicyConfig `mapstructure:"password_policy"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	WindowSeconds int `mapstructure:"window_seconds"`
	MaxAttempts   int `mapstructure:"max_attempts"`
	BlockSeconds  int `mapstructure:"block_seconds"`
}

// PasswordPolicyConfig 密码策略配置
type PasswordPolicyConfig struct {
	MinLength     int  `mapstructure:"min_length"`
	RequireUpper  bool `mapstructure:"require_upper"`
	RequireLower  bool `mapstructure:"require_lower"`
	RequireNumber bool `mapstructure:"require_number"`
}

// defaultSections 各配置段的默认值，键为 viper 路径
var defaultSections = map[string]map[string]interface{}{
	"server": {"host": "0.0.0.0", "port": "8080", "mode": "debug"},
	"log": {
		"dir": "", "filename": "vastra.log",
		"max_size_mb": 100, "max_backups": 7, "max_age_days": 30, "compress": true,
	},
	"database": {
		"driver": "sqlite", "dsn": "./db/vastra.db", "log_level": "warn",
		"pool.max_open_conns": 1, "pool.max_idle_conns": 1,
		"pool.conn_max_lifetime_seconds": 0, "pool.conn_max_idle_time_seconds": 0,
	},
	"jwt":      {"secret": "change-me-in-production", "expire_hours": 24},
	"user_jwt": {"secret": "user-change-me-in-production", "expire_hours": 168},
	"redis":    {"enabled": true, "host": "127.0.0.1", "port": 6379, "password": "", "db": 0, "prefix": "vastra"},
	"queue": {
		"enabled": true, "host": "127.0.0.1", "port": 6379, "password": "", "db": 1,
		"concurrency": 10,
		"queues":      map[string]int{"default": 10, "critical": 5},
	},
	"kafka": {"enabled": false, "brokers": []string{"127.0.0.1:9092"}, "topic": "vastra.orders"},
	"order": {
		"idempotency_ttl_seconds":       86400,
		"outbox_relay_interval_seconds": 5,
		"outbox_batch_size":             100,
		"outbox_max_attempts":           10,
	},
	"cors": {
		"allowed_origins": []string{"*"},
		"allowed_methods": []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		"allowed_headers": []string{
			"Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language",
			"Authorization", "Cache-Control", "Idempotency-Key", "X-Requested-With",
		},
		"allow_credentials": true,
		"max_age":           600,
	},
	"security": {
		"login_rate_limit.window_seconds": 300, "login_rate_limit.max_attempts": 5, "login_rate_limit.block_seconds": 900,
		"order_rate_limit.window_seconds": 60, "order_rate_limit.max_attempts": 10, "order_rate_limit.block_seconds": 60,
		"password_policy.min_length":      8,
		"password_policy.require_upper":   false,
		"password_policy.require_lower":   true,
		"password_policy.require_number":  true,
	},
	"email": {
		"enabled": false, "host": "", "port": 587, "username": "", "password": "",
		"from": "", "from_name": "Vastra", "use_tls": true, "use_ssl": false,
	},
	"captcha": {
		"enabled":            false,
		"scenes.user_login":  false,
		"scenes.admin_login": true,
		"scenes.register":    false,
		"image.length":       5, "image.width": 240, "image.height": 80,
		"image.noise_count": 2, "image.show_line": 2,
		"image.expire_seconds": 300, "image.max_store": 10240,
	},
	"metrics": {"enabled": true, "path": "/metrics", "namespace": "vastra"},
}

// Load 读取配置，优先级：环境变量 > config.yml > 默认值
// 环境变量名由路径转换而来，server.port 对应 SERVER_PORT
func Load() *Config {
	loadDotEnv(".env", "../.env")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range []string{".", "..", "./etc"} {
		v.AddConfigPath(dir)
	}
	for section, values := range defaultSections {
		for key, value := range values {
			v.SetDefault(section+"."+key, value)
		}
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed", "error", err, "fallback", "env_or_defaults")
	} else {
		logger.Infow("config_file_loaded", "file", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("config unmarshal: %w", err))
	}
	cfg.Kafka.Brokers = normalizeList(cfg.Kafka.Brokers)
	return cfg
}

// loadDotEnv 加载第一个存在的 .env，已存在的环境变量不会被覆盖
func loadDotEnv(paths ...string) {
	for _, path := range paths {
		switch err := godotenv.Load(path); {
		case err == nil:
			logger.Infow("dotenv_loaded", "file", path)
			return
		case !errors.Is(err, fs.ErrNotExist):
			logger.Warnw("dotenv_load_failed", "file", path, "error", err)
		}
	}
}

// normalizeList 拆分逗号分隔的条目并去除空白
func normalizeList(items []string) []string {
	var result []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
