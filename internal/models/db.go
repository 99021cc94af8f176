package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB 进程级连接，由 InitDB 设置
var DB *gorm.DB

// DBPoolConfig 数据库连接池配置，<=0 的项沿用 database/sql 默认值（MaxIdleConns 允许为 0）
type DBPoolConfig struct {
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeSeconds int
	ConnMaxIdleTimeSeconds int
}

var dialectors = map[string]func(string) gorm.Dialector{
	"":           sqlite.Open,
	"sqlite":     sqlite.Open,
	"postgres":   postgres.Open,
	"postgresql": postgres.Open,
}

var gormLogLevels = map[string]logger.LogLevel{
	"silent": logger.Silent,
	"error":  logger.Error,
	"warn":   logger.Warn,
	"info":   logger.Info,
}

// InitDB 打开连接、应用连接池并设置全局 DB
func InitDB(driver, dsn, logLevel string, pool DBPoolConfig) error {
	db, err := OpenDB(driver, dsn, logLevel)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if d := seconds(pool.ConnMaxLifetimeSeconds); d > 0 {
		sqlDB.SetConnMaxLifetime(d)
	}
	if d := seconds(pool.ConnMaxIdleTimeSeconds); d > 0 {
		sqlDB.SetConnMaxIdleTime(d)
	}
	DB = db
	return nil
}

// OpenDB 按驱动打开连接，不修改全局 DB。
// 开启 TranslateError，唯一键冲突在两种方言下都表现为 gorm.ErrDuplicatedKey
func OpenDB(driver, dsn, logLevel string) (*gorm.DB, error) {
	open, ok := dialectors[strings.ToLower(strings.TrimSpace(driver))]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	level, ok := gormLogLevels[strings.ToLower(strings.TrimSpace(logLevel))]
	if !ok {
		level = logger.Warn
	}
	return gorm.Open(open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	})
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// AllModels 返回需要迁移的全部模型
func AllModels() []interface{} {
	return []interface{}{
		&Admin{}, &User{},
		&Category{}, &Product{},
		&Cart{}, &CartItem{},
		&Wishlist{}, &WishlistItem{},
		&Order{}, &OrderItem{},
		&CustomOrder{}, &Notification{},
		&OutboxEvent{},
	}
}

func AutoMigrate() error {
	return DB.AutoMigrate(AllModels()...)
}
