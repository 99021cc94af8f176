package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"github.com/vastra-shop/internal/app"
	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset   = "\033[0m"
	ansiBold    = "\033[1m"
	ansiDim     = "\033[2m"
	ansiGreen   = "\033[32m"
	ansiYellow  = "\033[33m"
	ansiMagenta = "\033[35m"
)

func main() {
	// 解析命令行参数
	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "启动模式: all (默认), api, worker")
	flag.Parse()

	printStartupBanner(mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()
	stdLog := logger.StdLogger()

	if isWeakSecret(cfg.JWT.SecretKey) || isWeakSecret(cfg.UserJWT.SecretKey) {
		if cfg.Server.Mode == "release" {
			stdLog.Fatalf("JWT secret 过弱或仍为默认值，请在生产环境中配置强随机密钥")
		}
		stdLog.Printf("警告: JWT secret 过弱或仍为默认值，建议在生产环境中更换")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.LogLevel, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("数据库初始化失败: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("数据库迁移失败: %v", err)
	}

	// worker 模式不负责初始化管理员
	if mode != app.ModeWorker {
		ensureDefaultAdmin(cfg, stdLog)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("服务运行失败: %v", err)
	}
}

func ensureDefaultAdmin(cfg *config.Config, stdLog *log.Logger) {
	username := os.Getenv("VASTRA_DEFAULT_ADMIN_USERNAME")
	password := os.Getenv("VASTRA_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && password == "" {
		stdLog.Printf("警告: 未设置 VASTRA_DEFAULT_ADMIN_PASSWORD，已跳过默认管理员初始化")
		return
	}
	admin, err := models.InitDefaultAdmin(username, password)
	if err != nil {
		stdLog.Printf("警告: 初始化默认管理员失败: %v", err)
		return
	}
	if admin != nil {
		logger.Infow("default_admin_ready", "admin_id", admin.ID, "username", admin.Username)
	}
}

func printStartupBanner(mode string) {
	fmt.Println(ansiMagenta + "╔════════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiMagenta + "║              Vastra Storefront API                 ║" + ansiReset)
	fmt.Println(ansiMagenta + "╚════════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiYellow + "██╗   ██╗ █████╗ ███████╗████████╗██████╗  █████╗ " + ansiReset)
	fmt.Println(ansiYellow + "██║   ██║██╔══██╗██╔════╝╚══██╔══╝██╔══██╗██╔══██╗" + ansiReset)
	fmt.Println(ansiYellow + "██║   ██║███████║███████╗   ██║   ██████╔╝███████║" + ansiReset)
	fmt.Println(ansiYellow + "╚██╗ ██╔╝██╔══██║╚════██║   ██║   ██╔══██╗██╔══██║" + ansiReset)
	fmt.Println(ansiYellow + " ╚████╔╝ ██║  ██║███████║   ██║   ██║  ██║██║  ██║" + ansiReset)
	fmt.Println(ansiYellow + "  ╚═══╝  ╚═╝  ╚═╝╚══════╝   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "mode: " + mode + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	for _, marker := range []string{"change-me", "change-in-production", "your-secret-key"} {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}
