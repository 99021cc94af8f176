package router

import (
	"net/http"
	"strings"

	"github.com/vastra-shop/internal/cache"
	"github.com/vastra-shop/internal/config"
	adminhandlers "github.com/vastra-shop/internal/http/handlers/admin"
	publichandlers "github.com/vastra-shop/internal/http/handlers/public"
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/i18n"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/provider"

	"github.com/gin-gonic/gin"
)

// rateLimits 各入口的限流规则
type rateLimits struct {
	login, adminLogin, register, order RateLimitRule
}

func buildRateLimits(cfg *config.Config) rateLimits {
	prefix := strings.TrimSpace(cfg.Redis.Prefix)
	if prefix == "" {
		prefix = "vastra"
	}
	login := cfg.Security.LoginRateLimit
	return rateLimits{
		login:      newRateLimitRule(prefix+":rate:login", login, "error.login_too_many"),
		adminLogin: newRateLimitRule(prefix+":rate:admin_login", login, "error.login_too_many"),
		register:   newRateLimitRule(prefix+":rate:register", login, "error.too_many_requests"),
		order:      newRateLimitRule(prefix+":rate:order", cfg.Security.OrderRateLimit, "error.rate_limited"),
	}
}

// SetupRouter 组装中间件与路由：/api/v1 下分为公开、用户与管理端三组
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestIDMiddleware(), LoggerMiddleware(log), CORSMiddleware(cfg.CORS))
	if c.Metrics != nil {
		r.Use(c.Metrics.Middleware())
		path := strings.TrimSpace(cfg.Metrics.Path)
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(c.Metrics.Handler()))
	}

	limits := buildRateLimits(cfg)
	redisClient := cache.Client()
	api := r.Group("/api/v1")
	registerStorefrontRoutes(api, publichandlers.New(c), cfg, c, limits, redisClient)
	registerAdminRoutes(api, r, adminhandlers.New(c), cfg, c, limits, redisClient)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.NoRoute(func(ctx *gin.Context) {
		response.Error(ctx, response.CodeNotFound, i18n.T(i18n.ResolveLocale(ctx), "error.not_found"))
	})
	return r
}
