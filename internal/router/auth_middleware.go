package router

import (
	"context"
	"strings"

	"github.com/vastra-shop/internal/authz"
	"github.com/vastra-shop/internal/cache"
	"github.com/vastra-shop/internal/constants"
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/i18n"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/repository"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	adminIDContextKey      = "admin_id"
	adminNameContextKey    = "username"
	adminIsSuperContextKey = "admin_is_super"
	userIDContextKey       = "user_id"
	userEmailContextKey    = "user_email"
)

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// parseBearer 解析 Authorization: Bearer <token>（HS256），失败时返回对应文案 key
func parseBearer(c *gin.Context, secretKey string, claims jwt.Claims) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "error.auth_header_missing"
	}
	scheme, raw, ok := strings.Cut(header, " ")
	raw = strings.TrimSpace(raw)
	if !ok || scheme != "Bearer" || raw == "" {
		return "error.auth_header_invalid"
	}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "error.token_invalid"
	}
	return ""
}

// JWTAuthMiddleware 管理端 JWT 鉴权，校验 token 版本以支持改密后失效
func JWTAuthMiddleware(secretKey string, adminRepo repository.AdminRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		claims := &service.JWTClaims{}
		if key := parseBearer(c, secretKey, claims); key != "" {
			abortUnauthorized(c, key)
			return
		}
		if claims.AdminID == 0 || adminRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		state := loadAdminState(c.Request.Context(), adminRepo, claims.AdminID)
		if state == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		if state.TokenVersion != claims.TokenVersion {
			abortUnauthorized(c, "error.token_revoked")
			return
		}

		c.Set(adminIDContextKey, claims.AdminID)
		c.Set(adminNameContextKey, claims.Username)
		c.Set(adminIsSuperContextKey, state.IsSuper)
		c.Next()
	}
}

// loadAdminState 优先读取缓存快照，未命中时回源并回写
func loadAdminState(ctx context.Context, repo repository.AdminRepository, adminID uint) *cache.AdminAuthState {
	if cached, hit, err := cache.GetAdminAuthState(ctx, adminID); err == nil && hit && cached != nil {
		return cached
	}
	admin, err := repo.GetByID(adminID)
	if err != nil || admin == nil {
		return nil
	}
	state := cache.BuildAdminAuthState(admin)
	if err := cache.SetAdminAuthState(ctx, state); err != nil {
		logger.Debugw("admin_auth_state_cache_failed", "admin_id", adminID, "error", err)
	}
	return state
}

// UserJWTAuthMiddleware 用户 JWT 鉴权，禁用账号与旧版本 token 均拒绝
func UserJWTAuthMiddleware(secretKey string, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			abortUnauthorized(c, "error.jwt_secret_missing")
			return
		}
		claims := &service.UserJWTClaims{}
		if key := parseBearer(c, secretKey, claims); key != "" {
			abortUnauthorized(c, key)
			return
		}
		if claims.UserID == 0 || userRepo == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		state := loadUserState(c.Request.Context(), userRepo, claims.UserID)
		switch {
		case state == nil:
			abortUnauthorized(c, "error.token_invalid")
			return
		case !strings.EqualFold(strings.TrimSpace(state.Status), constants.UserStatusActive):
			abortUnauthorized(c, "error.user_disabled")
			return
		case state.TokenVersion != claims.TokenVersion:
			abortUnauthorized(c, "error.token_revoked")
			return
		}

		c.Set(userIDContextKey, claims.UserID)
		c.Set(userEmailContextKey, claims.Email)
		c.Next()
	}
}

func loadUserState(ctx context.Context, repo repository.UserRepository, userID uint) *cache.UserAuthState {
	if cached, hit, err := cache.GetUserAuthState(ctx, userID); err == nil && hit && cached != nil {
		return cached
	}
	user, err := repo.GetByID(userID)
	if err != nil || user == nil {
		return nil
	}
	state := cache.BuildUserAuthState(user)
	if err := cache.SetUserAuthState(ctx, state); err != nil {
		logger.Debugw("user_auth_state_cache_failed", "user_id", userID, "error", err)
	}
	return state
}

// AdminRBACMiddleware 按路由模板与方法做 casbin 鉴权，超级管理员直接放行
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetBool(adminIsSuperContextKey) {
			c.Next()
			return
		}
		adminID := c.GetUint(adminIDContextKey)
		if authzService == nil || adminID == 0 {
			if authzService == nil {
				logger.Errorw("admin_rbac_service_unavailable")
			}
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		object := c.FullPath()
		if object == "" {
			object = c.Request.URL.Path
		}
		allowed, err := authzService.EnforceAdmin(adminID, object, c.Request.Method)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed", "admin_id", adminID, "method", c.Request.Method, "object", object, "error", err)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied", "admin_id", adminID, "method", c.Request.Method, "object", authz.NormalizeObject(object))
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}
