package router

import (
	"github.com/vastra-shop/internal/config"
	adminhandlers "github.com/vastra-shop/internal/http/handlers/admin"
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// registerAdminRoutes 管理端路由
// /me 与 /password 只校验登录态，其余接口还要经过 RBAC
func registerAdminRoutes(api *gin.RouterGroup, engine *gin.Engine, h *adminhandlers.Handler, cfg *config.Config, c *provider.Container, limits rateLimits, rdb *redis.Client) {
	admin := api.Group("/admin")
	admin.POST("/login", RateLimitMiddleware(rdb, limits.adminLogin, KeyByIP), h.AdminLogin)

	authn := JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo)
	session := admin.Group("", authn)
	session.GET("/me", h.GetAdminMe)
	session.PUT("/password", h.UpdateAdminPassword)

	g := admin.Group("", authn, AdminRBACMiddleware(c.AuthzService))

	g.GET("/dashboard/overview", h.GetDashboardOverview)

	g.GET("/categories", h.GetAdminCategories)
	g.POST("/categories", h.CreateCategory)
	g.PUT("/categories/:id", h.UpdateCategory)
	g.DELETE("/categories/:id", h.DeleteCategory)

	g.GET("/products", h.GetAdminProducts)
	g.GET("/products/:id", h.GetAdminProduct)
	g.POST("/products", h.CreateProduct)
	g.PUT("/products/:id", h.UpdateProduct)
	g.DELETE("/products/:id", h.DeleteProduct)

	g.GET("/users", h.GetAdminUsers)
	g.PUT("/users/batch-status", h.BatchUpdateUserStatus)
	g.DELETE("/users/:id", h.DeleteAdminUser)

	g.GET("/orders", h.AdminListOrders)
	g.GET("/orders/:id", h.AdminGetOrder)
	g.DELETE("/orders/:id", h.AdminDeleteOrder)
	g.PATCH("/orders/:id/status", h.AdminUpdateOrderStatus)

	g.GET("/custom-orders", h.AdminListCustomOrders)
	g.DELETE("/custom-orders/:id", h.AdminDeleteCustomOrder)
	g.PATCH("/custom-orders/:id/status", h.AdminUpdateCustomOrderStatus)

	g.GET("/authz/roles", h.ListAuthzRoles)
	g.GET("/authz/admins", h.ListAuthzAdmins)
	g.GET("/authz/admins/:id/roles", h.GetAuthzAdminRoles)
	g.PUT("/authz/admins/:id/roles", h.SetAuthzAdminRoles)
	g.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
		response.Success(ctx, buildAdminPermissionCatalog(engine))
	})
}
