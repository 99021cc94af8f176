package router

import (
	"github.com/vastra-shop/internal/config"
	publichandlers "github.com/vastra-shop/internal/http/handlers/public"
	"github.com/vastra-shop/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// registerStorefrontRoutes 前台路由：目录浏览匿名可访问，购物车/心愿单/订单需用户登录
func registerStorefrontRoutes(api *gin.RouterGroup, h *publichandlers.Handler, cfg *config.Config, c *provider.Container, limits rateLimits, rdb *redis.Client) {
	catalog := api.Group("/public")
	catalog.GET("/categories", h.GetCategories)
	catalog.GET("/categories/:slug/products", h.GetProductsByCategory)
	catalog.GET("/products", h.GetProducts)
	catalog.GET("/products/search", h.SearchProducts)
	catalog.GET("/products/:id", h.GetProduct)
	catalog.GET("/captcha/config", h.GetCaptchaConfig)
	catalog.GET("/captcha/image", h.GetImageCaptcha)

	auth := api.Group("/auth")
	auth.POST("/register", RateLimitMiddleware(rdb, limits.register, KeyByIP), h.UserRegister)
	auth.POST("/login", RateLimitMiddleware(rdb, limits.login, KeyByIPAndJSONField("email")), h.UserLogin)

	user := api.Group("", UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))

	user.GET("/me", h.GetCurrentUser)
	user.PUT("/me/password", h.ChangeUserPassword)
	user.GET("/me/address", h.GetAddress)
	user.PUT("/me/address", h.SaveAddress)

	user.GET("/cart", h.GetCart)
	user.POST("/cart/items", h.AddCartItem)
	user.POST("/cart/items/:product_id/decrement", h.DecrementCartItem)
	user.DELETE("/cart/items/:product_id", h.DeleteCartItem)

	user.GET("/wishlist", h.GetWishlist)
	user.POST("/wishlist", h.AddWishlistItem)
	user.DELETE("/wishlist/:id", h.DeleteWishlistItem)
	user.POST("/wishlist/:id/move-to-cart", h.MoveWishlistItemToCart)

	user.POST("/orders", RateLimitMiddleware(rdb, limits.order, KeyByUser), h.PlaceOrder)
	user.GET("/orders", h.ListOrders)
	user.GET("/orders/:order_no", h.GetOrderByOrderNo)
	user.POST("/custom-orders", h.SubmitCustomOrder)
	user.GET("/custom-orders", h.ListMyCustomOrders)

	user.GET("/notifications", h.ListNotifications)
	user.GET("/notifications/unread-count", h.GetUnreadNotificationCount)
	user.POST("/notifications/read-all", h.MarkAllNotificationsRead)
	user.POST("/notifications/:id/read", h.MarkNotificationRead)
}
