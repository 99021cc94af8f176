package public

import "github.com/vastra-shop/internal/provider"

// Handler 店铺前台接口处理器，游客与登录用户共用
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
