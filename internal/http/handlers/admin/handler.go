package admin

import "github.com/vastra-shop/internal/provider"

// Handler 管理端接口处理器，依赖统一从容器获取
type Handler struct {
	*provider.Container
}

// New 创建管理端处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
