package router

import (
	"net/http"
	"sort"
	"strings"

	"github.com/vastra-shop/internal/authz"

	"github.com/gin-gonic/gin"
)

const adminRoutePrefix = "/api/v1/admin/"

// 只需登录态、不参与授权的管理端路由
var sessionOnlyAdminRoutes = map[string]bool{
	"/api/v1/admin/login":    true,
	"/api/v1/admin/me":       true,
	"/api/v1/admin/password": true,
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildAdminPermissionCatalog 从已注册路由生成可授权的权限清单，供后台配置角色时参考
func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	items := []adminPermissionCatalogItem{}
	if engine == nil {
		return items
	}
	seen := map[string]bool{}
	for _, route := range engine.Routes() {
		method := strings.ToUpper(route.Method)
		if method == http.MethodOptions || method == http.MethodHead {
			continue
		}
		if !strings.HasPrefix(route.Path, adminRoutePrefix) || sessionOnlyAdminRoutes[route.Path] {
			continue
		}
		object := authz.NormalizeObject(route.Path)
		permission := method + ":" + object
		if seen[permission] {
			continue
		}
		seen[permission] = true
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		switch {
		case a.Module != b.Module:
			return a.Module < b.Module
		case a.Object != b.Object:
			return a.Object < b.Object
		default:
			return a.Method < b.Method
		}
	})
	return items
}

// deriveAdminPermissionModule 取 /admin 之后的第一段作为模块名
func deriveAdminPermissionModule(object string) string {
	segments := strings.Split(strings.Trim(object, "/"), "/")
	switch {
	case segments[0] == "":
		return "system"
	case segments[0] == "admin" && len(segments) > 1:
		return segments[1]
	default:
		return segments[0]
	}
}
