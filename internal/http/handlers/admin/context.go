package admin

import (
	handlershared "github.com/vastra-shop/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.ContextID(c, "admin_id", "error.admin_id_type_invalid")
}
