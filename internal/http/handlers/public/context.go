package public

import (
	handlershared "github.com/vastra-shop/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (uint, bool) {
	return handlershared.ContextID(c, "user_id", "error.user_id_type_invalid")
}
