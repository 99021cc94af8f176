package shared

import (
	"github.com/vastra-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

// BindJSON 绑定 JSON 请求体，失败时写出 400 并返回 false
func BindJSON[T any](c *gin.Context) (T, bool) {
	var body T
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, response.CodeBadRequest, "error.bad_request", err)
		return body, false
	}
	return body, true
}
