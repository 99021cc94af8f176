package public

import (
	handlershared "github.com/vastra-shop/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CaptchaPayloadRequest 验证码请求载荷，未启用的场景允许为空
type CaptchaPayloadRequest = handlershared.CaptchaPayloadRequest

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func parsePagination(c *gin.Context) (int, int) {
	return handlershared.ParsePagination(c)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name)
}

func bindBody[T any](c *gin.Context) (T, bool) {
	return handlershared.BindJSON[T](c)
}
