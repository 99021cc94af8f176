package admin

import (
	handlershared "github.com/vastra-shop/internal/http/handlers/shared"
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CaptchaPayloadRequest 管理端验证码请求载荷
type CaptchaPayloadRequest = handlershared.CaptchaPayloadRequest

type mappedHandlerError = handlershared.ErrorRule

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondMapped(c, err, rules, fallbackCode, fallbackKey)
}

func parsePagination(c *gin.Context) (int, int) {
	return handlershared.ParsePagination(c)
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	return handlershared.ParseUintParam(c, name)
}

// bindBody 绑定 JSON 请求体，失败时已写出 400
func bindBody[T any](c *gin.Context) (T, bool) {
	return handlershared.BindJSON[T](c)
}

// pathID 解析路径参数 :id，失败时直接写出 400
func pathID(c *gin.Context) (uint, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
	}
	return id, ok
}

var adminAuthErrorRules = []mappedHandlerError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_unavailable"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_incorrect"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_policy"},
	{Target: service.ErrAdminNotFound, Code: response.CodeNotFound, Key: "error.admin_not_found"},
}

var catalogErrorRules = []mappedHandlerError{
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrCategorySlugExists, Code: response.CodeConflict, Key: "error.category_slug_exists"},
	{Target: service.ErrCategoryInUse, Code: response.CodeConflict, Key: "error.category_in_use"},
	{Target: service.ErrProductNotFound, Code: response.CodeNotFound, Key: "error.product_not_found"},
}

var userAdminErrorRules = []mappedHandlerError{
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var customOrderErrorRules = []mappedHandlerError{
	{Target: service.ErrCustomOrderNotFound, Code: response.CodeNotFound, Key: "error.custom_order_not_found"},
}
