package public

import (
	"errors"

	handlershared "github.com/vastra-shop/internal/http/handlers/shared"
	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
)

type mappedHandlerError = handlershared.ErrorRule

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	handlershared.RespondMapped(c, err, rules, fallbackCode, fallbackKey)
}

var captchaErrorRules = []mappedHandlerError{
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeInternal, Key: "error.captcha_unavailable"},
}

var userAuthErrorRules = []mappedHandlerError{
	{Target: service.ErrEmailExists, Code: response.CodeConflict, Key: "error.email_exists"},
	{Target: service.ErrInvalidCredentials, Code: response.CodeUnauthorized, Key: "error.login_invalid"},
	{Target: service.ErrUserDisabled, Code: response.CodeUnauthorized, Key: "error.user_disabled"},
	{Target: service.ErrInvalidPassword, Code: response.CodeBadRequest, Key: "error.password_incorrect"},
	{Target: service.ErrWeakPassword, Code: response.CodeBadRequest, Key: "error.password_policy"},
	{Target: service.ErrUserNotFound, Code: response.CodeNotFound, Key: "error.user_not_found"},
}

var customOrderErrorRules = []mappedHandlerError{
	{Target: service.ErrCustomOrderNotFound, Code: response.CodeNotFound, Key: "error.custom_order_not_found"},
}

// verifyCaptcha 校验场景验证码，失败时已写出响应
func (h *Handler) verifyCaptcha(c *gin.Context, scene string, payload CaptchaPayloadRequest) bool {
	if h.CaptchaService == nil {
		return true
	}
	if err := h.CaptchaService.Verify(scene, payload.ToServicePayload()); err != nil {
		if errors.Is(err, service.ErrCaptchaRequired) || errors.Is(err, service.ErrCaptchaInvalid) {
			requestLog(c).Infow("captcha_rejected", "scene", scene, "client_ip", c.ClientIP())
		}
		respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_failed")
		return false
	}
	return true
}
