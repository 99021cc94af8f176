package shared

import (
	"errors"

	"github.com/vastra-shop/internal/http/response"
	"github.com/vastra-shop/internal/i18n"
	"github.com/vastra-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// ErrorRule 定义业务错误到接口错误响应的映射关系。
type ErrorRule struct {
	Target error
	Code   int
	Key    string
}

// localizedError 携带自有文案 key 的错误（如密码策略）
type localizedError interface {
	error
	Key() string
	Args() []interface{}
}

// CoreErrorRules 各接口共用的核心错误映射，位于具体规则之后
var CoreErrorRules = []ErrorRule{
	{Target: service.ErrOrderNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrItemNotFound, Code: response.CodeNotFound, Key: "error.item_not_found"},
	{Target: service.ErrConflictRetryable, Code: response.CodeConflict, Key: "error.order_conflict_retry"},
	{Target: service.ErrIdempotencyInProgress, Code: response.CodeConflict, Key: "error.idempotency_in_progress"},
	{Target: service.ErrOrderStatusInvalid, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
}

// RespondMapped 按 带数据的核心错误 -> 具体规则 -> 核心规则 -> 兜底 的顺序输出错误响应。
func RespondMapped(c *gin.Context, err error, rules []ErrorRule, fallbackCode int, fallbackKey string) {
	if respondTypedError(c, err) {
		return
	}
	for _, group := range [][]ErrorRule{rules, CoreErrorRules} {
		for _, rule := range group {
			if errors.Is(err, rule.Target) {
				RespondError(c, rule.Code, rule.Key, nil)
				return
			}
		}
	}
	if errors.Is(err, service.ErrStorageUnavailable) {
		// 存储细节只进日志
		RespondError(c, response.CodeInternal, "error.storage_unavailable", err)
		return
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// respondTypedError 处理需要在 data 中说明失败前置条件的错误
func respondTypedError(c *gin.Context, err error) bool {
	locale := i18n.ResolveLocale(c)

	var validationErr *service.ValidationError
	if errors.As(err, &validationErr) {
		response.ErrorWithData(c, response.CodeBadRequest, i18n.T(locale, "error.validation_failed"), gin.H{
			"field":  validationErr.Field,
			"reason": validationErr.Reason,
		})
		return true
	}

	var notFoundErr *service.ProductNotFoundError
	if errors.As(err, &notFoundErr) {
		response.ErrorWithData(c, response.CodeNotFound, i18n.T(locale, "error.product_not_found"), gin.H{
			"product_id": notFoundErr.ProductID,
		})
		return true
	}

	var stockErr *service.InsufficientStockError
	if errors.As(err, &stockErr) {
		response.ErrorWithData(c, response.CodeConflict, i18n.T(locale, "error.insufficient_stock"), gin.H{
			"product_id": stockErr.ProductID,
			"name":       stockErr.Name,
			"requested":  stockErr.Requested,
			"available":  stockErr.Available,
			"shortfall":  stockErr.Shortfall,
		})
		return true
	}

	var policyErr localizedError
	if errors.As(err, &policyErr) {
		response.Error(c, response.CodeBadRequest, i18n.Sprintf(locale, policyErr.Key(), policyErr.Args()...))
		return true
	}
	return false
}
