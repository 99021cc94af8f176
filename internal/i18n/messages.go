package i18n

var catalogs = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":             "Bad request",
		"error.unauthorized":            "Please log in first",
		"error.forbidden":               "Permission denied",
		"error.jwt_secret_missing":      "Authentication is not configured",
		"error.auth_header_missing":     "Missing Authorization header",
		"error.auth_header_invalid":     "Invalid Authorization header",
		"error.token_invalid":           "Invalid or expired token",
		"error.token_revoked":           "Session expired, please log in again",
		"error.login_too_many":          "Too many login attempts, please retry in %d seconds",
		"error.captcha_unavailable":     "Captcha is not enabled",
		"error.not_found":               "Resource not found",
		"error.too_many_requests":       "Too many requests, please try again later",
		"error.rate_limited":            "Too many attempts, please retry in %d seconds",
		"error.rate_limit_unavailable":  "Rate limiter unavailable, please try again later",
		"error.internal":                "Internal server error",
		"error.storage_unavailable":     "Service temporarily unavailable, please try again later",
		"error.user_id_type_invalid":    "Invalid user id type",
		"error.admin_id_type_invalid":   "Invalid admin id type",
		"error.validation_failed":       "Invalid or missing field",
		"error.product_not_found":       "Product not found",
		"error.insufficient_stock":      "Insufficient stock",
		"error.order_not_found":         "Order not found",
		"error.order_status_invalid":    "Order status change not allowed",
		"error.order_conflict_retry":    "The order was changed concurrently, please retry",
		"error.order_create_failed":     "Failed to place order",
		"error.order_fetch_failed":      "Failed to fetch orders",
		"error.order_update_failed":     "Failed to update order",
		"error.order_delete_failed":     "Failed to delete order",
		"error.idempotency_in_progress": "The same request is being processed",
		"error.item_not_found":          "Item not found",
		"error.cart_fetch_failed":       "Failed to fetch cart",
		"error.cart_update_failed":      "Failed to update cart",
		"error.wishlist_fetch_failed":   "Failed to fetch wishlist",
		"error.wishlist_update_failed":  "Failed to update wishlist",
		"error.notification_failed":     "Failed to process notifications",
		"error.address_save_failed":     "Failed to save address",
		"error.address_fetch_failed":    "Failed to fetch address",
		"error.category_not_found":      "Category not found",
		"error.category_slug_exists":    "Category slug already exists",
		"error.category_in_use":         "Category still has products",
		"error.category_failed":         "Failed to process category",
		"error.product_failed":          "Failed to process product",
		"error.search_failed":           "Search failed",
		"error.custom_order_not_found":  "Custom order not found",
		"error.custom_order_failed":     "Failed to process custom order",
		"error.user_not_found":          "User not found",
		"error.user_failed":             "Failed to process user",
		"error.email_exists":            "Email already registered",
		"error.login_invalid":           "Incorrect account or password",
		"error.login_failed":            "Login failed",
		"error.user_disabled":           "Account disabled",
		"error.password_policy":         "Password does not meet the policy",
		"error.password_incorrect":      "Current password is incorrect",
		"error.password_min_length":     "Password must be at least %d characters",
		"error.password_max_length":     "Password must be at most %d bytes",
		"error.password_require_upper":  "Password must contain an uppercase letter",
		"error.password_require_lower":  "Password must contain a lowercase letter",
		"error.password_require_number": "Password must contain a digit",
		"error.captcha_required":        "Captcha required",
		"error.captcha_invalid":         "Captcha incorrect",
		"error.captcha_failed":          "Failed to generate captcha",
		"error.dashboard_fetch_failed":  "Failed to load dashboard",
		"error.role_invalid":            "Invalid role",
		"error.role_failed":             "Failed to process roles",
		"error.admin_not_found":         "Admin not found",
		"success.order_status_updated":  "Status updated; notification delivery is best-effort",
		"order.status.pending":          "Pending",
		"order.status.processing":       "Processing",
		"order.status.shipped":          "Shipped",
		"order.status.delivered":        "Delivered",
		"order.status.cancelled":        "Cancelled",
		"email.order_status.subject":    "Order %s: %s",
		"email.order_status.body":       "Your order %s status has been updated to %s.\nOrder total: %s\n\nThank you for shopping with us.",
		"email.custom_order_status.body": "Your custom order %s status has been updated to %s.\n\nThank you for shopping with us.",
	},
	LocaleCN: {
		"error.bad_request":             "请求参数错误",
		"error.unauthorized":            "请先登录",
		"error.forbidden":               "无权限访问",
		"error.jwt_secret_missing":      "鉴权未配置",
		"error.auth_header_missing":     "缺少 Authorization 请求头",
		"error.auth_header_invalid":     "Authorization 请求头格式错误",
		"error.token_invalid":           "登录凭证无效或已过期",
		"error.token_revoked":           "登录已失效，请重新登录",
		"error.login_too_many":          "登录尝试过多，请 %d 秒后重试",
		"error.captcha_unavailable":     "验证码未启用",
		"error.not_found":               "资源不存在",
		"error.too_many_requests":       "请求过于频繁，请稍后再试",
		"error.rate_limited":            "尝试次数过多，请 %d 秒后重试",
		"error.rate_limit_unavailable":  "限流服务不可用，请稍后再试",
		"error.internal":                "服务器内部错误",
		"error.storage_unavailable":     "服务暂时不可用，请稍后再试",
		"error.user_id_type_invalid":    "用户 ID 类型错误",
		"error.admin_id_type_invalid":   "管理员 ID 类型错误",
		"error.validation_failed":       "字段缺失或无效",
		"error.product_not_found":       "商品不存在",
		"error.insufficient_stock":      "库存不足",
		"error.order_not_found":         "订单不存在",
		"error.order_status_invalid":    "不允许的订单状态变更",
		"error.order_conflict_retry":    "订单并发冲突，请重试",
		"error.order_create_failed":     "下单失败",
		"error.order_fetch_failed":      "获取订单失败",
		"error.order_update_failed":     "更新订单失败",
		"error.order_delete_failed":     "删除订单失败",
		"error.idempotency_in_progress": "相同请求正在处理中",
		"error.item_not_found":          "条目不存在",
		"error.cart_fetch_failed":       "获取购物车失败",
		"error.cart_update_failed":      "更新购物车失败",
		"error.wishlist_fetch_failed":   "获取心愿单失败",
		"error.wishlist_update_failed":  "更新心愿单失败",
		"error.notification_failed":     "处理通知失败",
		"error.address_save_failed":     "保存地址失败",
		"error.address_fetch_failed":    "获取地址失败",
		"error.category_not_found":      "分类不存在",
		"error.category_slug_exists":    "分类标识已存在",
		"error.category_in_use":         "分类下仍有商品",
		"error.category_failed":         "分类处理失败",
		"error.product_failed":          "商品处理失败",
		"error.search_failed":           "搜索失败",
		"error.custom_order_not_found":  "定制订单不存在",
		"error.custom_order_failed":     "定制订单处理失败",
		"error.user_not_found":          "用户不存在",
		"error.user_failed":             "用户处理失败",
		"error.email_exists":            "邮箱已注册",
		"error.login_invalid":           "账号或密码错误",
		"error.login_failed":            "登录失败",
		"error.user_disabled":           "账号已被禁用",
		"error.password_policy":         "密码不符合安全策略",
		"error.password_incorrect":      "原密码错误",
		"error.password_min_length":     "密码长度至少 %d 位",
		"error.password_max_length":     "密码长度不能超过 %d 字节",
		"error.password_require_upper":  "密码需包含大写字母",
		"error.password_require_lower":  "密码需包含小写字母",
		"error.password_require_number": "密码需包含数字",
		"error.captcha_required":        "请输入验证码",
		"error.captcha_invalid":         "验证码错误",
		"error.captcha_failed":          "验证码生成失败",
		"error.dashboard_fetch_failed":  "获取仪表盘数据失败",
		"error.role_invalid":            "角色无效",
		"error.role_failed":             "角色处理失败",
		"error.admin_not_found":         "管理员不存在",
		"success.order_status_updated":  "状态已更新，通知为尽力投递",
		"order.status.pending":          "待处理",
		"order.status.processing":       "处理中",
		"order.status.shipped":          "已发货",
		"order.status.delivered":        "已送达",
		"order.status.cancelled":        "已取消",
		"email.order_status.subject":    "订单 %s：%s",
		"email.order_status.body":       "您的订单 %s 状态已更新为：%s\n订单金额：%s\n\n感谢您的惠顾。",
		"email.custom_order_status.body": "您的定制订单 %s 状态已更新为：%s\n\n感谢您的惠顾。",
	},
}
