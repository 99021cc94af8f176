package constants

// 订单状态常量（普通订单与定制订单共用）
const (
	OrderStatusPending    = "Pending"
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// 订单号规则
const (
	OrderNoPrefix    = "ORD-"
	OrderNoTokenSize = 8
)

// 商品快照占位图
const (
	CartPlaceholderImage     = "placeholder.jpg"
	WishlistFallbackImage    = "default-image.jpg"
	DefaultPaymentMethodCOD  = "COD"
	ProductSearchResultLimit = 10
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 验证码场景常量
const (
	CaptchaSceneUserLogin  = "user_login"
	CaptchaSceneAdminLogin = "admin_login"
	CaptchaSceneRegister   = "register"
)

// 领域事件主题常量
const (
	EventOrderPlaced              = "order.placed"
	EventOrderStatusChanged       = "order.status_changed"
	EventCustomOrderStatusChanged = "custom_order.status_changed"
)

// 队列与任务常量
const (
	QueueDefault         = "default"
	QueueCritical        = "critical"
	TaskOrderStatusEmail = "order:status_email"
	TaskOutboxRelay      = "outbox:relay"
)

// 通知文案模板
const (
	NotificationOrderStatusTemplate       = "Your order %s status has been updated to %s"
	NotificationCustomOrderStatusTemplate = "Your custom order %s status has been updated to %s"
)

// 缓存 key 常量
const (
	CacheKeyProductList = "catalog:products:%s:%d:%d"
	CacheKeyDashboard   = "admin:dashboard"
	CacheKeyIdempotency = "idem:order:%d:%s"
)
