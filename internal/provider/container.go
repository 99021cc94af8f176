package provider

import (
	"github.com/vastra-shop/internal/authz"
	"github.com/vastra-shop/internal/cache"
	"github.com/vastra-shop/internal/config"
	"github.com/vastra-shop/internal/events"
	"github.com/vastra-shop/internal/logger"
	"github.com/vastra-shop/internal/metrics"
	"github.com/vastra-shop/internal/models"
	"github.com/vastra-shop/internal/queue"
	"github.com/vastra-shop/internal/repository"
	"github.com/vastra-shop/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.Metrics
	Publisher   events.Publisher

	// Repositories
	AdminRepo        repository.AdminRepository
	UserRepo         repository.UserRepository
	CategoryRepo     repository.CategoryRepository
	ProductRepo      repository.ProductRepository
	CartRepo         repository.CartRepository
	WishlistRepo     repository.WishlistRepository
	OrderRepo        repository.OrderRepository
	CustomOrderRepo  repository.CustomOrderRepository
	NotificationRepo repository.NotificationRepository
	OutboxRepo       repository.OutboxRepository
	DashboardRepo    repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	UserAuthService     *service.UserAuthService
	UserAdminService    *service.UserAdminService
	EmailService        *service.EmailService
	CaptchaService      *service.CaptchaService
	CategoryService     *service.CategoryService
	ProductService      *service.ProductService
	CartService         *service.CartService
	WishlistService     *service.WishlistService
	AddressService      *service.AddressService
	NotificationService *service.NotificationService
	OrderService        *service.OrderService
	CustomOrderService  *service.CustomOrderService
	OutboxRelayService  *service.OutboxRelayService
	DashboardService    *service.DashboardService
}

// NewContainer 组装全部依赖，调用前需已执行 models.InitDB。
// Redis 与队列不可用时降级运行，授权初始化失败则直接退出
func NewContainer(cfg *config.Config) *Container {
	c := &Container{
		Config:    cfg,
		Publisher: events.NewPublisher(&cfg.Kafka),
	}
	c.initInfra()
	c.initRepositories(models.DB)
	c.initServices(models.DB)
	return c
}

func (c *Container) initInfra() {
	if err := cache.InitRedis(&c.Config.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}
	if c.Config.Queue.Enabled {
		client, err := queue.NewClient(&c.Config.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		}
		c.QueueClient = client
	}
	if c.Config.Metrics.Enabled {
		c.Metrics = metrics.New(c.Config.Metrics.Namespace)
	}
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.CustomOrderRepo = repository.NewCustomOrderRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.OutboxRepo = repository.NewOutboxRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices(db *gorm.DB) {
	c.AuthzService = mustInit("authz", func() (*authz.Service, error) {
		svc, err := authz.NewService(db)
		if err != nil {
			return nil, err
		}
		return svc, svc.BootstrapBuiltinRoles()
	})

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.CartRepo, c.ProductRepo)
	c.AddressService = service.NewAddressService(c.UserRepo, c.OrderRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo)
	c.OrderService = service.NewOrderService(
		c.OrderRepo,
		c.ProductRepo,
		c.CartRepo,
		c.OutboxRepo,
		c.NotificationService,
		c.QueueClient,
		c.Metrics,
		c.Config.Order.IdempotencyTTLSeconds,
	)
	c.CustomOrderService = service.NewCustomOrderService(c.CustomOrderRepo, c.OutboxRepo, c.NotificationService, c.QueueClient, c.Metrics)
	c.OutboxRelayService = service.NewOutboxRelayService(
		c.OutboxRepo,
		c.Publisher,
		c.Metrics,
		c.Config.Order.OutboxBatchSize,
		c.Config.Order.OutboxMaxAttempts,
	)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo)
}

func mustInit[T any](name string, build func() (T, error)) T {
	value, err := build()
	if err != nil {
		logger.Errorw("provider_init_failed", "component", name, "error", err)
		panic(err)
	}
	return value
}

// Close 释放外部连接，单个失败不影响其余
func (c *Container) Close() {
	if c == nil {
		return
	}
	closers := map[string]func() error{"redis": cache.Close}
	if c.QueueClient != nil {
		closers["queue_client"] = c.QueueClient.Close
	}
	if c.Publisher != nil {
		closers["publisher"] = c.Publisher.Close
	}
	for name, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Warnw("provider_close_failed", "component", name, "error", err)
		}
	}
}
