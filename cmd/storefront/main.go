// Storefront 主程序
// 功能：轴承商城后端，涵盖商品目录、购物车、结算与订单履约
// 架构：DDD 分层 + Gin + GORM + Kafka + Redis
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	cartapp "github.com/bearingmart/storefront/internal/cart/application"
	cartrepo "github.com/bearingmart/storefront/internal/cart/infrastructure/repository"
	carthttp "github.com/bearingmart/storefront/internal/cart/interfaces/http"

	catalogapp "github.com/bearingmart/storefront/internal/catalog/application"
	catalogrepo "github.com/bearingmart/storefront/internal/catalog/infrastructure/repository"
	cataloghttp "github.com/bearingmart/storefront/internal/catalog/interfaces/http"

	checkoutapp "github.com/bearingmart/storefront/internal/checkout/application"
	"github.com/bearingmart/storefront/internal/checkout/infrastructure/adapter"
	checkoutledger "github.com/bearingmart/storefront/internal/checkout/infrastructure/ledger"
	"github.com/bearingmart/storefront/internal/checkout/infrastructure/payment"
	checkouthttp "github.com/bearingmart/storefront/internal/checkout/interfaces/http"

	orderapp "github.com/bearingmart/storefront/internal/order/application"
	orderrepo "github.com/bearingmart/storefront/internal/order/infrastructure/repository"
	orderhttp "github.com/bearingmart/storefront/internal/order/interfaces/http"

	notifapp "github.com/bearingmart/storefront/internal/notification/application"
	"github.com/bearingmart/storefront/internal/notification/infrastructure/consumer"
	notifrepo "github.com/bearingmart/storefront/internal/notification/infrastructure/repository"
	"github.com/bearingmart/storefront/internal/notification/infrastructure/sender"
	notifhttp "github.com/bearingmart/storefront/internal/notification/interfaces/http"

	cartdomain "github.com/bearingmart/storefront/internal/cart/domain"
	catalogdomain "github.com/bearingmart/storefront/internal/catalog/domain"
	notifdomain "github.com/bearingmart/storefront/internal/notification/domain"
	orderdomain "github.com/bearingmart/storefront/internal/order/domain"

	"github.com/bearingmart/storefront/pkg/cache"
	"github.com/bearingmart/storefront/pkg/config"
	"github.com/bearingmart/storefront/pkg/db"
	"github.com/bearingmart/storefront/pkg/logger"
	"github.com/bearingmart/storefront/pkg/metrics"
	"github.com/bearingmart/storefront/pkg/middleware"
	"github.com/bearingmart/storefront/pkg/mq"
	"github.com/bearingmart/storefront/pkg/ratelimit"
)

// kafkaEventPublisher 领域事件到 Kafka 的发布适配
type kafkaEventPublisher struct {
	producer *mq.KafkaProducer
}

func (p *kafkaEventPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	return p.producer.SendMessage(ctx, topic, key, event)
}

func main() {
	// 1. 加载配置
	configPath := os.Getenv("APP_CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/storefront/config.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	loggerCfg := logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}
	if err := logger.Init(loggerCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	logger.Info(ctx, "Starting Storefront",
		"service", cfg.ServiceName,
		"version", cfg.Version,
		"environment", cfg.Environment,
	)

	// 3. 初始化指标
	metricsInstance := metrics.New("storefront")
	if cfg.Metrics.Enabled {
		if err := metricsInstance.Register(); err != nil {
			logger.Fatal(ctx, "Failed to register metrics", "error", err)
		}
		if err := metrics.StartHTTPServer(cfg.Metrics.Port, cfg.Metrics.Path); err != nil {
			logger.Fatal(ctx, "Failed to start metrics HTTP server", "error", err)
		}
	}

	// 4. 初始化数据库
	dbCfg := db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
		Metrics:            metricsInstance,
	}
	database, err := db.Init(dbCfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&catalogdomain.Product{},
		&cartdomain.Cart{},
		&cartdomain.CartItem{},
		&orderdomain.Order{},
		&notifdomain.Notification{},
	); err != nil {
		logger.Fatal(ctx, "Failed to migrate database schema", "error", err)
	}

	// 5. 初始化 Redis
	redisCfg := cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}
	redisCache, err := cache.New(redisCfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize Redis", "error", err)
	}
	defer redisCache.Close()

	// 6. 初始化限流器
	rateLimiter := ratelimit.NewRedisRateLimiter(redisCache.GetClient())

	// 7. 初始化 Kafka 生产者
	kafkaCfg := mq.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		GroupID:      cfg.Kafka.GroupID,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	}
	producer, err := mq.NewProducer(kafkaCfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize Kafka producer", "error", err)
	}
	defer producer.Close()
	publisher := &kafkaEventPublisher{producer: producer}

	// 8. 初始化仓储
	productRepo := catalogrepo.NewProductRepository(database.DB)
	cartRepository := cartrepo.NewCartRepository(database.DB)
	orderRepository := orderrepo.NewOrderRepository(database.DB)
	notifRepository := notifrepo.NewNotificationRepository(database.DB)

	// 9. 初始化应用服务
	catalogService := catalogapp.NewCatalogApplicationService(productRepo)
	cartService := cartapp.NewCartApplicationService(cartRepository, publisher)
	orderService := orderapp.NewOrderApplicationService(orderRepository, publisher)
	smtpSender := sender.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	notifService := notifapp.NewNotificationService(notifRepository, smtpSender)

	// 10. 组装结算流程
	ledger := checkoutledger.NewRedisLedger(redisCache)
	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey)
	cartPort := adapter.NewCartAdapter(cartService)
	orderWriter := adapter.NewOrderAdapter(orderService)
	mailer := adapter.NewMailerAdapter(notifService)

	checkoutService := checkoutapp.NewCheckoutApplicationService(gateway, cartPort, ledger, cfg.Checkout.Currency, metricsInstance)
	finalizer := checkoutapp.NewFinalizer(ledger, ledger, cartPort, orderWriter, mailer, metricsInstance)

	// 11. 创建 HTTP 服务器
	httpServer := createHTTPServer(cfg, rateLimiter, metricsInstance,
		cataloghttp.NewCatalogHandler(catalogService),
		carthttp.NewCartHandler(cartService),
		orderhttp.NewOrderHandler(orderService),
		checkouthttp.NewCheckoutHandler(checkoutService, finalizer),
		notifhttp.NewNotificationHandler(notifService),
	)

	// 12. 启动状态变更事件消费者
	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	statusConsumer, err := consumer.NewStatusConsumer(kafkaCfg, notifService)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize status consumer", "error", err)
	}
	go statusConsumer.Run(consumerCtx)

	// 13. 启动 HTTP 服务器
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		logger.Info(ctx, "Starting HTTP server", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "HTTP server error", "error", err)
		}
	}()

	// 14. 优雅关停
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info(ctx, "Shutting down Storefront")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "HTTP server shutdown error", "error", err)
	}

	stopConsumer()
	if err := statusConsumer.Close(); err != nil {
		logger.Error(ctx, "Status consumer close error", "error", err)
	}

	logger.Info(ctx, "Storefront stopped")
}

// routeRegistrar 上下文 HTTP 处理器的公共接口
type routeRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// createHTTPServer 创建 HTTP 服务器
func createHTTPServer(cfg *config.Config, rateLimiter ratelimit.RateLimiter, m *metrics.Metrics, handlers ...routeRegistrar) *http.Server {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.GinLoggingMiddleware())
	router.Use(middleware.GinMetricsMiddleware(m))
	router.Use(middleware.GinRecoveryMiddleware())
	router.Use(middleware.GinCORSMiddleware())
	router.Use(middleware.RateLimitMiddleware(rateLimiter, cfg.RateLimit))

	group := router.Group("")
	for _, h := range handlers {
		h.RegisterRoutes(group)
	}

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"service":   cfg.ServiceName,
			"timestamp": time.Now().Unix(),
		})
	})

	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}
}
