package main

import (
	_ "backend/api/swagger" // swagger docs
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"
	"backend/pkg/logger"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Silver Shop API
// @version         1.0
// @description     Storefront and silver billing backend: catalog, customers, invoices, jama/kharch books and purity calculators.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	log := logger.Must(logger.New())
	defer func() { _ = log.Sync() }()

	if err := godotenv.Load("configs/.env"); err != nil {
		log.Info("no configs/.env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	log.Info("connected to PostgreSQL")

	// Set up WebSocket Hub for live silver-rate broadcasts
	wsHub := websocket.NewHub(log.Named("ws"))
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	rateRepo := repository.NewSilverRateRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, auditRepo)
	customerService := service.NewCustomerService(customerRepo, saleRepo, ledgerRepo, auditRepo)
	saleService := service.NewSaleService(saleRepo, customerRepo, rateRepo, auditRepo, txManager)
	rateService := service.NewSilverRateService(rateRepo, auditRepo, wsHub)
	ledgerService := service.NewLedgerService(ledgerRepo, auditRepo)
	statsService := service.NewStatsService(saleRepo, customerRepo, productRepo, rateRepo)
	calculatorService := service.NewCalculatorService()
	exportService := service.NewExportService(saleRepo, customerRepo)
	auditService := service.NewAuditService(auditRepo)

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService, statsService)
	customerHandler := handler.NewCustomerHandler(customerService)
	saleHandler := handler.NewSaleHandler(saleService, statsService)
	rateHandler := handler.NewSilverRateHandler(rateService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	calculatorHandler := handler.NewCalculatorHandler(calculatorService)
	exportHandler := handler.NewExportHandler(exportService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()
	router.Use(middleware.Metrics())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK", "time": time.Now().UTC()})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Login gets its own brute-force limiter
	loginLimiter := middleware.NewIPRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: cfg.RateLimit.LoginRequestsPerSecond,
		BurstSize:         cfg.RateLimit.LoginBurst,
		CleanupInterval:   cfg.RateLimit.CleanupInterval,
		EntryTTL:          cfg.RateLimit.EntryTTL,
	}).Middleware()

	// Register API Routes
	userHandler.RegisterRoutes(router.Group(""), loginLimiter)
	productHandler.RegisterRoutes(router.Group(""))
	customerHandler.RegisterRoutes(router.Group(""))
	saleHandler.RegisterRoutes(router.Group(""))
	rateHandler.RegisterRoutes(router.Group(""))
	ledgerHandler.RegisterRoutes(router.Group(""))
	calculatorHandler.RegisterRoutes(router.Group(""))
	exportHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	log.Info("server listening", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
