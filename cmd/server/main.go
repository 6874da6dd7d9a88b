package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jangsalab/storeops-backend/config"
	"github.com/jangsalab/storeops-backend/internal/app/controller"
	"github.com/jangsalab/storeops-backend/internal/app/repository"
	"github.com/jangsalab/storeops-backend/internal/app/service"
	"github.com/jangsalab/storeops-backend/internal/audit"
	"github.com/jangsalab/storeops-backend/internal/cache"
	"github.com/jangsalab/storeops-backend/internal/db"
	"github.com/jangsalab/storeops-backend/internal/middleware"
	"github.com/jangsalab/storeops-backend/internal/router"
	"github.com/jangsalab/storeops-backend/internal/scheduler"
	"github.com/jangsalab/storeops-backend/internal/tenant"
	"github.com/jangsalab/storeops-backend/pkg/logger"
	"github.com/jangsalab/storeops-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting StoreOps Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Cache backend: Redis가 설정되어 있으면 공유 캐시, 아니면 프로세스 내 메모리
	redisEnabled := cfg.Redis.Host != ""
	var cacheStore cache.Store
	if redisEnabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer redis.Close()
		cacheStore = cache.NewRedisStore(redis.GetClient())
	} else {
		cacheStore = cache.NewMemoryStore()
	}
	cacheLayer := cache.NewLayer(cacheStore, cfg.Dev.ForceHardClear)
	auditRing := audit.NewRing()

	// Initialize repositories
	storeRepo := repository.NewStoreRepository(db.GetDB())
	salesRepo := repository.NewSalesRepository(db.GetDB())
	visitorRepo := repository.NewVisitorRepository(db.GetDB())
	closeRepo := repository.NewDailyCloseRepository(db.GetDB())
	itemRepo := repository.NewDailySalesItemRepository(db.GetDB())
	menuRepo := repository.NewMenuRepository(db.GetDB())
	ingredientRepo := repository.NewIngredientRepository(db.GetDB())
	recipeRepo := repository.NewRecipeRepository(db.GetDB())
	inventoryRepo := repository.NewInventoryRepository(db.GetDB())
	expenseRepo := repository.NewExpenseRepository(db.GetDB())
	targetRepo := repository.NewTargetRepository(db.GetDB())
	abcHistoryRepo := repository.NewABCHistoryRepository(db.GetDB())

	// Initialize services
	coordinator := service.NewWriteCoordinator(cacheLayer, auditRing)
	storeService := service.NewStoreService(storeRepo)
	salesService := service.NewSalesService(salesRepo, visitorRepo, closeRepo, coordinator, cacheLayer)
	closeService := service.NewDailyCloseService(
		db.GetDB(), closeRepo, itemRepo, menuRepo, recipeRepo, inventoryRepo, coordinator, cacheLayer,
	)
	resolverService := service.NewResolverService(
		salesRepo, visitorRepo, closeRepo, itemRepo, menuRepo, cacheLayer,
	)
	menuService := service.NewMenuService(menuRepo, recipeRepo, itemRepo, coordinator, cacheLayer)
	ingredientService := service.NewIngredientService(ingredientRepo, recipeRepo, inventoryRepo, coordinator, cacheLayer)
	recipeService := service.NewRecipeService(recipeRepo, menuRepo, ingredientRepo, coordinator, cacheLayer)
	inventoryService := service.NewInventoryService(inventoryRepo, ingredientRepo, coordinator, cacheLayer)
	expenseService := service.NewExpenseService(expenseRepo, coordinator, cacheLayer)
	targetService := service.NewTargetService(targetRepo, coordinator, cacheLayer)
	analyticsService := service.NewAnalyticsService(
		menuRepo, ingredientRepo, recipeRepo, inventoryRepo, expenseRepo, targetRepo,
		salesRepo, visitorRepo, resolverService, cacheLayer,
	)
	coachService := service.NewCoachService(salesRepo, visitorRepo, resolverService, analyticsService)
	abcHistoryService := service.NewABCHistoryService(abcHistoryRepo, storeRepo, analyticsService)
	reportService := service.NewReportService(resolverService, analyticsService, targetService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg, redisEnabled)
	tenantResolver := tenant.NewResolver(cfg, storeRepo)

	// Initialize controllers
	storeController := controller.NewStoreController(storeService, tenantResolver, authMiddleware)
	salesController := controller.NewSalesController(salesService, resolverService)
	closeController := controller.NewDailyCloseController(closeService)
	masterController := controller.NewMasterController(menuService, ingredientService, recipeService, inventoryService)
	expenseController := controller.NewExpenseController(expenseService, targetService)
	analyticsController := controller.NewAnalyticsController(analyticsService, abcHistoryService)
	coachController := controller.NewCoachController(coachService)
	reportController := controller.NewReportController(reportService)
	diagnosticsController := controller.NewDiagnosticsController(auditRing)

	// Monthly ABC snapshot scheduler
	abcScheduler := scheduler.NewABCSnapshotScheduler(storeRepo, abcHistoryService)
	if err := abcScheduler.Start(); err != nil {
		logger.Fatal("Failed to start ABC snapshot scheduler", err)
	}
	defer abcScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		storeController,
		salesController,
		closeController,
		masterController,
		expenseController,
		analyticsController,
		coachController,
		reportController,
		diagnosticsController,
		authMiddleware,
		tenantResolver,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
