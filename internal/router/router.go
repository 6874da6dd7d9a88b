package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jangsalab/storeops-backend/config"
	"github.com/jangsalab/storeops-backend/internal/app/controller"
	"github.com/jangsalab/storeops-backend/internal/middleware"
	"github.com/jangsalab/storeops-backend/internal/tenant"
	"github.com/jangsalab/storeops-backend/pkg/validator"
)

type Router struct {
	storeController       *controller.StoreController
	salesController       *controller.SalesController
	closeController       *controller.DailyCloseController
	masterController      *controller.MasterController
	expenseController     *controller.ExpenseController
	analyticsController   *controller.AnalyticsController
	coachController       *controller.CoachController
	reportController      *controller.ReportController
	diagnosticsController *controller.DiagnosticsController
	authMiddleware        *middleware.AuthMiddleware
	tenantResolver        *tenant.Resolver
	config                *config.Config
}

func NewRouter(
	storeController *controller.StoreController,
	salesController *controller.SalesController,
	closeController *controller.DailyCloseController,
	masterController *controller.MasterController,
	expenseController *controller.ExpenseController,
	analyticsController *controller.AnalyticsController,
	coachController *controller.CoachController,
	reportController *controller.ReportController,
	diagnosticsController *controller.DiagnosticsController,
	authMiddleware *middleware.AuthMiddleware,
	tenantResolver *tenant.Resolver,
	cfg *config.Config,
) *Router {
	return &Router{
		storeController:       storeController,
		salesController:       salesController,
		closeController:       closeController,
		masterController:      masterController,
		expenseController:     expenseController,
		analyticsController:   analyticsController,
		coachController:       coachController,
		reportController:      reportController,
		diagnosticsController: diagnosticsController,
		authMiddleware:        authMiddleware,
		tenantResolver:        tenantResolver,
		config:                cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)
	validator.Register()

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", controller.HealthCheck)

	v1 := router.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate())
	{
		// 매장 선택 전에도 쓸 수 있는 엔드포인트
		v1.POST("/auth/logout", r.storeController.Logout)
		stores := v1.Group("/stores")
		{
			stores.GET("", r.storeController.GetMyStores)
			stores.POST("", r.storeController.CreateStore)
			stores.POST("/switch", r.storeController.SwitchStore)
		}

		// 이하 전부 확정된 매장 컨텍스트가 필요하다
		scoped := v1.Group("")
		scoped.Use(middleware.TenantMiddleware(r.tenantResolver))
		{
			sales := scoped.Group("/sales")
			{
				sales.POST("", r.salesController.SaveSales)
				sales.GET("", r.salesController.GetSales)
				sales.GET("/status/:date", r.salesController.GetDayStatus)
				sales.GET("/effective/:date", r.salesController.GetEffectiveSales)
			}
			scoped.POST("/visitors", r.salesController.SaveVisitors)
			scoped.GET("/visitors", r.salesController.GetVisitors)

			close := scoped.Group("/close")
			{
				close.POST("", r.closeController.SaveDailyClose)
				close.GET("", r.closeController.GetCloseRange)
				close.GET("/:date", r.closeController.GetDailyClose)
			}

			menus := scoped.Group("/menus")
			{
				menus.GET("", r.masterController.GetMenus)
				menus.POST("", r.masterController.CreateMenu)
				menus.PUT("/:id", r.masterController.UpdateMenu)
				menus.DELETE("/:id", r.masterController.DeleteMenu)
			}

			ingredients := scoped.Group("/ingredients")
			{
				ingredients.GET("", r.masterController.GetIngredients)
				ingredients.POST("", r.masterController.CreateIngredient)
				ingredients.PUT("/:id", r.masterController.UpdateIngredient)
				ingredients.DELETE("/:id", r.masterController.DeleteIngredient)
			}

			recipes := scoped.Group("/recipes")
			{
				recipes.GET("", r.masterController.GetRecipes)
				recipes.POST("", r.masterController.SaveRecipe)
				recipes.DELETE("/:id", r.masterController.DeleteRecipe)
			}

			inventory := scoped.Group("/inventory")
			{
				inventory.GET("", r.masterController.GetInventory)
				inventory.POST("", r.masterController.SaveInventory)
				inventory.GET("/low-stock", r.masterController.GetLowStock)
			}

			expenses := scoped.Group("/expenses")
			{
				expenses.GET("", r.expenseController.GetExpenses)
				expenses.POST("", r.expenseController.SaveExpenses)
				expenses.DELETE("/:id", r.expenseController.DeleteExpense)
				expenses.POST("/copy-previous", r.expenseController.CopyFromPreviousMonth)
			}

			targets := scoped.Group("/targets")
			{
				targets.GET("", r.expenseController.GetTarget)
				targets.POST("", r.expenseController.SaveTarget)
			}

			analytics := scoped.Group("/analytics")
			{
				analytics.GET("/menu-costs", r.analyticsController.GetMenuCosts)
				analytics.GET("/abc", r.analyticsController.GetABC)
				analytics.GET("/abc/history", r.analyticsController.GetABCHistory)
				analytics.GET("/ingredient-usage", r.analyticsController.GetIngredientUsage)
				analytics.GET("/order-recommendations", r.analyticsController.GetOrderRecommendations)
				analytics.GET("/inventory-turnover", r.analyticsController.GetInventoryTurnover)
				analytics.GET("/break-even", r.analyticsController.GetBreakEven)
				analytics.GET("/scenarios", r.analyticsController.GetScenarios)
				analytics.GET("/daily-split", r.analyticsController.GetDailySplit)
				analytics.GET("/sales-visitor-correlation", r.analyticsController.GetSalesVisitorCorrelation)
				analytics.GET("/target-analysis", r.analyticsController.GetTargetAnalysis)
			}

			coach := scoped.Group("/coach")
			{
				coach.GET("/sales-drop", r.coachController.AnalyzeSalesDrop)
				coach.GET("/minicoach", r.coachController.GetMinicoach)
				coach.POST("/strategy-cards", r.coachController.GetStrategyCards)
			}

			scoped.GET("/reports/monthly", r.reportController.DownloadMonthlyReport)

			diagnostics := scoped.Group("/diagnostics")
			{
				diagnostics.GET("/audit", r.diagnosticsController.GetAuditLog)
				diagnostics.GET("/cache", r.diagnosticsController.GetCacheStatus)
			}
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, X-Store-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
