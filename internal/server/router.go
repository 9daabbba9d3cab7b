package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"profitflow/internal/config"
	_ "profitflow/internal/docs" // swagger spec
	"profitflow/internal/handlers"
	"profitflow/internal/middleware"
	"profitflow/internal/realtime"
)

// NewRouter builds the gin engine with every route under /api/v1.
func NewRouter(cfg *config.Config, svc *Services, broker realtime.Broker) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users, svc.Audit)
	planHandler := handlers.NewPlanHandler(svc.Plans, svc.Audit)
	investmentHandler := handlers.NewInvestmentHandler(svc.Investments, svc.Audit)
	walletHandler := handlers.NewWalletHandler(svc.Wallets)
	depositHandler := handlers.NewDepositHandler(svc.Deposits)
	performanceHandler := handlers.NewPerformanceHandler(svc.Performance, svc.Audit)
	distributionHandler := handlers.NewDistributionHandler(svc.Distribution)
	notificationHandler := handlers.NewNotificationHandler(svc.Notifications)
	eventsHandler := handlers.NewEventsHandler(broker, cfg.CORSAllowedOrigins)
	auditHandler := handlers.NewAuditHandler(svc.Audit)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	v1.GET("/plans", planHandler.ListPlans)
	v1.GET("/plans/:id", planHandler.GetPlan)

	// External cron trigger
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(cfg.PipelineAPIKeys))
	pipeline.POST("/distribute-profits", distributionHandler.PipelineDistribute)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.CreateInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.GET("/:id", investmentHandler.GetInvestment)

	wallets := protected.Group("/wallets")
	wallets.GET("", walletHandler.GetWallets)
	wallets.GET("/transactions", walletHandler.GetTransactions)
	wallets.POST("/withdraw", walletHandler.Withdraw)

	protected.POST("/deposits", depositHandler.CreateDeposit)

	notifications := protected.Group("/notifications")
	notifications.GET("", notificationHandler.GetNotifications)
	notifications.POST("/read-all", notificationHandler.MarkAllRead)
	notifications.POST("/:id/read", notificationHandler.MarkRead)

	protected.GET("/proof/roi", performanceHandler.GetROIProof)

	events := protected.Group("/events")
	events.GET("/stream", eventsHandler.Stream)
	events.GET("/ws", eventsHandler.WebSocket)

	// Admin routes
	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())

	admin.POST("/distribute-profits", distributionHandler.Distribute)
	admin.GET("/distributions", distributionHandler.ListRuns)
	admin.GET("/distributions/status", distributionHandler.HasRun)

	admin.GET("/plans", planHandler.ListPlans)
	admin.POST("/plans", planHandler.CreatePlan)
	admin.PATCH("/plans/:id", planHandler.UpdatePlan)

	admin.GET("/investments", investmentHandler.ListInvestments)
	admin.POST("/investments/:id/activate", investmentHandler.ActivateInvestment)
	admin.POST("/investments/:id/mature", investmentHandler.MatureInvestment)

	admin.GET("/deposits", depositHandler.ListPendingDeposits)
	admin.POST("/deposits/:id/confirm", depositHandler.ConfirmDeposit)
	admin.POST("/deposits/:id/reject", depositHandler.RejectDeposit)

	admin.POST("/wallets/credit", walletHandler.AdminCredit)
	admin.GET("/wallets/reconcile", walletHandler.Reconcile)

	admin.PUT("/performance", performanceHandler.UpsertPerformance)
	admin.GET("/performance", performanceHandler.ListPerformance)
	admin.GET("/performance/:week", performanceHandler.GetPerformance)

	admin.GET("/audit-logs", auditHandler.ListAuditLogs)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-API-Key", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}
