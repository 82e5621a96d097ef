// Package router assembles the HTTP route table and middleware chain.
package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "finapp/internal/docs" // swagger docs
	"finapp/internal/handlers"
	"finapp/internal/middleware"
	"finapp/internal/password"
	"finapp/internal/services"
	"finapp/internal/validator"
)

// Options controls identity and throttling behavior of the router.
type Options struct {
	Tokens *middleware.TokenService
	Hasher password.Hasher

	// DefaultUserID is used for requests without a bearer token.
	// Empty rejects them with 401.
	DefaultUserID string

	AuthRateLimit float64
	AuthRateBurst int

	// TrustedProxies lists proxy IPs or CIDRs allowed to set the client IP
	// through X-Forwarded-For. Empty uses the peer address.
	TrustedProxies []string

	// Now overrides the clock behind "today" defaults and the currency
	// timestamp. Row created_at values come from gorm.
	Now func() time.Time
}

// New builds a gin engine serving the finance API on db.
func New(db *gorm.DB, opts Options) (*gin.Engine, error) {
	validator.Register()

	now := services.Clock(opts.Now)

	// Services
	userService := services.NewUserService(db, opts.Hasher)
	auditService := services.NewAuditService(db)
	transactionService := services.NewTransactionService(db, now)
	eventService := services.NewEventService(db, now)
	goalService := services.NewGoalService(db, now)
	holdItemService := services.NewHoldItemService(db, now)
	priorityService := services.NewPriorityService(db, now)
	budgetService := services.NewBudgetService(db, now)
	analyticsService := services.NewAnalyticsService(db)
	referenceService := services.NewReferenceService(now)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, opts.Tokens, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	eventHandler := handlers.NewEventHandler(eventService)
	goalHandler := handlers.NewGoalHandler(goalService)
	holdItemHandler := handlers.NewHoldItemHandler(holdItemService)
	priorityHandler := handlers.NewPriorityHandler(priorityService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	insightHandler := handlers.NewInsightHandler(analyticsService)
	referenceHandler := handlers.NewReferenceHandler(referenceService)

	resolver := middleware.NewIdentityResolver(opts.Tokens, opts.DefaultUserID)
	limiter := middleware.NewRateLimiter(opts.AuthRateLimit, opts.AuthRateBurst)

	router := gin.New()
	if err := router.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public routes
	api.GET("/currency", referenceHandler.GetCurrency)
	api.GET("/knowledge", referenceHandler.GetKnowledge)

	auth := api.Group("/auth")
	auth.Use(limiter.Middleware())
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/change-password", middleware.RequireBearer(resolver), authHandler.ChangePassword)

	// Owner-scoped routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(resolver))

	protected.GET("/transactions", transactionHandler.GetTransactions)
	protected.POST("/transactions", transactionHandler.CreateTransaction)
	protected.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

	protected.GET("/events", eventHandler.GetEvents)
	protected.POST("/events", eventHandler.CreateEvent)

	protected.GET("/goals", goalHandler.GetGoals)
	protected.POST("/goals", goalHandler.CreateGoal)

	protected.GET("/hold-items", holdItemHandler.GetHoldItems)
	protected.POST("/hold-items", holdItemHandler.CreateHoldItem)

	protected.GET("/priorities", priorityHandler.GetPriorities)
	protected.POST("/priorities", priorityHandler.CreatePriority)

	protected.GET("/budgets", budgetHandler.GetBudgets)
	protected.POST("/budgets", budgetHandler.CreateBudget)

	protected.GET("/summary", insightHandler.GetSummary)
	protected.GET("/analysis", insightHandler.GetAnalysis)
	protected.GET("/categories", insightHandler.GetCategories)

	return router, nil
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
