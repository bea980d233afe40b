package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/trade-evolution/tradedocs-api/internal/config"
	domainRepo "github.com/trade-evolution/tradedocs-api/internal/domain/repository"
	"github.com/trade-evolution/tradedocs-api/internal/presentation/http/handler"
	"github.com/trade-evolution/tradedocs-api/internal/presentation/http/middleware"
	"github.com/trade-evolution/tradedocs-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Client    *handler.ClientHandler
	Product   *handler.ProductHandler
	Proforma  *handler.ProformaHandler
	Document  *handler.DocumentHandler
	Dashboard *handler.DashboardHandler
	Export    *handler.ExportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		// Google OAuth routes
		auth.GET("/google", h.Auth.GoogleLogin)
		auth.GET("/google/callback", h.Auth.GoogleCallback)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile", h.Auth.UpdateProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.GetSummary)

	// Clients
	registerClientRoutes(protected, h)

	// Products
	registerProductRoutes(protected, h)

	// Proformas and their derived documents
	registerProformaRoutes(protected, h, deps)
}

func registerClientRoutes(protected *gin.RouterGroup, h *Handlers) {
	clients := protected.Group("/clients")
	{
		clients.GET("", h.Client.List)
		clients.POST("", h.Client.Create)
		clients.GET("/:id", h.Client.Get)
		clients.PUT("/:id", h.Client.Update)
		clients.DELETE("/:id", h.Client.Delete)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerProformaRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	proformas := protected.Group("/proformas")
	{
		proformas.GET("", h.Proforma.List)
		// Proforma creation uses idempotency middleware so a retried
		// request cannot burn a second document number
		proformas.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Proforma.Create)
		proformas.GET("/export", h.Export.ExportProformas)
		proformas.GET("/:id", h.Proforma.Get)
		proformas.PUT("/:id", h.Proforma.Update)
		proformas.DELETE("/:id", h.Proforma.Delete)
		proformas.PATCH("/:id/status", h.Proforma.UpdateStatus)

		// Payments
		proformas.POST("/:id/payments", h.Proforma.AddPayment)
		proformas.PUT("/:id/payments/:paymentId", h.Proforma.UpdatePayment)
		proformas.DELETE("/:id/payments/:paymentId", h.Proforma.DeletePayment)

		// Editable overlays
		proformas.PUT("/:id/invoice-fields", h.Proforma.UpdateInvoiceFields)
		proformas.PUT("/:id/bill-of-lading-fields", h.Proforma.UpdateBillOfLadingFields)
		proformas.PUT("/:id/packing-list-fields", h.Proforma.UpdatePackingListFields)

		// Derived documents
		proformas.GET("/:id/invoice", h.Document.GetInvoice)
		proformas.GET("/:id/packing-list", h.Document.GetPackingList)
		proformas.POST("/:id/send", h.Document.Send)
		proformas.POST("/:id/bill-of-lading", h.Document.UploadBillOfLading)
		proformas.GET("/:id/bill-of-lading", h.Document.DownloadBillOfLading)
		proformas.DELETE("/:id/bill-of-lading", h.Document.DeleteBillOfLading)
	}
}
