package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/trade-evolution/tradedocs-api/internal/application/docgen"
	"github.com/trade-evolution/tradedocs-api/internal/application/service"
	"github.com/trade-evolution/tradedocs-api/internal/config"
	"github.com/trade-evolution/tradedocs-api/internal/infrastructure/database"
	"github.com/trade-evolution/tradedocs-api/internal/infrastructure/repository"
	"github.com/trade-evolution/tradedocs-api/internal/presentation/http/handler"
	"github.com/trade-evolution/tradedocs-api/internal/presentation/http/routes"
	"github.com/trade-evolution/tradedocs-api/pkg/email"
	"github.com/trade-evolution/tradedocs-api/pkg/oauth"
	"github.com/trade-evolution/tradedocs-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)
	clientRepo := repository.NewClientRepository(db)
	productRepo := repository.NewProductRepository(db)
	proformaRepo := repository.NewProformaRepository(db)
	proformaItemRepo := repository.NewProformaItemRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	counterRepo := repository.NewCounterRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
	})

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Packing list estimation heuristics
	heuristics := docgen.Heuristics{
		NetWeightFactor:   cfg.Documents.NetWeightFactor,
		GrossWeightFactor: cfg.Documents.GrossWeightFactor,
		VolumeFactor:      cfg.Documents.VolumeFactor,
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, passwordResetRepo, jwtManager, emailService)
	clientService := service.NewClientService(clientRepo)
	productService := service.NewProductService(productRepo)
	proformaService := service.NewProformaService(proformaRepo, proformaItemRepo, paymentRepo, clientRepo, productRepo)
	documentService := service.NewDocumentService(proformaRepo, clientRepo, counterRepo, emailService, heuristics, cfg.Storage.Path, cfg.App.FrontendURL)
	dashboardService := service.NewDashboardService(analyticsRepo, clientRepo)
	exportService := service.NewExportService(proformaRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService, googleOAuthService),
		Client:    handler.NewClientHandler(clientService),
		Product:   handler.NewProductHandler(productService),
		Proforma:  handler.NewProformaHandler(proformaService),
		Document:  handler.NewDocumentHandler(documentService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Export:    handler.NewExportHandler(exportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
