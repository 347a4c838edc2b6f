// @title           ShootFlow Backend API
// @version         1.0.0
// @description     Backend API for real-estate media production: shoot booking, RAW and edited uploads, review issues, delivery and billing.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"

	"shootflow-backend/internal/assistant"
	"shootflow-backend/internal/config"
	"shootflow-backend/internal/database"
	"shootflow-backend/internal/handlers"
	"shootflow-backend/internal/middleware"
	"shootflow-backend/internal/services"
	"shootflow-backend/internal/supabase"
	"shootflow-backend/internal/workflow"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Database client for direct queries
	dbClient, err := supabase.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	// Run migrations
	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(); err != nil {
		migrator.Close()
		log.Fatalf("Migration failed: %v", err)
	}
	migrator.Close()
	log.Println("Migrations completed successfully")

	// Supabase clients for storage and realtime
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	// Assistant chat proxy (optional)
	assistantClient := assistant.NewClient(cfg.AssistantAPIBaseURL, cfg.AssistantAPIKey)

	// Services
	downloadService := services.NewDownloadService(dbClient, storageClient)
	invoiceService := services.NewInvoiceService(dbClient)

	// Handlers
	authHandler := handlers.NewAuthHandler(cfg, dbClient)
	shootsHandler := handlers.NewShootsHandler(dbClient, storageClient, realtimeClient)
	uploadHandler := handlers.NewUploadHandler(dbClient, storageClient, realtimeClient)
	filesHandler := handlers.NewFilesHandler(dbClient, storageClient, downloadService)
	issuesHandler := handlers.NewIssuesHandler(dbClient, realtimeClient)
	usersHandler := handlers.NewUsersHandler(dbClient)
	clientsHandler := handlers.NewClientsHandler(dbClient)
	paymentsHandler := handlers.NewPaymentsHandler(cfg, dbClient, realtimeClient)
	invoicesHandler := handlers.NewInvoicesHandler(dbClient, invoiceService)
	availabilityHandler := handlers.NewAvailabilityHandler(dbClient)
	reportsHandler := handlers.NewReportsHandler(dbClient)
	chatHandler := handlers.NewChatHandler(assistantClient)

	// Setup router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	router.Use(middleware.Metrics())
	router.Use(middleware.SanitizeInput())

	// Health and metrics (no auth)
	router.GET("/health", handlers.HealthHandler)
	router.GET("/ready", handlers.ReadyHandler(dbClient))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Stripe webhook (no auth, signature-verified)
	router.POST("/api/v1/webhooks/stripe", paymentsHandler.StripeWebhook)

	// Login (no auth)
	router.POST("/api/v1/auth/login", authHandler.Login)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	api.POST("/auth/register", middleware.RequireAdmin(), authHandler.Register)

	// Shoots
	api.POST("/shoots", middleware.RequireAdmin(), shootsHandler.CreateShoot)
	api.GET("/shoots", shootsHandler.ListShoots)
	api.GET("/shoots/:shoot_id", shootsHandler.GetShoot)
	api.PATCH("/shoots/:shoot_id", shootsHandler.UpdateShoot)
	api.DELETE("/shoots/:shoot_id", middleware.RequireAdmin(), shootsHandler.DeleteShoot)
	api.POST("/shoots/:shoot_id/assign", middleware.RequireAdmin(), shootsHandler.AssignShoot)
	api.POST("/shoots/:shoot_id/send-to-editing", middleware.RequireAdmin(), shootsHandler.SendToEditing)
	api.POST("/shoots/:shoot_id/finalize", middleware.RequireAdmin(), shootsHandler.FinalizeShoot)

	// Media uploads and files
	api.POST("/shoots/:shoot_id/upload/raw", uploadHandler.UploadRaw)
	api.POST("/shoots/:shoot_id/upload/edited", uploadHandler.UploadEdited)
	api.GET("/shoots/:shoot_id/files", filesHandler.GetFiles)
	api.POST("/shoots/:shoot_id/download", filesHandler.Download)
	api.PATCH("/files/:file_id/stage",
		middleware.RequireRoles(workflow.RoleEditor, workflow.RoleAdmin, workflow.RoleSuperAdmin),
		filesHandler.UpdateFileStage)
	api.DELETE("/files/:file_id", middleware.RequireAdmin(), filesHandler.DeleteFile)

	// Issues
	api.GET("/shoots/:shoot_id/issues", issuesHandler.ListIssues)
	api.POST("/shoots/:shoot_id/issues", issuesHandler.CreateIssue)
	api.PATCH("/issues/:issue_id", issuesHandler.UpdateIssue)
	api.POST("/issues/:issue_id/assign", middleware.RequireAdmin(), issuesHandler.AssignIssue)

	// Users
	api.GET("/users/photographers", middleware.RequireAdmin(), usersHandler.ListPhotographers)
	api.GET("/users/editors", middleware.RequireAdmin(), usersHandler.ListEditors)

	// Clients
	api.POST("/clients", middleware.RequireAdmin(), clientsHandler.CreateClient)
	api.GET("/clients", middleware.RequireAdmin(), clientsHandler.ListClients)
	api.GET("/clients/:client_id", middleware.RequireAdmin(), clientsHandler.GetClient)
	api.PATCH("/clients/:client_id", middleware.RequireAdmin(), clientsHandler.UpdateClient)
	api.DELETE("/clients/:client_id", middleware.RequireAdmin(), clientsHandler.DeleteClient)

	// Billing
	api.POST("/shoots/:shoot_id/payments", middleware.RequireSuperAdmin(), paymentsHandler.MarkPaid)
	api.GET("/shoots/:shoot_id/payments", middleware.RequireAdmin(), paymentsHandler.ListPayments)
	api.POST("/shoots/:shoot_id/payment-intent", paymentsHandler.CreatePaymentIntent)
	api.POST("/shoots/:shoot_id/invoice", middleware.RequireAdmin(), invoicesHandler.GenerateInvoice)
	api.GET("/shoots/:shoot_id/invoice", invoicesHandler.GetShootInvoice)
	api.GET("/invoices", middleware.RequireAdmin(), invoicesHandler.ListInvoices)

	// Availability
	api.POST("/availability",
		middleware.RequireRoles(workflow.RolePhotographer, workflow.RoleEditor, workflow.RoleAdmin, workflow.RoleSuperAdmin),
		availabilityHandler.CreateAvailability)
	api.GET("/availability", availabilityHandler.ListAvailability)
	api.DELETE("/availability/:slot_id", availabilityHandler.DeleteAvailability)

	// Reports and assistant
	api.GET("/reports/summary", middleware.RequireAdmin(), reportsHandler.Summary)
	api.POST("/chat", chatHandler.Chat)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
