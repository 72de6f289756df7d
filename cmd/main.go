package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/auth"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/config"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/database"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/handlers"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/jobs"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/middleware"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/repository"
	"github.com/Harshal-Pande/sepakTakraw-sub000/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repository and services
	repo := repository.NewRepository(database.GetDB())
	registrationService := services.NewRegistrationService(repo, cfg.App.ReferenceValidityDays)
	reviewService := services.NewReviewService(repo)
	adminService := services.NewAdminService(database.GetDB())

	// Create the initial admin account if configured and none exists
	if err := adminService.EnsureBootstrapAdmin(cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(adminService)
	registrationHandler := handlers.NewRegistrationHandler(registrationService)
	adminRegistrationHandler := handlers.NewAdminRegistrationHandler(reviewService, adminService)
	adminHandler := handlers.NewAdminHandler(database.GetDB(), adminService)
	newsHandler := handlers.NewNewsHandler(database.GetDB(), adminService)
	eventHandler := handlers.NewEventHandler(database.GetDB(), adminService)
	resultHandler := handlers.NewResultHandler(database.GetDB(), adminService)
	memberHandler := handlers.NewMemberHandler(database.GetDB(), adminService)
	documentHandler := handlers.NewDocumentHandler(database.GetDB(), adminService)
	uploadHandler := handlers.NewUploadHandler(cfg.App.UploadDir)
	keepaliveHandler := handlers.NewKeepaliveHandler(database.GetDB())

	// Start keepalive job so the hosted database never pauses
	keepaliveJob := jobs.NewKeepaliveJob(database.GetDB())
	keepaliveJob.Start(6 * time.Hour)
	log.Println("Keepalive job started")

	// Set up Gin router
	router := gin.Default()

	// CORS middleware
	allowedOrigins := []string{
		"http://localhost:3000",
		"http://localhost:5173", // Vite dev server
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
	}
	if cfg.Server.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.Server.FrontendURL)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Keepalive probe
	router.GET("/api/keepalive", keepaliveHandler.Ping)

	// Registration flow (public, rate limited on the write routes)
	registrationLimiter := middleware.NewRateLimiter(10, time.Minute)
	registration := router.Group("/api/registration")
	{
		registration.POST("/step1", registrationLimiter.Middleware(), registrationHandler.IssueReferenceNumber)
		registration.GET("/step1", registrationHandler.GetReferenceNumber)
		registration.POST("/step2", registrationLimiter.Middleware(), registrationHandler.SubmitRegistration)
		registration.GET("/step2", registrationHandler.GetRegistrationStatus)
	}

	// Public content routes
	api := router.Group("/api")
	{
		api.GET("/news", newsHandler.ListNews)
		api.GET("/news/:id", newsHandler.GetNews)
		api.GET("/events", eventHandler.ListEvents)
		api.GET("/events/:id", eventHandler.GetEvent)
		api.GET("/results", resultHandler.ListResults)
		api.GET("/results/:id", resultHandler.GetResult)
		api.GET("/members", memberHandler.ListMembers)
		api.GET("/members/:id", memberHandler.GetMember)
		api.GET("/documents", documentHandler.ListDocuments)
		api.GET("/documents/:id", documentHandler.GetDocument)
	}

	// Uploaded files
	router.Static("/uploads", cfg.App.UploadDir)

	// Admin login (public, tighter rate limit)
	loginLimiter := middleware.NewRateLimiter(5, time.Minute)
	router.POST("/api/admin/login", loginLimiter.Middleware(), authHandler.Login)

	// Admin routes (protected)
	admin := router.Group("/api/admin")
	admin.Use(auth.AdminMiddleware())
	{
		admin.GET("/me", authHandler.Me)
		admin.GET("/dashboard", adminHandler.GetDashboard)
		admin.GET("/logs", adminHandler.GetLogs)
		admin.GET("/settings", adminHandler.GetSettings)
		admin.PUT("/settings", adminHandler.UpdateSettings)
		admin.POST("/uploads", uploadHandler.Upload)

		// Registration review workflow
		admin.GET("/registrations", adminRegistrationHandler.ListRegistrations)
		admin.GET("/registrations/:id", adminRegistrationHandler.GetRegistration)
		admin.PATCH("/registrations", adminRegistrationHandler.UpdateStatus)
		admin.POST("/registrations", adminRegistrationHandler.Actions)

		// Content management
		admin.POST("/news", newsHandler.CreateNews)
		admin.PUT("/news/:id", newsHandler.UpdateNews)
		admin.DELETE("/news/:id", newsHandler.DeleteNews)

		admin.POST("/events", eventHandler.CreateEvent)
		admin.PUT("/events/:id", eventHandler.UpdateEvent)
		admin.DELETE("/events/:id", eventHandler.DeleteEvent)

		admin.POST("/results", resultHandler.CreateResult)
		admin.PUT("/results/:id", resultHandler.UpdateResult)
		admin.DELETE("/results/:id", resultHandler.DeleteResult)

		admin.POST("/members", memberHandler.CreateMember)
		admin.PUT("/members/:id", memberHandler.UpdateMember)
		admin.DELETE("/members/:id", memberHandler.DeleteMember)

		admin.POST("/documents", documentHandler.CreateDocument)
		admin.PUT("/documents/:id", documentHandler.UpdateDocument)
		admin.DELETE("/documents/:id", documentHandler.DeleteDocument)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
