package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"story-insights-backend/internal/archive"
	"story-insights-backend/internal/artifacts"
	"story-insights-backend/internal/config"
	"story-insights-backend/internal/database"
	"story-insights-backend/internal/handlers"
	"story-insights-backend/internal/middleware"
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

	dbURL := cfg.DatabaseURL
	if dbURL == "" {
		log.Println("Warning: DATABASE_URL not set. Migrations will be skipped.")
		log.Println("Prompt management requires a PostgreSQL connection string in DATABASE_URL")
	}

	// Artifact source (Supabase data plane, read-only)
	artifactsClient, err := artifacts.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey)
	if err != nil {
		log.Fatalf("Failed to initialize artifacts client: %v", err)
	}

	// Export archive bucket
	archiveClient, err := archive.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket, cfg.ExportPrefix)
	if err != nil {
		log.Fatalf("Failed to initialize archive client: %v", err)
	}

	// Prompt store (direct PostgreSQL); handlers tolerate a nil store
	var promptStore *database.Client
	if dbURL != "" {
		promptStore, err = database.NewClient(dbURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize database client: %v", err)
			log.Println("Prompt operations will be unavailable. Please configure DATABASE_URL properly.")
		} else {
			defer promptStore.Close()

			// Run migrations
			migrator, err := database.NewMigrator(dbURL)
			if err != nil {
				log.Printf("Warning: Failed to initialize migrator: %v", err)
			} else {
				defer migrator.Close()
				if err := migrator.Run(); err != nil {
					log.Printf("Warning: Migration failed: %v", err)
				} else {
					log.Println("Migrations completed successfully")
				}
			}
		}
	}

	// Initialize handlers (promptStore might be nil, handlers handle this)
	artifactsHandler := handlers.NewArtifactsHandler(artifactsClient)
	statsHandler := handlers.NewStatsHandler(artifactsClient)
	exportHandler := handlers.NewExportHandler(artifactsClient, archiveClient)

	var promptsHandler *handlers.PromptsHandler
	if promptStore != nil {
		promptsHandler = handlers.NewPromptsHandler(promptStore)
	} else {
		promptsHandler = handlers.NewPromptsHandler(nil)
	}

	// Setup router
	router := gin.Default()

	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Artifact routes
	api.GET("/artifacts", artifactsHandler.List)
	api.GET("/artifacts/paged", artifactsHandler.ListPaged)
	api.GET("/artifacts/stats", statsHandler.GetStats)
	api.GET("/artifacts/export", exportHandler.Export)

	// Prompt routes
	api.GET("/prompts", promptsHandler.List)
	api.GET("/prompts/:prompt_id/versions", promptsHandler.Versions)
	api.POST("/prompts", promptsHandler.Create)
	api.PUT("/prompts/:prompt_id", promptsHandler.Update)
	api.DELETE("/prompts", promptsHandler.Delete)

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
