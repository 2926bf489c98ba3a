package main

import (
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"modforge-backend/internal/assist"
	"modforge-backend/internal/build"
	"modforge-backend/internal/chat"
	"modforge-backend/internal/config"
	"modforge-backend/internal/database"
	"modforge-backend/internal/handlers"
	"modforge-backend/internal/middleware"
	"modforge-backend/internal/supabase"
	"modforge-backend/internal/workspace"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbURL := cfg.DatabaseURL
	if dbURL == "" {
		log.Println("Warning: DATABASE_URL not set. Migrations will be skipped.")
		log.Println("Please set DATABASE_URL environment variable with your Supabase PostgreSQL connection string")
	}

	// Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseExportBucket)
	if err != nil {
		log.Fatalf("Failed to initialize storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	// Direct Postgres connection for queries and migrations
	var dbClient *supabase.DatabaseClient
	if dbURL != "" {
		dbClient, err = supabase.NewDatabaseClient(dbURL)
		if err != nil {
			log.Printf("Warning: Failed to initialize database client: %v", err)
			log.Println("Database operations will be limited. Please configure DATABASE_URL properly.")
		} else {
			defer dbClient.Close()

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

	// Domain services
	manager := workspace.NewManager(dbClient)
	history := chat.NewHistory()
	runner := build.NewRunner(rand.New(rand.NewSource(time.Now().UnixNano())))

	var remote assist.Generator
	if cfg.OpenAIAPIKey != "" {
		remote = assist.NewRemoteGenerator(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)
	} else {
		log.Println("OPENAI_API_KEY not set; assist endpoints will serve template output")
	}
	assistService := assist.NewService(remote)

	// Handlers (dbClient might be nil; handlers guard against it)
	healthHandler := handlers.NewHealthHandler(dbClient)
	projectsHandler := handlers.NewProjectsHandler(dbClient, manager, storageClient, realtimeClient)
	filesHandler := handlers.NewFilesHandler(dbClient, manager, realtimeClient)
	assistHandler := handlers.NewAssistHandler(assistService, history)
	chatHandler := handlers.NewChatHandler(history)
	buildHandler := handlers.NewBuildHandler(dbClient, runner, realtimeClient)
	analysisHandler := handlers.NewAnalysisHandler(dbClient, manager)
	dependenciesHandler := handlers.NewDependenciesHandler()
	exportHandler := handlers.NewExportHandler(dbClient, manager, storageClient, realtimeClient)

	router := gin.Default()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Health check (no auth)
	router.GET("/health", healthHandler.Health)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Projects
	api.POST("/projects", projectsHandler.CreateProject)
	api.GET("/projects", projectsHandler.ListProjects)
	api.GET("/projects/:project_id", projectsHandler.GetProject)
	api.DELETE("/projects/:project_id", projectsHandler.DeleteProject)
	api.PATCH("/projects/:project_id/status", projectsHandler.UpdateProjectStatus)

	// Workspace files
	api.GET("/projects/:project_id/files", filesHandler.ListFiles)
	api.GET("/projects/:project_id/files/tree", filesHandler.FileTree)
	api.POST("/projects/:project_id/files", filesHandler.CreateFile)
	api.PUT("/projects/:project_id/files/:file_id", filesHandler.UpdateFile)
	api.DELETE("/projects/:project_id/files/:file_id", filesHandler.DeleteFile)
	api.DELETE("/projects/:project_id/files", filesHandler.ClearFiles)
	api.POST("/projects/:project_id/scaffold", filesHandler.ScaffoldProject)

	// Builds, analysis, export
	api.POST("/projects/:project_id/build", buildHandler.Build)
	api.POST("/projects/:project_id/analyze", analysisHandler.Analyze)
	api.POST("/projects/:project_id/export", exportHandler.Export)

	// Dependencies (build file text edits; no project state touched)
	api.POST("/dependencies", dependenciesHandler.Manage)

	// Assist
	api.POST("/assist/generate", assistHandler.Generate)
	api.POST("/assist/review", assistHandler.Review)

	// Chat history
	api.GET("/chat", chatHandler.ListMessages)
	api.POST("/chat", chatHandler.PostMessage)
	api.DELETE("/chat", chatHandler.ClearMessages)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
