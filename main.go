package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"comic-news/config"
	"comic-news/handlers"
	"comic-news/helper"
	"comic-news/middleware"
	"comic-news/models"
	"comic-news/repositories"
	"comic-news/services"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

func main() {
	// Load configuration (reads .env if present)
	cfg := config.Load()

	// Initialize database
	db := config.InitDB(cfg)
	if err := db.AutoMigrate(&models.Article{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize repositories
	articleRepo := repositories.NewArticleRepository(db)

	// Initialize services
	source, err := services.NewSourceAdapter(cfg)
	if err != nil {
		log.Fatalf("Failed to configure news source: %v", err)
	}
	narrative := services.NewNarrativeService(cfg)
	illustrator := services.NewIllustrationService(cfg)
	pipelineService := services.NewPipelineService(source, narrative, illustrator, articleRepo)
	newsService := services.NewNewsService(articleRepo)
	authService := services.NewAuthService(cfg)

	// Initialize handlers
	httpHelper := helper.NewHTTPHelper()
	newsHandler := handlers.NewNewsHandler(newsService, pipelineService, httpHelper)
	authHandler := handlers.NewAuthHandler(authService, httpHelper)

	// Setup router
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	api := router.Group("/api")
	{
		api.GET("/news/:page", newsHandler.GetNewsPage)
		api.POST("/auth/login", authHandler.Login)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			protected.POST("/refresh", newsHandler.Refresh)
		}
	}

	// Schedule the pipeline, with an immediate first run. The scheduled
	// trigger only logs outcomes; the refresh endpoint reports them.
	scheduler := cron.New()
	runPipeline := func() {
		report, err := pipelineService.Run(context.Background())
		switch {
		case errors.Is(err, services.ErrRunInProgress):
			log.Println("Skipping scheduled run: previous run still active")
		case err != nil:
			log.Printf("Scheduled run failed: %v", err)
		default:
			log.Printf("Scheduled run done in %s: %d fetched, %d new, %d skipped, %d failed, %d expired",
				report.Duration, report.Fetched, report.Created, report.Skipped, report.Failed, report.Expired)
		}
	}
	if _, err := scheduler.AddFunc(cfg.FetchSchedule, runPipeline); err != nil {
		log.Fatalf("Failed to schedule pipeline (%q): %v", cfg.FetchSchedule, err)
	}
	go runPipeline()
	scheduler.Start()
	defer scheduler.Stop()

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, router))
}
