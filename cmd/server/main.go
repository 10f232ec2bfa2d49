package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"pulse-backend/internal/classifier"
	"pulse-backend/internal/config"
	"pulse-backend/internal/database"
	"pulse-backend/internal/handlers"
	"pulse-backend/internal/pipeline"
	"pulse-backend/internal/repository"
	"pulse-backend/internal/routes"
	"pulse-backend/internal/services"
	"pulse-backend/internal/storage"
)

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	cfg := config.Load()

	// Connect to PostgreSQL
	log.Printf("Connecting to PostgreSQL...")
	db, err := database.ConnectPostgres(cfg.PostgresURI)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()

	// Connect to Redis (optional — dashboard cache only)
	cache := services.NewDashboardCache(nil)
	if cfg.RedisURI != "" {
		redisClient, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis: %v", err)
			log.Println("Dashboard caching disabled")
		} else {
			defer redisClient.Close()
			cache = services.NewDashboardCache(redisClient)
		}
	}

	// Initialize Cloudinary object store
	var store storage.ObjectStore
	if cfg.CloudinaryName != "" && cfg.CloudinaryAPIKey != "" && cfg.CloudinaryAPISecret != "" {
		cloudinaryStore, err := storage.NewCloudinaryStore(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
			log.Println("Attachment uploads will not be available")
		} else {
			store = cloudinaryStore
			log.Println("✅ Cloudinary store initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Attachment uploads will not be available")
	}

	// Initialize Gemini inference client. Classification is mandatory for
	// every submission, so failure here is fatal.
	gemini, err := classifier.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal("Failed to initialize Gemini client:", err)
	}
	log.Printf("✅ Gemini client initialized (model %s)", cfg.GeminiModel)

	// Wire the ingestion pipeline
	repo := repository.NewFeedbackRepo(db)
	engine := classifier.NewEngine(gemini)
	pl := pipeline.New(store, engine, repo)

	// Handlers
	feedbackHandler := handlers.NewFeedbackHandler(pl, cache)
	imageHandler := handlers.NewImageHandler(store)
	dashboardHandler := handlers.NewDashboardHandler(repo, cache)
	probeHandler := handlers.NewProbeHandler(db, store)

	// Setup chi router
	r := chi.NewRouter()

	// Development allows any origin; production restricts to ALLOWED_ORIGINS
	allowedOrigins := cfg.AllowedOrigins
	if !cfg.IsProduction() {
		allowedOrigins = []string{"*"}
	}

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	routes.SetupRoutes(r, feedbackHandler, imageHandler, dashboardHandler, probeHandler)

	log.Printf("🚀 Pulse backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
